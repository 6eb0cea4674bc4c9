package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	awsclient "tasnim.dev/presign/internal/aws"
	"tasnim.dev/presign/internal/aws/eks"
	"tasnim.dev/presign/internal/config"
	"tasnim.dev/presign/internal/utils"
)

func NewEKSTokenCmd() *cobra.Command {
	var profile string
	var region string
	var rawURL bool

	cmd := &cobra.Command{
		Use:   "eks-token <cluster>",
		Short: "Mint an EKS bearer token",
		Long: `Eks-token presigns an STS GetCallerIdentity request bound to the cluster
and prints it in the k8s-aws-v1. encoding kubectl expects, the same
mechanism as aws eks get-token. Minted tokens round-trip through check
and inspect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			profile, region = cfg.Merge(profile, region)

			awsCfg, err := awsclient.LoadConfig(cmd.Context(), profile, region)
			if err != nil {
				return fmt.Errorf("loading AWS config: %w", err)
			}

			tok, err := eks.Mint(cmd.Context(), awsCfg, args[0])
			if err != nil {
				if code := awsclient.ErrorCode(err); code != "" {
					return fmt.Errorf("minting token for %s (%s): %w", args[0], code, err)
				}
				return fmt.Errorf("minting token for %s: %w", args[0], err)
			}

			if rawURL {
				fmt.Fprintln(os.Stdout, tok.URL)
			} else {
				fmt.Fprintln(os.Stdout, tok.Value)
			}
			fmt.Fprintf(os.Stderr, "token expires %s UTC\n", tok.ExpiresAt.UTC().Format(utils.DateTimeSec))
			return nil
		},
	}

	cmd.Flags().StringVarP(&profile, "profile", "p", "", "AWS profile to use")
	cmd.Flags().StringVarP(&region, "region", "r", "", "AWS region to use")
	cmd.Flags().BoolVar(&rawURL, "raw-url", false, "print the presigned STS URL instead of the wrapped token")

	return cmd
}
