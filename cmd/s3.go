package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	awsclient "tasnim.dev/presign/internal/aws"
	s3client "tasnim.dev/presign/internal/aws/s3"
	"tasnim.dev/presign/internal/config"
	"tasnim.dev/presign/internal/presign"
	"tasnim.dev/presign/internal/utils"
)

func NewS3Cmd() *cobra.Command {
	var profile string
	var region string
	var expires time.Duration
	var put bool

	cmd := &cobra.Command{
		Use:   "s3 <s3://bucket/key>",
		Short: "Mint a pre-signed S3 URL",
		Long: `S3 presigns a GET (or, with --put, a PUT) request for the given object
and prints the URL. The lifetime comes from --expires, the config default,
or 15 minutes, clamped to the 1s..168h range SigV4 accepts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bucket, key, err := s3client.ParseS3URI(args[0])
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			profile, region = cfg.Merge(profile, region)
			if expires == 0 {
				expires = cfg.Expires()
			}
			expires = config.ClampExpires(expires)

			awsCfg, err := awsclient.LoadConfig(cmd.Context(), profile, region)
			if err != nil {
				return fmt.Errorf("loading AWS config: %w", err)
			}

			client := s3client.NewClientFromConfig(awsCfg)
			presignObject := client.PresignGet
			if put {
				presignObject = client.PresignPut
			}

			signed, err := presignObject(cmd.Context(), bucket, key, expires)
			if err != nil {
				if code := awsclient.ErrorCode(err); code != "" {
					return fmt.Errorf("presigning s3://%s/%s (%s): %w", bucket, key, code, err)
				}
				return fmt.Errorf("presigning s3://%s/%s: %w", bucket, key, err)
			}

			// The URL goes to stdout alone so it pipes cleanly.
			fmt.Fprintln(os.Stdout, signed)
			if ev, err := presign.Evaluate(signed, time.Now()); err == nil {
				fmt.Fprintf(os.Stderr, "expires %s UTC\n", ev.ExpiresAt.Format(utils.DateTimeSec))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&profile, "profile", "p", "", "AWS profile to use")
	cmd.Flags().StringVarP(&region, "region", "r", "", "AWS region to use")
	cmd.Flags().DurationVar(&expires, "expires", 0, "URL lifetime (default from config, 15m)")
	cmd.Flags().BoolVar(&put, "put", false, "presign an upload (PUT) instead of a download")

	return cmd
}
