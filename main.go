package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tasnim.dev/presign/cmd"
)

// Overridden at build time via -ldflags.
var (
	version    = "dev"
	commitHash = "none"
)

func main() {
	var debug bool

	rootCmd := &cobra.Command{
		Use:     "presign",
		Short:   "Inspect and generate AWS pre-signed URLs",
		Version: fmt.Sprintf("%s, build %s", version, commitHash),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logrus.SetLevel(logrus.WarnLevel)
			if debug {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(cmd.NewCheckCmd())
	rootCmd.AddCommand(cmd.NewInspectCmd())
	rootCmd.AddCommand(cmd.NewWatchCmd())
	rootCmd.AddCommand(cmd.NewS3Cmd())
	rootCmd.AddCommand(cmd.NewEKSTokenCmd())
	rootCmd.AddCommand(cmd.NewHistoryCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
