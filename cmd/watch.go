package cmd

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"tasnim.dev/presign/internal/aws/eks"
	"tasnim.dev/presign/internal/presign"
	"tasnim.dev/presign/internal/tui"
)

func NewWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <presigned_url>",
		Short: "Watch a pre-signed URL count down to expiry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := presign.Evaluate(eks.Unwrap(args[0]), time.Now())
			if err != nil {
				printEvalError(os.Stdout, err)
				os.Exit(1)
			}

			model := tui.NewModel(endpointOf(args[0]), ev, time.Now)
			p := tea.NewProgram(model)
			if _, err := p.Run(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return nil
		},
	}
}
