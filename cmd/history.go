package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tasnim.dev/presign/internal/config"
	"tasnim.dev/presign/internal/history"
	"tasnim.dev/presign/internal/tui/theme"
	"tasnim.dev/presign/internal/utils"
)

func NewHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently checked URLs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if limit <= 0 {
				limit = cfg.RecentLimit()
			}

			path, err := history.DefaultPath()
			if err != nil {
				return err
			}
			store, err := history.Open(path)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			fmt.Fprint(os.Stdout, renderHistory(entries))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of entries to list (default from config, 20)")

	return cmd
}

func renderHistory(entries []history.Entry) string {
	if len(entries) == 0 {
		return "No checks recorded yet.\n"
	}
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s  %s  %s  %s\n",
			e.CheckedAt.Format(utils.DateTimeSec),
			theme.RenderStatus(e.Status),
			e.Endpoint,
			theme.MutedStyle.Render("expiry "+e.ExpiresAt.Format(utils.DateTime)),
		)
	}
	return b.String()
}
