package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tasnim.dev/presign/internal/aws/eks"
	"tasnim.dev/presign/internal/config"
	"tasnim.dev/presign/internal/history"
	"tasnim.dev/presign/internal/presign"
	"tasnim.dev/presign/internal/utils"
)

const checkUsage = "Usage: presign check <presigned_url>"

func NewCheckCmd() *cobra.Command {
	var record bool

	cmd := &cobra.Command{
		Use:   "check <presigned_url>",
		Short: "Check whether a pre-signed URL has expired",
		Long: `Check reads X-Amz-Date and X-Amz-Expires from a pre-signed URL and
reports whether the URL is still valid at the current time. EKS bearer
tokens (k8s-aws-v1.*) are unwrapped to the presigned STS URL they encode.

The exit code is 0 whenever the verdict could be determined, for expired
URLs included; only unusable input exits 1.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			code, ev := runCheck(os.Stdout, time.Now, args)
			if ev != nil {
				recordCheck(cmd.Context(), record, args[0], *ev)
			}
			if code != 0 {
				os.Exit(code)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&record, "history", false, "record this check in the local history")

	return cmd
}

// runCheck prints the expiry report for args to w and returns the process
// exit code, plus the evaluation when one was reached. The clock is
// sampled exactly once so the report and the verdict agree.
func runCheck(w io.Writer, now func() time.Time, args []string) (int, *presign.Evaluation) {
	if len(args) != 1 {
		fmt.Fprintln(w, checkUsage)
		return 1, nil
	}

	ev, err := presign.Evaluate(eks.Unwrap(args[0]), now())
	if err != nil {
		printEvalError(w, err)
		return 1, nil
	}

	fmt.Fprintf(w, "URL generated at: %s UTC\n", ev.SignedAt.Format(utils.DateTimeSec))
	fmt.Fprintf(w, "Expires at:      %s UTC\n", ev.ExpiresAt.Format(utils.DateTimeSec))
	fmt.Fprintf(w, "Current time:    %s UTC\n", ev.CheckedAt.Format(utils.DateTimeSec))
	if ev.Expired() {
		fmt.Fprintln(w, "The pre-signed URL has expired.")
	} else {
		fmt.Fprintln(w, "The pre-signed URL is still valid.")
	}
	return 0, &ev
}

// printEvalError writes the diagnostic for an Evaluate failure. Parse
// failures surface the parser's own message; everything else reads as a
// missing parameter, unparseable URLs included.
func printEvalError(w io.Writer, err error) {
	var perr *presign.ParseError
	if errors.As(err, &perr) {
		fmt.Fprintf(w, "Error parsing date or expires: %v\n", perr.Unwrap())
	} else {
		fmt.Fprintln(w, "Could not find X-Amz-Date or X-Amz-Expires in the URL.")
	}
}

// recordCheck appends the evaluation to the local history when recording
// is enabled by flag or config. Recording never disturbs the check output,
// so every failure is logged at debug level and swallowed.
func recordCheck(ctx context.Context, enabled bool, rawArg string, ev presign.Evaluation) {
	if !enabled {
		cfg, err := config.Load()
		if err != nil {
			logrus.Debugf("loading config: %v", err)
			return
		}
		if !cfg.History {
			return
		}
	}

	path, err := history.DefaultPath()
	if err != nil {
		logrus.Debugf("resolving history path: %v", err)
		return
	}
	store, err := history.Open(path)
	if err != nil {
		logrus.Debugf("opening history: %v", err)
		return
	}
	defer store.Close()

	status := "valid"
	if ev.Expired() {
		status = "expired"
	}
	entry := history.Entry{
		CheckedAt: ev.CheckedAt,
		Endpoint:  endpointOf(rawArg),
		Status:    status,
		ExpiresAt: ev.ExpiresAt,
	}
	if err := store.Append(ctx, entry); err != nil {
		logrus.Debugf("recording check: %v", err)
	}
}

// endpointOf reduces a URL argument to host and path for display and
// history rows, leaving out the query string and its signature.
func endpointOf(raw string) string {
	u, err := url.Parse(eks.Unwrap(raw))
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Host + u.Path
}
