package cmd

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"tasnim.dev/presign/internal/aws/eks"
	"tasnim.dev/presign/internal/presign"
	"tasnim.dev/presign/internal/tui/theme"
	"tasnim.dev/presign/internal/utils"
)

func NewInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <presigned_url>",
		Short: "Show the signature details of a pre-signed URL",
		Long: `Inspect decomposes a pre-signed URL into its SigV4 parts: the signing
scope, the signed headers and the validity window. Findings list anything
a well-formed presigned URL would carry but this one lacks.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := renderInspect(args[0], time.Now())
			if err != nil {
				return fmt.Errorf("inspect: %w", err)
			}
			fmt.Fprint(os.Stdout, out)
			return nil
		},
	}
}

func renderInspect(raw string, now time.Time) (string, error) {
	req, err := presign.Parse(eks.Unwrap(raw))
	if err != nil {
		return "", err
	}

	b := utils.NewDetailBuilder(14, theme.MutedStyle)

	b.Section("Request")
	b.Row("Host", orDash(req.URL.Host))
	b.Row("Path", orDash(req.URL.Path))
	if eks.IsToken(raw) {
		b.Row("Source", "EKS bearer token")
	}
	b.Row("Service", orDash(req.Credential.Service))
	b.Row("Region", orDash(req.Credential.Region))
	b.Blank()

	b.Section("Signature")
	b.Row("Algorithm", orDash(req.Algorithm))
	b.Row("Access key", orDash(utils.MaskAccessKey(req.Credential.AccessKeyID)))
	b.Row("Scope date", orDash(req.Credential.Date))
	b.Row("Headers", orDash(strings.Join(req.SignedHeaders, ", ")))
	b.Row("Session token", yesNo(req.HasSessionToken))
	b.Blank()

	b.Section("Validity")
	b.Row("Signed at", utcOrDash(req.SignedAt))
	if req.HasExpires {
		b.Row("Expires in", lifetimeString(req.ExpiresIn))
	} else {
		b.Row("Expires in", "—")
	}
	b.Row("Expires at", utcOrDash(req.ExpiresAt()))
	b.Row("Status", inspectStatus(req, now))

	if problems := req.Problems(); problems != nil {
		b.Blank()
		b.Section("Findings")
		var merr *multierror.Error
		if errors.As(problems, &merr) {
			for _, e := range merr.Errors {
				b.Line(theme.WarningStyle.Render("▲ " + e.Error()))
			}
		}
	}

	return b.String(), nil
}

// inspectStatus renders the verdict with a relative expiry. Validity is
// strict: at the expiry instant itself the URL is already expired.
func inspectStatus(req *presign.Request, now time.Time) string {
	expiresAt := req.ExpiresAt()
	if expiresAt.IsZero() {
		return theme.RenderStatus("unknown")
	}
	rel := humanize.RelTime(expiresAt, now, "ago", "from now")
	if now.Before(expiresAt) {
		return theme.RenderStatus("valid") + theme.MutedStyle.Render("  expires "+rel)
	}
	return theme.RenderStatus("expired") + theme.MutedStyle.Render("  expired "+rel)
}

// lifetimeString renders the lifetime as a duration, falling back to raw
// seconds when the value does not fit in a time.Duration.
func lifetimeString(seconds int64) string {
	const maxSeconds = math.MaxInt64 / int64(time.Second)
	if seconds > maxSeconds || seconds < -maxSeconds {
		return fmt.Sprintf("%ds", seconds)
	}
	return (time.Duration(seconds) * time.Second).String()
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func utcOrDash(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format(utils.DateTimeSec) + " UTC"
}
