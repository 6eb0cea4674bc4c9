package presign

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
)

// Credential is a parsed X-Amz-Credential scope,
// access-key/date/region/service/aws4_request.
type Credential struct {
	AccessKeyID string
	Date        string
	Region      string
	Service     string
}

// ParseCredential splits a credential scope. Truncated scopes are not an
// error; absent parts stay empty.
func ParseCredential(raw string) Credential {
	var c Credential
	parts := strings.Split(raw, "/")
	if len(parts) > 0 {
		c.AccessKeyID = parts[0]
	}
	if len(parts) > 1 {
		c.Date = parts[1]
	}
	if len(parts) > 2 {
		c.Region = parts[2]
	}
	if len(parts) > 3 {
		c.Service = parts[3]
	}
	return c
}

// Request is the decomposition of a presigned URL for inspection. Fields
// for absent or unparseable parameters stay zero-valued; Parse fails only
// when the URL carries no SigV4 parameters at all.
type Request struct {
	URL             *url.URL
	Algorithm       string
	Credential      Credential
	SignedAt        time.Time
	ExpiresIn       int64
	HasExpires      bool
	SignedHeaders   []string
	HasSignature    bool
	HasSessionToken bool

	rawDate    string
	rawExpires string
}

// Parse decomposes rawURL for inspection. Unlike Evaluate it tolerates
// missing or unparseable required parameters and records them as Problems
// instead.
func Parse(rawURL string) (*Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing URL: %w", err)
	}
	params, _ := url.ParseQuery(u.RawQuery)

	found := false
	for name := range params {
		if strings.HasPrefix(name, "X-Amz-") {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrNotPresigned
	}

	r := &Request{
		URL:             u,
		Algorithm:       params.Get(ParamAlgorithm),
		Credential:      ParseCredential(params.Get(ParamCredential)),
		HasSignature:    params.Get(ParamSignature) != "",
		HasSessionToken: params.Get(ParamSecurityToken) != "",
		rawDate:         params.Get(ParamDate),
		rawExpires:      params.Get(ParamExpires),
	}

	if r.rawDate != "" {
		if t, err := ParseAmzDate(r.rawDate); err == nil {
			r.SignedAt = t
		}
	}
	if r.rawExpires != "" {
		if n, err := strconv.ParseInt(r.rawExpires, 10, 64); err == nil {
			r.ExpiresIn = n
			r.HasExpires = true
		}
	}
	if v := params.Get(ParamSignedHeaders); v != "" {
		r.SignedHeaders = strings.Split(v, ";")
	}

	return r, nil
}

// ExpiresAt is the computed expiry instant, zero when the URL lacks a
// usable X-Amz-Date or X-Amz-Expires.
func (r *Request) ExpiresAt() time.Time {
	if r.SignedAt.IsZero() || !r.HasExpires {
		return time.Time{}
	}
	return expiryInstant(r.SignedAt, r.ExpiresIn)
}

// Problems reports advisory consistency findings: parameters a well-formed
// presigned URL would carry but this one lacks, and values outside what
// SigV4 permits. Findings never affect the expiry verdict. Returns nil
// when there is nothing to report.
func (r *Request) Problems() error {
	var errs *multierror.Error

	switch {
	case r.Algorithm == "":
		errs = multierror.Append(errs, fmt.Errorf("%s is missing", ParamAlgorithm))
	case r.Algorithm != Algorithm:
		errs = multierror.Append(errs, fmt.Errorf("unrecognized algorithm %q", r.Algorithm))
	}

	if !r.HasSignature {
		errs = multierror.Append(errs, fmt.Errorf("%s is missing", ParamSignature))
	}
	if r.Credential.AccessKeyID == "" {
		errs = multierror.Append(errs, fmt.Errorf("%s is missing", ParamCredential))
	}

	switch {
	case r.rawDate == "":
		errs = multierror.Append(errs, fmt.Errorf("%s is missing", ParamDate))
	case r.SignedAt.IsZero():
		errs = multierror.Append(errs, fmt.Errorf("%s %q did not parse", ParamDate, r.rawDate))
	case r.Credential.Date != "" && r.Credential.Date != r.SignedAt.Format(ShortTimeFormat):
		errs = multierror.Append(errs, fmt.Errorf(
			"credential scope date %s does not match %s", r.Credential.Date, ParamDate))
	}

	switch {
	case r.rawExpires == "":
		errs = multierror.Append(errs, fmt.Errorf("%s is missing", ParamExpires))
	case !r.HasExpires:
		errs = multierror.Append(errs, fmt.Errorf("%s %q is not an integer", ParamExpires, r.rawExpires))
	case r.ExpiresIn < 0:
		errs = multierror.Append(errs, fmt.Errorf("%s is negative", ParamExpires))
	case r.ExpiresIn > maxExpires:
		errs = multierror.Append(errs, fmt.Errorf(
			"%s %d exceeds the SigV4 maximum of %d seconds", ParamExpires, r.ExpiresIn, maxExpires))
	}

	return errs.ErrorOrNil()
}
