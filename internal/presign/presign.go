// Package presign parses and evaluates SigV4 query-presigned URLs without
// touching the network. The expiry verdict depends only on X-Amz-Date,
// X-Amz-Expires and the clock sample it is given; signatures are never
// verified.
package presign

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// SigV4 query parameter names as they appear in presigned URLs.
// Lookups are case-sensitive.
const (
	ParamAlgorithm     = "X-Amz-Algorithm"
	ParamCredential    = "X-Amz-Credential"
	ParamDate          = "X-Amz-Date"
	ParamExpires       = "X-Amz-Expires"
	ParamSignedHeaders = "X-Amz-SignedHeaders"
	ParamSignature     = "X-Amz-Signature"
	ParamSecurityToken = "X-Amz-Security-Token"
)

const (
	// TimeFormat is the layout of X-Amz-Date timestamps.
	TimeFormat = "20060102T150405Z"

	// ShortTimeFormat is the date-only layout used inside credential scopes.
	ShortTimeFormat = "20060102"

	// Algorithm is the only signing algorithm query-presigned URLs carry.
	Algorithm = "AWS4-HMAC-SHA256"

	// maxExpires is the ceiling SigV4 places on X-Amz-Expires, 7 days.
	maxExpires = 604800
)

// Saturation bounds for expiry sums that overflow int64 seconds.
// time.Unix stays within its representable range at either bound.
const (
	maxUnixSec = int64(1) << 62
	minUnixSec = -(int64(1) << 62)
)

// ErrParamsNotFound reports a URL with no usable X-Amz-Date or
// X-Amz-Expires parameter. Unparseable URLs land here too, since they
// yield no parameters at all.
var ErrParamsNotFound = errors.New("X-Amz-Date or X-Amz-Expires not found")

// ErrNotPresigned reports a URL carrying no SigV4 query parameters at all.
var ErrNotPresigned = errors.New("no SigV4 query parameters in URL")

// ParseError reports an X-Amz-Date or X-Amz-Expires value that did not
// parse. Unwrap exposes the parser's own error.
type ParseError struct {
	Param string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s %q: %v", e.Param, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseAmzDate parses a SigV4 timestamp such as 20260823T101500Z.
// The result is always in UTC.
func ParseAmzDate(s string) (time.Time, error) {
	return time.Parse(TimeFormat, s)
}

// Evaluation is the outcome of checking a presigned URL against a single
// clock sample.
type Evaluation struct {
	SignedAt  time.Time // X-Amz-Date
	ExpiresAt time.Time // SignedAt plus X-Amz-Expires seconds
	CheckedAt time.Time // the clock sample the verdict is based on
	ExpiresIn int64     // X-Amz-Expires, in seconds
}

// Expired reports whether the URL had expired at CheckedAt. A URL is valid
// strictly before ExpiresAt; at the instant itself it is already expired.
func (e Evaluation) Expired() bool {
	return !e.CheckedAt.Before(e.ExpiresAt)
}

// Remaining is the time left until expiry at CheckedAt, negative once past.
func (e Evaluation) Remaining() time.Duration {
	return e.ExpiresAt.Sub(e.CheckedAt)
}

// Window is the total validity lifetime the URL was signed with.
func (e Evaluation) Window() time.Duration {
	return e.ExpiresAt.Sub(e.SignedAt)
}

// Evaluate determines the expiry of a presigned URL at the instant now.
// Only X-Amz-Date and X-Amz-Expires matter; everything else in the URL,
// the signature included, is ignored. Negative expiry values are accepted
// and produce an instant in the past. The lifetime is added in whole
// seconds, so values beyond the time.Duration range keep their calendar
// meaning.
func Evaluate(rawURL string, now time.Time) (Evaluation, error) {
	params := queryParams(rawURL)
	dateVal := params.Get(ParamDate)
	expiresVal := params.Get(ParamExpires)
	if dateVal == "" || expiresVal == "" {
		return Evaluation{}, ErrParamsNotFound
	}

	signedAt, err := ParseAmzDate(dateVal)
	if err != nil {
		return Evaluation{}, &ParseError{Param: ParamDate, Value: dateVal, Err: err}
	}

	seconds, err := strconv.ParseInt(expiresVal, 10, 64)
	if err != nil {
		return Evaluation{}, &ParseError{Param: ParamExpires, Value: expiresVal, Err: err}
	}

	return Evaluation{
		SignedAt:  signedAt,
		ExpiresAt: expiryInstant(signedAt, seconds),
		CheckedAt: now.UTC(),
		ExpiresIn: seconds,
	}, nil
}

// expiryInstant is signedAt plus seconds. The sum happens in Unix seconds
// rather than time.Duration, whose int64 nanoseconds overflow past ~292
// years; sums that overflow int64 seconds saturate instead of wrapping.
func expiryInstant(signedAt time.Time, seconds int64) time.Time {
	sec := signedAt.Unix()
	sum := sec + seconds
	switch {
	case seconds > 0 && sum < sec:
		sum = maxUnixSec
	case seconds < 0 && sum > sec:
		sum = minUnixSec
	}
	return time.Unix(sum, int64(signedAt.Nanosecond())).UTC()
}

// queryParams extracts the query of rawURL leniently: an unparseable URL
// yields no parameters, a partially decodable query keeps the pairs that
// did decode, and repeated names keep their first value.
func queryParams(rawURL string) url.Values {
	u, err := url.Parse(rawURL)
	if err != nil {
		return url.Values{}
	}
	params, _ := url.ParseQuery(u.RawQuery)
	return params
}
