package eks

import (
	"encoding/base64"
	"net/url"
	"strings"
)

// Wrap encodes a presigned STS URL as an EKS bearer token.
func Wrap(presignedURL string) string {
	return tokenPrefix + base64.RawURLEncoding.EncodeToString([]byte(presignedURL))
}

// IsToken reports whether s carries the k8s-aws-v1. token prefix.
func IsToken(s string) bool {
	return strings.HasPrefix(s, tokenPrefix)
}

// Unwrap decodes an EKS bearer token back to the presigned STS URL it
// encodes. Anything that is not a well-formed token decoding to an http(s)
// URL with a query string comes back unchanged, so callers can pass every
// argument through it.
func Unwrap(s string) string {
	encoded, ok := strings.CutPrefix(s, tokenPrefix)
	if !ok {
		return s
	}
	decoded, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return s
	}
	u, err := url.Parse(string(decoded))
	if err != nil {
		return s
	}
	if (u.Scheme != "https" && u.Scheme != "http") || u.RawQuery == "" {
		return s
	}
	return string(decoded)
}
