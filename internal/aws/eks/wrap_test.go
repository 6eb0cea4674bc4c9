package eks

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestWrapUnwrap_RoundTrip(t *testing.T) {
	signed := "https://sts.us-east-1.amazonaws.com/?Action=GetCallerIdentity&X-Amz-Expires=60"

	token := Wrap(signed)
	if !strings.HasPrefix(token, tokenPrefix) {
		t.Errorf("token = %q, want %q prefix", token, tokenPrefix)
	}
	if strings.Contains(token, "=") {
		t.Errorf("token %q contains padding, want raw URL encoding", token)
	}

	if got := Unwrap(token); got != signed {
		t.Errorf("Unwrap(Wrap(url)) = %q, want %q", got, signed)
	}
}

func TestIsToken(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"k8s-aws-v1.abc123", true},
		{"k8s-aws-v1.", true},
		{"https://sts.amazonaws.com/?Action=GetCallerIdentity", false},
		{"not-a-token", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsToken(tt.s); got != tt.want {
			t.Errorf("IsToken(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

// Inputs that are not decodable tokens must come back byte for byte, since
// Unwrap sits in front of every URL argument.
func TestUnwrap_PassesThroughNonTokens(t *testing.T) {
	tests := []struct {
		name string
		s    string
	}{
		{"plain URL", "https://example.com/?X-Amz-Expires=60"},
		{"empty", ""},
		{"no prefix", "aGVsbG8"},
		{"bad base64", tokenPrefix + "!!!not-base64!!!"},
		{"decodes to non-URL text", tokenPrefix + base64.RawURLEncoding.EncodeToString([]byte("just some words"))},
		{"decodes to URL without query", tokenPrefix + base64.RawURLEncoding.EncodeToString([]byte("https://example.com/path"))},
		{"decodes to non-http scheme", tokenPrefix + base64.RawURLEncoding.EncodeToString([]byte("ftp://example.com/?x=1"))},
		{"decodes to control bytes", tokenPrefix + base64.RawURLEncoding.EncodeToString([]byte("\x00\x01\x02"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Unwrap(tt.s); got != tt.s {
				t.Errorf("Unwrap(%q) = %q, want input unchanged", tt.s, got)
			}
		})
	}
}
