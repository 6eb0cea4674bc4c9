// Package eks mints and decodes EKS bearer tokens. A token is a presigned
// STS GetCallerIdentity URL wrapped in the k8s-aws-v1. encoding used by
// kubectl and aws-iam-authenticator.
package eks

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

const (
	// tokenPrefix is the required prefix for EKS bearer tokens.
	tokenPrefix = "k8s-aws-v1."

	// tokenExpiry is how long the cluster honors a minted token.
	tokenExpiry = 15 * time.Minute

	// presignURLExpiry is the number of seconds the presigned URL itself is valid.
	presignURLExpiry = "60"

	// clusterIDHeader is the header that identifies the cluster for token auth.
	clusterIDHeader = "x-k8s-aws-id"
)

// Token is a minted EKS bearer token together with the presigned STS URL
// it encodes.
type Token struct {
	Value     string
	URL       string
	ExpiresAt time.Time
}

// Mint creates a presigned STS GetCallerIdentity URL and encodes it as an
// EKS bearer token. This implements the same mechanism as `aws eks get-token`.
//
// Uses a custom presigner to inject headers directly into the HTTP request
// before signing, working around aws-sdk-go-v2#1922 where smithyhttp.AddHeaderValue
// doesn't produce valid signatures for EKS token auth.
func Mint(ctx context.Context, cfg aws.Config, clusterName string) (Token, error) {
	stsClient := sts.NewFromConfig(cfg)
	presignClient := sts.NewPresignClient(stsClient)

	headers := map[string]string{
		clusterIDHeader: clusterName,
		"X-Amz-Expires": presignURLExpiry,
	}

	presigned, err := presignClient.PresignGetCallerIdentity(ctx, &sts.GetCallerIdentityInput{},
		func(po *sts.PresignOptions) {
			po.Presigner = &eksPresigner{base: po.Presigner, headers: headers}
		},
	)
	if err != nil {
		return Token{}, fmt.Errorf("presigning GetCallerIdentity: %w", err)
	}

	return Token{
		Value:     Wrap(presigned.URL),
		URL:       presigned.URL,
		ExpiresAt: time.Now().Add(tokenExpiry),
	}, nil
}

// eksPresigner wraps sts.HTTPPresignerV4 to inject custom headers (x-k8s-aws-id,
// X-Amz-Expires) into the HTTP request before signature computation.
type eksPresigner struct {
	base    sts.HTTPPresignerV4
	headers map[string]string
}

func (p *eksPresigner) PresignHTTP(
	ctx context.Context, credentials aws.Credentials, r *http.Request,
	payloadHash string, service string, region string, signingTime time.Time,
	optFns ...func(*v4.SignerOptions),
) (string, http.Header, error) {
	for k, v := range p.headers {
		r.Header.Set(k, v)
	}
	return p.base.PresignHTTP(ctx, credentials, r, payloadHash, service, region, signingTime, optFns...)
}
