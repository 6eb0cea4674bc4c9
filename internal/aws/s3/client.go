package s3

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
)

// PresignAPI is the slice of the S3 presign client used here. Presigning
// is pure signature computation; none of these calls reach the network.
type PresignAPI interface {
	PresignGetObject(ctx context.Context, params *awss3.GetObjectInput, optFns ...func(*awss3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignPutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type Client struct {
	api PresignAPI
}

func NewClient(api PresignAPI) *Client {
	return &Client{api: api}
}

// NewClientFromConfig builds a Client backed by a real S3 presign client.
func NewClientFromConfig(cfg aws.Config) *Client {
	return NewClient(awss3.NewPresignClient(awss3.NewFromConfig(cfg)))
}

// PresignGet returns a presigned GET URL for the object, valid for expires.
func (c *Client) PresignGet(ctx context.Context, bucket, key string, expires time.Duration) (string, error) {
	out, err := c.api.PresignGetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, awss3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("PresignGetObject: %w", err)
	}
	return out.URL, nil
}

// PresignPut returns a presigned PUT URL for the object, valid for expires.
func (c *Client) PresignPut(ctx context.Context, bucket, key string, expires time.Duration) (string, error) {
	out, err := c.api.PresignPutObject(ctx, &awss3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, awss3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("PresignPutObject: %w", err)
	}
	return out.URL, nil
}

// ParseS3URI splits an s3://bucket/key URI into its bucket and key.
func ParseS3URI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", fmt.Errorf("not an s3:// URI: %s", uri)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("expected s3://bucket/key, got %s", uri)
	}
	return bucket, key, nil
}
