package aws

import (
	"errors"

	"github.com/aws/smithy-go"
)

// ErrorCode extracts the AWS API error code from err, or returns an empty
// string when err carries none. Wrapped errors are searched.
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
