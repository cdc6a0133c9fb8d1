package batch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ryanm101/titlematch/catalog"
	"github.com/ryanm101/titlematch/provider"
)

// Machine-readable error codes for the batch envelope.
const (
	CodeValidation          = "validation_error"
	CodeProviderUnavailable = "provider_unavailable"
	CodeCatalogQueryFailed  = "catalog_query_failed"
	CodeInternal            = "internal_error"
)

// ErrEmptyBatch and ErrBatchTooLarge reject out-of-bounds id lists before
// any I/O happens.
var (
	ErrEmptyBatch    = errors.New("batch contains no ids")
	ErrBatchTooLarge = fmt.Errorf("batch exceeds %d ids", MaxBatchSize)
)

// ValidationError rejects a whole batch because one or more ids are
// malformed. The pipeline never silently drops bad ids.
type ValidationError struct {
	Platform     provider.Platform
	MalformedIDs []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("malformed %s ids: %s", e.Platform, strings.Join(e.MalformedIDs, ", "))
}

// ErrorCode classifies err into one of the envelope codes. Only errors the
// pipeline itself can produce are classified; other surfaces map their own
// errors before building an envelope.
func ErrorCode(err error) string {
	var ve *ValidationError
	var upe *provider.UnknownPlatformError
	switch {
	case errors.As(err, &ve),
		errors.As(err, &upe),
		errors.Is(err, ErrEmptyBatch),
		errors.Is(err, ErrBatchTooLarge):
		return CodeValidation
	case errors.Is(err, provider.ErrProviderUnavailable):
		return CodeProviderUnavailable
	case errors.Is(err, catalog.ErrQueryFailed):
		return CodeCatalogQueryFailed
	}
	return CodeInternal
}

// ErrorResponse builds the failure envelope for err.
func ErrorResponse(err error) *Response {
	resp := &Response{
		Success: false,
		Code:    ErrorCode(err),
		Error:   err.Error(),
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		resp.MalformedIDs = ve.MalformedIDs
	}
	return resp
}
