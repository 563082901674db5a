package errors

import (
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal       ErrorCode = "COMMON_001"
	ErrCodeBadRequest     ErrorCode = "COMMON_002"
	ErrCodeNotFound       ErrorCode = "COMMON_003"
	ErrCodeConflict       ErrorCode = "COMMON_004"
	ErrCodeValidation     ErrorCode = "COMMON_005"
	ErrCodeSerialization  ErrorCode = "COMMON_006"
	ErrCodeNotImplemented ErrorCode = "COMMON_007"
)

// Aliases kept for call-site readability
const (
	CodeInternal       = ErrCodeInternal
	CodeInvalidParam   = ErrCodeBadRequest
	CodeNotFound       = ErrCodeNotFound
	CodeConflict       = ErrCodeConflict
	CodeValidation     = ErrCodeValidation
	CodeNotImplemented = ErrCodeNotImplemented
	CodeOK             = ErrorCode("OK")
	CodeUnknown        = ErrorCode("UNKNOWN")

	// Domain specific aliases
	CodeTermNotFound     = ErrCodeTermNotFound
	CodeAnnotationFormat = ErrCodeAnnotationFormat
	CodeInsufficientData = ErrCodeClusterInsufficientData
)

// Statistics Module Error Codes
const (
	ErrCodeStatsInvalidPValue   ErrorCode = "STAT_001"
	ErrCodeStatsUnsortedPValues ErrorCode = "STAT_002"
)

// Enrichment Module Error Codes
const (
	ErrCodeTermNotFound        ErrorCode = "ENR_001"
	ErrCodeBackgroundEmpty     ErrorCode = "ENR_002"
	ErrCodeResolverUnavailable ErrorCode = "ENR_003"
	ErrCodeQueryEmpty          ErrorCode = "ENR_004"
)

// Clustering Module Error Codes
const (
	ErrCodeClusterInsufficientData ErrorCode = "CLU_001"
	ErrCodeClusterMatrixShape      ErrorCode = "CLU_002"
	ErrCodeClusterIndexOutOfRange  ErrorCode = "CLU_003"
)

// Annotation Data Error Codes
const (
	ErrCodeAnnotationFormat    ErrorCode = "DAT_001"
	ErrCodeGeneListFormat      ErrorCode = "DAT_002"
	ErrCodeAliasTableFormat    ErrorCode = "DAT_003"
	ErrCodePathwayTableFormat  ErrorCode = "DAT_004"
	ErrCodeAnnotationSourceIO  ErrorCode = "DAT_005"
	ErrCodeExportWriteFailed   ErrorCode = "DAT_006"
	ErrCodeAnnotationDuplicate ErrorCode = "DAT_007"
)

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:       "internal error",
	ErrCodeBadRequest:     "bad request",
	ErrCodeNotFound:       "resource not found",
	ErrCodeConflict:       "resource conflict",
	ErrCodeValidation:     "validation failed",
	ErrCodeSerialization:  "serialization failed",
	ErrCodeNotImplemented: "not implemented",

	ErrCodeStatsInvalidPValue:   "p-value outside the [0, 1] interval",
	ErrCodeStatsUnsortedPValues: "p-value slice is not sorted ascending",

	ErrCodeTermNotFound:        "annotation term not found",
	ErrCodeBackgroundEmpty:     "background annotation set is empty",
	ErrCodeResolverUnavailable: "identifier resolver not configured",
	ErrCodeQueryEmpty:          "query gene list is empty",

	ErrCodeClusterInsufficientData: "not enough rows to build a dendrogram",
	ErrCodeClusterMatrixShape:      "distance matrix rows and labels disagree",
	ErrCodeClusterIndexOutOfRange:  "leaf index outside matrix bounds",

	ErrCodeAnnotationFormat:    "malformed annotation file",
	ErrCodeGeneListFormat:      "malformed gene list",
	ErrCodeAliasTableFormat:    "malformed gene alias table",
	ErrCodePathwayTableFormat:  "malformed pathway table",
	ErrCodeAnnotationSourceIO:  "failed to read annotation source",
	ErrCodeExportWriteFailed:   "failed to write export file",
	ErrCodeAnnotationDuplicate: "duplicate annotation entry",
}

// inputErrorCodes marks codes whose failures are caused by caller input rather
// than by the engine itself. Used by CLI exit-code mapping and metric labels.
var inputErrorCodes = map[ErrorCode]struct{}{
	ErrCodeBadRequest:         {},
	ErrCodeValidation:         {},
	ErrCodeQueryEmpty:         {},
	ErrCodeAnnotationFormat:   {},
	ErrCodeGeneListFormat:     {},
	ErrCodeAliasTableFormat:   {},
	ErrCodePathwayTableFormat: {},
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsInputError reports whether the code classifies a caller-input failure,
// as opposed to an internal engine failure.
func IsInputError(code ErrorCode) bool {
	_, ok := inputErrorCodes[code]
	return ok
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
