package domain

import (
	"errors"
	"fmt"
)

// MetaError represents a terminal parse or resolve failure with structured
// information. A failed call never returns a partial result alongside one.
type MetaError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Package string `json:"package,omitempty"` // Offending package name, where applicable
	Cause   error  `json:"-"`                 // Original error, not serialized
}

// Error implements the error interface
func (e *MetaError) Error() string {
	switch {
	case e.Package != "" && e.Cause != nil:
		return fmt.Sprintf("%s: %s (package %q, caused by: %v)", e.Code, e.Message, e.Package, e.Cause)
	case e.Package != "":
		return fmt.Sprintf("%s: %s (package %q)", e.Code, e.Message, e.Package)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// Unwrap returns the underlying cause for error wrapping
func (e *MetaError) Unwrap() error {
	return e.Cause
}

// Error codes for the parse and resolve failure modes
const (
	// ErrMalformedXML indicates the document is not well-formed XML
	ErrMalformedXML = "MALFORMED_XML"
	// ErrUnsafeDocument indicates a rejected XML construct (doctype,
	// directive, oversized or over-nested input) in untrusted content
	ErrUnsafeDocument = "UNSAFE_DOCUMENT"
	// ErrMissingName indicates a package entry without a usable Name
	ErrMissingName = "MISSING_NAME"
	// ErrDuplicateName indicates two package entries sharing one Name
	ErrDuplicateName = "DUPLICATE_NAME"
	// ErrUnknownPackage indicates resolution reached a name absent from the index
	ErrUnknownPackage = "UNKNOWN_PACKAGE"
)

// NewMetaError creates a new MetaError with the specified parameters
func NewMetaError(code, message, pkg string) *MetaError {
	return &MetaError{
		Code:    code,
		Message: message,
		Package: pkg,
	}
}

// NewMetaErrorWithCause creates a new MetaError wrapping an underlying cause
func NewMetaErrorWithCause(code, message, pkg string, cause error) *MetaError {
	return &MetaError{
		Code:    code,
		Message: message,
		Package: pkg,
		Cause:   cause,
	}
}

// hasCode reports whether err is (or wraps) a MetaError with the given code
func hasCode(err error, code string) bool {
	var me *MetaError
	if errors.As(err, &me) {
		return me.Code == code
	}
	return false
}

// IsMalformedXML checks if the error reports XML that is not well-formed
func IsMalformedXML(err error) bool {
	return hasCode(err, ErrMalformedXML)
}

// IsUnsafeDocument checks if the error reports a rejected unsafe XML construct,
// letting callers distinguish malicious input from merely broken input
func IsUnsafeDocument(err error) bool {
	return hasCode(err, ErrUnsafeDocument)
}

// IsMissingName checks if the error reports a package entry without a Name
func IsMissingName(err error) bool {
	return hasCode(err, ErrMissingName)
}

// IsDuplicateName checks if the error reports a repeated package Name
func IsDuplicateName(err error) bool {
	return hasCode(err, ErrDuplicateName)
}

// IsUnknownPackage checks if the error reports a name absent from the index
func IsUnknownPackage(err error) bool {
	return hasCode(err, ErrUnknownPackage)
}
