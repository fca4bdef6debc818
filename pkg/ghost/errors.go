package ghost

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrMalformedRecord      = errors.New("malformed record")
	ErrEmptyRecording       = errors.New("empty recording: at least one frame is required")
	ErrInputSectionOverflow = errors.New("input section overflow")
	ErrInvalidMetadata      = errors.New("invalid race metadata")
	ErrIO                   = errors.New("ghost write failed")
)

// MalformedRecordError reports a recording line that failed validation.
type MalformedRecordError struct {
	Line   int
	Reason string
	Fields []string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("line %d: %s (fields: %s)", e.Line, e.Reason, strings.Join(e.Fields, ","))
}

func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// InputSectionOverflowError reports compressed inputs that do not fit the
// fixed input section.
type InputSectionOverflowError struct {
	Size     int
	Capacity int
}

func (e *InputSectionOverflowError) Error() string {
	return fmt.Sprintf("input section overflow: %d bytes exceeds capacity of %d bytes", e.Size, e.Capacity)
}

func (e *InputSectionOverflowError) Is(target error) bool {
	return target == ErrInputSectionOverflow
}

// InvalidMetadataError reports a metadata id that does not fit its header field.
type InvalidMetadataError struct {
	Field string
	Value int
	Max   int
}

func (e *InvalidMetadataError) Error() string {
	return fmt.Sprintf("invalid race metadata: %s=%d out of range [0,%d]", e.Field, e.Value, e.Max)
}

func (e *InvalidMetadataError) Is(target error) bool {
	return target == ErrInvalidMetadata
}

// WriteError reports a failure persisting a ghost file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write ghost %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func (e *WriteError) Is(target error) bool {
	return target == ErrIO
}

// Kind classifies err into one of the error kinds, for metric labels and
// API responses. A nil error is "ok".
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrMalformedRecord):
		return "malformed_record"
	case errors.Is(err, ErrEmptyRecording):
		return "empty_recording"
	case errors.Is(err, ErrInputSectionOverflow):
		return "input_section_overflow"
	case errors.Is(err, ErrInvalidMetadata):
		return "invalid_metadata"
	case errors.Is(err, ErrIO):
		return "io_failure"
	default:
		return "internal"
	}
}
