package review

import (
	"errors"
	"fmt"
)

// ErrMissingGenerationModel is returned when no generation model could be
// resolved from the request or its authorship metadata.
var ErrMissingGenerationModel = errors.New(
	"no generation model resolvable: supply one explicitly or provide authorship metadata")

// MalformedResponseError reports a reviewer response that failed parsing or
// schema validation. Malformed responses are never coerced into results;
// the raw text is preserved for the caller.
type MalformedResponseError struct {
	Reason string
	Raw    string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed review response: %s", e.Reason)
}

func malformed(raw, format string, a ...any) error {
	return &MalformedResponseError{Reason: fmt.Sprintf(format, a...), Raw: raw}
}
