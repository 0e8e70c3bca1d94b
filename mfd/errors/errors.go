package errors

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports a submission payload that does not conform to the
// claim schema. Fields maps each offending field name to the reason it was
// rejected.
type ValidationError struct {
	Msg    string
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("Validation Error. Msg: %s", e.Msg)
	}

	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	details := make([]string, 0, len(names))
	for _, name := range names {
		details = append(details, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return fmt.Sprintf("Validation Error. Msg: %s, Fields: %s", e.Msg, strings.Join(details, "; "))
}

// ModelArtifactError reports that the scoring model artifact could not be
// located, parsed, or validated. The failure is scoped to a single request.
type ModelArtifactError struct {
	Err  error
	Path string
}

func (e *ModelArtifactError) Error() string {
	return fmt.Sprintf("scoring model artifact %s unusable: %s", e.Path, e.Err)
}

func (e *ModelArtifactError) Unwrap() error {
	return e.Err
}

// PersistenceError reports that the claim store could not complete a write
// or read. No partial state is left behind.
type PersistenceError struct {
	Err error
	Msg string
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("Persistence Error. Msg: %s, Err: %s", e.Msg, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
