package analysis

import (
	"errors"
	"fmt"
)

// ErrUnknownAnalysis is returned by Registry.New for an unregistered name.
var ErrUnknownAnalysis = errors.New("unknown analysis")

// DuplicateRequirementError reports a requirement name declared twice in
// the same namespace.
type DuplicateRequirementError struct {
	Kind Kind
	Name string
}

func (e *DuplicateRequirementError) Error() string {
	return fmt.Sprintf("%s requirement %q already declared", e.Kind, e.Name)
}

// UnknownRequirementError reports a bind or accessor call that referenced a
// requirement name that was never declared. This is a programming error in
// the caller, not a soft failure.
type UnknownRequirementError struct {
	Name string
}

func (e *UnknownRequirementError) Error() string {
	return fmt.Sprintf("requirement %q was never declared", e.Name)
}

// RequirementUnmetError reports a value access for a requirement with
// neither a bound value nor a default.
type RequirementUnmetError struct {
	Kind Kind
	Name string
}

func (e *RequirementUnmetError) Error() string {
	return fmt.Sprintf("%s requirement %q has no bound value and no default", e.Kind, e.Name)
}

// BindTypeError reports a bound value that does not match the requirement's
// declared data type.
type BindTypeError struct {
	Name string
	Type DataType
	Err  error
}

func (e *BindTypeError) Error() string {
	return fmt.Sprintf("value for requirement %q does not match declared type %s: %v", e.Name, e.Type, e.Err)
}

func (e *BindTypeError) Unwrap() error { return e.Err }

// DuplicateAnalysisError reports a second registration under an existing
// name in the same registry.
type DuplicateAnalysisError struct {
	Name string
}

func (e *DuplicateAnalysisError) Error() string {
	return fmt.Sprintf("analysis %q already registered", e.Name)
}
