// Package analysis provides the contract between the framework and concrete
// quality-control analyses: requirement declaration and binding, cooperative
// validation, the Run soft-failure protocol and the per-level analysis
// registries.
//
// A concrete analysis embeds *Core, declares its requirements in its
// constructor, and implements Run. An instance is execution-scoped: it is
// created, bound, run once and discarded. Orchestration should go through
// Execute, which enforces the unmet-requirements check before Run.
package analysis

import (
	"fmt"

	"github.com/scopemetrics/scopemetrics/schema"
)

// State tracks where an analysis instance is in its lifecycle.
type State int

const (
	// StateConstructed means requirements are declared and nothing is bound.
	StateConstructed State = iota
	// StateBound means at least one value has been bound.
	StateBound
	// StateValidated means validation has been attempted.
	StateValidated
	// StateExecuted means Run was attempted and reported success. Terminal.
	StateExecuted
	// StateFailed means Run was attempted and reported failure. Terminal.
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StateBound:
		return "bound"
	case StateValidated:
		return "validated"
	case StateExecuted:
		return "executed"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Analysis is the contract a concrete analysis satisfies. Embedding *Core
// provides everything except Run.
type Analysis interface {
	// Input returns the instance's requirement set.
	Input() *RequirementSet

	// Bind associates a caller-supplied value with a declared requirement.
	Bind(name string, v any) error

	// ValidateRequirements reports whether all non-optional requirements
	// are satisfied. It does not block execution; Run re-checks.
	ValidateRequirements() bool

	// ListUnmetRequirements returns every hard-unmet requirement name.
	ListUnmetRequirements() []string

	// Results returns the artifacts appended so far, in append order.
	Results() []schema.Artifact

	// Run executes the analysis. It returns false when the analysis could
	// not proceed (unmet requirements, unusable input); this is a reported
	// outcome for the caller to branch on, not an error. Programming and
	// data errors still surface as panics or through the conversion layer.
	Run() bool

	core() *Core
}

// Core carries the per-instance state shared by all analyses: the
// requirement set, the output sequence and the lifecycle state. Concrete
// analyses embed *Core by pointer.
type Core struct {
	input             *RequirementSet
	outputDescription string
	output            []schema.Artifact
	state             State
}

// NewCore creates the shared core for a concrete analysis. The description
// documents what the analysis's output contains.
func NewCore(outputDescription string) *Core {
	return &Core{
		input:             NewRequirementSet(),
		outputDescription: outputDescription,
		state:             StateConstructed,
	}
}

func (c *Core) core() *Core { return c }

// Input returns the requirement set.
func (c *Core) Input() *RequirementSet { return c.input }

// OutputDescription returns the constructor-supplied output description.
func (c *Core) OutputDescription() string { return c.outputDescription }

// State returns the current lifecycle state.
func (c *Core) State() State { return c.state }

// AddDataRequirement declares a data requirement on the instance.
func (c *Core) AddDataRequirement(name, description string, dt DataType, opts ...Option) error {
	return c.input.AddDataRequirement(name, description, dt, opts...)
}

// AddMetadataRequirement declares a metadata requirement on the instance.
func (c *Core) AddMetadataRequirement(name, description string, dt DataType, opts ...Option) error {
	return c.input.AddMetadataRequirement(name, description, dt, opts...)
}

// Bind associates a value with a declared requirement. Last bind wins.
func (c *Core) Bind(name string, v any) error {
	if err := c.input.Bind(name, v); err != nil {
		return err
	}
	if c.state == StateConstructed {
		c.state = StateBound
	}
	return nil
}

// ValidateRequirements reports whether every non-optional requirement has a
// binding or default. Validation is cooperative: a false result does not
// prevent Run from being called, but Run re-checks and refuses to proceed.
func (c *Core) ValidateRequirements() bool {
	if c.state == StateConstructed || c.state == StateBound {
		c.state = StateValidated
	}
	return len(c.input.ListUnmetRequirements()) == 0
}

// ListUnmetRequirements returns every hard-unmet requirement name across
// both namespaces.
func (c *Core) ListUnmetRequirements() []string {
	return c.input.ListUnmetRequirements()
}

// DataValue returns a data requirement's bound or default value.
func (c *Core) DataValue(name string) (any, error) {
	return c.input.DataValue(name)
}

// MetadataValue returns a metadata requirement's bound or default value.
func (c *Core) MetadataValue(name string) (any, error) {
	return c.input.MetadataValue(name)
}

// AppendOutput appends an artifact to the instance's output sequence. The
// sequence is monotonic: artifacts are never removed, replaced or reordered
// within a run.
func (c *Core) AppendOutput(a schema.Artifact) {
	c.output = append(c.output, a)
}

// Results returns the artifacts appended so far, in append order. Ownership
// transfers to the caller once the run has finished.
func (c *Core) Results() []schema.Artifact {
	return c.output
}

// Execute runs a through its remaining lifecycle. It performs the mandatory
// unmet-requirements check first: when any requirement is unmet it returns
// the unmet names and false without calling Run. Otherwise it calls Run and
// records the terminal state.
func Execute(a Analysis) (unmet []string, ok bool) {
	c := a.core()
	if unmet = c.ListUnmetRequirements(); len(unmet) > 0 {
		c.state = StateFailed
		return unmet, false
	}
	ok = a.Run()
	if ok {
		c.state = StateExecuted
	} else {
		c.state = StateFailed
	}
	return nil, ok
}
