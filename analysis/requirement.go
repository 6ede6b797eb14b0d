package analysis

import "fmt"

// Kind distinguishes the two requirement namespaces of an analysis.
type Kind int

const (
	// KindData marks requirements carrying bulk numeric payloads.
	KindData Kind = iota
	// KindMetadata marks requirements carrying scalars or small structured
	// configuration values.
	KindMetadata
)

// String returns the namespace name.
func (k Kind) String() string {
	switch k {
	case KindData:
		return "data"
	case KindMetadata:
		return "metadata"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Requirement is one named, typed input an analysis declares it needs.
type Requirement struct {
	Name        string
	Description string
	Type        DataType
	Units       string
	Optional    bool

	// Default is the value used when no binding is supplied. Meaningful
	// only when HasDefault is set; a default implies Optional.
	Default    any
	HasDefault bool
}

// Option configures a requirement at declaration time.
type Option func(*Requirement)

// WithUnits records the physical units of the requirement's value.
func WithUnits(units string) Option {
	return func(r *Requirement) { r.Units = units }
}

// Optional marks the requirement as optional: execution may proceed without
// a binding.
func Optional() Option {
	return func(r *Requirement) { r.Optional = true }
}

// WithDefault supplies a default value used when no binding is made.
// A default implies the requirement is optional.
func WithDefault(v any) Option {
	return func(r *Requirement) {
		r.Default = v
		r.HasDefault = true
		r.Optional = true
	}
}

// namespace holds one kind's declarations and bindings in declaration order.
type namespace struct {
	kind  Kind
	order []string
	reqs  map[string]*Requirement
	bound map[string]any
}

func newNamespace(kind Kind) *namespace {
	return &namespace{
		kind:  kind,
		reqs:  make(map[string]*Requirement),
		bound: make(map[string]any),
	}
}

func (ns *namespace) add(name, description string, dt DataType, opts []Option) error {
	if _, dup := ns.reqs[name]; dup {
		return &DuplicateRequirementError{Kind: ns.kind, Name: name}
	}
	r := &Requirement{Name: name, Description: description, Type: dt}
	for _, opt := range opts {
		opt(r)
	}
	if r.HasDefault {
		if err := dt.Check(r.Default); err != nil {
			return &BindTypeError{Name: name, Type: dt, Err: err}
		}
	}
	ns.order = append(ns.order, name)
	ns.reqs[name] = r
	return nil
}

func (ns *namespace) bind(name string, v any) (bool, error) {
	r, ok := ns.reqs[name]
	if !ok {
		return false, nil
	}
	if err := r.Type.Check(v); err != nil {
		return true, &BindTypeError{Name: name, Type: r.Type, Err: err}
	}
	ns.bound[name] = v
	return true, nil
}

func (ns *namespace) value(name string) (any, error) {
	r, ok := ns.reqs[name]
	if !ok {
		return nil, &UnknownRequirementError{Name: name}
	}
	if v, bound := ns.bound[name]; bound {
		return v, nil
	}
	if r.HasDefault {
		return r.Default, nil
	}
	return nil, &RequirementUnmetError{Kind: ns.kind, Name: name}
}

func (ns *namespace) unmet() []string {
	var names []string
	for _, name := range ns.order {
		r := ns.reqs[name]
		if r.Optional || r.HasDefault {
			continue
		}
		if _, bound := ns.bound[name]; !bound {
			names = append(names, name)
		}
	}
	return names
}

func (ns *namespace) list() []Requirement {
	out := make([]Requirement, 0, len(ns.order))
	for _, name := range ns.order {
		out = append(out, *ns.reqs[name])
	}
	return out
}

// RequirementSet holds an analysis instance's declared requirements and the
// caller-bound values, split into data and metadata namespaces. It is owned
// exclusively by one analysis instance and is not safe for concurrent use.
type RequirementSet struct {
	data     *namespace
	metadata *namespace
}

// NewRequirementSet creates an empty requirement set.
func NewRequirementSet() *RequirementSet {
	return &RequirementSet{
		data:     newNamespace(KindData),
		metadata: newNamespace(KindMetadata),
	}
}

// AddDataRequirement declares a data requirement. The name must be unique
// within the data namespace.
func (s *RequirementSet) AddDataRequirement(name, description string, dt DataType, opts ...Option) error {
	return s.data.add(name, description, dt, opts)
}

// AddMetadataRequirement declares a metadata requirement. The name must be
// unique within the metadata namespace.
func (s *RequirementSet) AddMetadataRequirement(name, description string, dt DataType, opts ...Option) error {
	return s.metadata.add(name, description, dt, opts)
}

// Bind associates a value with a declared requirement. The name is resolved
// across both namespaces with data taking precedence; by convention the two
// namespaces should not share names. Rebinding a name overwrites the
// previous value. The value is checked against the declared type.
func (s *RequirementSet) Bind(name string, v any) error {
	if found, err := s.data.bind(name, v); found {
		return err
	}
	if found, err := s.metadata.bind(name, v); found {
		return err
	}
	return &UnknownRequirementError{Name: name}
}

// ListUnmetRequirements returns the names of every non-optional requirement
// with neither a binding nor a default, data namespace first, each in
// declaration order.
func (s *RequirementSet) ListUnmetRequirements() []string {
	return append(s.data.unmet(), s.metadata.unmet()...)
}

// DataValue returns the bound value for a data requirement, falling back to
// its default.
func (s *RequirementSet) DataValue(name string) (any, error) {
	return s.data.value(name)
}

// MetadataValue returns the bound value for a metadata requirement, falling
// back to its default.
func (s *RequirementSet) MetadataValue(name string) (any, error) {
	return s.metadata.value(name)
}

// DataRequirements returns the declared data requirements in declaration
// order.
func (s *RequirementSet) DataRequirements() []Requirement {
	return s.data.list()
}

// MetadataRequirements returns the declared metadata requirements in
// declaration order.
func (s *RequirementSet) MetadataRequirements() []Requirement {
	return s.metadata.list()
}
