package core

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
)

// Parameter describes a single tunable value exposed by a simulation.
type Parameter struct {
	Key         string
	Label       string
	Type        ParamType
	Value       string
	Description string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name   string
	Params []Parameter
}

// ParameterSnapshot captures the current set of tunables exposed by a sim.
// Drivers persist it alongside run output so results stay attributable to
// the exact parameterization that produced them.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// FloatParameterSetter allows drivers to update floating point parameters
// by key.
type FloatParameterSetter interface {
	SetFloatParameter(key string, value float64) bool
}
