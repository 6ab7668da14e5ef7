// Package core defines the domain model and business logic for carve,
// independent of any geometry host: the Structure/Workspace/Engine ports,
// margin decomposition, resolution guarding, temporary lifecycle and the
// composite operation Service.
package core

// Kind classifies a structure within a workspace. The control and avoidance
// kinds are neutral: temporaries created by composite operations carry one of
// them so they are never mistaken for clinical structures.
type Kind string

const (
	KindOrgan     Kind = "ORGAN"
	KindTarget    Kind = "PTV"
	KindExternal  Kind = "EXTERNAL"
	KindControl   Kind = "CONTROL"
	KindAvoidance Kind = "AVOIDANCE"
)

// Volume is an opaque geometric region value. Volumes are produced and
// combined exclusively by the Engine; the core never inspects their contents.
// Engine operations return new Volumes rather than mutating in place.
type Volume interface{}

// Orientation selects whether an asymmetric margin grows (Outer) or shrinks
// (Inner) a volume. Direction is carried here, never by per-axis signs.
type Orientation int

const (
	Outer Orientation = iota
	Inner
)

func (o Orientation) String() string {
	if o == Inner {
		return "inner"
	}
	return "outer"
}

// Axis indices into AxisMargins.
const (
	NegX = iota
	NegY
	NegZ
	PosX
	PosY
	PosZ
)

// AxisMargins holds six non-negative margin distances, one per axis
// direction, indexed by NegX..PosZ.
type AxisMargins [6]float64

// MaxIDLength is the longest identifier a workspace accepts.
const MaxIDLength = 16

// StepLimit is the largest distance, in millimeters, the Engine accepts in a
// single margin call. SteppedMargin decomposes anything larger.
const StepLimit = 50.0

// Warning carries a non-fatal diagnostic raised during an operation. It is
// delivered through a channel distinct from returned errors so callers can
// observe both independently.
type Warning struct {
	Op          string
	StructureID string
	Message     string
}

// WarningFunc receives non-fatal diagnostics.
type WarningFunc func(Warning)
