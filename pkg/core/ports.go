package core

import "context"

// Structure is the handle to a named entity in a Workspace. Its identifier
// is immutable for the life of the entity; its volume may be reassigned any
// number of times.
type Structure interface {
	// ID returns the unique identifier within the workspace.
	ID() string

	// Kind returns the classification tag.
	Kind() Kind

	// Volume returns the current volume value.
	Volume() Volume

	// SetVolume reassigns the structure's volume.
	SetVolume(v Volume)

	// IsHighRes reports whether the volume uses the high resolution mode.
	IsHighRes() bool

	// CanConvertToHighRes reports whether an in-place conversion is allowed.
	// Host-protected structures (e.g. approved plans) report false.
	CanConvertToHighRes() bool

	// ConvertToHighRes switches the structure to high resolution in place.
	// The conversion is irreversible and fails on protected structures.
	ConvertToHighRes() error
}

// Workspace defines the contract for the shared structure registry of one
// planning case. Adhering to this interface keeps the core independent of
// the hosting system (in-memory, scripting API bridge, ...).
//
// The core assumes single-writer access: no operation is safe to run
// concurrently with another mutation of the same Workspace. Callers must
// serialize; this is a documented precondition, not enforced here.
type Workspace interface {
	// Add registers a new structure under the given identifier.
	Add(ctx context.Context, kind Kind, id string) (Structure, error)

	// Remove deletes a structure from the registry.
	Remove(ctx context.Context, s Structure) error

	// List returns all structures in a stable order.
	List(ctx context.Context) ([]Structure, error)
}

// Engine defines the contract for the external geometry primitive. Margin
// calls are only valid for distances within the engine's per-call limit
// (StepLimit by default); SteppedMargin handles the decomposition.
type Engine interface {
	// Margin offsets the volume boundary by a signed distance.
	Margin(ctx context.Context, v Volume, distance float64) (Volume, error)

	// AsymmetricMargin offsets each axis direction independently. All six
	// distances are non-negative magnitudes; o carries the direction.
	AsymmetricMargin(ctx context.Context, v Volume, o Orientation, d AxisMargins) (Volume, error)

	// Or returns the boolean union of two volumes.
	Or(ctx context.Context, a, b Volume) (Volume, error)

	// And returns the boolean intersection of two volumes.
	And(ctx context.Context, a, b Volume) (Volume, error)

	// Sub returns a minus b.
	Sub(ctx context.Context, a, b Volume) (Volume, error)

	// Xor returns the symmetric difference of two volumes.
	Xor(ctx context.Context, a, b Volume) (Volume, error)

	// Not returns the complement of a volume.
	Not(ctx context.Context, v Volume) (Volume, error)
}
