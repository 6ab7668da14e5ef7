// Package carve is the Composition Root for the carve library.
//
// It connects the core structure algebra (Domain Layer) with the adapters
// (Workspace and Engine implementations) using the Hexagonal Architecture
// pattern.
//
// Philosophy:
//
// carve manipulates named volumetric regions ("structures") inside a shared
// workspace, the way radiotherapy planning scripts do: boolean set algebra
// plus geometric margins, delegated to an external geometry engine. The core
// contributes what the engine does not: decomposition of large margins into
// bounded per-call steps, reconciliation of mixed-resolution inputs, and a
// transactional guarantee that every helper structure an operation creates
// is gone from the workspace when the operation returns.
//
// Features:
//
//   - **Hexagonal Architecture**: the core is isolated from any particular
//     geometry host behind the Workspace and Engine ports.
//   - **Transactional Temporaries**: helper structures are scoped to one
//     operation and removed on every exit path.
//   - **Stepped Margins**: distances beyond the engine's per-call limit are
//     decomposed exactly, preserving sign and direction.
//   - **Resolution Guard**: mixed-resolution combinations are reconciled,
//     never silently accepted; protected structures are copied, not touched.
//   - **Default Adapter (mem)**: an in-memory workspace plus a symbolic
//     trace engine for tests and plan dry runs.
//   - **Extensible**: designed to bridge real geometry hosts via
//     core.Workspace and core.Engine.
//
// Usage:
//
//	// Initialize service with functional options
//	svc, err := carve.New(
//		carve.WithLogger(logger),
//	)
//
//	// Build a 10–20 mm shell around the target
//	vol, err := svc.RingOf(ctx, target, 10, 20, false)
package carve
