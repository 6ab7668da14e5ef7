package core_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/voxtools/carve/pkg/core"
)

func TestResolutionGuardEnsure(t *testing.T) {
	ctx := context.TODO()

	t.Run("Not Needed Returns Input Unchanged", func(t *testing.T) {
		ws := newFakeWorkspace()
		s := ws.add(&fakeStructure{id: "PTV"})
		guard := core.NewResolutionGuard(ws)
		temps := core.NewTempSet(ws, nil)
		defer temps.Close(ctx)

		h, err := guard.Ensure(ctx, s, false, temps)
		if err != nil {
			t.Fatalf("Ensure failed: %v", err)
		}
		if h != core.Structure(s) {
			t.Error("expected the input structure back")
		}
		if s.highRes {
			t.Error("structure must not be converted when not needed")
		}
	})

	t.Run("Already High Resolution Is Untouched", func(t *testing.T) {
		ws := newFakeWorkspace()
		s := ws.add(&fakeStructure{id: "PTV", highRes: true})
		guard := core.NewResolutionGuard(ws)
		temps := core.NewTempSet(ws, nil)
		defer temps.Close(ctx)

		h, err := guard.Ensure(ctx, s, true, temps)
		if err != nil {
			t.Fatalf("Ensure failed: %v", err)
		}
		if h.ID() != "PTV" {
			t.Errorf("expected PTV, got %q", h.ID())
		}
	})

	t.Run("Converts In Place When Allowed", func(t *testing.T) {
		ws := newFakeWorkspace()
		s := ws.add(&fakeStructure{id: "Lung_L"})
		guard := core.NewResolutionGuard(ws)
		temps := core.NewTempSet(ws, nil)
		defer temps.Close(ctx)

		h, err := guard.Ensure(ctx, s, true, temps)
		if err != nil {
			t.Fatalf("Ensure failed: %v", err)
		}
		if h.ID() != "Lung_L" || !s.highRes {
			t.Error("expected in-place conversion of the caller's structure")
		}
		if len(ws.ids()) != 1 {
			t.Errorf("expected no temporaries, got %v", ws.ids())
		}
	})

	t.Run("Protected Structure Gets Temporary Copy", func(t *testing.T) {
		ws := newFakeWorkspace()
		s := ws.add(&fakeStructure{id: "Approved", vol: "V", protected: true})
		guard := core.NewResolutionGuard(ws)
		temps := core.NewTempSet(ws, nil)

		h, err := guard.Ensure(ctx, s, true, temps)
		if err != nil {
			t.Fatalf("Ensure failed: %v", err)
		}
		if h.ID() == "Approved" {
			t.Fatal("expected a temporary, not the protected structure")
		}
		if h.Volume() != "V" {
			t.Errorf("temporary must carry the source volume, got %v", h.Volume())
		}
		if !h.IsHighRes() {
			t.Error("temporary must be high resolution")
		}
		if s.highRes {
			t.Error("protected structure must not be modified")
		}

		temps.Close(ctx)
		if len(ws.ids()) != 1 {
			t.Errorf("expected temporary removed on close, got %v", ws.ids())
		}
	})

	t.Run("In-Place Failure Falls Back With Warning", func(t *testing.T) {
		ws := newFakeWorkspace()
		s := ws.add(&fakeStructure{id: "Flaky", vol: "V"})
		s.convertErr = fmt.Errorf("host refused")

		guard := core.NewResolutionGuard(ws)
		var warnings []core.Warning
		guard.SetWarningFunc(func(w core.Warning) { warnings = append(warnings, w) })
		temps := core.NewTempSet(ws, nil)
		defer temps.Close(ctx)

		h, err := guard.Ensure(ctx, s, true, temps)
		if err != nil {
			t.Fatalf("Ensure failed: %v", err)
		}
		if h.ID() == "Flaky" {
			t.Error("expected fallback to a temporary copy")
		}
		if len(warnings) != 1 {
			t.Fatalf("expected one warning, got %d", len(warnings))
		}
		if warnings[0].StructureID != "Flaky" {
			t.Errorf("unexpected warning subject %q", warnings[0].StructureID)
		}
	})

	t.Run("Unconvertible Temporary Is Fatal", func(t *testing.T) {
		ws := newFakeWorkspace()
		s := ws.add(&fakeStructure{id: "Approved", protected: true})
		// This workspace mints protected structures, so even the temporary
		// copy cannot be converted.
		wsProtected := &protectedWorkspace{fakeWorkspace: ws}
		guard := core.NewResolutionGuard(wsProtected)
		temps := core.NewTempSet(wsProtected, nil)

		_, err := guard.Ensure(ctx, s, true, temps)
		if !errors.Is(err, core.ErrResolutionConversion) {
			t.Errorf("expected ErrResolutionConversion, got %v", err)
		}

		temps.Close(ctx)
		if len(ws.ids()) != 1 {
			t.Errorf("expected failed temporary removed, got %v", ws.ids())
		}
	})
}

// protectedWorkspace mints structures that refuse conversion.
type protectedWorkspace struct {
	*fakeWorkspace
}

func (w *protectedWorkspace) Add(ctx context.Context, kind core.Kind, id string) (core.Structure, error) {
	s, err := w.fakeWorkspace.Add(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	s.(*fakeStructure).protected = true
	return s, nil
}

func TestNeedHighRes(t *testing.T) {
	lo := &fakeStructure{id: "a"}
	hi := &fakeStructure{id: "b", highRes: true}

	if core.NeedHighRes(false, []core.Structure{lo}) {
		t.Error("no explicit request and no high-res input should not need high res")
	}
	if !core.NeedHighRes(true, []core.Structure{lo}) {
		t.Error("explicit request must force high res")
	}
	if !core.NeedHighRes(false, []core.Structure{lo}, []core.Structure{hi}) {
		t.Error("high resolution must be contagious across inputs")
	}
}
