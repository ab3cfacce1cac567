// seehuhn.de/go/potrace - trace raster images into scalable vector paths
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package potrace

import (
	"errors"
	"strings"
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/potrace/internal/fixtures"
)

func TestRecoverInternalConvertsPanicToErrInternal(t *testing.T) {
	err := recoverInternal(func() {
		panic("boom")
	})
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("recoverInternal error = %v, want wrapped ErrInternal", err)
	}
}

func TestRecoverInternalPassesThroughOnSuccess(t *testing.T) {
	ran := false
	err := recoverInternal(func() {
		ran = true
	})
	if err != nil {
		t.Errorf("recoverInternal() = %v, want nil", err)
	}
	if !ran {
		t.Error("recoverInternal did not run fn")
	}
}

func TestNewPotraceRejectsInvalidParams(t *testing.T) {
	p := DefaultParams()
	p.TurdSize = -1
	if _, err := NewPotrace(p); err == nil {
		t.Error("NewPotrace should reject a negative TurdSize")
	}
}

func TestPotraceGetSVGBlankImageHasNoPaths(t *testing.T) {
	eng, err := NewPotrace(DefaultParams())
	if err != nil {
		t.Fatalf("NewPotrace: %v", err)
	}
	eng.LoadImage(fixtures.Blank(10, 10))

	svg, err := eng.GetSVG()
	if err != nil {
		t.Fatalf("GetSVG: %v", err)
	}
	if !strings.Contains(svg, "<svg") {
		t.Errorf("GetSVG did not return an svg document: %q", svg)
	}
	if strings.Contains(svg, "<path") {
		t.Errorf("a blank image should trace to zero paths, got %q", svg)
	}
}

func TestPotraceGetPathTagSolidSquareHasOnePath(t *testing.T) {
	eng, err := NewPotrace(DefaultParams())
	if err != nil {
		t.Fatalf("NewPotrace: %v", err)
	}
	eng.LoadImage(fixtures.SolidSquare(30, 30, 5, 5, 10))

	paths, err := eng.GetPathTag()
	if err != nil {
		t.Fatalf("GetPathTag: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("solid square traced to %d paths, want 1", len(paths))
	}
}

func TestPotraceProcessCachesUntilStructuralChange(t *testing.T) {
	eng, err := NewPotrace(DefaultParams())
	if err != nil {
		t.Fatalf("NewPotrace: %v", err)
	}
	eng.LoadImage(fixtures.SolidSquare(20, 20, 3, 3, 8))

	if _, err := eng.GetPathTag(); err != nil {
		t.Fatalf("GetPathTag: %v", err)
	}
	if !eng.processed {
		t.Fatal("expected engine to be marked processed after tracing")
	}

	// changing only Color must not invalidate the cached trace.
	cosmetic := eng.params
	cosmetic.Color = "#ff0000"
	if err := eng.SetParameters(cosmetic); err != nil {
		t.Fatalf("SetParameters: %v", err)
	}
	if !eng.processed {
		t.Error("a cosmetic-only parameter change should not invalidate the cached trace")
	}

	structural := eng.params
	structural.TurdSize = eng.params.TurdSize + 5
	if err := eng.SetParameters(structural); err != nil {
		t.Fatalf("SetParameters: %v", err)
	}
	if eng.processed {
		t.Error("a structural parameter change should invalidate the cached trace")
	}
}

func TestPotraceGetPathTagWithoutLoadedImageFails(t *testing.T) {
	eng, err := NewPotrace(DefaultParams())
	if err != nil {
		t.Fatalf("NewPotrace: %v", err)
	}
	if _, err := eng.GetPathTag(); err == nil {
		t.Error("GetPathTag without a loaded image should fail")
	}
}

func TestPotraceTurdSizeSuppressesIsolatedPixel(t *testing.T) {
	eng, err := NewPotrace(DefaultParams())
	if err != nil {
		t.Fatalf("NewPotrace: %v", err)
	}
	eng.LoadImage(fixtures.IsolatedPixel(10, 10, 5, 5))

	paths, err := eng.GetPathTag()
	if err != nil {
		t.Fatalf("GetPathTag: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("default TurdSize should suppress a single isolated pixel, got %d paths", len(paths))
	}
}

func TestGetSymbolIncludesID(t *testing.T) {
	eng, err := NewPotrace(DefaultParams())
	if err != nil {
		t.Fatalf("NewPotrace: %v", err)
	}
	eng.LoadImage(fixtures.SolidSquare(20, 20, 2, 2, 6))

	sym, err := eng.GetSymbol("shape-1")
	if err != nil {
		t.Fatalf("GetSymbol: %v", err)
	}
	if !strings.Contains(sym, `id="shape-1"`) {
		t.Errorf("GetSymbol missing id: %q", sym)
	}
}

func TestResolvedColorFollowsPolarity(t *testing.T) {
	p := DefaultParams()
	p.BlackOnWhite = true
	eng, _ := NewPotrace(p)
	if got := eng.resolvedColor(); got != "black" {
		t.Errorf("resolvedColor with BlackOnWhite = %q, want black", got)
	}

	p.BlackOnWhite = false
	eng, _ = NewPotrace(p)
	if got := eng.resolvedColor(); got != "white" {
		t.Errorf("resolvedColor without BlackOnWhite = %q, want white", got)
	}
}

func TestPathDataStartsWithMoveTo(t *testing.T) {
	p := squareCurve(t)
	p.Curve.smooth(1.0)
	d := PathData(p)
	if len(d.Cmds) == 0 {
		t.Fatal("PathData returned an empty path")
	}
	if d.Cmds[0] != path.CmdMoveTo {
		t.Errorf("PathData first command = %v, want CmdMoveTo", d.Cmds[0])
	}
}
