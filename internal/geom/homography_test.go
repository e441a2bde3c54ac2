package geom

import (
	"math"
	"testing"
)

func TestPerspectiveTransform_MapsCorners(t *testing.T) {
	src := [4]Point{{37, 22}, {412, 31}, {398, 540}, {25, 512}}
	dst := [4]Point{{0, 0}, {800, 0}, {800, 1000}, {0, 1000}}

	m, err := PerspectiveTransform(src, dst)
	if err != nil {
		t.Fatalf("PerspectiveTransform failed: %v", err)
	}

	for i := range src {
		got := m.Apply(src[i])
		if math.Abs(got.X-dst[i].X) > 1e-6 || math.Abs(got.Y-dst[i].Y) > 1e-6 {
			t.Errorf("Corner %d: expected %v, got %v", i, dst[i], got)
		}
	}
}

func TestPerspectiveTransform_Identity(t *testing.T) {
	pts := [4]Point{{0, 0}, {100, 0}, {100, 100}, {0, 100}}

	m, err := PerspectiveTransform(pts, pts)
	if err != nil {
		t.Fatalf("PerspectiveTransform failed: %v", err)
	}

	probe := Point{33, 71}
	got := m.Apply(probe)
	if math.Abs(got.X-probe.X) > 1e-9 || math.Abs(got.Y-probe.Y) > 1e-9 {
		t.Errorf("Identity transform moved %v to %v", probe, got)
	}
}

func TestPerspectiveTransform_Degenerate(t *testing.T) {
	// A repeated corner cannot define a quadrilateral mapping.
	src := [4]Point{{0, 0}, {0, 0}, {100, 100}, {0, 100}}
	dst := [4]Point{{0, 0}, {100, 0}, {100, 100}, {0, 100}}

	if _, err := PerspectiveTransform(src, dst); err == nil {
		t.Error("Expected an error for collinear corners")
	}
}

func TestHomography_InvertRoundTrip(t *testing.T) {
	src := [4]Point{{10, 5}, {200, 20}, {190, 310}, {5, 290}}
	dst := [4]Point{{0, 0}, {800, 0}, {800, 1000}, {0, 1000}}

	m, err := PerspectiveTransform(src, dst)
	if err != nil {
		t.Fatalf("PerspectiveTransform failed: %v", err)
	}
	inv, err := m.Invert()
	if err != nil {
		t.Fatalf("Invert failed: %v", err)
	}

	probe := Point{123, 456}
	back := inv.Apply(m.Apply(probe))
	if math.Abs(back.X-probe.X) > 1e-6 || math.Abs(back.Y-probe.Y) > 1e-6 {
		t.Errorf("Round trip moved %v to %v", probe, back)
	}
}

func TestOrderCorners(t *testing.T) {
	want := [4]Point{{10, 10}, {400, 20}, {390, 500}, {5, 490}}

	// Feed the corners in scrambled order.
	scrambled := [4]Point{want[2], want[0], want[3], want[1]}
	got := OrderCorners(scrambled)

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Corner %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}
