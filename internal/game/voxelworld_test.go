package game

import "testing"

func TestClassifyCell(t *testing.T) {
	cases := []struct {
		x, z int
		want CellKind
	}{
		{0, 0, CellRoad},           // central avenue
		{2, 20, CellRoad},          // |x| < 3
		{20, -2, CellRoad},         // |z| < 3
		{15, 20, CellRoad},         // ring road
		{-15, 8, CellRoad},         // ring road, negative side
		{-4, -4, CellBuildingZone}, // HQ corner
		{3, 3, CellBuildingZone},   // HQ opposite corner
		{12, 12, CellBuildingZone}, // block tower
		{-23, 0, CellRoad},         // road through a building footprint: road wins
		{7, 7, CellPark},
		{-7, 7, CellPark},
		{4, 4, CellPlain},
		{8, 9, CellPlain},
	}
	for _, c := range cases {
		if got := ClassifyCell(c.x, c.z); got != c.want {
			t.Errorf("ClassifyCell(%d, %d) = %s, want %s", c.x, c.z, got, c.want)
		}
	}
}

func TestShellVoxelCount(t *testing.T) {
	cases := []struct {
		w, d, h int
		want    int
	}{
		{8, 8, 12, 28*11 + 64}, // HQ: wall ring per story, roof slab
		{6, 6, 8, 20*7 + 36},
		{1, 1, 5, 5},  // a column has no interior
		{2, 3, 4, 24}, // too thin for a hollow core
		{4, 4, 1, 16}, // single story is all roof
		{0, 4, 4, 0},
	}
	for _, c := range cases {
		if got := shellVoxelCount(c.w, c.d, c.h); got != c.want {
			t.Errorf("shellVoxelCount(%d, %d, %d) = %d, want %d", c.w, c.d, c.h, got, c.want)
		}
	}
	// The shell is never larger than the solid box.
	if shell, solid := shellVoxelCount(8, 8, 12), 8*8*12; shell >= solid {
		t.Errorf("shell %d not smaller than solid %d", shell, solid)
	}
}

func TestGenerateWorldDeterministic(t *testing.T) {
	a := GenerateWorld(42)
	b := GenerateWorld(42)
	if len(a.Voxels) != len(b.Voxels) {
		t.Fatalf("voxel counts differ for the same seed: %d vs %d", len(a.Voxels), len(b.Voxels))
	}
	for i := range a.Voxels {
		if a.Voxels[i] != b.Voxels[i] {
			t.Fatalf("voxel %d differs for the same seed: %+v vs %+v", i, a.Voxels[i], b.Voxels[i])
		}
	}
	for i := range a.TrafficLights {
		if a.TrafficLights[i] != b.TrafficLights[i] {
			t.Fatalf("traffic light %d differs for the same seed", i)
		}
	}

	c := GenerateWorld(43)
	same := len(a.Voxels) == len(c.Voxels)
	if same {
		for i := range a.Voxels {
			if a.Voxels[i] != c.Voxels[i] {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("different seeds produced identical worlds")
	}
}

func TestGenerateWorldBudgetAndLayout(t *testing.T) {
	w := GenerateWorld(1)
	if len(w.Voxels) > maxVoxels {
		t.Fatalf("voxel count %d exceeds the %d cap", len(w.Voxels), maxVoxels)
	}
	ground := (2*worldRadius + 1) * (2*worldRadius + 1)
	if len(w.Voxels) <= ground {
		t.Errorf("only %d voxels for a %d-cell ground plane: no buildings or trees", len(w.Voxels), ground)
	}
	if len(w.Lamps) != 4 {
		t.Errorf("lamps = %d, want 4", len(w.Lamps))
	}
	if len(w.TrafficLights) != 4 {
		t.Errorf("traffic lights = %d, want 4", len(w.TrafficLights))
	}
	for i, tl := range w.TrafficLights {
		if tl.Phase < 0 || tl.Phase >= 10 {
			t.Errorf("traffic light %d phase %.2f out of range", i, tl.Phase)
		}
	}
}

func TestVoxelWorldPos(t *testing.T) {
	v := Voxel{X: 3, Y: 2, Z: -5}
	got := v.WorldPos()
	want := Vec3{X: 12, Y: 10, Z: -20}
	if got != want {
		t.Errorf("WorldPos = %+v, want %+v", got, want)
	}
}

// Every building voxel sits on the footprint shell: nothing is emitted for
// the hidden interior below the roof.
func TestBuildingsEmitShellOnly(t *testing.T) {
	w := GenerateWorld(7)
	hq := cityBuildings[0]
	for _, v := range w.Voxels {
		if v.Y < 1 || v.Y >= hq.h {
			continue
		}
		if v.X <= hq.bx || v.X >= hq.bx+hq.w-1 || v.Z <= hq.bz || v.Z >= hq.bz+hq.d-1 {
			continue
		}
		t.Fatalf("interior voxel emitted at (%d, %d, %d)", v.X, v.Y, v.Z)
	}
}
