package game

import "math/rand"

// World-grid tuning. Grid cells are voxel units; world units are grid units
// scaled by voxelSize.
const (
	worldRadius = 30 // grid cells from center, inclusive
	voxelSize   = 4.0
	maxVoxels   = 20000

	worldBound = 120.0 // player clamp in world units
)

// CellKind classifies one ground cell of the city grid.
type CellKind int

const (
	CellPlain CellKind = iota
	CellRoad
	CellBuildingZone
	CellPark
)

func (c CellKind) String() string {
	switch c {
	case CellRoad:
		return "road"
	case CellBuildingZone:
		return "building"
	case CellPark:
		return "park"
	default:
		return "plain"
	}
}

// Voxel is one rendered cube, positioned in grid units. WorldPos converts to
// world units, lifting the cube so it rests on the ground plane.
type Voxel struct {
	X, Y, Z int
	Color   RGB
}

func (v Voxel) WorldPos() Vec3 {
	return Vec3{
		X: float64(v.X) * voxelSize,
		Y: float64(v.Y)*voxelSize + voxelSize/2,
		Z: float64(v.Z) * voxelSize,
	}
}

// buildingSpec is one rectangular tower footprint, in grid units.
type buildingSpec struct {
	bx, bz  int // min corner
	w, d, h int
	color   RGB
}

// cityBuildings is the fixed downtown layout: HQ at center, four block
// towers, two tall silhouettes at the fringe.
var cityBuildings = []buildingSpec{
	{-4, -4, 8, 8, 12, RGB{0.10, 0.21, 0.36}}, // HQ
	{-18, -18, 6, 6, 8, RGB{0.13, 0.13, 0.13}},
	{12, -18, 6, 6, 10, RGB{0.20, 0.20, 0.20}},
	{-18, 12, 6, 6, 7, RGB{0.16, 0.16, 0.16}},
	{12, 12, 6, 6, 11, RGB{0.10, 0.10, 0.10}},
	{-25, -5, 4, 10, 15, RGB{0.02, 0.02, 0.02}},
	{21, -5, 4, 10, 14, RGB{0.02, 0.02, 0.02}},
}

// LampSpot is one street-lamp position in grid units.
type LampSpot struct {
	X, Z int
}

var lampSpots = []LampSpot{{0, 5}, {0, -5}, {5, 0}, {-5, 0}}

// TrafficLightSpot anchors one traffic light at a road corner, grid units.
type TrafficLightSpot struct {
	X, Z  int
	Phase float64 // initial cycle offset, seconds
}

// World is the generated voxel city. Immutable after generation; the session
// never writes to it, and regeneration only happens on restart.
type World struct {
	Voxels        []Voxel
	Lamps         []LampSpot
	TrafficLights []TrafficLightSpot

	windowColor RGB
	roadColor   RGB
	grassColor  RGB
}

// ClassifyCell resolves the kind of one ground cell. Checks run in priority
// order: road beats building zone beats park; everything else is plain grass.
func ClassifyCell(x, z int) CellKind {
	if abs(x) < 3 || abs(z) < 3 || abs(x) == 15 || abs(z) == 15 {
		return CellRoad
	}
	for _, b := range cityBuildings {
		if x >= b.bx && x < b.bx+b.w && z >= b.bz && z < b.bz+b.d {
			return CellBuildingZone
		}
	}
	if x%7 == 0 && z%7 == 0 {
		return CellPark
	}
	return CellPlain
}

// shellVoxelCount returns the number of voxels a building emits: only the
// visible shell of the box, not the solid interior.
func shellVoxelCount(w, d, h int) int {
	if w <= 0 || d <= 0 || h <= 0 {
		return 0
	}
	if w <= 2 || d <= 2 || h <= 1 {
		return w * d * h
	}
	// Wall ring for each story below the roof, plus the full roof slab.
	ring := 2*w + 2*d - 4
	return ring*(h-1) + w*d
}

// GenerateWorld builds the voxel city from the given seed. The layout is
// fixed; the seed only drives cosmetic variation (per-voxel color jitter,
// window placement, traffic-light phases).
func GenerateWorld(seed int64) *World {
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- cosmetic variation only

	w := &World{
		windowColor: RGB{1.0, 0.92, 0.0},
		roadColor:   RGB{0.07, 0.07, 0.07},
		grassColor:  RGB{0.10, 0.16, 0.10},
	}

	jitter := func(c RGB) RGB {
		v := (rng.Float64() - 0.5) * 0.1
		return RGB{clamp01(c.R + v), clamp01(c.G + v), clamp01(c.B + v)}
	}
	add := func(x, y, z int, c RGB) {
		if len(w.Voxels) >= maxVoxels {
			return
		}
		w.Voxels = append(w.Voxels, Voxel{X: x, Y: y, Z: z, Color: jitter(c)})
	}

	// Ground plane.
	for x := -worldRadius; x <= worldRadius; x++ {
		for z := -worldRadius; z <= worldRadius; z++ {
			switch ClassifyCell(x, z) {
			case CellRoad:
				add(x, 0, z, w.roadColor)
			case CellPark:
				add(x, 0, z, RGB{0.08, 0.22, 0.08})
				w.addTree(add, rng, x, z)
			default:
				add(x, 0, z, w.grassColor)
			}
		}
	}

	// Buildings: shell only. Interior voxels are never visible from street
	// level, so each story emits its wall ring and only the top emits the
	// full slab.
	for _, b := range cityBuildings {
		for x := b.bx; x < b.bx+b.w; x++ {
			for z := b.bz; z < b.bz+b.d; z++ {
				edge := x == b.bx || x == b.bx+b.w-1 || z == b.bz || z == b.bz+b.d-1
				for y := 1; y <= b.h; y++ {
					if y != b.h && !edge {
						continue
					}
					c := b.color
					if edge && y > 1 && rng.Float64() > 0.8 {
						c = w.windowColor
					}
					add(x, y, z, c)
				}
			}
		}
	}

	w.Lamps = append(w.Lamps, lampSpots...)
	for _, s := range [][2]int{{3, 3}, {-3, 3}, {3, -3}, {-3, -3}} {
		w.TrafficLights = append(w.TrafficLights, TrafficLightSpot{
			X: s[0], Z: s[1], Phase: rng.Float64() * 10,
		})
	}
	return w
}

// addTree plants a small voxel tree on a park cell.
func (w *World) addTree(add func(x, y, z int, c RGB), rng *rand.Rand, x, z int) {
	trunk := RGB{0.25, 0.16, 0.08}
	leaf := RGB{0.10, 0.35, 0.12}
	h := 2 + rng.Intn(2)
	for y := 1; y <= h; y++ {
		add(x, y, z, trunk)
	}
	add(x, h+1, z, leaf)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
