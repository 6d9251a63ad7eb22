package game

import (
	"image/color"
	"math"
	"math/rand"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// billboard is one projected quad queued for the painter's pass.
type billboard struct {
	sx, sy float32 // screen centre
	size   float32
	depth  float64
	col    color.RGBA
	hollow bool
}

func (g *Game) Draw(screen *ebiten.Image) {
	switch g.session.Scene() {
	case SceneLoading:
		g.drawLoading(screen)
	case SceneMenu:
		g.drawMenu(screen)
	case SceneGameplay:
		g.worldBuf.Clear()
		g.drawWorld(g.worldBuf)
		screen.DrawImage(g.worldBuf, nil)
		g.drawHUD(screen)
		g.drawModal(screen)
	default:
		g.drawTerminal(screen)
	}
}

// project transforms a world position into screen space. ok is false when the
// point is behind the near plane.
func (g *Game) project(p Vec3) (sx, sy float32, depth float64, ok bool) {
	cam := g.player

	// Translate into camera space.
	dx := p.X - cam.Pos.X
	dy := p.Y - cam.Pos.Y
	dz := p.Z - cam.Pos.Z

	// Yaw about Y. Camera forward is -Z.
	sin, cos := math.Sin(-cam.Yaw), math.Cos(-cam.Yaw)
	rx := dx*cos - dz*sin
	rz := dx*sin + dz*cos

	// Pitch about X.
	sp, cp := math.Sin(-cam.Pitch), math.Cos(-cam.Pitch)
	ry := dy*cp - rz*sp
	rz = dy*sp + rz*cp

	depth = -rz
	if depth < 0.5 {
		return 0, 0, 0, false
	}

	// Focal length from the vertical FOV.
	f := float64(g.height) / 2 / math.Tan(cam.FOV*math.Pi/180/2)
	sx = float32(float64(g.width)/2 + rx*f/depth)
	sy = float32(float64(g.height)/2 - ry*f/depth)
	return sx, sy, depth, true
}

const viewDistance = 260.0

// drawWorld renders the voxel city: sky, celestial bodies, then every voxel
// and prop projected to a screen quad and painted far-to-near.
func (g *Game) drawWorld(buf *ebiten.Image) {
	env := SimulateEnvironment(float64(g.session.TimeOfDay()), g.session.Weather())

	buf.Fill(envColor(env.Sky, 1))
	g.drawStars(buf, env)
	g.drawCelestial(buf, env)

	light := env.Ambient + env.Directional*0.6
	if light > 1 {
		light = 1
	}

	bills := make([]billboard, 0, len(g.world.Voxels)+64)
	for _, v := range g.world.Voxels {
		sx, sy, depth, ok := g.project(v.WorldPos())
		if !ok || depth > viewDistance {
			continue
		}
		size := g.quadSize(voxelSize, depth)
		if offscreen(sx, sy, size, g.width, g.height) {
			continue
		}
		c := shade(v.Color, light, env.Fog, fogFactor(depth, env.FogDensity))
		bills = append(bills, billboard{sx: sx, sy: sy, size: size, depth: depth, col: c})
	}

	bills = g.appendLampBillboards(bills, env)
	bills = g.appendMarkerBillboards(bills, env)

	sort.Slice(bills, func(i, j int) bool { return bills[i].depth > bills[j].depth })
	for _, b := range bills {
		half := b.size / 2
		if b.hollow {
			vector.StrokeRect(buf, b.sx-half, b.sy-half, b.size, b.size, 2, b.col, false)
		} else {
			vector.FillRect(buf, b.sx-half, b.sy-half, b.size, b.size, b.col, false)
		}
	}

	if env.Rain > 0 {
		g.drawRain(buf, env)
	}
}

// quadSize approximates the projected edge length of a cube face.
func (g *Game) quadSize(edge, depth float64) float32 {
	f := float64(g.height) / 2 / math.Tan(g.player.FOV*math.Pi/180/2)
	return float32(edge * f / depth)
}

func offscreen(sx, sy, size float32, w, h int) bool {
	return sx+size < 0 || sy+size < 0 || sx-size > float32(w) || sy-size > float32(h)
}

// appendLampBillboards queues street-lamp poles and their glowing heads.
func (g *Game) appendLampBillboards(bills []billboard, env EnvState) []billboard {
	for _, l := range g.world.Lamps {
		base := Vec3{X: float64(l.X) * voxelSize, Z: float64(l.Z) * voxelSize}
		for y := 1; y <= 4; y++ {
			p := base
			p.Y = float64(y) * voxelSize
			sx, sy, depth, ok := g.project(p)
			if !ok || depth > viewDistance {
				continue
			}
			col := RGB{0.07, 0.07, 0.07}
			edge := voxelSize * 0.4
			if y == 4 {
				edge = voxelSize * 0.8
				if env.LampsOn {
					col = RGB{1.0, 0.85, 0.45}
				} else {
					col = RGB{0.25, 0.25, 0.25}
				}
			}
			c := shade(col, 1, env.Fog, fogFactor(depth, env.FogDensity))
			bills = append(bills, billboard{sx: sx, sy: sy, size: g.quadSize(edge, depth), depth: depth, col: c})
		}
	}

	// Traffic lights cycle on the sim clock, phase-shifted per corner.
	phases := []RGB{{1, 0.1, 0.1}, {1, 0.9, 0.1}, {0.1, 1, 0.3}}
	for _, t := range g.world.TrafficLights {
		cycle := math.Mod(float64(g.session.CurrentTick())/60+t.Phase, 9)
		state := int(cycle / 3)
		base := Vec3{X: float64(t.X) * voxelSize, Z: float64(t.Z) * voxelSize}
		for y := 1; y <= 3; y++ {
			p := base
			p.Y = float64(y) * voxelSize
			sx, sy, depth, ok := g.project(p)
			if !ok || depth > viewDistance {
				continue
			}
			col := RGB{0.07, 0.07, 0.07}
			if y == 3 {
				col = phases[state]
			}
			c := shade(col, 1, env.Fog, fogFactor(depth, env.FogDensity))
			bills = append(bills, billboard{sx: sx, sy: sy, size: g.quadSize(voxelSize*0.5, depth), depth: depth, col: c})
		}
	}
	return bills
}

// appendMarkerBillboards queues the pulsing evidence markers for in-play
// decision points: a hollow green cube with a bobbing white core.
func (g *Game) appendMarkerBillboards(bills []billboard, env EnvState) []billboard {
	pulse := 0.75 + 0.25*math.Sin(float64(g.session.CurrentTick())*0.08)
	for _, d := range g.session.DecisionPoints() {
		if !g.session.InPlay(d) {
			continue
		}
		p := d.Position
		p.Y += 2 + math.Sin(float64(g.session.CurrentTick())*0.05)*0.8
		sx, sy, depth, ok := g.project(p)
		if !ok || depth > viewDistance {
			continue
		}
		fog := fogFactor(depth, env.FogDensity)
		outer := shade(RGB{0, 1, 0.53}, pulse, env.Fog, fog)
		inner := shade(RGB{1, 1, 1}, pulse, env.Fog, fog)
		bills = append(bills,
			billboard{sx: sx, sy: sy, size: g.quadSize(8, depth), depth: depth, col: outer, hollow: true},
			billboard{sx: sx, sy: sy, size: g.quadSize(4, depth), depth: depth - 0.01, col: inner},
		)
	}
	return bills
}

func (g *Game) drawCelestial(buf *ebiten.Image, env EnvState) {
	if sx, sy, depth, ok := g.project(offsetBy(g.player.Pos, env.SunPos)); ok && env.SunPos.Y > 0 {
		vector.FillCircle(buf, sx, sy, g.quadSize(24, depth), color.RGBA{255, 238, 160, 255}, false)
	}
	if sx, sy, depth, ok := g.project(offsetBy(g.player.Pos, env.MoonPos)); ok && env.MoonPos.Y > 0 {
		vector.FillCircle(buf, sx, sy, g.quadSize(18, depth), color.RGBA{220, 224, 235, 255}, false)
	}
}

// offsetBy anchors a sky position relative to the player so celestial bodies
// never parallax closer.
func offsetBy(base, off Vec3) Vec3 {
	return Vec3{X: base.X + off.X, Y: off.Y, Z: base.Z + off.Z}
}

// drawStars scatters a fixed starfield, faded by the env star opacity.
func (g *Game) drawStars(buf *ebiten.Image, env EnvState) {
	if env.Stars < 0.05 {
		return
	}
	rng := rand.New(rand.NewSource(99)) // #nosec G404 -- fixed cosmetic starfield
	a := uint8(200 * env.Stars)
	for i := 0; i < 120; i++ {
		x := float32(rng.Intn(g.width))
		y := float32(rng.Intn(g.height / 2))
		vector.FillRect(buf, x, y, 2, 2, color.RGBA{255, 255, 255, a}, false)
	}
}

// drawRain streaks rain down the screen, scrolled by the sim clock.
func (g *Game) drawRain(buf *ebiten.Image, env EnvState) {
	rng := rand.New(rand.NewSource(7)) // #nosec G404 -- cosmetic only
	drop := color.RGBA{170, 190, 220, uint8(110 * env.Rain)}
	scroll := float32(g.session.CurrentTick()%60) / 60 * float32(g.height)
	for i := 0; i < 160; i++ {
		x := float32(rng.Intn(g.width))
		y := float32(rng.Intn(g.height)) + scroll
		for y > float32(g.height) {
			y -= float32(g.height)
		}
		vector.StrokeLine(buf, x, y, x-2, y+12, 1, drop, false)
	}
}

// fogFactor maps depth to fog mix with an exp2 falloff.
func fogFactor(depth, density float64) float64 {
	f := 1 - math.Exp(-density*density*depth*depth)
	if f > 1 {
		return 1
	}
	return f
}

// shade scales a base color by the light level and mixes toward fog.
func shade(c RGB, light float64, fog RGB, f float64) color.RGBA {
	lit := RGB{c.R * light, c.G * light, c.B * light}
	return envColor(lerpRGB(lit, fog, f), 1)
}

func envColor(c RGB, a float64) color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(a) * 255),
	}
}
