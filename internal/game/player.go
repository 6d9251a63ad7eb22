package game

import "math"

// Player movement tuning. Velocity lives in camera-local space and decays
// exponentially, so releasing a key glides the player to a stop.
const (
	moveSpeed    = 60.0
	friction     = 10.0
	eyeHeight    = 12.0
	lookSpeed    = 1.8 // radians per second on the arrow/Q-E keys
	pitchLimit   = math.Pi/2 - 0.1
	movingCutoff = 0.1

	bobSpeed  = 12.0
	bobAmount = 0.3

	breathFreq = 1.5
	breathAmp  = 0.15
	swayFreq   = 0.5
	swayAmp    = 0.005

	baseFOV = 75.0

	interactRadius = 15.0
)

// MoveIntent is the per-tick input the controller consumes. The input layer
// fills it from the keyboard; tests fill it directly.
type MoveIntent struct {
	Forward, Backward bool
	StrafeL, StrafeR  bool
	TurnL, TurnR      bool
	LookUp, LookDown  bool
}

// PlayerController is the first-person camera: position in world units, yaw
// and pitch in radians, camera-local velocity. All motion integrates against
// a fixed dt supplied by the sim tick.
type PlayerController struct {
	Pos        Vec3
	Yaw, Pitch float64
	Roll       float64
	FOV        float64

	velX, velZ float64 // camera-local
	clock      float64 // seconds, drives bob and idle cycles
}

// NewPlayerController spawns the player south of the HQ facing it.
func NewPlayerController() *PlayerController {
	return &PlayerController{
		Pos: Vec3{X: 0, Y: eyeHeight, Z: 60},
		FOV: baseFOV,
	}
}

// Update integrates one tick of movement: friction, acceleration from the
// intent, camera-relative translation, head bob or idle sway, FOV widening
// with speed, and the world boundary clamp.
func (p *PlayerController) Update(in MoveIntent, dt float64) {
	p.clock += dt

	if in.TurnL {
		p.Yaw += lookSpeed * dt
	}
	if in.TurnR {
		p.Yaw -= lookSpeed * dt
	}
	if in.LookUp {
		p.Pitch += lookSpeed * dt
	}
	if in.LookDown {
		p.Pitch -= lookSpeed * dt
	}
	p.Pitch = math.Max(-pitchLimit, math.Min(pitchLimit, p.Pitch))

	p.velX -= p.velX * friction * dt
	p.velZ -= p.velZ * friction * dt
	if in.Forward {
		p.velZ -= moveSpeed * dt
	}
	if in.Backward {
		p.velZ += moveSpeed * dt
	}
	if in.StrafeL {
		p.velX -= moveSpeed * dt
	}
	if in.StrafeR {
		p.velX += moveSpeed * dt
	}

	// Camera-local velocity rotated by yaw into world space. -Z is forward.
	sin, cos := math.Sin(p.Yaw), math.Cos(p.Yaw)
	p.Pos.X += (p.velX*cos + p.velZ*sin) * dt
	p.Pos.Z += (p.velZ*cos - p.velX*sin) * dt

	if p.Moving() {
		p.Pos.Y = eyeHeight + math.Sin(p.clock*bobSpeed)*bobAmount
		p.Roll = -p.velX * 0.05 * 0.1
	} else {
		breathY := math.Sin(p.clock*breathFreq) * breathAmp
		swayZ := math.Sin(p.clock*swayFreq) * swayAmp
		p.Pos.Y = lerp(p.Pos.Y, eyeHeight+breathY, 0.05)
		p.Roll = lerp(p.Roll, swayZ, 0.05)
	}

	target := baseFOV + p.Speed()*0.2
	p.FOV = lerp(p.FOV, target, 0.1)

	p.Pos.X = math.Max(-worldBound, math.Min(worldBound, p.Pos.X))
	p.Pos.Z = math.Max(-worldBound, math.Min(worldBound, p.Pos.Z))
}

// Warp teleports the player, zeroing momentum.
func (p *PlayerController) Warp(pos Vec3) {
	p.Pos = pos
	p.Pos.Y = eyeHeight
	p.velX, p.velZ = 0, 0
}

// Speed returns the magnitude of the local velocity.
func (p *PlayerController) Speed() float64 {
	return math.Hypot(p.velX, p.velZ)
}

// Moving reports whether either velocity axis exceeds the glide cutoff.
func (p *PlayerController) Moving() bool {
	return math.Abs(p.velX) > movingCutoff || math.Abs(p.velZ) > movingCutoff
}

// NearestInteractable scans the in-play decision points and returns the one
// nearest the player within the interaction radius, or nil. Distance is the
// full 3D distance; the radius check is strict, a point exactly on the
// boundary is out of reach.
func NearestInteractable(p *PlayerController, s *Session) *DecisionPoint {
	var nearest *DecisionPoint
	minDist := interactRadius
	for _, d := range s.DecisionPoints() {
		if !s.InPlay(d) {
			continue
		}
		if dist := p.Pos.Dist(d.Position); dist < minDist {
			minDist = dist
			nearest = d
		}
	}
	return nearest
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
