package game

import "math"

// MoveDirection is the sign of a cannon's sweep along the depth axis
type MoveDirection int

const (
	MoveDown MoveDirection = -1
	MoveUp   MoveDirection = 1
)

const (
	cannonSize         = 64
	cannonAcceleration = 0.1
	cannonMaxMovement  = 5.0
	cannonPhaseTicks   = 60

	ironBallBaseSpeed   = 15.0
	ironBallLaunchAngle = 45.0
)

// Cannon is an invisible launcher that sweeps back and forth along the stage
// side and fires an iron ball at the end of every accelerate/decelerate cycle
type Cannon struct {
	body  Body
	stage *Stage
	sound SoundPlayer

	moveDir  MoveDirection
	turn     bool
	shotFlag bool

	timer    int
	movement float64

	accelerateAt float64
	decelerateAt float64
	shotAt       float64
}

// NewCannon creates a cannon. phase scales each of the three cycle phases
// (in seconds).
func NewCannon(stage *Stage, sound SoundPlayer, speed, phase float64, pos Vec3, facing Direction, moveDir MoveDirection) *Cannon {
	if sound == nil {
		sound = NopSound{}
	}
	c := &Cannon{
		body:    newBody(KindCannon, pos, Vec2{cannonSize, cannonSize}, speed, facing),
		stage:   stage,
		sound:   sound,
		moveDir: moveDir,
	}
	c.accelerateAt = cannonPhaseTicks * phase
	c.decelerateAt = c.accelerateAt + cannonPhaseTicks*phase
	c.shotAt = c.decelerateAt + cannonPhaseTicks*phase
	c.timer = int(c.accelerateAt)
	return c
}

// Body implements Entity
func (c *Cannon) Body() *Body { return &c.body }

// Alive implements Entity
func (c *Cannon) Alive() bool { return !c.body.Dead }

// Hit implements Entity. Cannons are never struck.
func (c *Cannon) Hit(Vec3) {}

// Movement returns the current speed multiplier in [0, 5]
func (c *Cannon) Movement() float64 { return c.movement }

// Timer returns the phase timer
func (c *Cannon) Timer() int { return c.timer }

// Phases returns the accelerate, decelerate and shot thresholds in ticks
func (c *Cannon) Phases() (accelerate, decelerate, shot float64) {
	return c.accelerateAt, c.decelerateAt, c.shotAt
}

// ShotReady reports whether the next CreateIronBall call fires
func (c *Cannon) ShotReady() bool { return c.shotFlag }

// Update implements Entity
func (c *Cannon) Update() {
	c.body.refresh(c.stage)
	c.move()
	c.body.Pos.Z = c.stage.ClampDepth(c.body.Pos.Z, c.body.Size.Y)
}

func (c *Cannon) move() {
	b := &c.body
	angle := c.stage.AngleFromVanishingPoint(b.Pos.Projected(), VanishCenter)
	velocity := b.Speed * b.ZScale

	c.timer++
	t := float64(c.timer)
	if t > c.decelerateAt {
		c.movement -= cannonAcceleration
	} else if t > c.accelerateAt {
		c.movement += cannonAcceleration
	}

	if c.movement > cannonMaxMovement {
		c.movement = cannonMaxMovement
	}
	if c.movement < 0 {
		c.movement = 0
		if t > c.shotAt {
			c.shotFlag = true
			c.timer = 0
		}
	}

	dir := float64(c.moveDir)
	step := Vec3{
		X: c.movement * velocity * math.Cos(angle) * dir,
		Z: c.movement * velocity * math.Sin(angle) * dir,
	}

	// Reverse the sweep each time the cannon crosses the depth bounds
	if b.Pos.Z < c.stage.Top()-b.Size.Y/2 || b.Pos.Z > c.stage.Bottom()-b.Size.Y/2 {
		c.turn = !c.turn
	}
	if !c.turn {
		step = step.Neg()
	}

	b.Pos = b.Pos.Add(step)
}

// CreateIronBall fires the pending shot. It returns nil when no shot is ready.
// Launch speed grows with the cannon's distance from the nearer boundary so
// balls from far away still reach the floor.
func (c *Cannon) CreateIronBall() *IronBall {
	if !c.shotFlag {
		return nil
	}
	c.shotFlag = false

	pos := c.body.Pos
	boundary := c.stage.NearestBoundary(pos.X, pos.Z)
	extra := math.Abs((boundary - pos.X) / ironBallBaseSpeed / 3)

	return NewIronBall(c.stage, c.sound, pos, c.body.Facing, ironBallLaunchAngle*math.Pi/180, ironBallBaseSpeed+extra)
}
