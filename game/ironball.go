package game

import "math"

const (
	ironBallSize  = 64
	ironBallSpeed = 3

	gravity = 0.98

	bounceDampX = 0.999
	bounceDampY = -0.6

	// Height below the floor at which a falling body is gone
	sinkHeight = 60
)

// IronBall is a ballistic projectile. It bounces on the floor until it
// leaves the footprint, then falls into the water.
type IronBall struct {
	body  Body
	stage *Stage
	sound SoundPlayer

	velocity Vec3
	falling  bool
}

// NewIronBall launches a ball from pos with initial speed v0 at angle
// (radians above the horizon), heading left or right according to facing
func NewIronBall(stage *Stage, sound SoundPlayer, pos Vec3, facing Direction, angle, v0 float64) *IronBall {
	if sound == nil {
		sound = NopSound{}
	}
	ball := &IronBall{
		body:  newBody(KindIronBall, pos, Vec2{ironBallSize, ironBallSize}, ironBallSpeed, facing),
		stage: stage,
		sound: sound,
	}

	switch facing {
	case DirLeft:
		ball.velocity.X = -v0 * math.Cos(angle)
	case DirRight:
		ball.velocity.X = v0 * math.Cos(angle)
	}
	ball.velocity.Y = -v0 * math.Sin(angle)
	return ball
}

// Body implements Entity
func (b *IronBall) Body() *Body { return &b.body }

// Alive implements Entity
func (b *IronBall) Alive() bool { return !b.body.Dead }

// Hit implements Entity; a ball that strikes anything is spent
func (b *IronBall) Hit(Vec3) { b.body.Dead = true }

// Velocity returns the current velocity
func (b *IronBall) Velocity() Vec3 { return b.velocity }

// Falling reports whether the ball has left the footprint for good
func (b *IronBall) Falling() bool { return b.falling }

// Update implements Entity
func (b *IronBall) Update() {
	b.body.refresh(b.stage)
	b.move()
	b.bound()
}

func (b *IronBall) move() {
	b.velocity.Y += gravity
	b.body.Pos = b.body.Pos.Add(b.velocity.Scale(b.body.ZScale))
}

func (b *IronBall) bound() {
	pos := &b.body.Pos
	if !b.stage.Contains(*pos, b.body.Size) {
		if pos.Y >= 0 {
			b.falling = true
		}
	} else if !b.falling && pos.Y > 0 {
		pos.Y = 0
		b.velocity.X *= bounceDampX
		b.velocity.Y *= bounceDampY
		b.sound.Play(SoundBounce)
	}

	if pos.Y > sinkHeight && !b.body.Dead {
		b.body.Dead = true
		b.sound.Play(SoundSplash)
	}
}
