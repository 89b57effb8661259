package game

import "math"

// ActionMode is the player's top-level state
type ActionMode int

const (
	ModeStand ActionMode = iota
	ModeJump
	ModeDamage
)

func (m ActionMode) String() string {
	switch m {
	case ModeStand:
		return "stand"
	case ModeJump:
		return "jump"
	case ModeDamage:
		return "damage"
	default:
		return "unknown"
	}
}

const (
	playerSpeed  = 5
	playerWidth  = 72
	playerHeight = 96
	playerStock  = 3

	jumpVelocity    = 13.0
	fallScale       = 1.5
	recoverInterval = 20  // ticks after a hit before the player may stand again
	invincibleTicks = 120 // length of the post-hit blink window

	knockbackSpeed = 1.5
	knockbackLift  = 15.0
	leapStep       = 0.25

	damageBounce = -0.5

	animFrameTicks = 6
	animFrames     = 3

	blinkOpaque = 255
	blinkFaded  = 100
)

// Player is the input-driven protagonist
type Player struct {
	body  Body
	stage *Stage
	input InputProvider
	sound SoundPlayer
	spawn Vec3

	stock      int
	timer      int
	animTimer  int
	invincible int // -1 when not invincible
	leap       float64
	falling    bool
	move       Vec3
	mode       ActionMode
}

// NewPlayer creates a player that spawns at spawn. Call Reset before use.
func NewPlayer(stage *Stage, input InputProvider, sound SoundPlayer, spawn Vec2) *Player {
	if input == nil {
		input = NoInput{}
	}
	if sound == nil {
		sound = NopSound{}
	}
	p := &Player{
		body:  newBody(KindPlayer, Vec3{}, Vec2{playerWidth, playerHeight}, playerSpeed, DirDown),
		stage: stage,
		input: input,
		sound: sound,
		spawn: Vec3{X: spawn.X, Z: spawn.Y},
	}
	p.Reset()
	return p
}

// Reset restores the start-of-round state
func (p *Player) Reset() {
	p.stock = playerStock
	p.timer = 0
	p.animTimer = 0
	p.invincible = -1
	p.leap = 1.0
	p.move = Vec3{}
	p.mode = ModeStand
	p.falling = false
	p.body.Dead = false
	p.body.Facing = DirDown
	p.body.CollisionEnabled = true
	p.body.Pos = p.spawn
	p.body.refresh(p.stage)
}

// SetInput replaces the input source
func (p *Player) SetInput(input InputProvider) {
	if input == nil {
		input = NoInput{}
	}
	p.input = input
}

// Body implements Entity
func (p *Player) Body() *Body { return &p.body }

// Alive implements Entity
func (p *Player) Alive() bool { return !p.body.Dead }

// Stock returns the remaining lives
func (p *Player) Stock() int { return p.stock }

// Mode returns the current action mode
func (p *Player) Mode() ActionMode { return p.mode }

// MoveVector returns the current move vector
func (p *Player) MoveVector() Vec3 { return p.move }

// Leap returns the knockback multiplier applied to the next hit
func (p *Player) Leap() float64 { return p.leap }

// Invincible reports whether the post-hit window is running
func (p *Player) Invincible() bool { return p.invincible >= 0 }

// BlinkAlpha returns the sprite alpha for the invincibility blink
func (p *Player) BlinkAlpha() uint8 {
	if p.Invincible() && p.invincible%2 != 0 {
		return blinkFaded
	}
	return blinkOpaque
}

// SpriteRow returns the sprite sheet row for the current facing
func (p *Player) SpriteRow() int {
	switch p.body.Facing {
	case DirUp:
		return 0
	case DirRight:
		return 1
	case DirLeft:
		return 3
	default:
		return 2
	}
}

// SpriteFrame returns the sprite sheet column for the current animation tick
func (p *Player) SpriteFrame() int {
	if p.mode == ModeDamage {
		return 2
	}
	return p.animTimer / animFrameTicks
}

// Update implements Entity
func (p *Player) Update() {
	p.walk()
	p.bound()
	p.jump()
	p.fall()
	p.knockback()
	p.body.refresh(p.stage)
	p.body.CollisionEnabled = !p.Invincible()
	p.timer++
	p.tickInvincible()
	p.tickAnimation()
}

// walk resolves eight-way input into floor movement that follows the
// perspective lines
func (p *Player) walk() {
	if p.mode == ModeDamage {
		return
	}
	b := &p.body
	pos := b.Pos.Floor()
	velocity := b.Speed * b.ZScale
	weight := b.XScale * b.ZScale

	p.move.X = 0
	p.move.Z = 0
	angle := 0.0

	left := p.input.Pressed(ActionLeft)
	right := p.input.Pressed(ActionRight)
	up := p.input.Pressed(ActionUp)
	down := p.input.Pressed(ActionDown)

	steer := func(a float64, facing Direction) {
		angle = a
		p.move.X = velocity * math.Cos(angle)
		p.move.Z = velocity * math.Sin(angle) * weight
		b.Facing = facing
	}

	if right {
		angle = math.Atan2(0, 1)
		p.move.X = velocity * math.Cos(angle)
		b.Facing = DirRight
	}
	if left {
		angle = math.Atan2(0, -1)
		p.move.X = velocity * math.Cos(angle)
		b.Facing = DirLeft
	}
	if down {
		steer(p.stage.AngleFromVanishingPoint(pos, VanishCenter), DirDown)
	}
	if up {
		steer(p.stage.AngleToVanishingPoint(pos, VanishCenter), DirUp)
	}
	if right && down {
		steer(p.stage.AngleFromVanishingPoint(pos, VanishLeft), DirDown)
	}
	if right && up {
		steer(p.stage.AngleToVanishingPoint(pos, VanishRight), DirUp)
	}
	if left && down {
		steer(p.stage.AngleFromVanishingPoint(pos, VanishRight), DirDown)
	}
	if left && up {
		steer(p.stage.AngleToVanishingPoint(pos, VanishLeft), DirUp)
	}

	speed := math.Hypot(p.move.X, p.move.Z)
	p.move.X = speed * math.Cos(angle)
	p.move.Z = speed * math.Sin(angle)

	b.Pos.X += p.move.X
	b.Pos.Z += p.move.Z
}

// bound applies the floor: leaving the footprint starts a fall, landing
// snaps height to zero and dropping below sinkHeight costs a life
func (p *Player) bound() {
	pos := &p.body.Pos
	if !p.stage.Contains(*pos, p.body.Size) {
		if p.mode != ModeDamage {
			p.mode = ModeJump
		}
		if pos.Y >= 0 {
			p.falling = true
		}
	} else if !p.falling && pos.Y > 0 {
		if p.move.Y <= 1 && p.timer > recoverInterval {
			p.mode = ModeStand
		}
		pos.Y = 0

		switch p.mode {
		case ModeDamage:
			p.move.X *= bounceDampX
			p.move.Z *= bounceDampX
			// no bounce on the landing right after the hit
			if p.timer > recoverInterval {
				p.move.Y *= damageBounce
			}
		default:
			p.move.Y = 0
		}
	}

	if pos.Y > sinkHeight {
		p.sink()
	}
}

func (p *Player) sink() {
	p.sound.Play(SoundSplash)

	p.body.Pos = p.spawn
	p.invincible = 0
	p.falling = false
	p.mode = ModeStand
	p.move.Y = 0
	p.leap = 1.0
	if p.stock > 0 {
		p.stock--
	}
	p.body.Dead = p.stock <= 0
}

func (p *Player) jump() {
	if p.mode == ModeJump || p.mode == ModeDamage {
		return
	}
	if p.input.JustPressed(ActionJump) {
		p.mode = ModeJump
		p.move.Y = -jumpVelocity
		p.falling = false
	}
}

// fall integrates gravity every tick regardless of mode
func (p *Player) fall() {
	p.move.Y += gravity
	p.body.Pos.Y += p.move.Y * p.body.ZScale * fallScale
}

func (p *Player) knockback() {
	if p.mode != ModeDamage {
		return
	}
	p.body.Pos.X += p.move.X * p.body.ZScale
	p.body.Pos.Z += p.move.Z * p.body.ZScale
}

func (p *Player) tickInvincible() {
	if !p.Invincible() {
		return
	}
	p.invincible++
	if p.invincible >= invincibleTicks {
		p.invincible = -1
	}
}

func (p *Player) tickAnimation() {
	if p.mode == ModeDamage {
		return
	}
	p.animTimer++
	if p.animTimer >= animFrameTicks*animFrames {
		p.animTimer = 0
	}
}

// Hit implements Entity. The player is knocked away from source; each hit
// throws the player further than the last.
func (p *Player) Hit(source Vec3) {
	if p.mode == ModeDamage || p.Invincible() {
		return
	}
	p.mode = ModeDamage

	angle := math.Atan2(p.body.Pos.Z-source.Z, p.body.Pos.X-source.X)
	p.move = Vec3{
		X: math.Cos(angle) * knockbackSpeed,
		Y: -math.Sin(math.Pi/4) * knockbackLift * p.leap,
		// depth knockback reuses the horizontal component
		Z: math.Cos(angle) * knockbackSpeed,
	}
	p.falling = false
	p.timer = 0
	p.leap += leapStep
	p.invincible = 0
}
