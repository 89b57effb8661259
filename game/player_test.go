package game

import (
	"math"
	"testing"
)

func newTestPlayer(t *testing.T) (*Player, *ScriptedInput, *soundLog) {
	t.Helper()
	stage := newTestStage(t)
	input := &ScriptedInput{}
	sounds := &soundLog{}
	return NewPlayer(stage, input, sounds, stage.Center()), input, sounds
}

// TestPlayerReset verifies the start-of-round state
func TestPlayerReset(t *testing.T) {
	p, _, _ := newTestPlayer(t)

	if p.Stock() != 3 {
		t.Errorf("Expected stock 3, got %d", p.Stock())
	}
	if p.Mode() != ModeStand {
		t.Errorf("Expected STAND, got %v", p.Mode())
	}
	if p.Body().Facing != DirDown {
		t.Errorf("Expected facing down, got %v", p.Body().Facing)
	}
	if want := (Vec3{X: 512, Z: 384}); p.Body().Pos != want {
		t.Errorf("Expected spawn %v, got %v", want, p.Body().Pos)
	}
	if p.Invincible() || !p.Body().CollisionEnabled {
		t.Error("Expected a vulnerable player at spawn")
	}
	if p.Leap() != 1 {
		t.Errorf("Expected leap 1, got %v", p.Leap())
	}
}

// TestPlayerWalkRight verifies plain horizontal movement
func TestPlayerWalkRight(t *testing.T) {
	p, input, _ := newTestPlayer(t)
	start := p.Body().Pos
	zScale := p.Body().ZScale

	input.Hold(ActionRight)
	p.Update()

	if got, want := p.Body().Pos.X-start.X, playerSpeed*zScale; !approxEqual(got, want) {
		t.Errorf("Expected to move %v right, moved %v", want, got)
	}
	if p.Body().Pos.Z != start.Z {
		t.Errorf("Expected depth unchanged, got %v", p.Body().Pos.Z)
	}
	if p.Body().Facing != DirRight {
		t.Errorf("Expected facing right, got %v", p.Body().Facing)
	}
}

// TestPlayerWalkFollowsVanishingPoints verifies each depth direction steers
// along the matching perspective line
func TestPlayerWalkFollowsVanishingPoints(t *testing.T) {
	tests := []struct {
		name    string
		actions []Action
		angle   func(s *Stage, p Vec2) float64
		facing  Direction
	}{
		{"down", []Action{ActionDown}, func(s *Stage, p Vec2) float64 { return s.AngleFromVanishingPoint(p, VanishCenter) }, DirDown},
		{"up", []Action{ActionUp}, func(s *Stage, p Vec2) float64 { return s.AngleToVanishingPoint(p, VanishCenter) }, DirUp},
		{"right down", []Action{ActionRight, ActionDown}, func(s *Stage, p Vec2) float64 { return s.AngleFromVanishingPoint(p, VanishLeft) }, DirDown},
		{"right up", []Action{ActionRight, ActionUp}, func(s *Stage, p Vec2) float64 { return s.AngleToVanishingPoint(p, VanishRight) }, DirUp},
		{"left down", []Action{ActionLeft, ActionDown}, func(s *Stage, p Vec2) float64 { return s.AngleFromVanishingPoint(p, VanishRight) }, DirDown},
		{"left up", []Action{ActionLeft, ActionUp}, func(s *Stage, p Vec2) float64 { return s.AngleToVanishingPoint(p, VanishLeft) }, DirUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, input, _ := newTestPlayer(t)
			start := p.Body().Pos.Floor()
			want := tt.angle(p.stage, start)

			input.Hold(tt.actions...)
			p.Update()

			moved := p.Body().Pos.Floor().Sub(start)
			if moved.Len() == 0 {
				t.Fatal("Expected the player to move")
			}
			if !approxEqual(moved.Angle(), want) {
				t.Errorf("Expected heading %v, got %v", want, moved.Angle())
			}
			if p.Body().Facing != tt.facing {
				t.Errorf("Expected facing %v, got %v", tt.facing, p.Body().Facing)
			}
		})
	}
}

// TestPlayerJump verifies jumping starts from STAND only and ends on landing
func TestPlayerJump(t *testing.T) {
	p, input, _ := newTestPlayer(t)

	input.Hold(ActionJump)
	p.Update()
	if p.Mode() != ModeJump {
		t.Fatalf("Expected JUMP, got %v", p.Mode())
	}
	if p.Body().Pos.Y >= 0 {
		t.Errorf("Expected the player above the floor, got height %v", p.Body().Pos.Y)
	}
	if got, want := p.MoveVector().Y, -jumpVelocity+gravity; !approxEqual(got, want) {
		t.Errorf("Expected vertical speed %v, got %v", want, got)
	}

	landed := false
	for i := 0; i < 200; i++ {
		input.Hold()
		p.Update()
		if p.Mode() == ModeStand {
			landed = true
			break
		}
	}
	if !landed {
		t.Fatal("Expected the player to land and stand again")
	}
	if p.Stock() != 3 {
		t.Errorf("Expected no life lost on a jump, got stock %d", p.Stock())
	}
}

// TestPlayerHit verifies the knockback and the damage guard
func TestPlayerHit(t *testing.T) {
	p, _, _ := newTestPlayer(t)
	pos := p.Body().Pos

	p.Hit(Vec3{X: pos.X - 10, Z: pos.Z})

	if p.Mode() != ModeDamage {
		t.Fatalf("Expected DAMAGE, got %v", p.Mode())
	}
	mv := p.MoveVector()
	if !approxEqual(mv.X, knockbackSpeed) || !approxEqual(mv.Z, knockbackSpeed) {
		t.Errorf("Expected knockback (%v, %v), got (%v, %v)", knockbackSpeed, knockbackSpeed, mv.X, mv.Z)
	}
	if want := -math.Sin(math.Pi/4) * knockbackLift; !approxEqual(mv.Y, want) {
		t.Errorf("Expected lift %v, got %v", want, mv.Y)
	}
	if p.Leap() != 1.25 {
		t.Errorf("Expected leap 1.25, got %v", p.Leap())
	}
	if !p.Invincible() {
		t.Error("Expected the player to be invincible after a hit")
	}

	p.Hit(Vec3{X: pos.X + 10, Z: pos.Z})
	if p.Leap() != 1.25 {
		t.Errorf("Expected a second hit to be ignored, leap is %v", p.Leap())
	}
}

// TestPlayerInvincibleWindow verifies the blink window length and the
// collision flag that mirrors it
func TestPlayerInvincibleWindow(t *testing.T) {
	p, input, _ := newTestPlayer(t)
	pos := p.Body().Pos

	// A hit from straight below leaves no horizontal knockback
	p.Hit(Vec3{X: pos.X, Z: pos.Z + 10})

	for i := 1; i < invincibleTicks; i++ {
		input.Hold()
		p.Update()
		if !p.Invincible() {
			t.Fatalf("Expected invincibility on tick %d", i)
		}
		if p.Body().CollisionEnabled {
			t.Fatalf("Expected collision disabled on tick %d", i)
		}
		want := uint8(blinkOpaque)
		if i%2 != 0 {
			want = blinkFaded
		}
		if p.BlinkAlpha() != want {
			t.Fatalf("Tick %d: expected alpha %d, got %d", i, want, p.BlinkAlpha())
		}
	}

	input.Hold()
	p.Update()
	if p.Invincible() {
		t.Errorf("Expected invincibility to end after %d ticks", invincibleTicks)
	}
	if p.BlinkAlpha() != blinkOpaque {
		t.Errorf("Expected opaque sprite, got %d", p.BlinkAlpha())
	}

	input.Hold()
	p.Update()
	if !p.Body().CollisionEnabled {
		t.Error("Expected collision enabled once invincibility ends")
	}
}

// TestPlayerLosesLives walks off the stage three times
func TestPlayerLosesLives(t *testing.T) {
	p, input, sounds := newTestPlayer(t)

	for want := 2; want >= 0; want-- {
		before := p.Stock()
		for i := 0; i < 1000 && p.Stock() == before; i++ {
			if !p.Alive() {
				t.Fatalf("Player died with stock %d", p.Stock())
			}
			input.Hold(ActionLeft)
			p.Update()
		}

		if p.Stock() != want {
			t.Fatalf("Expected stock %d, got %d", want, p.Stock())
		}
		if want > 0 && !p.Alive() {
			t.Fatalf("Player died early at stock %d", want)
		}
		if p.Body().Pos.X != 512 || p.Body().Pos.Z != 384 {
			t.Errorf("Expected respawn at center, got %v", p.Body().Pos)
		}
		if p.Mode() != ModeStand || p.Leap() != 1 {
			t.Errorf("Expected STAND and leap 1 after respawn, got %v and %v", p.Mode(), p.Leap())
		}
	}

	if p.Alive() {
		t.Error("Expected the player dead after the third fall")
	}
	if sounds.count(SoundSplash) != 3 {
		t.Errorf("Expected three splashes, got %d", sounds.count(SoundSplash))
	}

	// Stock is floored at zero
	p.sink()
	if p.Stock() != 0 {
		t.Errorf("Expected stock to stay at 0, got %d", p.Stock())
	}
}

// TestPlayerAnimation verifies frame cycling and the damage frame
func TestPlayerAnimation(t *testing.T) {
	p, input, _ := newTestPlayer(t)

	seen := map[int]bool{}
	for i := 0; i < animFrameTicks*animFrames*2; i++ {
		input.Hold()
		p.Update()
		f := p.SpriteFrame()
		if f < 0 || f >= animFrames {
			t.Fatalf("Frame %d out of range", f)
		}
		seen[f] = true
	}
	if len(seen) != animFrames {
		t.Errorf("Expected %d distinct frames, saw %d", animFrames, len(seen))
	}

	p.Hit(p.Body().Pos.Add(Vec3{X: -5}))
	if p.SpriteFrame() != 2 {
		t.Errorf("Expected damage frame 2, got %d", p.SpriteFrame())
	}
	if p.SpriteRow() != 2 {
		t.Errorf("Expected the facing-down row, got %d", p.SpriteRow())
	}
}

// TestPlayerDamageLanding follows a knocked-back player until it stands
// again, checking every landing against the damage bounce rules
func TestPlayerDamageLanding(t *testing.T) {
	p, _, _ := newTestPlayer(t)
	pos := p.Body().Pos
	p.Hit(Vec3{X: pos.X - 10, Z: pos.Z})
	if p.Mode() != ModeDamage {
		t.Fatalf("Expected DAMAGE after the hit, got %v", p.Mode())
	}

	bounces := 0
	stood := false
	for tick := 1; tick <= 200 && !stood; tick++ {
		b := p.Body()
		landing := p.stage.Contains(b.Pos, b.Size) && !p.falling && b.Pos.Y > 0
		prev := p.MoveVector()
		prevTimer := p.timer

		p.Update()
		move := p.MoveVector()

		switch {
		case p.Mode() == ModeStand:
			if !landing || prevTimer <= recoverInterval || prev.Y > 1 {
				t.Fatalf("Tick %d: stood up with landing=%v timer=%d move.Y=%v", tick, landing, prevTimer, prev.Y)
			}
			stood = true
		case p.Mode() != ModeDamage:
			t.Fatalf("Tick %d: expected DAMAGE, got %v", tick, p.Mode())
		case !landing:
			if !approxEqual(move.Y, prev.Y+gravity) || move.X != prev.X {
				t.Fatalf("Tick %d: expected free flight, got %v from %v", tick, move, prev)
			}
		case prevTimer <= recoverInterval:
			if !approxEqual(move.Y, prev.Y+gravity) {
				t.Fatalf("Tick %d: expected no bounce during recovery, got move.Y %v from %v", tick, move.Y, prev.Y)
			}
			if !approxEqual(move.X, prev.X*bounceDampX) {
				t.Fatalf("Tick %d: expected damped move.X, got %v from %v", tick, move.X, prev.X)
			}
		default:
			if !approxEqual(move.Y, prev.Y*damageBounce+gravity) {
				t.Fatalf("Tick %d: expected bounce to %v, got %v", tick, prev.Y*damageBounce+gravity, move.Y)
			}
			if !approxEqual(move.X, prev.X*bounceDampX) || !approxEqual(move.Z, prev.Z*bounceDampX) {
				t.Fatalf("Tick %d: expected damped floor movement, got %v from %v", tick, move, prev)
			}
			bounces++
		}
	}

	if bounces == 0 {
		t.Error("Expected at least one damage bounce")
	}
	if !stood {
		t.Error("Expected the player to stand again")
	}
}

// TestPlayerLeavesFootprint verifies leaving the floor switches to JUMP
// unless the player is being knocked back
func TestPlayerLeavesFootprint(t *testing.T) {
	t.Run("walking", func(t *testing.T) {
		p, input, _ := newTestPlayer(t)
		for i := 0; i < 500; i++ {
			input.Hold(ActionLeft)
			p.Update()
			b := p.Body()
			if !p.stage.Contains(b.Pos, b.Size) {
				if p.Mode() != ModeJump {
					t.Errorf("Expected JUMP off the floor, got %v", p.Mode())
				}
				return
			}
		}
		t.Fatal("Player never left the floor")
	})

	t.Run("knocked back", func(t *testing.T) {
		p, _, _ := newTestPlayer(t)
		b := p.Body()
		p.Hit(Vec3{X: b.Pos.X + 10, Z: b.Pos.Z})
		b.Pos.X = p.stage.LeftBoundary(b.Pos.Z) - b.Size.X

		p.Update()
		if p.Mode() != ModeDamage {
			t.Errorf("Expected DAMAGE to survive leaving the floor, got %v", p.Mode())
		}
		if !p.falling {
			t.Error("Expected the player to start falling")
		}
	})
}
