package game

import (
	"math"
	"testing"
)

func newTestCannon(t *testing.T, stage *Stage) *Cannon {
	t.Helper()
	z := stage.MidDepth()
	pos := Vec3{X: stage.LeftBoundary(z) - cannonSideOffset, Z: z}
	return NewCannon(stage, nil, 1, 1, pos, DirRight, MoveUp)
}

// TestCannonPhases verifies thresholds derive from the phase length
func TestCannonPhases(t *testing.T) {
	stage := newTestStage(t)
	c := NewCannon(stage, nil, 1, 1.5, Vec3{Z: stage.MidDepth()}, DirRight, MoveDown)

	accel, decel, shot := c.Phases()
	if accel != 90 || decel != 180 || shot != 270 {
		t.Errorf("Expected phases 90/180/270, got %v/%v/%v", accel, decel, shot)
	}
	if c.Timer() != 90 {
		t.Errorf("Expected timer to start at the accelerate threshold, got %d", c.Timer())
	}
}

// TestCannonCycle walks a cannon through a full accelerate, decelerate and
// fire cycle
func TestCannonCycle(t *testing.T) {
	stage := newTestStage(t)
	c := newTestCannon(t, stage)
	_, decel, _ := c.Phases()

	// The first cycle starts already at the accelerate threshold
	c.Update()
	if !approxEqual(c.Movement(), cannonAcceleration) {
		t.Fatalf("Expected movement %v after the first tick, got %v", cannonAcceleration, c.Movement())
	}

	reachedMax := false
	for i := 0; i < 1000 && !c.ShotReady(); i++ {
		prev := c.Movement()
		c.Update()
		m := c.Movement()

		if m < 0 || m > cannonMaxMovement {
			t.Fatalf("Movement %v out of [0, 5]", m)
		}
		if reachedMax && float64(c.Timer()) <= decel && m != cannonMaxMovement {
			t.Fatalf("Movement left the clamp before decelerating: %v at timer %d", m, c.Timer())
		}
		if m == cannonMaxMovement {
			reachedMax = true
		}
		if float64(c.Timer()) > decel && m > prev {
			t.Fatalf("Movement grew while decelerating: %v -> %v", prev, m)
		}
	}

	if !reachedMax {
		t.Error("Expected movement to reach 5")
	}
	if !c.ShotReady() {
		t.Fatal("Expected the cannon to be ready to fire")
	}
	if c.Timer() != 0 || c.Movement() != 0 {
		t.Errorf("Expected timer and movement reset on firing, got %d and %v", c.Timer(), c.Movement())
	}

	if c.CreateIronBall() == nil {
		t.Fatal("Expected an iron ball from a ready cannon")
	}
	if c.CreateIronBall() != nil {
		t.Error("Expected a single iron ball per shot")
	}

	// The next cycle waits the full accelerate phase before moving again
	accel, _, _ := c.Phases()
	for i := 1; i <= int(accel); i++ {
		c.Update()
		if c.Movement() != 0 {
			t.Fatalf("Expected no movement on tick %d of the idle phase, got %v", i, c.Movement())
		}
		if c.CreateIronBall() != nil {
			t.Fatalf("Unexpected iron ball on tick %d of the idle phase", i)
		}
	}
	c.Update()
	if !approxEqual(c.Movement(), cannonAcceleration) {
		t.Errorf("Expected movement to resume after %v ticks, got %v", accel, c.Movement())
	}
}

// TestCannonCreateIronBall verifies launch speed grows with distance from
// the nearer boundary
func TestCannonCreateIronBall(t *testing.T) {
	stage := newTestStage(t)
	c := newTestCannon(t, stage)

	if c.CreateIronBall() != nil {
		t.Fatal("Expected no iron ball before the shot is ready")
	}

	c.shotFlag = true
	ball := c.CreateIronBall()
	if ball == nil {
		t.Fatal("Expected an iron ball")
	}

	pos := c.Body().Pos
	v0 := ironBallBaseSpeed + math.Abs(stage.LeftBoundary(pos.Z)-pos.X)/ironBallBaseSpeed/3
	vel := ball.Velocity()
	if !approxEqual(vel.X, v0*math.Cos(math.Pi/4)) {
		t.Errorf("Expected horizontal speed %v, got %v", v0*math.Cos(math.Pi/4), vel.X)
	}
	if !approxEqual(vel.Y, -v0*math.Sin(math.Pi/4)) {
		t.Errorf("Expected vertical speed %v, got %v", -v0*math.Sin(math.Pi/4), vel.Y)
	}
	if ball.Body().Pos != pos {
		t.Errorf("Expected ball at cannon position %v, got %v", pos, ball.Body().Pos)
	}
}

// TestCannonDepthClamp verifies the cannon never leaves the depth bounds
func TestCannonDepthClamp(t *testing.T) {
	stage := newTestStage(t)
	c := newTestCannon(t, stage)

	for i := 0; i < 2000; i++ {
		c.Update()
		b := c.Body()
		if b.Pos.Z < stage.Top()-b.Size.Y/2-1e-9 || b.Pos.Z > stage.Bottom()-b.Size.Y/2+1e-9 {
			t.Fatalf("Tick %d: depth %v outside the stage bounds", i, b.Pos.Z)
		}
	}
}
