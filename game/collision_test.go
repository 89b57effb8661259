package game

import (
	"testing"

	"go.uber.org/zap/zaptest"
)

func testBody(x, z, zScale, width float64) *Body {
	return &Body{
		Pos:              Vec3{X: x, Z: z},
		Size:             Vec2{width, width},
		ZScale:           zScale,
		CollisionEnabled: true,
	}
}

// TestDepthWeightEqualDepth verifies no penalty at equal depth
func TestDepthWeightEqualDepth(t *testing.T) {
	for _, s := range []float64{0.65, 0.8, 1} {
		a, b := testBody(0, 0, s, 64), testBody(10, 0, s, 64)
		if w := DepthWeight(a, b); w != 1 {
			t.Errorf("Expected weight 1 at scale %v, got %v", s, w)
		}
		if r := CombinedRadius(a, b); r != 64 {
			t.Errorf("Expected radius 64 at scale %v, got %v", s, r)
		}
	}
}

// TestCombinedRadiusShrinks verifies the radius falls strictly with the
// depth gap until no collision is possible
func TestCombinedRadiusShrinks(t *testing.T) {
	a := testBody(500, 400, 0.8, 64)
	prev := CombinedRadius(a, testBody(500, 400, 0.8, 64))

	for _, gap := range []float64{0.005, 0.01, 0.02, 0.03} {
		r := CombinedRadius(a, testBody(500, 400, 0.8+gap, 64))
		if r >= prev {
			t.Errorf("Expected radius to shrink at gap %v: %v >= %v", gap, r, prev)
		}
		prev = r
	}

	far := testBody(500, 400, 0.8+1.0/depthPenalty+0.001, 64)
	if r := CombinedRadius(a, far); r > 0 {
		t.Errorf("Expected a non-positive radius, got %v", r)
	}
	if IsColliding(a, far) {
		t.Error("Expected no collision once the weighted radius is gone")
	}
}

// TestIsColliding covers overlap, separation and disabled bodies
func TestIsColliding(t *testing.T) {
	tests := []struct {
		name string
		a, b *Body
		want bool
	}{
		{"overlapping", testBody(500, 400, 0.8, 64), testBody(530, 400, 0.8, 64), true},
		{"touching", testBody(500, 400, 0.8, 64), testBody(564, 400, 0.8, 64), false},
		{"apart", testBody(500, 400, 0.8, 64), testBody(600, 400, 0.8, 64), false},
		{"depth gap", testBody(500, 400, 0.8, 64), testBody(530, 400, 0.82, 64), false},
		{"small depth gap", testBody(500, 400, 0.8, 64), testBody(510, 400, 0.81, 64), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsColliding(tt.a, tt.b); got != tt.want {
				t.Errorf("IsColliding = %v, want %v", got, tt.want)
			}
		})
	}

	a, b := testBody(500, 400, 0.8, 64), testBody(500, 400, 0.8, 64)
	b.CollisionEnabled = false
	if IsColliding(a, b) || IsColliding(b, a) {
		t.Error("Expected disabled bodies never to collide")
	}
}

// TestIsCollidingUsesHeight verifies the projected point includes height
func TestIsCollidingUsesHeight(t *testing.T) {
	a := testBody(500, 400, 0.8, 64)
	b := testBody(500, 400, 0.8, 64)
	b.Pos.Y = -100

	if IsColliding(a, b) {
		t.Error("Expected a body high above not to collide")
	}
}

// TestCollisionSystemHit verifies a ball on the player is dispatched both ways
func TestCollisionSystemHit(t *testing.T) {
	stage := newTestStage(t)
	sounds := &soundLog{}
	logger := zaptest.NewLogger(t)
	m := NewEntityManager(stage, NoInput{}, sounds, logger, 1)
	c := NewCollisionSystem(m, sounds, logger)

	player := m.Player()
	ball := NewIronBall(stage, sounds, player.Body().Pos.Add(Vec3{X: 5}), DirLeft, 0, 0)
	ball.Body().refresh(stage)
	m.balls = append(m.balls, ball)

	if n := c.CheckCollisions(); n != 1 {
		t.Fatalf("Expected one hit, got %d", n)
	}
	if player.Mode() != ModeDamage {
		t.Errorf("Expected the player in DAMAGE, got %v", player.Mode())
	}
	if ball.Alive() {
		t.Error("Expected the ball to be spent")
	}
	if sounds.count(SoundHit) != 1 {
		t.Errorf("Expected one hit sound, got %d", sounds.count(SoundHit))
	}
	if c.Hits() != 1 {
		t.Errorf("Expected hit count 1, got %d", c.Hits())
	}

	if n := c.CheckCollisions(); n != 0 {
		t.Errorf("Expected a spent ball not to hit again, got %d", n)
	}
}
