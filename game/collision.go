package game

import (
	"math"

	"go.uber.org/zap"
)

// depthPenalty scales how quickly a difference in depth scale shrinks the
// collision radius
const depthPenalty = 30

// CollisionSystem resolves hits between the player and iron balls
type CollisionSystem struct {
	manager *EntityManager
	sound   SoundPlayer
	logger  *zap.Logger

	// Total hits since creation
	hits int
}

// NewCollisionSystem creates a new collision system
func NewCollisionSystem(manager *EntityManager, sound SoundPlayer, logger *zap.Logger) *CollisionSystem {
	if sound == nil {
		sound = NopSound{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CollisionSystem{
		manager: manager,
		sound:   sound,
		logger:  logger,
	}
}

// Reset clears the hit count
func (c *CollisionSystem) Reset() { c.hits = 0 }

// Hits returns the number of collisions handled so far
func (c *CollisionSystem) Hits() int { return c.hits }

// CheckCollisions tests the player against every live iron ball and returns
// the number of hits this tick
func (c *CollisionSystem) CheckCollisions() int {
	player := c.manager.Player()
	n := 0
	for _, ball := range c.manager.IronBalls() {
		if !ball.Alive() {
			continue
		}
		if IsColliding(player.Body(), ball.Body()) {
			c.HandleProjectileCollision(player, ball)
			n++
		}
	}
	c.hits += n
	return n
}

// HandleProjectileCollision knocks the player away from the ball and spends it
func (c *CollisionSystem) HandleProjectileCollision(player *Player, ball *IronBall) {
	c.sound.Play(SoundHit)
	src := ball.Body().Pos
	player.Hit(src)
	ball.Hit(player.Body().Pos)

	c.logger.Debug("player hit",
		zap.Uint32("ball", uint32(ball.Body().ID)),
		zap.Stringer("mode", player.Mode()),
		zap.Float64("leap", player.Leap()),
	)
}

// DepthWeight returns the factor applied to the combined radius of two
// bodies. It is 1 at equal depth and falls as their depth scales diverge.
func DepthWeight(a, b *Body) float64 {
	return 1 - math.Abs(a.ZScale-b.ZScale)*depthPenalty
}

// CombinedRadius returns the depth-weighted collision radius of two bodies
func CombinedRadius(a, b *Body) float64 {
	return (a.Size.X/2 + b.Size.X/2) * DepthWeight(a, b)
}

// IsColliding reports whether two bodies overlap on screen once the depth
// weight is applied
func IsColliding(a, b *Body) bool {
	if !a.CollisionEnabled || !b.CollisionEnabled {
		return false
	}

	distance := a.Pos.Projected().DistanceTo(b.Pos.Projected())
	radius := a.Size.X/2 + b.Size.X/2
	if distance > radius {
		return false
	}
	return distance < radius*DepthWeight(a, b)
}
