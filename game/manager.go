package game

import (
	"cmp"
	"math/rand"
	"slices"

	"go.uber.org/zap"
)

const (
	initialCannonsPerSide = 4
	cannonSideOffset      = 500
	cannonSpawnGate       = 60 * 10 // ticks before reinforcements start
	cannonSpawnInterval   = 60 * 2
	maxCannons            = 80
)

// EntityManager owns every entity in a round and runs them in a fixed order
type EntityManager struct {
	stage  *Stage
	sound  SoundPlayer
	logger *zap.Logger
	rng    *rand.Rand

	player   *Player
	cannons  []*Cannon
	balls    []*IronBall
	drawList []Entity

	nextID     EntityID
	ticks      int
	spawnTimer int
}

// NewEntityManager creates a manager with its own random source seeded by seed
func NewEntityManager(stage *Stage, input InputProvider, sound SoundPlayer, logger *zap.Logger, seed int64) *EntityManager {
	if sound == nil {
		sound = NopSound{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &EntityManager{
		stage:  stage,
		sound:  sound,
		logger: logger,
		rng:    rand.New(rand.NewSource(seed)),
	}
	m.player = NewPlayer(stage, input, sound, stage.Center())
	m.Reset()
	return m
}

// Reset clears every projectile, restores the player and places the opening
// cannons
func (m *EntityManager) Reset() {
	m.cannons = m.cannons[:0]
	m.balls = m.balls[:0]
	m.drawList = m.drawList[:0]
	m.ticks = 0
	m.spawnTimer = 0

	m.player.Reset()
	m.assignID(&m.player.body)
	m.initCannons()
	m.sortDrawList()
}

func (m *EntityManager) assignID(b *Body) {
	m.nextID++
	b.ID = m.nextID
}

func (m *EntityManager) initCannons() {
	z := m.stage.MidDepth()
	left := Vec3{X: m.stage.LeftBoundary(z) - cannonSideOffset, Z: z}
	right := Vec3{X: m.stage.RightBoundary(z) + cannonSideOffset, Z: z}

	for i := 0; i < initialCannonsPerSide; i++ {
		m.AddCannon(left)
	}
	for i := 0; i < initialCannonsPerSide; i++ {
		m.AddCannon(right)
	}
}

// AddCannon places a cannon at pos facing the stage center with random speed,
// cycle length and sweep direction. It is a no-op at the cannon cap.
func (m *EntityManager) AddCannon(pos Vec3) *Cannon {
	if len(m.cannons) >= maxCannons {
		return nil
	}

	facing := DirRight
	if pos.X > m.stage.CenterX() {
		facing = DirLeft
	}
	moveDir := MoveUp
	if m.rng.Intn(2) == 0 {
		moveDir = MoveDown
	}
	speed := (2-1)*m.rng.Float64() + 1
	phase := (3-1)*m.rng.Float64() + 1

	c := NewCannon(m.stage, m.sound, speed, phase, pos, facing, moveDir)
	m.assignID(&c.body)
	m.cannons = append(m.cannons, c)

	m.logger.Debug("cannon added",
		zap.Uint32("id", uint32(c.body.ID)),
		zap.Stringer("facing", facing),
		zap.Float64("speed", speed),
		zap.Float64("phase", phase),
		zap.Int("cannons", len(m.cannons)),
	)
	return c
}

// Player returns the player
func (m *EntityManager) Player() *Player { return m.player }

// Cannons returns the live cannons. The slice is reused across ticks.
func (m *EntityManager) Cannons() []*Cannon { return m.cannons }

// IronBalls returns the live iron balls. The slice is reused across ticks.
func (m *EntityManager) IronBalls() []*IronBall { return m.balls }

// DrawList returns every entity ordered far to near by depth scale. It is
// rebuilt each tick and must not be retained.
func (m *EntityManager) DrawList() []Entity { return m.drawList }

// Ticks returns the number of Update calls since Reset
func (m *EntityManager) Ticks() int { return m.ticks }

// Update advances every entity by one tick, spawns and fires cannons, rebuilds
// the draw order and drops dead projectiles
func (m *EntityManager) Update() {
	m.player.Update()
	for _, c := range m.cannons {
		c.Update()
	}
	for _, b := range m.balls {
		b.Update()
	}

	m.spawnCannon()
	m.fireCannons()
	m.sortDrawList()
	m.sweep()
	m.ticks++
}

func (m *EntityManager) spawnCannon() {
	if m.ticks <= cannonSpawnGate || len(m.cannons) >= maxCannons {
		return
	}

	m.spawnTimer++
	if m.spawnTimer < cannonSpawnInterval {
		return
	}
	m.spawnTimer = 0

	z := m.stage.MidDepth()
	pos := Vec3{X: m.stage.RightBoundary(z) + cannonSideOffset, Z: z}
	if m.rng.Intn(2) == 0 {
		pos.X = m.stage.LeftBoundary(z) - cannonSideOffset
	}
	m.AddCannon(pos)
}

func (m *EntityManager) fireCannons() {
	for _, c := range m.cannons {
		ball := c.CreateIronBall()
		if ball == nil {
			continue
		}
		m.assignID(&ball.body)
		m.balls = append(m.balls, ball)
		m.sound.Play(SoundShot)
	}
}

func (m *EntityManager) sortDrawList() {
	m.drawList = m.drawList[:0]
	m.drawList = append(m.drawList, m.player)
	for _, c := range m.cannons {
		if c.Alive() {
			m.drawList = append(m.drawList, c)
		}
	}
	for _, b := range m.balls {
		if b.Alive() {
			m.drawList = append(m.drawList, b)
		}
	}
	SortByDepth(m.drawList)
}

// SortByDepth orders entities by ascending depth scale, keeping equal scales
// in their original order
func SortByDepth(entities []Entity) {
	slices.SortStableFunc(entities, func(a, b Entity) int {
		return cmp.Compare(a.Body().ZScale, b.Body().ZScale)
	})
}

// sweep rebuilds the projectile collections without the dead entries
func (m *EntityManager) sweep() {
	m.cannons = filterAlive(m.cannons)
	m.balls = filterAlive(m.balls)
}

func filterAlive[T Entity](in []T) []T {
	out := make([]T, 0, len(in))
	for _, e := range in {
		if e.Alive() {
			out = append(out, e)
		}
	}
	return out
}
