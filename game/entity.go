package game

// EntityID identifies an entity for the lifetime of a session
type EntityID uint32

// EntityKind identifies the concrete type behind an Entity
type EntityKind int

const (
	KindPlayer EntityKind = iota
	KindCannon
	KindIronBall
)

func (k EntityKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindCannon:
		return "cannon"
	case KindIronBall:
		return "ironball"
	default:
		return "unknown"
	}
}

// Direction is an entity's facing. LEFT and RIGHT double as horizontal signs.
type Direction int

const (
	DirLeft    Direction = -1
	DirRight   Direction = 1
	DirDown    Direction = 2
	DirUp      Direction = 3
	DirUnknown Direction = 4
)

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirUp:
		return "up"
	default:
		return "unknown"
	}
}

// aboveStageHeight is the height (positive is down) at or above which an
// entity is drawn in front of the stage art
const aboveStageHeight = 10

// Body holds the state shared by every simulated entity
type Body struct {
	ID   EntityID
	Kind EntityKind

	// Logical position (see Vec3 for axes)
	Pos Vec3

	// Unscaled size and the depth-scaled size used for bounds and collision
	BaseSize Vec2
	Size     Vec2

	// Foreshortening factor from depth, and horizontal speed correction
	ZScale float64
	XScale float64

	// Base movement speed in pixels per tick
	Speed float64

	Facing Direction

	// AboveStage is true while the entity is drawn in front of the stage art
	AboveStage bool

	CollisionEnabled bool

	Dead bool
}

func newBody(kind EntityKind, pos Vec3, size Vec2, speed float64, facing Direction) Body {
	return Body{
		Kind:             kind,
		Pos:              pos,
		BaseSize:         size,
		Size:             size,
		Speed:            speed,
		Facing:           facing,
		AboveStage:       true,
		CollisionEnabled: true,
	}
}

// refresh recomputes the depth-derived fields from the current position
func (b *Body) refresh(stage *Stage) {
	b.ZScale = stage.DepthScale(b.Pos.Z)
	b.XScale = stage.WidthScale(b.Pos.X, b.Pos.Z)
	b.Size = b.BaseSize.Scale(b.ZScale)
	b.AboveStage = b.Pos.Y <= aboveStageHeight || b.Pos.Z > stage.Bottom()-b.Size.Y/2
}

// DrawPosition returns the projected screen point of the sprite center
func (b *Body) DrawPosition() Vec2 { return b.Pos.Projected() }

// Entity is the capability set the manager and renderer need from every
// simulated body
type Entity interface {
	// Body exposes the shared state
	Body() *Body

	// Update advances the entity by one tick
	Update()

	// Hit notifies the entity that it was struck from source
	Hit(source Vec3)

	// Alive returns false once the entity should be removed
	Alive() bool
}
