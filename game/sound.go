package game

// Sound identifies a fire-and-forget sound effect raised by the simulation
type Sound int

const (
	// SoundShot plays when a cannon fires an iron ball
	SoundShot Sound = iota
	// SoundHit plays when a ball strikes the player
	SoundHit
	// SoundBounce plays when a ball lands on the floor
	SoundBounce
	// SoundSplash plays when the player or a ball drops into the water
	SoundSplash
)

func (s Sound) String() string {
	switch s {
	case SoundShot:
		return "shot"
	case SoundHit:
		return "hit"
	case SoundBounce:
		return "bounce"
	case SoundSplash:
		return "splash"
	default:
		return "unknown"
	}
}

// SoundPlayer receives sound events. Implementations must not block.
type SoundPlayer interface {
	Play(s Sound)
}

// NopSound discards every sound event
type NopSound struct{}

// Play does nothing
func (NopSound) Play(Sound) {}

// SoundFunc adapts a function to SoundPlayer
type SoundFunc func(Sound)

// Play calls f(s)
func (f SoundFunc) Play(s Sound) { f(s) }
