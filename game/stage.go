package game

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerateStage is returned when the floor corners cannot form a
// trapezoid with finite boundaries and vanishing points
var ErrDegenerateStage = errors.New("degenerate stage geometry")

// VanishingPoint selects one of the stage's three perspective points
type VanishingPoint int

const (
	VanishLeft VanishingPoint = iota
	VanishCenter
	VanishRight
)

// Stage is the immutable trapezoid floor and its perspective math.
// All methods are pure; a Stage may be shared freely once built.
type Stage struct {
	origin Vec2
	size   Vec2

	// Absolute corner positions
	farLeft, nearLeft, nearRight, farRight Vec2

	vanish [3]Vec2

	// Smallest width correction, reached at the boundary lines
	xScaleMin float64
}

// NewStage builds the stage described by cfg and precomputes its vanishing
// points
func NewStage(cfg Config) (*Stage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	origin := cfg.StageOrigin()
	s := &Stage{
		origin:    origin,
		size:      cfg.StageSize,
		farLeft:   cfg.FarLeft.Add(origin),
		nearLeft:  cfg.NearLeft.Add(origin),
		nearRight: cfg.NearRight.Add(origin),
		farRight:  cfg.FarRight.Add(origin),
	}
	if err := s.validate(); err != nil {
		return nil, err
	}

	s.vanish[VanishCenter] = intersection(s.nearLeft, s.farLeft, s.nearRight, s.farRight)
	y := s.vanish[VanishCenter].Y
	s.vanish[VanishLeft] = Vec2{pointX(s.farLeft, s.nearRight, y), y}
	s.vanish[VanishRight] = Vec2{pointX(s.farRight, s.nearLeft, y), y}
	s.xScaleMin = s.size.Y / s.farLeft.DistanceTo(s.nearLeft)

	for _, vp := range s.vanish {
		if math.IsNaN(vp.X) || math.IsInf(vp.X, 0) || math.IsNaN(vp.Y) || math.IsInf(vp.Y, 0) {
			return nil, fmt.Errorf("%w: vanishing point is not finite", ErrDegenerateStage)
		}
	}
	return s, nil
}

func (s *Stage) validate() error {
	switch {
	case s.farLeft.Y != s.farRight.Y || s.nearLeft.Y != s.nearRight.Y:
		return fmt.Errorf("%w: far and near edges must be horizontal", ErrDegenerateStage)
	case s.farLeft.Y >= s.nearLeft.Y:
		return fmt.Errorf("%w: far edge at %v is not above near edge at %v", ErrDegenerateStage, s.farLeft.Y, s.nearLeft.Y)
	case s.farLeft.Y != s.origin.Y || s.nearLeft.Y != s.origin.Y+s.size.Y:
		return fmt.Errorf("%w: edges do not span the stage height", ErrDegenerateStage)
	case s.UpperWidth() <= 0 || s.LowerWidth() <= 0:
		return fmt.Errorf("%w: upper width %v, lower width %v", ErrDegenerateStage, s.UpperWidth(), s.LowerWidth())
	case s.UpperWidth() >= s.LowerWidth():
		return fmt.Errorf("%w: far edge must be narrower than near edge", ErrDegenerateStage)
	case s.farLeft.X == s.nearLeft.X || s.farRight.X == s.nearRight.X:
		return fmt.Errorf("%w: side edges must be slanted", ErrDegenerateStage)
	}

	// Edges converge toward the horizon; a stage center outside the floor
	// would leave WidthScale without a reference distance.
	cx := s.CenterX()
	if cx <= s.nearLeft.X || cx >= s.nearRight.X || cx <= s.farLeft.X || cx >= s.farRight.X {
		return fmt.Errorf("%w: stage center %v lies outside the floor", ErrDegenerateStage, cx)
	}
	return nil
}

// Origin returns the top-left corner of the stage bounding box
func (s *Stage) Origin() Vec2 { return s.origin }

// Size returns the stage bounding box size
func (s *Stage) Size() Vec2 { return s.size }

// Top returns the depth of the far edge
func (s *Stage) Top() float64 { return s.origin.Y }

// Bottom returns the depth of the near edge
func (s *Stage) Bottom() float64 { return s.origin.Y + s.size.Y }

// MidDepth returns the depth halfway between the far and near edges
func (s *Stage) MidDepth() float64 { return s.Top() + s.size.Y/2 }

// CenterX returns the horizontal center of the stage bounding box
func (s *Stage) CenterX() float64 { return s.origin.X + s.size.X/2 }

// Center returns the floor position in the middle of the stage
func (s *Stage) Center() Vec2 { return Vec2{s.CenterX(), s.MidDepth()} }

// UpperWidth returns the width of the far edge
func (s *Stage) UpperWidth() float64 { return s.farRight.X - s.farLeft.X }

// LowerWidth returns the width of the near edge
func (s *Stage) LowerWidth() float64 { return s.nearRight.X - s.nearLeft.X }

// Corners returns the floor corners clockwise from the far-left one
func (s *Stage) Corners() [4]Vec2 {
	return [4]Vec2{s.farLeft, s.farRight, s.nearRight, s.nearLeft}
}

// LeftBoundary returns the X of the left edge at the given depth
func (s *Stage) LeftBoundary(depth float64) float64 {
	return pointX(s.farLeft, s.nearLeft, depth)
}

// RightBoundary returns the X of the right edge at the given depth
func (s *Stage) RightBoundary(depth float64) float64 {
	return pointX(s.farRight, s.nearRight, depth)
}

// NearestBoundary returns the boundary X on the same side of center as x
func (s *Stage) NearestBoundary(x, depth float64) float64 {
	if x < s.CenterX() {
		return s.LeftBoundary(depth)
	}
	return s.RightBoundary(depth)
}

// DepthScale maps depth linearly from UpperWidth/LowerWidth at the far edge
// to 1 at the near edge
func (s *Stage) DepthScale(depth float64) float64 {
	minScale := s.UpperWidth() / s.LowerWidth()
	return (1-minScale)*((depth-s.Top())/s.size.Y) + minScale
}

// WidthScale corrects horizontal speed for the taper of the floor at depth.
// The offset from the stage center is compared with the same offset measured
// to the boundary line on that side.
func (s *Stage) WidthScale(x, depth float64) float64 {
	cx := s.CenterX()
	offset := cx - x

	var reference float64
	if offset > 0 {
		reference = cx - pointX(s.nearLeft, s.farLeft, depth)
	} else {
		reference = pointX(s.farRight, s.nearRight, depth) - cx
	}
	if reference == 0 {
		return 1
	}
	return (1-s.xScaleMin)*(offset/reference) + s.xScaleMin
}

// Contains reports whether an entity of the given (scaled) size standing at
// pos has its feet on the floor. Both depth bounds shift up by half the
// height because pos is the sprite center.
func (s *Stage) Contains(pos Vec3, size Vec2) bool {
	top := s.Top() - size.Y/2
	bottom := s.Bottom() - size.Y/2
	left := s.LeftBoundary(pos.Z) - size.X/2
	right := s.RightBoundary(pos.Z) + size.X/2

	return pos.Z >= top && pos.Z <= bottom && pos.X >= left && pos.X <= right
}

// ClampDepth keeps a sprite-centered depth within the floor's depth bounds
func (s *Stage) ClampDepth(depth, height float64) float64 {
	top := s.Top() - height/2
	bottom := s.Bottom() - height/2
	return math.Max(top, math.Min(depth, bottom))
}

// VanishingPoint returns the requested vanishing point
func (s *Stage) VanishingPoint(which VanishingPoint) Vec2 {
	if which < VanishLeft || which > VanishRight {
		return Vec2{}
	}
	return s.vanish[which]
}

// AngleToVanishingPoint returns the direction from p toward the vanishing point
func (s *Stage) AngleToVanishingPoint(p Vec2, which VanishingPoint) float64 {
	return s.VanishingPoint(which).Sub(p).Angle()
}

// AngleFromVanishingPoint returns the direction from the vanishing point through p
func (s *Stage) AngleFromVanishingPoint(p Vec2, which VanishingPoint) float64 {
	return p.Sub(s.VanishingPoint(which)).Angle()
}

// pointX returns the X where the line through p1 and p2 crosses row y
func pointX(p1, p2 Vec2, y float64) float64 {
	return ((y-p1.Y)*(p2.X-p1.X))/(p2.Y-p1.Y) + p1.X
}

func slope(p1, p2 Vec2) float64 {
	return (p2.Y - p1.Y) / (p2.X - p1.X)
}

func intercept(p Vec2, a float64) float64 {
	return -a*p.X + p.Y
}

// intersection returns the crossing of line p1-p2 with line q1-q2
func intersection(p1, p2, q1, q2 Vec2) Vec2 {
	a1 := slope(p1, p2)
	b1 := intercept(p1, a1)
	a2 := slope(q1, q2)
	b2 := intercept(q1, a2)

	return Vec2{
		X: (b2 - b1) / (a1 - a2),
		Y: (a2*b1 - a1*b2) / (a2 - a1),
	}
}
