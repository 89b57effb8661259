package frontend

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"piratestage/game"
)

const (
	shadowMinScale  = 0.3
	shadowMaxHeight = 500.0
	shadowFlatten   = 0.3
	ellipseSegments = 24
)

var (
	colorWater       = color.NRGBA{24, 70, 120, 255}
	colorDeck        = color.NRGBA{150, 105, 60, 255}
	colorDeckEdge    = color.NRGBA{90, 60, 30, 255}
	colorShadow      = color.NRGBA{0, 0, 0, 90}
	colorCannon      = color.NRGBA{60, 60, 70, 255}
	colorCannonTrim  = color.NRGBA{170, 140, 60, 255}
	colorBall        = color.NRGBA{25, 25, 25, 255}
	colorBallShine   = color.NRGBA{140, 140, 150, 255}
	colorPlayerSkin  = color.NRGBA{240, 200, 160, 255}
	colorPlayerHurt  = color.NRGBA{255, 120, 120, 255}
	colorHUD         = color.NRGBA{255, 255, 255, 255}
	colorMenuBack    = color.NRGBA{0, 0, 0, 170}
	colorMenuCursor  = color.NRGBA{255, 220, 80, 255}
	colorDebugBounds = color.NRGBA{0, 255, 0, 200}
	colorDebugVanish = color.NRGBA{255, 0, 255, 120}
	colorDebugHit    = color.NRGBA{255, 255, 0, 200}
)

// coat colour per sprite row: up, right, down, left
var rowTint = [4]color.NRGBA{
	{150, 40, 40, 255},
	{180, 40, 40, 255},
	{200, 50, 50, 255},
	{180, 40, 40, 255},
}

// ShadowScale returns the shadow size factor for an entity at height y:
// full size on the floor, shrinking linearly as it rises
func ShadowScale(y float64) float64 {
	s := (1-shadowMinScale)*(math.Abs(y)/shadowMaxHeight) + shadowMinScale
	return 1.3 - s
}

// Renderer draws a session with vector shapes
type Renderer struct {
	stage *game.Stage
	white *ebiten.Image
	face  text.Face
}

// NewRenderer creates a renderer for stage
func NewRenderer(stage *game.Stage) *Renderer {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return &Renderer{
		stage: stage,
		white: img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		face:  text.NewGoXFace(basicfont.Face7x13),
	}
}

// RenderSession draws one frame of play. Entities below the floor line are
// drawn first so the deck covers them.
func (r *Renderer) RenderSession(screen *ebiten.Image, s *game.Session) {
	screen.Fill(colorWater)

	list := s.DrawList()
	for _, e := range list {
		if !e.Body().AboveStage {
			r.RenderEntity(screen, e)
		}
	}

	r.RenderStage(screen)

	for _, e := range list {
		if e.Body().AboveStage {
			r.renderShadow(screen, e.Body())
		}
	}
	for _, e := range list {
		if e.Body().AboveStage {
			r.RenderEntity(screen, e)
		}
	}

	r.renderHUD(screen, s)
	if s.Pause().Open() {
		r.renderPause(screen, s.Pause())
	}
}

// RenderStage draws the trapezoid floor
func (r *Renderer) RenderStage(screen *ebiten.Image) {
	corners := r.stage.Corners()
	r.fillPolygon(screen, corners[:], colorDeck)

	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 3, colorDeckEdge, true)
	}

	// planks run toward the centre vanishing point
	vp := r.stage.VanishingPoint(game.VanishCenter)
	bottom := r.stage.Bottom()
	top := r.stage.Top()
	for i := 1; i < 8; i++ {
		x := r.stage.LeftBoundary(bottom) + r.stage.LowerWidth()*float64(i)/8
		t := (top - bottom) / (vp.Y - bottom)
		tx := x + (vp.X-x)*t
		vector.StrokeLine(screen, float32(x), float32(bottom), float32(tx), float32(top), 1, colorDeckEdge, true)
	}
}

// RenderEntity draws e at its projected position
func (r *Renderer) RenderEntity(screen *ebiten.Image, e game.Entity) {
	switch v := e.(type) {
	case *game.Player:
		r.renderPlayer(screen, v)
	case *game.Cannon:
		r.renderCannon(screen, v)
	case *game.IronBall:
		r.renderBall(screen, v)
	}
}

func (r *Renderer) renderShadow(screen *ebiten.Image, b *game.Body) {
	if b.Kind == game.KindCannon {
		return
	}
	floor := game.Vec3{X: b.Pos.X, Z: b.Pos.Z}
	if !r.stage.Contains(floor, b.Size) {
		return
	}
	rx := b.Size.X / 2 * ShadowScale(b.Pos.Y)
	feet := game.Vec2{X: b.Pos.X, Y: b.Pos.Z + b.Size.Y/2}
	r.fillEllipse(screen, feet, rx, rx*shadowFlatten, colorShadow)
}

func (r *Renderer) renderPlayer(screen *ebiten.Image, p *game.Player) {
	b := p.Body()
	c := b.DrawPosition()
	w, h := b.Size.X, b.Size.Y
	alpha := p.BlinkAlpha()

	coat := rowTint[p.SpriteRow()&3]
	if p.Mode() == game.ModeDamage {
		coat = colorPlayerHurt
	}
	coat.A = alpha
	skin := colorPlayerSkin
	skin.A = alpha

	// legs alternate with the walk frame
	stride := float64(p.SpriteFrame()-1) * w * 0.08
	legW, legH := w*0.14, h*0.28
	legTop := c.Y + h*0.22
	vector.DrawFilledRect(screen, float32(c.X-w*0.18+stride), float32(legTop), float32(legW), float32(legH), coat, true)
	vector.DrawFilledRect(screen, float32(c.X+w*0.04-stride), float32(legTop), float32(legW), float32(legH), coat, true)

	vector.DrawFilledRect(screen, float32(c.X-w*0.25), float32(c.Y-h*0.2), float32(w*0.5), float32(h*0.45), coat, true)
	vector.DrawFilledCircle(screen, float32(c.X), float32(c.Y-h*0.32), float32(w*0.18), skin, true)

	// eyes show which way the player faces
	eye := 0.0
	switch b.Facing {
	case game.DirLeft:
		eye = -0.08
	case game.DirRight:
		eye = 0.08
	}
	if b.Facing != game.DirUp {
		dark := color.NRGBA{20, 20, 20, alpha}
		vector.DrawFilledCircle(screen, float32(c.X+w*(eye-0.05)), float32(c.Y-h*0.33), float32(w*0.03), dark, true)
		vector.DrawFilledCircle(screen, float32(c.X+w*(eye+0.05)), float32(c.Y-h*0.33), float32(w*0.03), dark, true)
	}
}

func (r *Renderer) renderCannon(screen *ebiten.Image, cn *game.Cannon) {
	b := cn.Body()
	c := b.DrawPosition()
	radius := b.Size.X / 2

	dir := 1.0
	if b.Facing == game.DirLeft {
		dir = -1
	}
	muzzle := game.Vec2{X: c.X + dir*radius*1.2, Y: c.Y - radius*0.6}
	vector.StrokeLine(screen, float32(c.X), float32(c.Y), float32(muzzle.X), float32(muzzle.Y), float32(radius*0.6), colorCannon, true)
	vector.DrawFilledCircle(screen, float32(c.X), float32(c.Y), float32(radius*0.7), colorCannon, true)
	vector.StrokeCircle(screen, float32(c.X), float32(c.Y+radius*0.4), float32(radius*0.35), 3, colorCannonTrim, true)

	if cn.ShotReady() {
		vector.DrawFilledCircle(screen, float32(muzzle.X), float32(muzzle.Y), float32(radius*0.25), colorMenuCursor, true)
	}
}

func (r *Renderer) renderBall(screen *ebiten.Image, ib *game.IronBall) {
	b := ib.Body()
	c := b.DrawPosition()
	radius := b.Size.X / 2
	vector.DrawFilledCircle(screen, float32(c.X), float32(c.Y), float32(radius), colorBall, true)
	vector.DrawFilledCircle(screen, float32(c.X-radius*0.35), float32(c.Y-radius*0.35), float32(radius*0.2), colorBallShine, true)
}

func (r *Renderer) renderHUD(screen *ebiten.Image, s *game.Session) {
	r.drawText(screen, fmt.Sprintf("STOCK x%d", s.Stock()), 16, 16, 2, colorHUD)
	w := float64(screen.Bounds().Dx())
	r.drawText(screen, fmt.Sprintf("TIME %3d", s.TimeLeft()), w-16-8*7*2, 16, 2, colorHUD)
}

func (r *Renderer) renderPause(screen *ebiten.Image, menu *game.PauseMenu) {
	bounds := screen.Bounds()
	vector.DrawFilledRect(screen, 0, 0, float32(bounds.Dx()), float32(bounds.Dy()), colorMenuBack, false)

	cx, cy := float64(bounds.Dx())/2, float64(bounds.Dy())/2
	r.drawText(screen, "PAUSE", cx-5*7*1.5, cy-90, 3, colorHUD)
	for i, item := range game.PauseItems {
		clr := colorHUD
		label := "  " + item.String()
		if item == menu.Cursor() {
			clr = colorMenuCursor
			label = "> " + item.String()
		}
		r.drawText(screen, label, cx-80, cy-20+float64(i)*36, 2, clr)
	}
}

// RenderTitle draws the title screen
func (r *Renderer) RenderTitle(screen *ebiten.Image, tick int) {
	screen.Fill(colorWater)
	r.RenderStage(screen)

	cx := float64(screen.Bounds().Dx()) / 2
	r.drawText(screen, "PIRATE STAGE", cx-12*7*2, 120, 4, colorHUD)
	if tick/30%2 == 0 {
		r.drawText(screen, "PRESS SPACE", cx-11*7, 620, 2, colorMenuCursor)
	}
}

// RenderEnding draws the result screen
func (r *Renderer) RenderEnding(screen *ebiten.Image, result Result) {
	screen.Fill(color.Black)

	cx := float64(screen.Bounds().Dx()) / 2
	headline := "TIME UP!"
	if result.Reason == game.EndPlayerDead {
		headline = "GAME OVER"
	}
	r.drawText(screen, headline, cx-float64(len(headline))*7*2, 200, 4, colorHUD)
	r.drawText(screen, fmt.Sprintf("SURVIVED %d s", result.Seconds), cx-100, 320, 2, colorHUD)
	r.drawText(screen, fmt.Sprintf("HITS TAKEN %d", result.Hits), cx-100, 360, 2, colorHUD)
	r.drawText(screen, fmt.Sprintf("STOCK LEFT %d", result.Stock), cx-100, 400, 2, colorHUD)
	r.drawText(screen, "PRESS SPACE", cx-11*7, 560, 2, colorMenuCursor)
}

// RenderFade darkens the whole frame
func (r *Renderer) RenderFade(screen *ebiten.Image, alpha uint8) {
	if alpha == 0 {
		return
	}
	bounds := screen.Bounds()
	vector.DrawFilledRect(screen, 0, 0, float32(bounds.Dx()), float32(bounds.Dy()), color.NRGBA{0, 0, 0, alpha}, false)
}

// RenderDebug draws the overlays selected in d
func (r *Renderer) RenderDebug(screen *ebiten.Image, s *game.Session, d *DebugState) {
	if d.ShowBounds {
		corners := r.stage.Corners()
		for _, which := range []game.VanishingPoint{game.VanishLeft, game.VanishCenter, game.VanishRight} {
			vp := r.stage.VanishingPoint(which)
			for _, c := range corners {
				vector.StrokeLine(screen, float32(vp.X), float32(vp.Y), float32(c.X), float32(c.Y), 1, colorDebugVanish, true)
			}
		}
		for depth := r.stage.Top(); depth <= r.stage.Bottom(); depth += 40 {
			l, rt := r.stage.LeftBoundary(depth), r.stage.RightBoundary(depth)
			vector.StrokeLine(screen, float32(l), float32(depth), float32(rt), float32(depth), 1, colorDebugBounds, true)
		}
		if s != nil {
			for _, e := range s.DrawList() {
				b := e.Body()
				c := b.DrawPosition()
				vector.StrokeCircle(screen, float32(c.X), float32(c.Y), float32(b.Size.X/2), 1, colorDebugHit, true)
			}
		}
	}

	if d.ShowStats {
		lines := []string{fmt.Sprintf("TPS %.1f  FPS %.1f", ebiten.ActualTPS(), ebiten.ActualFPS())}
		if s != nil {
			m := s.Manager()
			p := m.Player().Body()
			lines = append(lines,
				fmt.Sprintf("tick %d  cannons %d  balls %d", m.Ticks(), len(m.Cannons()), len(m.IronBalls())),
				fmt.Sprintf("player x=%.1f y=%.1f z=%.1f zs=%.3f mode=%v", p.Pos.X, p.Pos.Y, p.Pos.Z, p.ZScale, m.Player().Mode()),
			)
		}
		for i, line := range lines {
			r.drawText(screen, line, 16, float64(screen.Bounds().Dy())-20-float64(len(lines)-1-i)*16, 1, colorDebugBounds)
		}
	}
}

func (r *Renderer) drawText(dst *ebiten.Image, s string, x, y, scale float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, r.face, op)
}

// fillPolygon fills a convex polygon with a triangle fan
func (r *Renderer) fillPolygon(dst *ebiten.Image, pts []game.Vec2, clr color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	cr, cg, cb, ca := float32(clr.R)/255, float32(clr.G)/255, float32(clr.B)/255, float32(clr.A)/255

	vs := make([]ebiten.Vertex, len(pts))
	for i, p := range pts {
		vs[i] = ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			SrcX: 1, SrcY: 1,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		}
	}
	is := make([]uint16, 0, 3*(len(pts)-2))
	for i := 1; i < len(pts)-1; i++ {
		is = append(is, 0, uint16(i), uint16(i+1))
	}
	dst.DrawTriangles(vs, is, r.white, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (r *Renderer) fillEllipse(dst *ebiten.Image, c game.Vec2, rx, ry float64, clr color.NRGBA) {
	pts := make([]game.Vec2, ellipseSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / ellipseSegments
		pts[i] = game.Vec2{X: c.X + rx*math.Cos(a), Y: c.Y + ry*math.Sin(a)}
	}
	r.fillPolygon(dst, pts, clr)
}
