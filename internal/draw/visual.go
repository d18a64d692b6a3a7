package draw

import (
	"math"

	"github.com/tomz197/spaceshooter/internal/physics"
)

// Visual identifies the shape a sprite or particle is drawn with.
type Visual int

const (
	VisualNone Visual = iota
	VisualPlayer
	VisualSeeker
	VisualWanderer
	VisualBullet
	VisualLargeMeteor
	VisualMiddleMeteor
	VisualSmallMeteor
	VisualLineParticle
	VisualGlow
)

// Surface is anything the simulation can draw onto.
type Surface interface {
	// DrawSprite draws v centred on origin (in the visual's own pixel space),
	// scaled, rotated by rotation radians and placed at pos.
	DrawSprite(v Visual, pos physics.Vec2, tint Tint, rotation float64, origin, scale physics.Vec2)
	// DrawText writes text starting at the logical position pos.
	DrawText(text string, pos physics.Vec2, tint Tint)
}

type shapeKind int

const (
	shapePolygon shapeKind = iota
	shapeOutline
	shapeLine
	shapePoint
)

// shape is the vector stand-in for a sprite texture. Points are in the
// visual's pixel space, [0,size.X]×[0,size.Y].
type shape struct {
	size   physics.Vec2
	kind   shapeKind
	base   Tint
	points []physics.Vec2
}

var shapes = map[Visual]shape{
	VisualPlayer: {
		size: physics.V(40, 40), kind: shapePolygon, base: RGBA(180, 220, 255, 255),
		points: []physics.Vec2{{X: 40, Y: 20}, {X: 4, Y: 4}, {X: 12, Y: 20}, {X: 4, Y: 36}},
	},
	VisualSeeker: {
		size: physics.V(40, 40), kind: shapeOutline, base: RGBA(255, 90, 170, 255),
		points: []physics.Vec2{{X: 40, Y: 20}, {X: 20, Y: 0}, {X: 0, Y: 20}, {X: 20, Y: 40}},
	},
	VisualWanderer: {
		size: physics.V(40, 40), kind: shapePolygon, base: RGBA(130, 170, 255, 255),
		points: []physics.Vec2{
			{X: 20, Y: 0}, {X: 26, Y: 14}, {X: 40, Y: 20}, {X: 26, Y: 26},
			{X: 20, Y: 40}, {X: 14, Y: 26}, {X: 0, Y: 20}, {X: 14, Y: 14},
		},
	},
	VisualBullet: {
		size: physics.V(16, 8), kind: shapePolygon, base: RGBA(255, 240, 160, 255),
		points: []physics.Vec2{{X: 16, Y: 4}, {X: 8, Y: 0}, {X: 0, Y: 4}, {X: 8, Y: 8}},
	},
	VisualLargeMeteor:  rock(100, RGBA(205, 155, 105, 255)),
	VisualMiddleMeteor: rock(60, RGBA(195, 145, 95, 255)),
	VisualSmallMeteor:  rock(36, RGBA(185, 135, 85, 255)),
	VisualLineParticle: {size: physics.V(8, 2), kind: shapeLine, base: White},
	VisualGlow:         {size: physics.V(8, 8), kind: shapePoint, base: White},
}

// rock builds a lumpy circle of the given diameter.
func rock(diameter float64, base Tint) shape {
	lumps := []float64{1, 0.92, 0.98, 0.88, 1, 0.95, 0.9, 1, 0.93, 0.97}
	r := diameter / 2
	points := make([]physics.Vec2, len(lumps))
	for i, k := range lumps {
		angle := float64(i) * 2 * math.Pi / float64(len(lumps))
		points[i] = physics.V(r, r).Add(physics.FromPolar(angle, r*k))
	}
	return shape{size: physics.V(diameter, diameter), kind: shapePolygon, base: base, points: points}
}

// Size returns the pixel dimensions of v, or zero for unknown visuals.
func (v Visual) Size() physics.Vec2 {
	return shapes[v].size
}

// Center returns the midpoint of v's pixel space, the usual draw origin.
func (v Visual) Center() physics.Vec2 {
	return v.Size().Scale(0.5)
}
