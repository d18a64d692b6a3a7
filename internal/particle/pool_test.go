package particle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomz197/spaceshooter/internal/draw"
	"github.com/tomz197/spaceshooter/internal/physics"
)

// tag identifies particles in tests.
type tag struct {
	id   int
	kill bool
}

func addTagged(p *Pool[tag], id int, duration float64) {
	p.Create(draw.VisualGlow, physics.V(float64(id), 0), draw.White, duration, physics.Uniform(1), tag{id: id})
}

func ids(p *Pool[tag]) []int {
	out := make([]int, 0, p.Count())
	for i := 0; i < p.Count(); i++ {
		out = append(out, p.At(i).State.id)
	}
	return out
}

func TestCreateStartsAtInitialPercentLife(t *testing.T) {
	p := NewPool[tag](4, nil)
	addTagged(p, 1, 10)

	require.Equal(t, 1, p.Count())
	assert.Equal(t, InitialPercentLife, p.At(0).PercentLife)
	assert.True(t, p.At(0).Alive())
}

func TestFullPoolEvictsOldest(t *testing.T) {
	p := NewPool[tag](4, nil)
	for id := 1; id <= 5; id++ {
		addTagged(p, id, 100)
	}

	assert.Equal(t, 4, p.Count())
	assert.Equal(t, []int{2, 3, 4, 5}, ids(p))
}

func TestCountNeverExceedsCapacity(t *testing.T) {
	p := NewPool[tag](8, nil)
	for id := 0; id < 100; id++ {
		addTagged(p, id, 100)
		assert.LessOrEqual(t, p.Count(), p.Capacity())
	}
	assert.Equal(t, []int{92, 93, 94, 95, 96, 97, 98, 99}, ids(p))
}

func TestUpdateCompactsInOrder(t *testing.T) {
	kill := func(pt *Particle[tag]) {
		if pt.State.kill {
			pt.PercentLife = -1
		}
	}
	p := NewPool[tag](6, kill)
	for id := 1; id <= 6; id++ {
		addTagged(p, id, 100)
	}
	// Wrap the ring so compaction crosses the physical end of the buffer.
	addTagged(p, 7, 100)
	addTagged(p, 8, 100)
	for i := 0; i < p.Count(); i++ {
		if id := p.At(i).State.id; id == 3 || id == 5 || id == 8 {
			p.At(i).State.kill = true
		}
	}

	p.Update()

	assert.Equal(t, []int{4, 6, 7}, ids(p))
}

func TestParticlesExpireAfterLifetime(t *testing.T) {
	p := NewPool[tag](4, nil)
	addTagged(p, 1, 10) // 0.4 life at 0.1 per frame
	addTagged(p, 2, 100)

	for frame := 0; frame < 4; frame++ {
		p.Update()
	}
	assert.Equal(t, []int{1, 2}, ids(p), "percent-life reaches zero but is not yet negative")

	p.Update()
	assert.Equal(t, []int{2}, ids(p))
}

func TestClear(t *testing.T) {
	p := NewPool[tag](4, nil)
	addTagged(p, 1, 10)
	p.Clear()
	assert.Zero(t, p.Count())
	assert.Panics(t, func() { p.At(0) })
}

type recordingSurface struct {
	sprites []physics.Vec2
}

func (r *recordingSurface) DrawSprite(_ draw.Visual, pos physics.Vec2, _ draw.Tint, _ float64, _, _ physics.Vec2) {
	r.sprites = append(r.sprites, pos)
}

func (r *recordingSurface) DrawText(string, physics.Vec2, draw.Tint) {}

func TestDrawVisitsLiveParticles(t *testing.T) {
	p := NewPool[tag](2, nil)
	for id := 1; id <= 3; id++ {
		addTagged(p, id, 10)
	}

	var s recordingSurface
	p.Draw(&s)
	assert.Equal(t, []physics.Vec2{physics.V(2, 0), physics.V(3, 0)}, s.sprites)
}
