package world

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/spaceshooter/internal/config"
	"github.com/tomz197/spaceshooter/internal/draw"
	"github.com/tomz197/spaceshooter/internal/object"
	"github.com/tomz197/spaceshooter/internal/particle"
	"github.com/tomz197/spaceshooter/internal/physics"
	"github.com/tomz197/spaceshooter/internal/status"
)

// probe is a test entity that records its updates and can spawn a child
// during its first one.
type probe struct {
	object.Body
	name    string
	log     *[]string
	child   object.Entity
	reg     *Registry
	seen    []object.Entity // Nearby result during the spawning update
	updates int
}

func newProbe(name string, pos physics.Vec2, log *[]string) *probe {
	return &probe{Body: object.Body{Position: pos, Radius: 5}, name: name, log: log}
}

func (p *probe) Update(ctx object.UpdateContext) {
	p.updates++
	if p.log != nil {
		*p.log = append(*p.log, p.name)
	}
	if p.child != nil && p.updates == 1 {
		ctx.Spawn(p.child)
		p.seen = p.reg.Nearby(p.child.Physics().Position, 1)
	}
}

func testContext(t *testing.T) object.UpdateContext {
	t.Helper()
	st, err := status.New(config.ModeClassic, nil)
	require.NoError(t, err)
	return object.UpdateContext{
		Screen:    physics.V(config.ScreenWidth, config.ScreenHeight),
		Mode:      config.ModeClassic,
		Particles: particle.NewPool[particle.State](4096, nil),
		Status:    st,
		Rand:      rand.New(rand.NewSource(7)),
	}
}

func TestRegistryAddClassifies(t *testing.T) {
	r := NewRegistry()
	player := object.NewPlayer(physics.V(400, 600))
	r.Add(player)
	r.Add(object.NewSeeker(physics.V(10, 10)))
	r.Add(object.NewBullet(physics.V(20, 20), physics.V(0, -8)))

	assert.Equal(t, 3, r.Count())
	assert.Len(t, r.Enemies(), 1)
	assert.Len(t, r.Bullets(), 1)
	assert.Same(t, player, r.Player())
	assert.Equal(t, 1, r.EnemyCount(object.KindSeeker))
	assert.Zero(t, r.EnemyCount(object.KindLargeMeteor))
}

func TestDeferredInsert(t *testing.T) {
	ctx := testContext(t)
	r := NewRegistry()

	child := newProbe("child", physics.V(300, 300), nil)
	parent := newProbe("parent", physics.V(100, 100), nil)
	parent.child = child
	parent.reg = r
	r.Add(parent)

	r.Update(ctx)
	assert.Empty(t, parent.seen, "not visible to the pass that added it")
	assert.Zero(t, child.updates, "not visited by the pass that added it")
	assert.Equal(t, 2, r.Count())

	found := r.Nearby(physics.V(300, 300), 1)
	require.Len(t, found, 1)
	assert.Same(t, child, found[0])

	r.Update(ctx)
	assert.Equal(t, 1, child.updates)
}

func TestUpdateOrderAndSweep(t *testing.T) {
	ctx := testContext(t)
	r := NewRegistry()

	var order []string
	a := newProbe("a", physics.V(10, 10), &order)
	b := newProbe("b", physics.V(20, 20), &order)
	c := newProbe("c", physics.V(30, 30), &order)
	r.Add(a)
	r.Add(b)
	r.Add(c)

	b.Expire()
	r.Update(ctx)
	assert.Equal(t, []string{"a", "c"}, order, "expired entities are skipped")
	assert.Equal(t, 2, r.Count())

	order = nil
	r.Update(ctx)
	assert.Equal(t, []string{"a", "c"}, order)
}

func TestSweepKeepsSublistsInStep(t *testing.T) {
	ctx := testContext(t)
	r := NewRegistry()
	e1 := object.NewSeeker(physics.V(50, 50))
	e2 := object.NewSeeker(physics.V(150, 50))
	e3 := object.NewSeeker(physics.V(250, 50))
	b := object.NewBullet(physics.V(200, 300), physics.V(0, -8))
	for _, e := range []object.Entity{e1, b, e2, e3} {
		r.Add(e)
	}

	e2.Expire()
	b.Expire()
	r.Update(ctx)

	assert.Equal(t, []*object.Enemy{e1, e3}, r.Enemies())
	assert.Empty(t, r.Bullets())
	assert.Equal(t, 2, r.Count())
}

func TestNearby(t *testing.T) {
	r := NewRegistry()
	near := object.NewSeeker(physics.V(100, 100))
	far := object.NewSeeker(physics.V(200, 100))
	gone := object.NewSeeker(physics.V(101, 100))
	gone.Expire()
	r.Add(near)
	r.Add(far)
	r.Add(gone)

	found := r.Nearby(physics.V(90, 100), 50)
	require.Len(t, found, 1)
	assert.Same(t, near, found[0])

	assert.Empty(t, r.Nearby(physics.V(100, 150), 50), "boundary is exclusive")
}

func TestRegistryReset(t *testing.T) {
	ctx := testContext(t)
	r := NewRegistry()
	r.Add(object.NewPlayer(ctx.Screen))
	r.Add(object.NewSeeker(physics.V(10, 10)))
	r.Add(object.NewBullet(physics.V(20, 20), physics.V(0, -8)))

	r.Reset()
	assert.Zero(t, r.Count())
	assert.Empty(t, r.Enemies())
	assert.Empty(t, r.Bullets())
	assert.Nil(t, r.Player())

	r.Update(ctx)
	assert.Zero(t, r.Count())
}

type spriteCounter struct {
	sprites int
}

func (s *spriteCounter) DrawSprite(draw.Visual, physics.Vec2, draw.Tint, float64, physics.Vec2, physics.Vec2) {
	s.sprites++
}

func (s *spriteCounter) DrawText(string, physics.Vec2, draw.Tint) {}

func TestRegistryDraw(t *testing.T) {
	r := NewRegistry()
	r.Add(object.NewPlayer(physics.V(400, 600)))
	r.Add(object.NewBullet(physics.V(20, 20), physics.V(0, -8)))

	s := &spriteCounter{}
	r.Draw(s)
	assert.Equal(t, 2, s.sprites)
}
