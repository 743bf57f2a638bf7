package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/ballblast/common"
	"github.com/milk9111/ballblast/physics"
	"github.com/milk9111/ballblast/sandbox"
	"golang.org/x/image/colornames"
)

var fragmentPalette = []color.Color{
	colornames.Orange,
	colornames.Gold,
	colornames.Deepskyblue,
	colornames.Mediumseagreen,
	colornames.Orchid,
	colornames.Tomato,
	colornames.Slateblue,
	colornames.Turquoise,
}

// fragmentColor picks a palette entry from the body ID, so a fragment keeps
// its colour for its whole life.
func fragmentColor(id physics.BodyID) color.Color {
	h := uint64(id) * 0x9e3779b97f4a7c15
	h ^= h >> 31
	return fragmentPalette[h%uint64(len(fragmentPalette))]
}

type Renderer struct {
	Viewport   common.Viewport
	Background color.Color
	Wall       color.Color
	Ball       color.Color

	width, height float32
	prev          map[physics.BodyID]physics.Vector2
}

func NewRenderer(world physics.World, top float64, bg, wall, ball color.Color) *Renderer {
	return &Renderer{
		Viewport:   common.Viewport{XMin: world.XMin(), YMax: world.YMax(), Top: top},
		Background: bg,
		Wall:       wall,
		Ball:       ball,
		width:      float32(world.Width()),
		height:     float32(world.Height()),
		prev:       make(map[physics.BodyID]physics.Vector2),
	}
}

// Remember stores the positions a frame starts from. Draw blends from them
// towards the latest snapshot.
func (r *Renderer) Remember(bodies []sandbox.RenderBody) {
	clear(r.prev)
	for _, b := range bodies {
		r.prev[b.ID] = b.Position
	}
}

func (r *Renderer) Forget() {
	clear(r.prev)
}

func (r *Renderer) Draw(screen *ebiten.Image, bodies []sandbox.RenderBody, alpha float64) {
	screen.Fill(r.Background)

	top := float32(r.Viewport.Top)
	vector.StrokeRect(screen, 1, top+1, r.width-2, r.height-2, 2, r.Wall, false)

	t := common.Clamp01(alpha)
	for _, b := range bodies {
		pos := b.Position
		if p, ok := r.prev[b.ID]; ok {
			pos = physics.Vec(common.Lerp(p.X, pos.X, t), common.Lerp(p.Y, pos.Y, t))
		}
		x, y := r.Viewport.ToScreen(pos.X, pos.Y)

		c := r.Ball
		if b.Generation == physics.GenerationFragment {
			c = fragmentColor(b.ID)
		}
		vector.FillCircle(screen, x, y, float32(b.Radius), c, true)
	}
}
