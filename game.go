package main

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/ballblast/prefabs"
	"github.com/milk9111/ballblast/sandbox"
	"golang.org/x/image/colornames"
)

type Options struct {
	Debug      bool
	Seed       int64
	ConfigPath string
}

type Game struct {
	opts Options

	sb       *sandbox.Sandbox
	ui       *ebitenui.UI
	toolbar  *Toolbar
	renderer *Renderer
	watcher  *prefabs.Watcher

	// stale is set when a spec or script changed on disk. The sandbox is
	// rebuilt from it on the next Refresh.
	stale bool

	width, height, toolbarHeight int
	warnFor                      time.Duration
	warnUntil                    time.Time
	last                         time.Time
}

func NewGame(opts Options) (*Game, error) {
	spec, err := loadSpec(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	sb, err := newSandbox(spec, opts)
	if err != nil {
		return nil, err
	}

	g := &Game{opts: opts, sb: sb}
	g.applySpec(spec)

	g.ui, g.toolbar = NewUI(g, g.width, g.toolbarHeight, spec.UI.Warning.ColorOr(colornames.Red))

	g.watcher = newWatcher(opts.ConfigPath)
	return g, nil
}

func loadSpec(path string) (*prefabs.SandboxSpec, error) {
	if path != "" {
		return prefabs.LoadSandboxSpecFile(path)
	}
	return prefabs.LoadSandboxSpec()
}

func newSandbox(spec *prefabs.SandboxSpec, opts Options) (*sandbox.Sandbox, error) {
	sbOpts := []sandbox.Option{sandbox.WithDebug(opts.Debug)}
	if opts.Seed != 0 {
		sbOpts = append(sbOpts, sandbox.WithSeed(opts.Seed))
	}
	return sandbox.New(spec, sbOpts...)
}

// applySpec sizes the window and renderer for the sandbox's current spec.
func (g *Game) applySpec(spec *prefabs.SandboxSpec) {
	world := g.sb.World()
	g.width = int(world.Width())
	g.height = int(world.Height())
	g.toolbarHeight = spec.UI.ToolbarHeight
	g.warnFor = time.Duration(spec.UI.WarningSeconds * float64(time.Second))
	g.renderer = NewRenderer(world, float64(g.toolbarHeight),
		spec.UI.Background.ColorOr(color.White),
		spec.UI.Wall.ColorOr(colornames.Black),
		spec.UI.Ball.ColorOr(colornames.Crimson),
	)
}

// newWatcher watches the prefab directories that exist on disk. Hot reload is
// optional, so failures are only logged.
func newWatcher(configPath string) *prefabs.Watcher {
	var dirs []string
	candidates := []string{prefabs.Dir, filepath.Join(prefabs.Dir, "scripts")}
	if configPath != "" {
		candidates = append(candidates, filepath.Dir(configPath))
	}
	seen := make(map[string]bool)
	for _, dir := range candidates {
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return nil
	}

	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		log.Printf("Game: hot reload disabled: %v", err)
		return nil
	}
	return w
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

// Throw launches a ball at the speed typed into the toolbar.
func (g *Game) Throw(text string) {
	_, err := g.sb.Throw(text)
	switch {
	case err == nil:
		g.warn("")
	case errors.Is(err, sandbox.ErrInvalidInput):
		g.warn(warningText)
	case errors.Is(err, sandbox.ErrBallInFlight):
		g.warn("Ball in flight")
	default:
		log.Printf("Game: throw: %v", err)
	}
}

// Refresh clears the sandbox and the velocity field. Pending spec changes
// are applied here.
func (g *Game) Refresh() {
	if g.stale {
		g.reload()
	} else {
		g.sb.Refresh()
	}
	g.renderer.Forget()
	g.toolbar.Input.SetText("")
	g.warn("")
}

func (g *Game) reload() {
	g.stale = false
	spec, err := loadSpec(g.opts.ConfigPath)
	if err != nil {
		log.Printf("Game: reload spec: %v", err)
		g.sb.Refresh()
		return
	}
	sb, err := newSandbox(spec, g.opts)
	if err != nil {
		log.Printf("Game: rebuild sandbox: %v", err)
		g.sb.Refresh()
		return
	}
	paused := g.sb.Paused()
	g.sb = sb
	if paused {
		g.sb.Pause()
	}
	g.applySpec(spec)
	log.Printf("Game: reloaded %s", spec.Name)
}

func (g *Game) SetPaused(paused bool) {
	if paused {
		g.sb.Pause()
		g.toolbar.Pause.GetWidget().Visibility = widget.Visibility_Show
		return
	}
	g.sb.Resume()
	g.toolbar.Pause.GetWidget().Visibility = widget.Visibility_Hide
}

func (g *Game) warn(msg string) {
	g.toolbar.Warning.Label = msg
	if msg == "" {
		g.warnUntil = time.Time{}
		return
	}
	g.warnUntil = time.Now().Add(g.warnFor)
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	names, err := g.watcher.Poll()
	if err != nil {
		log.Printf("Game: watcher: %v", err)
	}
	for _, name := range names {
		log.Printf("Game: %s changed, press Refresh to apply", name)
		g.stale = true
	}
}

func (g *Game) Update() error {
	now := time.Now()
	var elapsed time.Duration
	if !g.last.IsZero() {
		elapsed = now.Sub(g.last)
	}
	g.last = now

	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.SetPaused(!g.sb.Paused())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.Refresh()
	}

	g.ui.Update()

	g.renderer.Remember(g.sb.Snapshot())
	if _, err := g.sb.Tick(elapsed); err != nil {
		log.Printf("Game: tick: %v", err)
	}

	if !g.warnUntil.IsZero() && now.After(g.warnUntil) {
		g.warn("")
	}

	st := g.sb.Stats()
	g.toolbar.Status.Label = fmt.Sprintf("Balls: %d  Blasts: %d", st.Bodies, st.Explosions)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.sb.Snapshot(), g.sb.Alpha())
	g.ui.Draw(screen)

	if g.opts.Debug {
		st := g.sb.Stats()
		ebitenutil.DebugPrintAt(screen,
			fmt.Sprintf("FPS: %.2f  Steps: %d  Dropped: %v", ebiten.ActualFPS(), st.Steps, st.Dropped),
			4, g.toolbarHeight+4)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.width), float64(g.height + g.toolbarHeight)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
