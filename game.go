package main

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/wallkick/ecs"
	"github.com/milk9111/wallkick/ecs/component"
	"github.com/milk9111/wallkick/ecs/entity"
	"github.com/milk9111/wallkick/ecs/system"
	"github.com/milk9111/wallkick/input"
	"github.com/milk9111/wallkick/prefabs"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

var backgroundColor = color.NRGBA{R: 0x20, G: 0x20, B: 0x28, A: 0xff}

type Options struct {
	Debug     bool
	Watch     bool
	Autopilot bool
	Script    string
}

type Game struct {
	frames int
	paused bool
	debug  bool

	world     *ecs.World
	systems   *system.ControllerSystems
	scheduler *ecs.Scheduler
	render    *system.RenderSystem
	camera    system.Camera
	player    entity.Player

	keyboard  input.Source
	autopilot *input.Script
	scripted  bool

	watcher *prefabs.Watcher
	pauseUI *ebitenui.UI
}

func NewGame(opts Options) (*Game, error) {
	ctrlSpec, err := prefabs.LoadControllerSpec()
	if err != nil {
		return nil, err
	}
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}

	w := ecs.NewWorld()
	if ctrlSpec.EventBudget > 0 {
		w.Events().SetCapacity(ctrlSpec.EventBudget)
	}

	if _, err := entity.NewGeometry(w, entity.DefaultGeometry); err != nil {
		return nil, err
	}
	player, err := entity.SpawnPlayer(w, *playerSpec, ctrlSpec.Controller())
	if err != nil {
		return nil, err
	}

	gravity := ctrlSpec.Gravity
	if gravity == 0 {
		gravity = system.DefaultGravity
	}

	g := &Game{
		debug:    opts.Debug,
		world:    w,
		render:   system.NewRenderSystem(),
		camera:   system.Camera{Zoom: 1, ScreenW: baseWidth, ScreenH: baseHeight},
		player:   player,
		keyboard: input.NewKeyboard(),
	}

	if opts.Autopilot {
		src, err := prefabs.LoadScript(opts.Script)
		if err != nil {
			return nil, fmt.Errorf("autopilot: %w", err)
		}
		script, err := input.NewScript(opts.Script, src, nil)
		if err != nil {
			return nil, fmt.Errorf("autopilot: %w", err)
		}
		g.autopilot = script
		g.scripted = true
	}

	g.systems = system.NewControllerSystems(system.NewPhysicsSystem(gravity, nil), g.source(), nil)
	g.scheduler = g.systems.Scheduler()

	if opts.Watch {
		watcher, err := prefabs.NewWatcher("prefabs", filepath.Join("prefabs", "scripts"))
		if err != nil {
			log.Printf("watch: disabled: %v", err)
		} else {
			g.watcher = watcher
		}
	}

	g.pauseUI = NewPauseUI(g)
	return g, nil
}

func (g *Game) source() input.Source {
	if g.scripted && g.autopilot != nil {
		return g.autopilot
	}
	return g.keyboard
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("watch: close: %v", err)
		}
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) && g.autopilot != nil {
		g.scripted = !g.scripted
		g.systems.Input.SetSource(g.source())
	}

	g.frames++
	g.reloadTuning()

	g.world.SetDeltaTime(1 / float64(ebiten.TPS()))
	g.scheduler.Update(g.world)

	if t, ok := ecs.Get(g.world, g.player.Body, component.TransformComponent.Kind()); ok {
		g.camera.X = t.X
		g.camera.Y = t.Y
	}
	return nil
}

// reloadTuning applies a changed controller.yaml to the live player and
// recompiles a changed autopilot script.
func (g *Game) reloadTuning() {
	if g.watcher == nil {
		return
	}
	for _, path := range g.watcher.Changed() {
		if g.autopilot != nil && prefabs.IsScript(path, g.autopilot.Name()) {
			g.reloadScript(path)
			continue
		}
		if !prefabs.IsControllerFile(path) {
			continue
		}
		spec, err := prefabs.LoadControllerSpec()
		if err != nil {
			log.Printf("watch: %v", err)
			continue
		}
		if ctrl, ok := ecs.Get(g.world, g.player.Body, component.ControllerComponent.Kind()); ok {
			*ctrl = spec.Controller()
		}
		if spec.Gravity != 0 {
			g.systems.Physics.SetGravity(spec.Gravity)
		}
		if spec.EventBudget > 0 {
			g.world.Events().SetCapacity(spec.EventBudget)
		}
		log.Printf("watch: reloaded %s", path)
	}
}

func (g *Game) reloadScript(path string) {
	src, err := prefabs.LoadScript(g.autopilot.Name())
	if err != nil {
		log.Printf("watch: %v", err)
		return
	}
	if err := g.autopilot.Reload(src); err != nil {
		log.Printf("watch: %v", err)
		return
	}
	log.Printf("watch: reloaded %s", path)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.render.Draw(g.world, screen, g.camera)

	if g.debug {
		system.DrawPhysicsDebug(g.systems.Physics.Space(), screen, g.camera)
		system.DrawContactDebug(g.world, screen)
	}

	mode := "keyboard"
	if g.scripted {
		mode = "autopilot"
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    Input: %s", g.frames, ebiten.ActualFPS(), mode), 0, baseHeight-16)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
