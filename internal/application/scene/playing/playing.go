// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/IndecisiveBear/IndecisiveBearGame/internal/application/replay"
	"github.com/IndecisiveBear/IndecisiveBearGame/internal/application/scene"
	"github.com/IndecisiveBear/IndecisiveBearGame/internal/application/state"
	"github.com/IndecisiveBear/IndecisiveBearGame/internal/application/system"
	"github.com/IndecisiveBear/IndecisiveBearGame/internal/domain/entity"
	"github.com/IndecisiveBear/IndecisiveBearGame/internal/infrastructure/config"
	"github.com/IndecisiveBear/IndecisiveBearGame/internal/infrastructure/logger"
)

// Colors for rendering
var (
	colorBG     = color.RGBA{26, 26, 46, 255}
	colorWall   = color.RGBA{80, 80, 100, 255}
	colorRamp   = color.RGBA{140, 110, 70, 255}
	colorArrow  = color.RGBA{230, 200, 140, 255}
	colorPlayer = color.RGBA{100, 200, 100, 255}
	colorClimb  = color.RGBA{200, 220, 120, 255}
)

// layerShade darkens items on lower layers so height reads on a flat screen
const layerShade = 0.15

// Playing is the main gameplay scene
type Playing struct {
	sim         *Simulation
	state       state.GameState
	inputSystem *system.InputSystem
	screenW     int
	screenH     int
	tilePx      float64

	items      []entity.RenderItem
	lastResult system.StepResult

	// Input recording
	recorder       *Recorder
	recordFilename string

	replayer *replay.Replayer
}

// New creates a new Playing scene.
// If recordPath is not empty, gameplay will be recorded.
func New(cfg *config.GameConfig, level *config.LevelConfig, recordPath string) (*Playing, error) {
	sim, err := NewSimulation(cfg, level)
	if err != nil {
		return nil, err
	}

	p := &Playing{
		sim:            sim,
		state:          state.StatePlaying,
		inputSystem:    system.NewInputSystem(),
		screenW:        cfg.Display.ScreenWidth,
		screenH:        cfg.Display.ScreenHeight,
		tilePx:         float64(cfg.Display.TilePixels),
		items:          sim.Grid.RenderItems(),
		recordFilename: recordPath,
	}

	if recordPath != "" {
		p.recorder = NewRecorder(level.ID)
		logger.Info("recording enabled", "file", recordPath, "session", p.recorder.Session())
	}

	return p, nil
}

// Simulation returns the simulation the scene drives
func (p *Playing) Simulation() *Simulation {
	return p.sim
}

// Replay switches the scene to playback: the player is put back on the
// spawn and every following frame takes its input from r instead of the keyboard.
func (p *Playing) Replay(r *replay.Replayer) {
	p.sim.Reset()
	p.replayer = r
	p.recorder = nil
	p.state = state.StateReplaying
	logger.Info("replaying", "session", r.Session(), "frames", r.TotalFrames())
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(_ float64) (scene.Scene, error) {
	switch p.state {
	case state.StatePlaying:
		p.updatePlaying()
	case state.StateReplaying:
		p.updateReplaying()
	case state.StatePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.state = state.StatePlaying
		}
	}

	return nil, nil // nil = stay on this scene
}

func (p *Playing) updatePlaying() {
	// Check for pause
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		p.state = state.StatePaused
		return
	}

	// F5: Save recording manually
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) && p.recorder != nil {
		p.saveRecording()
	}

	// R: back to spawn
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		p.restart()
		return
	}

	p.step(p.inputSystem.GetInput())
}

func (p *Playing) updateReplaying() {
	in, ok := p.replayer.GetInput()
	if !ok {
		logger.Info("replay finished", "frames", p.replayer.TotalFrames(), "cell", p.sim.Cell())
		p.state = state.StatePaused
		return
	}
	p.step(FromReplay(in))
}

// FromReplay converts a recorded frame into live input
func FromReplay(in replay.ReplayInput) system.InputState {
	return system.InputState{
		Up:          in.Up,
		Down:        in.Down,
		Left:        in.Left,
		Right:       in.Right,
		SpeedToggle: in.SpeedToggle,
	}
}

// step records and applies one frame of input
func (p *Playing) step(input system.InputState) {
	if p.recorder != nil {
		p.recorder.RecordFrame(input)
	}
	p.lastResult = p.sim.Step(input)
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil {
		return
	}

	filename := p.recordFilename
	if filename == "" {
		filename = GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		logger.Error("failed to save recording", "error", err)
	} else {
		logger.Info("recording saved", "file", filename, "frames", p.recorder.FrameCount())
	}
}

func (p *Playing) restart() {
	p.sim.Reset()
	p.lastResult = system.StepResult{}
	p.state = state.StatePlaying

	// A replay is only valid from the spawn, so start a new session
	if p.recorder != nil {
		p.recorder = NewRecorder(p.sim.Level.ID)
		logger.Info("recording restarted", "session", p.recorder.Session())
	}
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	layer := p.sim.Player.Layer
	playerDrawn := false
	for _, item := range p.items {
		if item.Cell.Layer > layer {
			continue
		}
		if !playerDrawn && item.Order > layer {
			p.drawPlayer(screen)
			playerDrawn = true
		}
		p.drawItem(screen, item, layer)
	}
	if !playerDrawn {
		p.drawPlayer(screen)
	}

	p.drawOverlays(screen)
	p.drawUI(screen)

	if !p.state.Simulating() {
		p.drawPauseOverlay(screen)
	}
}

// toScreen converts a world position to screen pixels with the camera on the player.
// World Y grows upward, screen Y grows downward.
func (p *Playing) toScreen(world entity.Vec2) (float64, float64) {
	cam := p.sim.Player.Pos
	x := (world.X-cam.X)*p.tilePx + float64(p.screenW)/2
	y := (cam.Y-world.Y)*p.tilePx + float64(p.screenH)/2
	return x, y
}

func (p *Playing) drawItem(screen *ebiten.Image, item entity.RenderItem, layer int) {
	half := p.tilePx / 2
	x, y := p.toScreen(item.World)

	c := colorWall
	if item.Kind.IsRamp() {
		c = colorRamp
	}
	c = shade(c, layer-item.Cell.Layer)
	ebitenutil.DrawRect(screen, x-half, y-half, p.tilePx, p.tilePx, c)

	// ramps show the climb direction
	if o, ok := item.Kind.Orientation(); ok {
		dx, dy := 0.0, 0.0
		switch o {
		case entity.North:
			dy = -half
		case entity.South:
			dy = half
		case entity.East:
			dx = half
		case entity.West:
			dx = -half
		}
		ebitenutil.DrawLine(screen, x-dx, y-dy, x+dx, y+dy, shade(colorArrow, layer-item.Cell.Layer))
	}
}

func (p *Playing) drawPlayer(screen *ebiten.Image) {
	player := p.sim.Player
	x, y := p.toScreen(player.Pos)
	w := player.Size.X * p.tilePx
	h := player.Size.Y * p.tilePx

	c := colorPlayer
	if player.Climb.Active {
		c = colorClimb
	}
	ebitenutil.DrawRect(screen, x-w/2, y-h/2, w, h, c)
}

// drawOverlays paints dark, then bright, then fog over every cell
func (p *Playing) drawOverlays(screen *ebiten.Image) {
	vis := p.sim.Visibility
	grid := p.sim.Grid
	half := p.tilePx / 2

	for r := 0; r < grid.Rows(); r++ {
		for c := 0; c < grid.Cols(); c++ {
			x, y := p.toScreen(grid.CellCenter(r, c))
			if x+half < 0 || y+half < 0 || x-half > float64(p.screenW) || y-half > float64(p.screenH) {
				continue
			}
			for _, o := range []struct {
				color colorful.Color
				alpha float64
			}{
				{vis.DarkColor, vis.Dark[r][c]},
				{vis.BrightColor, vis.Bright[r][c]},
				{vis.FogColor, vis.Fog[r][c]},
			} {
				if o.alpha <= 0 {
					continue
				}
				ebitenutil.DrawRect(screen, x-half, y-half, p.tilePx, p.tilePx, overlayColor(o.color, o.alpha))
			}
		}
	}
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	player := p.sim.Player
	cell := p.sim.Cell()

	speed := "walk"
	if player.Running {
		speed = "run"
	}
	status := fmt.Sprintf("%s | layer %d/%d | cell %d,%d | %s",
		p.sim.Level.Name, player.Layer, p.sim.Grid.Depth()-1, cell.Row, cell.Col, speed)
	ebitenutil.DebugPrintAt(screen, status, 4, p.screenH-16)

	controls := "WASD/Arrows: Move | Shift: Walk/Run | R: Restart | ESC: Pause"
	if p.state == state.StateReplaying {
		controls = fmt.Sprintf("REPLAY %d/%d", p.replayer.CurrentFrame(), p.replayer.TotalFrames())
	} else if p.recorder != nil {
		controls += " | F5: Save replay"
	}
	ebitenutil.DebugPrint(screen, controls)
}

func (p *Playing) drawPauseOverlay(screen *ebiten.Image) {
	// Semi-transparent overlay
	overlay := color.RGBA{0, 0, 0, 128}
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), overlay)

	text := "PAUSED\n\nPress ESC to resume"
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-50, p.screenH/2-20)
}

// OnEnter is called when the scene becomes active
func (p *Playing) OnEnter() {
	logger.Info("entering level", "level", p.sim.Level.ID, "layers", p.sim.Grid.Depth())
}

// OnExit saves any pending recording
func (p *Playing) OnExit() {
	if p.recorder != nil && p.recorder.FrameCount() > 0 {
		p.saveRecording()
	}
}

// Layout returns the game's screen dimensions
func (p *Playing) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.screenW, p.screenH
}

// shade darkens c by depth layers below the viewer
func shade(c color.RGBA, depth int) color.RGBA {
	f := 1 - layerShade*float64(depth)
	if f < 0.2 {
		f = 0.2
	}
	return color.RGBA{
		uint8(float64(c.R) * f),
		uint8(float64(c.G) * f),
		uint8(float64(c.B) * f),
		c.A,
	}
}

// overlayColor converts an overlay colour and alpha to premultiplied RGBA
func overlayColor(c colorful.Color, alpha float64) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{
		uint8(float64(r) * alpha),
		uint8(float64(g) * alpha),
		uint8(float64(b) * alpha),
		uint8(255 * alpha),
	}
}
