// Package ebiten implements the render contracts on top of Ebitengine.
package ebiten

import (
	"bytes"
	"errors"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"chosenoffset.com/raycaster/internal/logger"
	"chosenoffset.com/raycaster/internal/render"
)

var log = logger.For("ebiten")

// DefaultBindings maps each action to the keys that trigger it.
var DefaultBindings = map[render.Action][]ebiten.Key{
	render.MoveForward:  {ebiten.KeyArrowUp, ebiten.KeyW},
	render.MoveBackward: {ebiten.KeyArrowDown, ebiten.KeyS},
	render.TurnLeft:     {ebiten.KeyArrowLeft, ebiten.KeyA},
	render.TurnRight:    {ebiten.KeyArrowRight, ebiten.KeyD},
	render.ActionA:      {ebiten.KeyR},
	render.ActionB:      {ebiten.KeyEscape, ebiten.KeyQ},
	render.ActionX:      {ebiten.KeyEnter},
	render.ActionY:      {ebiten.KeySpace},
}

// fontSet holds the parsed typefaces, indexed by render.Font.
type fontSet map[render.Font]*text.GoTextFaceSource

// loadFonts parses the embedded Go fonts. A face that fails to parse is
// dropped and DrawText falls back to the regular face.
func loadFonts() fontSet {
	fonts := fontSet{}
	for font, ttf := range map[render.Font][]byte{
		render.FontRegular: goregular.TTF,
		render.FontMono:    gomono.TTF,
		render.FontBold:    gobold.TTF,
	} {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
		if err != nil {
			log.WithError(err).WithField("font", font).Warn("Font failed to load")
			continue
		}
		fonts[font] = src
	}
	return fonts
}

func (f fontSet) face(font render.Font, size float64) text.Face {
	src, ok := f[font]
	if !ok {
		src, ok = f[render.FontRegular]
	}
	if !ok {
		return nil
	}
	return &text.GoTextFace{Source: src, Size: size}
}

// Surface wraps an ebiten.Image to implement render.Surface.
type Surface struct {
	img      *ebiten.Image
	fonts    fontSet
	whiteImg *ebiten.Image
}

// Clear fills the whole image.
func (s *Surface) Clear(c render.Color) {
	s.img.Fill(c)
}

// DrawRect draws a filled rectangle.
func (s *Surface) DrawRect(x, y, w, h float64, c render.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	vector.DrawFilledRect(s.img, float32(x), float32(y), float32(w), float32(h), c, false)
}

// DrawCircle draws a filled circle.
func (s *Surface) DrawCircle(x, y, radius float64, c render.Color) {
	vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(radius), c, true)
}

// DrawPie fills the sector from startAngle to endAngle, sweeping clockwise
// on screen.
func (s *Surface) DrawPie(x, y, radius, startAngle, endAngle float64, c render.Color) {
	if radius <= 0 || endAngle <= startAngle {
		return
	}
	if endAngle-startAngle >= 2*math.Pi {
		s.DrawCircle(x, y, radius, c)
		return
	}

	path := vector.Path{}
	path.MoveTo(float32(x), float32(y))
	path.Arc(float32(x), float32(y), float32(radius), float32(startAngle), float32(endAngle), vector.Clockwise)
	path.Close()

	vertices, indices := path.AppendVerticesAndIndicesForFilling(nil, nil)

	r, g, b := c.RGB255()
	for i := range vertices {
		vertices[i].SrcX = 0
		vertices[i].SrcY = 0
		vertices[i].ColorR = float32(r) / 255
		vertices[i].ColorG = float32(g) / 255
		vertices[i].ColorB = float32(b) / 255
		vertices[i].ColorA = float32(c.A)
	}

	s.img.DrawTriangles(vertices, indices, s.white(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (s *Surface) white() *ebiten.Image {
	if s.whiteImg == nil {
		s.whiteImg = ebiten.NewImage(1, 1)
		s.whiteImg.Fill(color.White)
	}
	return s.whiteImg
}

// DrawText draws one line of text with its top-left corner at (x, y).
func (s *Surface) DrawText(str string, x, y float64, c render.Color, font render.Font, size float64) {
	face := s.fonts.face(font, size)
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(s.img, str, face, op)
}

// Size returns the image dimensions.
func (s *Surface) Size() (width, height int) {
	return s.img.Bounds().Dx(), s.img.Bounds().Dy()
}

// Input samples the keyboard through a binding table.
type Input struct {
	bindings map[render.Action][]ebiten.Key
	state    render.ActionSet
}

// NewInput creates an input source; nil bindings select DefaultBindings.
func NewInput(bindings map[render.Action][]ebiten.Key) *Input {
	if bindings == nil {
		bindings = DefaultBindings
	}
	return &Input{bindings: bindings}
}

// Poll samples every bound key. The engine calls it once per tick.
func (in *Input) Poll() {
	in.state.Reset()
	for action, keys := range in.bindings {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				in.state.Set(action, true)
				break
			}
		}
	}
}

// Pressed reports whether the action was held at the last Poll.
func (in *Input) Pressed(a render.Action) bool {
	return in.state.Pressed(a)
}

// Engine implements render.Engine using Ebiten.
type Engine struct {
	input *Input
	fonts fontSet
}

// NewEngine creates a new Ebiten-based engine with the default bindings.
func NewEngine() *Engine {
	return &Engine{
		input: NewInput(nil),
		fonts: loadFonts(),
	}
}

// SetWindowSize sets the window size in pixels.
func (e *Engine) SetWindowSize(width, height int) {
	ebiten.SetWindowSize(width, height)
}

// SetWindowTitle sets the window title.
func (e *Engine) SetWindowTitle(title string) {
	ebiten.SetWindowTitle(title)
}

// Input returns the keyboard input source.
func (e *Engine) Input() render.Input {
	return e.input
}

// RunGame runs the game loop with the provided game. A render.ErrQuit from
// the game ends the loop without an error.
func (e *Engine) RunGame(game render.Game) error {
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	err := ebiten.RunGame(&gameAdapter{game: game, input: e.input, fonts: e.fonts})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// gameAdapter adapts a render.Game to ebiten.Game interface.
type gameAdapter struct {
	game    render.Game
	input   *Input
	fonts   fontSet
	surface *Surface
}

// Update implements ebiten.Game. Ebiten ticks at a fixed rate, so dt is
// the tick period.
func (a *gameAdapter) Update() error {
	a.input.Poll()
	err := a.game.Update(1 / float64(ebiten.TPS()))
	if errors.Is(err, render.ErrQuit) {
		return ebiten.Termination
	}
	return err
}

// Draw implements ebiten.Game.
func (a *gameAdapter) Draw(screen *ebiten.Image) {
	if a.surface == nil {
		a.surface = &Surface{fonts: a.fonts}
	}
	a.surface.img = screen
	a.game.Draw(a.surface)
}

// Layout implements ebiten.Game. The screen matches the window so the
// view scales with resizes.
func (a *gameAdapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
