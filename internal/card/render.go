package card

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"roaster-backend/internal/models"
)

// Input is what a card shows.
type Input struct {
	Text   string
	Name   string
	Career string
	Mode   models.Mode
	// MaxLines caps the body; zero means unlimited.
	MaxLines int
}

// Card is a rendered card plus the layout it was drawn with.
type Card struct {
	Image  *image.RGBA
	Layout Layout
}

// EncodePNG writes the card as a PNG image.
func (c *Card) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.Image)
}

// PNG returns the encoded card.
func (c *Card) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode card: %w", err)
	}
	return buf.Bytes(), nil
}

// Renderer draws cards. It is implemented by FontRenderer; the share flow
// treats a nil Renderer as a platform without drawing support.
type Renderer interface {
	Render(in Input) (*Card, error)
}

var (
	fontsOnce sync.Once
	fontsErr  error
	regular   *opentype.Font
	bold      *opentype.Font
	italic    *opentype.Font
)

func loadFonts() error {
	fontsOnce.Do(func() {
		if regular, fontsErr = opentype.Parse(goregular.TTF); fontsErr != nil {
			return
		}
		if bold, fontsErr = opentype.Parse(gobold.TTF); fontsErr != nil {
			return
		}
		italic, fontsErr = opentype.Parse(goitalic.TTF)
	})
	return fontsErr
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// FontRenderer renders cards with the Go font family. Faces are created per
// render because font.Face is not safe for concurrent use.
type FontRenderer struct{}

func NewRenderer() *FontRenderer {
	return &FontRenderer{}
}

type faces struct {
	header, body, footer font.Face
}

func (f *faces) Close() {
	for _, face := range []font.Face{f.header, f.body, f.footer} {
		if face != nil {
			face.Close()
		}
	}
}

func openFaces() (*faces, error) {
	if err := loadFonts(); err != nil {
		return nil, fmt.Errorf("failed to parse card fonts: %w", err)
	}

	f := &faces{}
	var err error
	if f.header, err = newFace(bold, headerFontSize*ScaleFactor); err != nil {
		return nil, err
	}
	if f.body, err = newFace(regular, bodyFontSize*ScaleFactor); err != nil {
		f.Close()
		return nil, err
	}
	if f.footer, err = newFace(italic, footerFontSize*ScaleFactor); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// Measure computes the layout of in without drawing it.
func (r *FontRenderer) Measure(in Input) (Layout, error) {
	f, err := openFaces()
	if err != nil {
		return Layout{}, err
	}
	defer f.Close()
	return layoutFor(f, in), nil
}

func layoutFor(f *faces, in Input) Layout {
	measure := func(s string) fixed.Int26_6 { return font.MeasureString(f.body, s) }
	return ComputeLayout(measure, NormalizeText(in.Text), in.MaxLines,
		f.header.Metrics().Ascent.Ceil(), f.footer.Metrics().Ascent.Ceil())
}

func (r *FontRenderer) Render(in Input) (*Card, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, errors.New("card text is empty")
	}

	f, err := openFaces()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	l := layoutFor(f, in)
	th := themeFor(in.Mode)
	s := ScaleFactor

	img := image.NewRGBA(image.Rect(0, 0, l.CanvasWidth, l.CanvasHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)

	// Header: icon then title.
	iconSize := headerFontSize * s
	iconRect := image.Rect(padding*s, l.HeaderTop, padding*s+iconSize, l.HeaderTop+iconSize)
	drawIcon(img, iconRect, th.icon, th.accent)
	drawText(img, f.header, th.text, iconRect.Max.X+iconGap*s, l.HeaderBaseline, HeaderText(in.Name, in.Mode))

	// Body with accent bar.
	draw.Draw(img, l.AccentBar, image.NewUniform(th.accent), image.Point{}, draw.Src)
	bodyAscent := f.body.Metrics().Ascent.Ceil()
	for i, line := range l.Lines {
		drawText(img, f.body, th.text, l.ContentX, l.BodyTop+i*l.BodyLineHeight+bodyAscent, line)
	}

	// Footer, centred.
	footerWidth := font.MeasureString(f.footer, FooterText).Ceil()
	drawText(img, f.footer, footerColor, (l.CanvasWidth-footerWidth)/2, l.FooterBaseline, FooterText)

	return &Card{Image: img, Layout: l}, nil
}

func drawText(dst draw.Image, face font.Face, col color.Color, x, baseline int, s string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(s)
}

// drawIcon fills a flame or a four-point sparkle inside r.
func drawIcon(dst draw.Image, r image.Rectangle, kind iconKind, col color.Color) {
	w, h := float32(r.Dx()), float32(r.Dy())
	z := vector.NewRasterizer(r.Dx(), r.Dy())

	switch kind {
	case iconFlame:
		z.MoveTo(0.50*w, 0.02*h)
		z.QuadTo(0.95*w, 0.45*h, 0.85*w, 0.70*h)
		z.QuadTo(0.78*w, 0.98*h, 0.50*w, 0.98*h)
		z.QuadTo(0.22*w, 0.98*h, 0.15*w, 0.70*h)
		z.QuadTo(0.08*w, 0.45*h, 0.32*w, 0.30*h)
		z.QuadTo(0.34*w, 0.48*h, 0.42*w, 0.52*h)
		z.QuadTo(0.40*w, 0.25*h, 0.50*w, 0.02*h)
		z.ClosePath()
	default:
		z.MoveTo(0.50*w, 0)
		z.QuadTo(0.56*w, 0.44*h, w, 0.50*h)
		z.QuadTo(0.56*w, 0.56*h, 0.50*w, h)
		z.QuadTo(0.44*w, 0.56*h, 0, 0.50*h)
		z.QuadTo(0.44*w, 0.44*h, 0.50*w, 0)
		z.ClosePath()
	}

	z.Draw(dst, r, image.NewUniform(col), image.Point{})
}
