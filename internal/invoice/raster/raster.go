// Package raster converts a rendered invoice document into a bitmap. The
// Rasterizer seam keeps the drawing backend swappable; the default
// implementation draws with the Go fonts from golang.org/x/image.
package raster

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/printdesk/printdesk/internal/invoice/render"
)

// Rasterizer captures a document at scale x its logical pixel size. Scale 1
// is the 96 DPI baseline; print quality passes dpi/96.
type Rasterizer interface {
	Capture(ctx context.Context, doc *render.Document, scale float64) (*image.RGBA, error)
}

// LogoLoader resolves the opaque companyLogo URL into an image. A nil loader
// or a load failure renders the document without a logo; the capture itself
// never fails on logo problems.
type LogoLoader interface {
	Load(ctx context.Context, url string) (image.Image, error)
}

// ImageRasterizer is the in-process Rasterizer used by the export pipeline.
type ImageRasterizer struct {
	Logos LogoLoader
}

func NewImageRasterizer(logos LogoLoader) *ImageRasterizer {
	return &ImageRasterizer{Logos: logos}
}

var (
	fontOnce    sync.Once
	fontErr     error
	regularFont *opentype.Font
	boldFont    *opentype.Font
)

func loadFonts() error {
	fontOnce.Do(func() {
		regularFont, fontErr = opentype.Parse(goregular.TTF)
		if fontErr != nil {
			return
		}
		boldFont, fontErr = opentype.Parse(gobold.TTF)
	})
	return fontErr
}

var (
	colorInk    = color.RGBA{33, 37, 41, 255}
	colorMuted  = color.RGBA{108, 117, 125, 255}
	colorRule   = color.RGBA{206, 212, 218, 255}
	colorBand   = color.RGBA{33, 37, 41, 255}
	colorPaper  = color.RGBA{255, 255, 255, 255}
	colorOnBand = color.RGBA{255, 255, 255, 255}
)

// Capture draws doc into a fresh RGBA bitmap of (doc size x scale). The same
// document and scale always produce the same pixels, logo loading aside.
func (r *ImageRasterizer) Capture(ctx context.Context, doc *render.Document, scale float64) (*image.RGBA, error) {
	if doc == nil {
		return nil, errors.New("raster: nil document")
	}
	if scale <= 0 {
		return nil, fmt.Errorf("raster: invalid scale %v", scale)
	}
	if err := loadFonts(); err != nil {
		return nil, fmt.Errorf("raster: load fonts: %w", err)
	}

	w := int(doc.WidthPx*scale + 0.5)
	h := int(doc.HeightPx*scale + 0.5)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorPaper), image.Point{}, draw.Src)

	c := &canvas{img: img, scale: scale, faces: map[faceKey]font.Face{}}

	margin := doc.MarginPx
	contentW := doc.WidthPx - 2*margin
	y := margin

	y = r.drawHeader(ctx, c, doc, margin, contentW, y)
	y = drawClient(c, doc, margin, contentW, y)
	y = drawTable(c, doc, margin, contentW, y)
	y = drawSummary(c, doc, margin, contentW, y)
	y = drawPayments(c, doc, margin, contentW, y)
	drawNotes(c, doc, margin, contentW, y)
	drawFooter(c, doc, margin, contentW)

	return img, nil
}

func (r *ImageRasterizer) drawHeader(ctx context.Context, c *canvas, doc *render.Document, margin, contentW, y float64) float64 {
	// The page title sits top-right whether or not the header block is shown.
	c.textRight(margin+contentW, y+24, doc.Title, 26, true, colorInk)

	if doc.Header == nil {
		return y + 44
	}
	h := doc.Header
	textX := margin
	blockH := 0.0

	if h.Logo != nil {
		size := h.Logo.SizePx
		if r.drawLogo(ctx, c, h.Logo, margin, y) {
			textX = margin + size + 16
			blockH = size
		}
	}

	ty := y + 18
	if h.CompanyName != "" {
		c.text(textX, ty, h.CompanyName, 20, true, colorInk)
		ty += 24
	}
	for _, line := range []string{h.Address, h.Email, h.Phone} {
		if line == "" {
			continue
		}
		c.text(textX, ty, line, 11, false, colorMuted)
		ty += 15
	}
	if h.TIN != "" {
		c.text(textX, ty, "TIN: "+h.TIN, 11, false, colorMuted)
		ty += 15
	}
	if ty-y > blockH {
		blockH = ty - y
	}

	y += blockH + 14
	c.fillRect(margin, y, contentW, 2, colorInk)
	return y + 18
}

func (r *ImageRasterizer) drawLogo(ctx context.Context, c *canvas, logo *render.Logo, x, y float64) bool {
	if r.Logos == nil {
		return false
	}
	src, err := r.Logos.Load(ctx, logo.URL)
	if err != nil || src == nil {
		return false
	}
	dst := c.rect(x, y, logo.SizePx, logo.SizePx)
	xdraw.ApproxBiLinear.Scale(c.img, dst, src, src.Bounds(), draw.Over, nil)
	if logo.Border {
		c.strokeRect(x, y, logo.SizePx, logo.SizePx, 1, colorRule)
	}
	return true
}

func drawClient(c *canvas, doc *render.Document, margin, contentW, y float64) float64 {
	c.text(margin, y+12, "BILL TO", 10, true, colorMuted)
	c.text(margin, y+32, doc.Client.Name, 14, true, colorInk)
	c.textRight(margin+contentW, y+12, "Order No: "+doc.Client.OrderNumber, 11, false, colorInk)
	c.textRight(margin+contentW, y+28, "Date: "+doc.Client.Date, 11, false, colorInk)
	return y + 52
}

const (
	tableRowH    = 30.0
	tableHeaderH = 32.0
	cellPad      = 8.0
)

func drawTable(c *canvas, doc *render.Document, margin, contentW, y float64) float64 {
	t := doc.Table

	// header band
	c.fillRect(margin, y, contentW, tableHeaderH, colorBand)
	x := margin
	for _, col := range t.Columns {
		w := contentW * col.WidthPct / 100
		drawCell(c, col.Title, x, y, w, tableHeaderH, col.Align, 10, true, colorOnBand)
		x += w
	}
	y += tableHeaderH

	for _, row := range t.Rows {
		x = margin
		for i, col := range t.Columns {
			w := contentW * col.WidthPct / 100
			if i < len(row.Cells) && row.Cells[i] != "" {
				drawCell(c, row.Cells[i], x, y, w, tableRowH, col.Align, 11, false, colorInk)
			}
			x += w
		}
		c.fillRect(margin, y+tableRowH-1, contentW, 1, colorRule)
		y += tableRowH
	}
	return y + 16
}

func drawCell(c *canvas, s string, x, y, w, h float64, align render.Align, size float64, bold bool, col color.Color) {
	baseline := y + h/2 + size/3
	switch align {
	case render.AlignRight:
		c.textRight(x+w-cellPad, baseline, s, size, bold, col)
	case render.AlignCenter:
		c.textCenter(x+w/2, baseline, s, size, bold, col)
	default:
		c.text(x+cellPad, baseline, s, size, bold, col)
	}
}

func drawSummary(c *canvas, doc *render.Document, margin, contentW, y float64) float64 {
	blockW := contentW * 0.4
	x := margin + contentW - blockW
	for _, line := range doc.Summary {
		size, bold := 12.0, false
		if line.Emphasis {
			c.fillRect(x, y, blockW, 1, colorInk)
			y += 8
			size, bold = 14, true
		}
		value := line.Value
		if line.Negative {
			value = "-" + value
		}
		c.text(x, y+12, line.Label, size, bold, colorInk)
		c.textRight(margin+contentW, y+12, value, size, bold, colorInk)
		y += 22
	}
	return y + 14
}

func drawPayments(c *canvas, doc *render.Document, margin, contentW, y float64) float64 {
	if len(doc.Payments) == 0 {
		return y
	}
	gap := 16.0
	cardW := (contentW - gap*float64(len(doc.Payments)-1)) / float64(len(doc.Payments))
	maxH := 0.0
	x := margin
	for _, card := range doc.Payments {
		cardH := 30 + 16*float64(len(card.Lines))
		c.strokeRect(x, y, cardW, cardH, 1, colorRule)
		c.text(x+cellPad, y+18, card.Title, 10, true, colorMuted)
		ly := y + 36
		for _, line := range card.Lines {
			c.text(x+cellPad, ly, line, 10, false, colorInk)
			ly += 16
		}
		if cardH > maxH {
			maxH = cardH
		}
		x += cardW + gap
	}
	return y + maxH + 16
}

func drawNotes(c *canvas, doc *render.Document, margin, contentW, y float64) {
	if doc.Notes == "" {
		return
	}
	c.text(margin, y+12, "NOTES", 10, true, colorMuted)
	ly := y + 30
	for _, line := range c.wrap(doc.Notes, 11, contentW) {
		c.text(margin, ly, line, 11, false, colorInk)
		ly += 15
	}
}

func drawFooter(c *canvas, doc *render.Document, margin, contentW float64) {
	if doc.Footer == nil {
		return
	}
	c.textCenter(margin+contentW/2, doc.HeightPx-margin+8, doc.Footer.Text, 11, false, colorMuted)
}

// canvas wraps the target bitmap with scale-aware drawing primitives.
// Coordinates are logical document pixels; the canvas applies the scale.
type canvas struct {
	img   *image.RGBA
	scale float64
	faces map[faceKey]font.Face
}

type faceKey struct {
	size float64
	bold bool
}

func (c *canvas) px(v float64) int { return int(v*c.scale + 0.5) }

func (c *canvas) rect(x, y, w, h float64) image.Rectangle {
	return image.Rect(c.px(x), c.px(y), c.px(x+w), c.px(y+h))
}

func (c *canvas) fillRect(x, y, w, h float64, col color.Color) {
	draw.Draw(c.img, c.rect(x, y, w, h), image.NewUniform(col), image.Point{}, draw.Src)
}

func (c *canvas) strokeRect(x, y, w, h, thickness float64, col color.Color) {
	t := thickness
	c.fillRect(x, y, w, t, col)
	c.fillRect(x, y+h-t, w, t, col)
	c.fillRect(x, y, t, h, col)
	c.fillRect(x+w-t, y, t, h, col)
}

func (c *canvas) face(size float64, bold bool) font.Face {
	key := faceKey{size: size, bold: bold}
	if f, ok := c.faces[key]; ok {
		return f
	}
	src := regularFont
	if bold {
		src = boldFont
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size * c.scale,
		DPI:     96,
		Hinting: font.HintingFull,
	})
	if err != nil {
		// parse succeeded earlier, so face creation only fails on bad options
		panic(fmt.Sprintf("raster: new face: %v", err))
	}
	c.faces[key] = f
	return f
}

func (c *canvas) text(x, y float64, s string, size float64, bold bool, col color.Color) {
	if s == "" {
		return
	}
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: c.face(size, bold),
		Dot:  fixed.P(c.px(x), c.px(y)),
	}
	d.DrawString(s)
}

func (c *canvas) textRight(x, y float64, s string, size float64, bold bool, col color.Color) {
	w := font.MeasureString(c.face(size, bold), s)
	c.textAt(fixed.I(c.px(x))-w, y, s, size, bold, col)
}

func (c *canvas) textCenter(x, y float64, s string, size float64, bold bool, col color.Color) {
	w := font.MeasureString(c.face(size, bold), s)
	c.textAt(fixed.I(c.px(x))-w/2, y, s, size, bold, col)
}

func (c *canvas) textAt(dotX fixed.Int26_6, y float64, s string, size float64, bold bool, col color.Color) {
	if s == "" {
		return
	}
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: c.face(size, bold),
		Dot:  fixed.Point26_6{X: dotX, Y: fixed.I(c.px(y))},
	}
	d.DrawString(s)
}

// wrap splits s into lines no wider than maxW logical pixels.
func (c *canvas) wrap(s string, size, maxW float64) []string {
	face := c.face(size, false)
	limit := fixed.I(c.px(maxW))
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(s) {
		candidate := word
		if cur.Len() > 0 {
			candidate = cur.String() + " " + word
		}
		if font.MeasureString(face, candidate) > limit && cur.Len() > 0 {
			lines = append(lines, cur.String())
			cur.Reset()
			cur.WriteString(word)
			continue
		}
		cur.Reset()
		cur.WriteString(candidate)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
