package canvas

import (
	"bytes"
	"image"
	"image/png"
	"strings"

	"github.com/fogleman/gg"
)

// One straight line primitive of a freehand stroke
type Segment struct {
	PrevX float64
	PrevY float64
	X     float64
	Y     float64
	Color string
	Size  float64
}

// CSS-style color names accepted alongside hex values. Unknown names
// fall back to black so a malformed event still renders best-effort.
var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#008000",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"pink":    "#ffc0cb",
	"brown":   "#a52a2a",
	"cyan":    "#00ffff",
	"magenta": "#ff00ff",
	"gray":    "#808080",
	"grey":    "#808080",
}

// A raster drawing surface shared conceptually by all participants.
// Applying the same segments yields the same pixels on every replica.
type Canvas struct {
	dc     *gg.Context
	width  int
	height int
}

// Creates a white canvas of the given pixel dimensions
func New(width, height int) *Canvas {
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	return &Canvas{dc: dc, width: width, height: height}
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// Paints a line from the segment's start to its end point with rounded
// caps. Used identically for local strokes and strokes received from
// the relay, so all replicas converge for the same applied segments.
func (c *Canvas) DrawSegment(seg Segment) {
	c.dc.SetHexColor(resolveColor(seg.Color))
	c.dc.SetLineWidth(seg.Size)
	c.dc.SetLineCap(gg.LineCapRound)
	c.dc.DrawLine(seg.PrevX, seg.PrevY, seg.X, seg.Y)
	c.dc.Stroke()
}

func resolveColor(s string) string {
	if strings.HasPrefix(s, "#") {
		return s
	}
	if hex, ok := namedColors[strings.ToLower(s)]; ok {
		return hex
	}
	return "#000000"
}

// Encodes the current pixel state as a self-contained PNG payload
func (c *Canvas) Snapshot() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Repaints the canvas from a snapshot, replacing prior pixel content.
// Snapshots are full opaque rasters, so drawing at the origin covers
// the entire surface.
func (c *Canvas) Restore(snapshot []byte) error {
	return c.paint(snapshot)
}

// Draws a snapshot over the current content without clearing first.
// Later snapshots paint over earlier ones at overlapping pixels.
func (c *Canvas) Composite(snapshot []byte) error {
	return c.paint(snapshot)
}

func (c *Canvas) paint(snapshot []byte) error {
	img, err := png.Decode(bytes.NewReader(snapshot))
	if err != nil {
		return err
	}
	c.dc.DrawImage(img, 0, 0)
	return nil
}

// Returns the backing image for pixel-level inspection
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}
