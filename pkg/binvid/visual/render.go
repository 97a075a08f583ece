// Package visual renders a payload as a grid of solid-colored blocks.
//
// The result stands in for the first frame of a video: blocks are laid out
// row-major over a Width x Height canvas, one bit (Binary) or one RGB
// triple (Color) per block. It is diagnostic output only.
package visual

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/provide-io/binvid/pkg/binvid/payload"
	"github.com/provide-io/binvid/pkg/binvid/settings"
)

var (
	Background = color.RGBA{0, 0, 0, 255}
	White      = color.RGBA{255, 255, 255, 255}
	Black      = color.RGBA{0, 0, 0, 255}
)

// Grid is the block layout of a canvas. Edge blocks may be clipped.
type Grid struct {
	Cols, Rows int
	Size       int
}

// GridFor computes the block layout for s.
func GridFor(s settings.Settings) Grid {
	if s.Size < 1 || s.Width < 1 || s.Height < 1 {
		return Grid{Size: s.Size}
	}
	return Grid{
		Cols: (s.Width + s.Size - 1) / s.Size,
		Rows: (s.Height + s.Size - 1) / s.Size,
		Size: s.Size,
	}
}

// Blocks is the total number of grid cells.
func (g Grid) Blocks() int {
	return g.Cols * g.Rows
}

// blockColor returns the fill for block k, or false if block k stays at
// the background.
type blockColor func(k int) (color.RGBA, bool)

func colorsFor(data payload.Data) blockColor {
	switch d := data.(type) {
	case payload.Bits:
		return func(k int) (color.RGBA, bool) {
			if k >= len(d) {
				return color.RGBA{}, false
			}
			if d[k] {
				return White, true
			}
			return Black, true
		}
	case payload.Bytes:
		// only whole RGB triples are drawn
		return func(k int) (color.RGBA, bool) {
			i := k * 3
			if i+2 >= len(d) {
				return color.RGBA{}, false
			}
			return color.RGBA{d[i], d[i+1], d[i+2], 255}, true
		}
	default:
		return func(int) (color.RGBA, bool) { return color.RGBA{}, false }
	}
}

// Render draws data onto a new s.Width x s.Height canvas. Rows of blocks
// are split across s.Workers() goroutines; the output does not depend on
// the worker count.
func Render(data payload.Data, s settings.Settings) *image.RGBA {
	width, height := max(s.Width, 0), max(s.Height, 0)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{Background}, image.Point{}, draw.Src)

	grid := GridFor(s)
	if grid.Blocks() == 0 || data == nil {
		return img
	}

	fill := colorsFor(data)
	// rows past the last drawn block stay at the background
	lastRow := min(grid.Rows, (drawnBlocks(data)+grid.Cols-1)/grid.Cols)
	if lastRow == 0 {
		return img
	}

	workers := min(s.Workers(), lastRow)
	rowsPer := (lastRow + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < lastRow; start += rowsPer {
		end := min(start+rowsPer, lastRow)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			renderRows(img, grid, fill, start, end)
		}(start, end)
	}
	wg.Wait()

	return img
}

// renderRows fills block rows [start, end). Workers own disjoint pixel
// rows, so no locking is needed.
func renderRows(img *image.RGBA, grid Grid, fill blockColor, start, end int) {
	bounds := img.Bounds()
	for row := start; row < end; row++ {
		for col := 0; col < grid.Cols; col++ {
			c, ok := fill(row*grid.Cols + col)
			if !ok {
				continue
			}
			rect := image.Rect(col*grid.Size, row*grid.Size, (col+1)*grid.Size, (row+1)*grid.Size).Intersect(bounds)
			draw.Draw(img, rect, &image.Uniform{c}, image.Point{}, draw.Src)
		}
	}
}

func drawnBlocks(data payload.Data) int {
	if data.Mode() == settings.Color {
		return data.Units() / 3
	}
	return data.Units()
}

// FrameStats summarizes how a payload maps onto frames.
type FrameStats struct {
	PixelsPerFrame int `json:"pixels_per_frame"`
	UnitsPerFrame  int `json:"units_per_frame"`
	Units          int `json:"units"`
	Frames         int `json:"frames"`
	Blocks         int `json:"blocks"` // grid cells on the sample frame
	Drawn          int `json:"drawn"`  // cells actually filled on the sample frame
}

// Stats computes FrameStats for data at s.
func Stats(data payload.Data, s settings.Settings) FrameStats {
	mode, units := data.Mode(), data.Units()
	grid := GridFor(s)
	return FrameStats{
		PixelsPerFrame: s.PixelsPerFrame(),
		UnitsPerFrame:  s.UnitsPerFrame(mode),
		Units:          units,
		Frames:         s.FramesNeeded(mode, units),
		Blocks:         grid.Blocks(),
		Drawn:          min(drawnBlocks(data), grid.Blocks()),
	}
}
