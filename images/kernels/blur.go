package kernels

import (
	"image"
	"sync"
)

// SoftenEdges box-filters the alpha channel of partially transparent pixels.
//
// Every pixel whose alpha is strictly between 0 and 255 receives the mean alpha
// of the (2*radius+1)^2 window centred on it, clipped to the image bounds and
// truncated to an integer. Fully transparent and fully opaque pixels are copied
// unchanged, as are all color channels.
//
// Neighbor alphas are always read from src, never from pixels already written,
// so the result does not depend on scan order. src is not modified; the caller
// swaps the returned buffer in. A radius of 0 returns src itself.
//
// Arguments:
//   - src: The post-removal image.
//   - radius: Window half-size in pixels.
//
// Returns:
//   - *image.NRGBA: The softened image.
func SoftenEdges(src *image.NRGBA, radius uint8) *image.NRGBA {
	if radius == 0 {
		return src
	}

	dst := &image.NRGBA{
		Pix:    make([]uint8, len(src.Pix)),
		Stride: src.Stride,
		Rect:   src.Rect,
	}
	copy(dst.Pix, src.Pix)

	w, h := src.Rect.Dx(), src.Rect.Dy()
	r := int(radius)

	parallelRows(h, func(y int) {
		row := y * src.Stride
		for x := 0; x < w; x++ {
			a := src.Pix[row+x*4+3]
			if a == 0 || a == 0xff {
				continue
			}
			dst.Pix[row+x*4+3] = windowMeanAlpha(src, x, y, r)
		}
	})

	return dst
}

// windowMeanAlpha averages alpha over [x-r, x+r] x [y-r, y+r] intersected with
// the image bounds. Coordinates are relative to src.Rect.Min.
func windowMeanAlpha(src *image.NRGBA, x, y, r int) uint8 {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	x0, x1 := max(x-r, 0), min(x+r, w-1)
	y0, y1 := max(y-r, 0), min(y+r, h-1)

	var sum, count uint32
	for ny := y0; ny <= y1; ny++ {
		off := ny*src.Stride + x0*4 + 3
		for nx := x0; nx <= x1; nx++ {
			sum += uint32(src.Pix[off])
			off += 4
		}
		count += uint32(x1 - x0 + 1)
	}
	return uint8(sum / count)
}

// parallelRows runs fn for every row in [0, h), splitting rows into chunks
// that are processed concurrently. Each row is visited exactly once.
func parallelRows(h int, fn func(y int)) {
	if h < 4 {
		for y := 0; y < h; y++ {
			fn(y)
		}
		return
	}

	chunk := chooseChunk(h)
	var wg sync.WaitGroup
	for start := 0; start < h; start += chunk {
		end := min(start+chunk, h)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for y := s; y < e; y++ {
				fn(y)
			}
		}(start, end)
	}
	wg.Wait()
}

// chooseChunk picks a work chunk size that balances overhead and cache locality.
func chooseChunk(n int) int {
	switch {
	case n >= 2048:
		return 128
	case n >= 512:
		return 64
	default:
		return 32
	}
}
