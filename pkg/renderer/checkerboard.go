package renderer

// Checkerboard renders the grid test pattern: square cells of cellSize pixels
// alternating black and white, with cell (0,0) black. White cells get alpha 0 and
// black cells alpha 1, so only the black squares are opaque.
func Checkerboard(width, height, cellSize int) *Framebuffer {
	fb := NewFramebuffer(width, height)
	if cellSize <= 0 {
		return fb
	}

	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			value := 1.0
			if (i/cellSize)%2 == (j/cellSize)%2 {
				value = 0
			}
			fb.SetRGBA(i, j, value, value, value, 1-value)
		}
	}

	return fb
}
