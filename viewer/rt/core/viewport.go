package core

// Viewport remembers the last valid framebuffer size.
type Viewport struct {
	Width  int
	Height int
}

// Resize applies the new size and reports whether it did. Sizes with a zero
// (or negative) dimension are rejected so the aspect ratio never divides by zero.
func (v *Viewport) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	v.Width = width
	v.Height = height
	return true
}

func (v Viewport) Aspect() float32 {
	if v.Height == 0 {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}
