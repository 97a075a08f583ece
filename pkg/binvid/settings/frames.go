package settings

// PixelsPerFrame is the number of whole blocks that fit in one frame.
func (s Settings) PixelsPerFrame() int {
	if s.Size < 1 {
		return 0
	}
	return (s.Width / s.Size) * (s.Height / s.Size)
}

// UnitsPerFrame is how many bits (Binary) or bytes (Color) one frame carries.
func (s Settings) UnitsPerFrame(mode OutputMode) int {
	if mode == Color {
		return s.PixelsPerFrame() * 3
	}
	return s.PixelsPerFrame()
}

// FramesNeeded is the number of frames a payload of units bits or bytes
// would occupy. It is zero when a frame holds no whole block.
func (s Settings) FramesNeeded(mode OutputMode, units int) int {
	perFrame := s.UnitsPerFrame(mode)
	if perFrame <= 0 || units <= 0 {
		return 0
	}
	return (units + perFrame - 1) / perFrame
}
