package gfx

// StippleBand maps a 0..100 strength to a coverage band 1..4.
func StippleBand(strength float64) int {
	switch {
	case strength > 75:
		return 4
	case strength > 50:
		return 3
	case strength > 25:
		return 2
	default:
		return 1
	}
}

// AlphaBand maps a 0..1 opacity to a coverage band 1..4.
func AlphaBand(alpha float64) int { return StippleBand(alpha * 100) }

// StippleKeep reports whether the sprite-local pixel (x, y) is drawn in the
// given band. Band 4 keeps every pixel, 3 keeps three of four, 2 half, 1 a
// quarter.
func StippleKeep(x, y, band int) bool {
	pat := (x ^ y) & 3
	switch {
	case band >= 4:
		return true
	case band == 3:
		return pat != 3
	case band == 2:
		return pat < 2
	default:
		return pat == 0
	}
}
