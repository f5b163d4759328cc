package water

// clampCoord constrains v to lie within the inclusive [min, max] range.
func clampCoord(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// cellCenter returns the normalized field-space position of a cell center.
func cellCenter(x, y, width, height int) (float64, float64) {
	return (float64(x) + 0.5) / float64(width), (float64(y) + 0.5) / float64(height)
}
