package gamemap

// Index maps grid coordinates to a flat tile index.
func Index(x, y, width int) int {
	return x + y*width
}

// LocalXY reads back shape-local coordinates from a flat shape index.
//
// This is not the inverse of Index: x comes from the quotient and y from the
// remainder. Treasure shapes in the catalog are authored against exactly this
// mapping, so the two must not be unified.
func LocalXY(idx, width int) (x, y int) {
	return idx / width, idx % width
}
