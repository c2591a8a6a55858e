package render

// Camera translates between grid coordinates and screen coordinates.
// Grid X is multiplied by 2 because emoji occupy 2 terminal columns.
// Grid Y grows upwards, so row 0 of the grid is the bottom screen row.
type Camera struct {
	OffsetX    int
	OffsetY    int
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
	Rows       int // grid height
}

// NewCamera creates a camera for a grid of the given height.
func NewCamera(viewW, viewH, rows int) *Camera {
	return &Camera{ViewWidth: viewW, ViewHeight: viewH, Rows: rows}
}

// row converts a grid Y to a top-down row number.
func (c *Camera) row(wy int) int { return c.Rows - 1 - wy }

// Center repositions the camera so that grid position (cx, cy) is in the middle.
func (c *Camera) Center(cx, cy int) {
	// ViewWidth is in columns; each grid cell is 2 columns wide.
	c.OffsetX = cx - (c.ViewWidth/2)/2
	c.OffsetY = c.row(cy) - c.ViewHeight/2
}

// Fit centers a width x height grid in the viewport.
func (c *Camera) Fit(width, height int) {
	c.Rows = height
	c.Center(width/2, height/2)
	if width*2 <= c.ViewWidth {
		c.OffsetX = -(c.ViewWidth/2 - width) / 2
	}
	if height <= c.ViewHeight {
		c.OffsetY = -(c.ViewHeight - height) / 2
	}
}

// WorldToScreen converts grid (wx, wy) to screen (sx, sy).
// visible is false when the result falls outside the viewport.
func (c *Camera) WorldToScreen(wx, wy int) (sx, sy int, visible bool) {
	sx = (wx - c.OffsetX) * 2
	sy = c.row(wy) - c.OffsetY
	visible = sx >= 0 && sx+1 < c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// ScreenToWorld converts screen (sx, sy) to grid coordinates. Either half
// of a two-column cell maps to the same grid cell.
func (c *Camera) ScreenToWorld(sx, sy int) (int, int) {
	return floorDiv(sx, 2) + c.OffsetX, c.Rows - 1 - (sy + c.OffsetY)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}
