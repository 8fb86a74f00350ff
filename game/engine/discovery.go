package engine

// Discovery tracks which cells have been revealed to the player. Cells are
// never hidden again within a game.
type Discovery struct {
	size int
	mask [][]bool
}

// NewDiscovery creates an empty mask for a size x size board
func NewDiscovery(size int) *Discovery {
	mask := make([][]bool, size)
	for i := range mask {
		mask[i] = make([]bool, size)
	}
	return &Discovery{size: size, mask: mask}
}

// RevealAround marks the in-bounds 3x3 block centered on p as discovered
func (d *Discovery) RevealAround(p Position) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			x, y := p.X+dx, p.Y+dy
			if x >= 0 && x < d.size && y >= 0 && y < d.size {
				d.mask[y][x] = true
			}
		}
	}
}

// IsDiscovered reports whether p has been revealed
func (d *Discovery) IsDiscovered(p Position) bool {
	if p.X < 0 || p.X >= d.size || p.Y < 0 || p.Y >= d.size {
		return false
	}
	return d.mask[p.Y][p.X]
}

// ResetTo clears the mask and reveals the neighborhood of p
func (d *Discovery) ResetTo(p Position) {
	for _, row := range d.mask {
		clear(row)
	}
	d.RevealAround(p)
}

// Count returns the number of discovered cells
func (d *Discovery) Count() int {
	n := 0
	for _, row := range d.mask {
		for _, seen := range row {
			if seen {
				n++
			}
		}
	}
	return n
}
