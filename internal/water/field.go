package water

import "fmt"

// maxFieldCells bounds a single buffer to what a float render target of the
// largest common texture size (8192x8192) can hold.
const maxFieldCells = 8192 * 8192

// FieldBuffer is a row-major grid of (height, velocity) cells stored
// interleaved, the layout of a two-channel float texture.
type FieldBuffer struct {
	width, height int
	cells         []float32
}

// newFieldBuffer allocates a zeroed buffer.
func newFieldBuffer(width, height int) (*FieldBuffer, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d grid", ErrInvalidViewport, width, height)
	}
	if width*height > maxFieldCells {
		return nil, fmt.Errorf("%w: %dx%d grid exceeds %d cells", ErrUnsupportedFormat, width, height, maxFieldCells)
	}
	return &FieldBuffer{
		width:  width,
		height: height,
		cells:  make([]float32, 2*width*height),
	}, nil
}

// Width returns the number of columns.
func (b *FieldBuffer) Width() int { return b.width }

// Height returns the number of rows.
func (b *FieldBuffer) Height() int { return b.height }

// HeightAt returns the displacement of a cell.
func (b *FieldBuffer) HeightAt(x, y int) float32 {
	return b.cells[2*(y*b.width+x)]
}

// VelocityAt returns the rate of change of a cell.
func (b *FieldBuffer) VelocityAt(x, y int) float32 {
	return b.cells[2*(y*b.width+x)+1]
}

// Set overwrites one cell.
func (b *FieldBuffer) Set(x, y int, height, velocity float32) {
	idx := 2 * (y*b.width + x)
	b.cells[idx] = height
	b.cells[idx+1] = velocity
}

// clampedHeight reads a height with coordinates clamped to the grid edge.
func (b *FieldBuffer) clampedHeight(x, y int) float32 {
	x = clampCoord(x, 0, b.width-1)
	y = clampCoord(y, 0, b.height-1)
	return b.cells[2*(y*b.width+x)]
}

// zero clears every cell.
func (b *FieldBuffer) zero() {
	clear(b.cells)
}

// FieldPair owns the two field buffers and tracks which one holds the
// latest completed step.
type FieldPair struct {
	slots   [2]*FieldBuffer
	current int
}

// newFieldPair allocates two zeroed buffers of the same size.
func newFieldPair(width, height int) (*FieldPair, error) {
	a, err := newFieldBuffer(width, height)
	if err != nil {
		return nil, err
	}
	b, err := newFieldBuffer(width, height)
	if err != nil {
		return nil, err
	}
	return &FieldPair{slots: [2]*FieldBuffer{a, b}}, nil
}

// Read returns the buffer produced by the last step.
func (p *FieldPair) Read() *FieldBuffer { return p.slots[p.current] }

// Write returns the buffer the next step populates.
func (p *FieldPair) Write() *FieldBuffer { return p.slots[1-p.current] }

// Swap exchanges the read and write roles.
func (p *FieldPair) Swap() { p.current = 1 - p.current }

// Reset zeroes both buffers.
func (p *FieldPair) Reset() {
	p.slots[0].zero()
	p.slots[1].zero()
}

// Dims reports the grid size shared by both buffers.
func (p *FieldPair) Dims() (int, int) {
	return p.slots[0].width, p.slots[0].height
}
