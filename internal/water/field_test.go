package water

import (
	"errors"
	"testing"
)

func TestFieldPairSwapRoles(t *testing.T) {
	p, err := newFieldPair(3, 2)
	if err != nil {
		t.Fatalf("newFieldPair: %v", err)
	}
	read, write := p.Read(), p.Write()
	if read == write {
		t.Fatal("read and write share storage")
	}
	write.Set(1, 1, 2, 3)
	p.Swap()
	if p.Read() != write || p.Write() != read {
		t.Fatal("swap did not exchange roles")
	}
	if got := p.Read().HeightAt(1, 1); got != 2 {
		t.Errorf("HeightAt(1,1) = %v, want 2", got)
	}
	if got := p.Read().VelocityAt(1, 1); got != 3 {
		t.Errorf("VelocityAt(1,1) = %v, want 3", got)
	}
	p.Swap()
	if p.Read() != read {
		t.Error("second swap did not restore roles")
	}
}

func TestFieldPairReset(t *testing.T) {
	p, err := newFieldPair(2, 2)
	if err != nil {
		t.Fatalf("newFieldPair: %v", err)
	}
	p.Read().Set(0, 0, 1, 1)
	p.Write().Set(1, 1, -1, -1)
	p.Reset()
	for _, b := range p.slots {
		for i, v := range b.cells {
			if v != 0 {
				t.Fatalf("cell value %d = %v after reset", i, v)
			}
		}
	}
	if w, h := p.Dims(); w != 2 || h != 2 {
		t.Errorf("Dims() = %dx%d, want 2x2", w, h)
	}
}

func TestNewFieldBufferRejectsBadSizes(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		want error
	}{
		{"zero width", 0, 4, ErrInvalidViewport},
		{"negative height", 4, -1, ErrInvalidViewport},
		{"too large", 9000, 9000, ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newFieldBuffer(tt.w, tt.h)
			if !errors.Is(err, tt.want) {
				t.Errorf("newFieldBuffer(%d, %d) error = %v, want %v", tt.w, tt.h, err, tt.want)
			}
		})
	}
}

func TestClampedHeightUsesEdge(t *testing.T) {
	b := mustBuffer(t, 3, 3)
	b.Set(0, 0, 5, 0)
	b.Set(2, 2, 7, 0)
	if got := b.clampedHeight(-1, -4); got != 5 {
		t.Errorf("clampedHeight(-1,-4) = %v, want 5", got)
	}
	if got := b.clampedHeight(3, 9); got != 7 {
		t.Errorf("clampedHeight(3,9) = %v, want 7", got)
	}
}
