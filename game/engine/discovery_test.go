package engine

import "testing"

func TestDiscovery_RevealAround(t *testing.T) {
	tests := []struct {
		name     string
		pos      Position
		expected int
	}{
		{"corner", Position{X: 0, Y: 0}, 4},
		{"edge", Position{X: 2, Y: 0}, 6},
		{"center", Position{X: 2, Y: 2}, 9},
		{"opposite corner", Position{X: 4, Y: 4}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDiscovery(5)
			d.RevealAround(tt.pos)
			if d.Count() != tt.expected {
				t.Errorf("Expected %d discovered cells, got %d", tt.expected, d.Count())
			}

			// Idempotent
			d.RevealAround(tt.pos)
			if d.Count() != tt.expected {
				t.Errorf("Expected reveal to be idempotent, got %d cells", d.Count())
			}

			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					p := Position{X: tt.pos.X + dx, Y: tt.pos.Y + dy}
					if p.X < 0 || p.Y < 0 || p.X >= 5 || p.Y >= 5 {
						continue
					}
					if !d.IsDiscovered(p) {
						t.Errorf("Expected %v to be discovered", p)
					}
				}
			}
		})
	}
}

func TestDiscovery_OutOfBounds(t *testing.T) {
	d := NewDiscovery(5)
	d.RevealAround(Position{X: 0, Y: 0})

	for _, p := range []Position{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 5, Y: 0}, {X: 0, Y: 5}} {
		if d.IsDiscovered(p) {
			t.Errorf("Expected out-of-bounds %v to read as undiscovered", p)
		}
	}
}

func TestDiscovery_ResetTo(t *testing.T) {
	d := NewDiscovery(6)
	d.RevealAround(Position{X: 3, Y: 3})
	d.RevealAround(Position{X: 5, Y: 5})

	d.ResetTo(Position{X: 0, Y: 0})

	if d.Count() != 4 {
		t.Errorf("Expected 4 discovered cells after reset, got %d", d.Count())
	}
	if d.IsDiscovered(Position{X: 3, Y: 3}) {
		t.Error("Expected reset to clear previously discovered cells")
	}
}
