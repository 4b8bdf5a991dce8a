package viz

import (
	"strings"
	"testing"
)

func TestCanvasStartsBlank(t *testing.T) {
	c := NewCanvas(4, 2)
	for _, r := range c.String() {
		if r != 0x2800 && r != '\n' {
			t.Fatalf("fresh canvas contains %U", r)
		}
	}
}

func TestCanvasSetLightsOneDot(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)
	lines := strings.Split(strings.TrimRight(c.String(), "\n"), "\n")
	if lines[0][:len("⠁")] != "⠁" {
		t.Errorf("cell (0,0) = %q, want dot 1", lines[0][:3])
	}
}

func TestCanvasSetOutOfBoundsIsIgnored(t *testing.T) {
	c := NewCanvas(2, 2)
	before := c.String()
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(100, 0)
	c.Set(0, 100)
	if c.String() != before {
		t.Error("out-of-bounds Set modified the canvas")
	}
}

func TestCanvasLineEndpoints(t *testing.T) {
	c := NewCanvas(8, 4)
	c.Line(0, 0, 15, 15)
	out := c.String()

	blank := NewCanvas(8, 4).String()
	if out == blank {
		t.Fatal("line drew nothing")
	}

	// Both endpoint cells must be lit.
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	first := []rune(lines[0])[0]
	last := []rune(lines[3])[7]
	if first == 0x2800 {
		t.Error("start cell not lit")
	}
	if last == 0x2800 {
		t.Error("end cell not lit")
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Line(0, 0, 7, 7)
	c.Clear()
	for _, r := range c.String() {
		if r != 0x2800 && r != '\n' {
			t.Fatalf("cleared canvas contains %U", r)
		}
	}
}
