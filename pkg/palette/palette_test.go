package palette

import (
	"errors"
	"testing"
)

func TestGenerate_Default(t *testing.T) {
	colors, err := New().Generate(DefaultScheme, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(colors) != 4 {
		t.Fatalf("expected 4 colors, got %d", len(colors))
	}

	seen := make(map[Color]bool)
	for _, c := range colors {
		if seen[c] {
			t.Errorf("duplicate color %s", c)
		}
		seen[c] = true
	}
}

func TestGenerate_StableAcrossCalls(t *testing.T) {
	g := New()
	a, _ := g.Generate(DefaultScheme, 6)
	b, _ := g.Generate(DefaultScheme, 6)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("color %d changed between calls: %s vs %s", i, a[i], b[i])
		}
	}

	// A shorter request is a prefix of a longer one.
	c, _ := g.Generate(DefaultScheme, 3)
	for i := range c {
		if c[i] != a[i] {
			t.Errorf("color %d not index-aligned: %s vs %s", i, c[i], a[i])
		}
	}
}

func TestGenerate_Exhausted(t *testing.T) {
	_, err := New().Generate(DefaultScheme, MaxColors(DefaultScheme)+1)
	if !errors.Is(err, ErrTooManyColors) {
		t.Errorf("expected ErrTooManyColors, got %v", err)
	}
}

func TestGenerate_UnknownScheme(t *testing.T) {
	_, err := New().Generate("pastel-dreams", 1)
	if !errors.Is(err, ErrUnknownScheme) {
		t.Errorf("expected ErrUnknownScheme, got %v", err)
	}
}

func TestGenerate_Zero(t *testing.T) {
	colors, err := New().Generate(DefaultScheme, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(colors) != 0 {
		t.Errorf("expected no colors, got %d", len(colors))
	}
}

func TestGenerate_Negative(t *testing.T) {
	if _, err := New().Generate(DefaultScheme, -1); err == nil {
		t.Error("expected error for negative count")
	}
}

func TestMaxColors_Unknown(t *testing.T) {
	if n := MaxColors("nope"); n != 0 {
		t.Errorf("expected 0 for unknown scheme, got %d", n)
	}
}
