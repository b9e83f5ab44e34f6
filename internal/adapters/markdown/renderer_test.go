package markdown

import (
	"strings"
	"testing"
)

func TestRenderEmpty(t *testing.T) {
	r := NewRenderer()
	out, err := r.Render("   \n  ", 80)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if out != "" {
		t.Errorf("blank input should render empty, got %q", out)
	}
}

func TestRenderHeading(t *testing.T) {
	r := NewRenderer()
	out, err := r.Render("# Title\n\nBody text.", 80)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(out, "Title") {
		t.Errorf("output should contain heading text, got %q", out)
	}
	if strings.HasSuffix(out, "\n") {
		t.Error("trailing newlines should be trimmed")
	}
}

func TestRenderClampsNarrowWidth(t *testing.T) {
	r := NewRenderer()
	if _, err := r.Render("just a line", 0); err != nil {
		t.Fatalf("Render failed at narrow width: %v", err)
	}
}

func TestRenderReusesCachedRenderer(t *testing.T) {
	r := NewRenderer()
	if _, err := r.Render("first", 80); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Render("second", 80); err != nil {
		t.Fatal(err)
	}
	if len(r.cache) != 1 {
		t.Errorf("cache size = %d, want 1", len(r.cache))
	}
}
