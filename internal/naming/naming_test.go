package naming

import (
	"path/filepath"
	"testing"
)

func TestBaseName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"photo.png", "photo"},
		{"images/photo.PNG", "photo"},
		{"hero.banner.jpeg", "hero.banner"},
		{"noext", "noext"},
	}
	for _, tt := range tests {
		if got := BaseName(tt.in); got != tt.want {
			t.Errorf("BaseName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	got := OutputPath(filepath.Join("images", "optimized"), "photo", ".webp")
	want := filepath.Join("images", "optimized", "photo.webp")
	if got != want {
		t.Errorf("OutputPath = %q, want %q", got, want)
	}
}

func TestCollisionResolver(t *testing.T) {
	cr := NewCollisionResolver()

	if got := cr.Resolve("images/logo.jpg", "logo"); got != "logo" {
		t.Errorf("first claim = %q, want logo", got)
	}
	if got := cr.Resolve("images/logo.jpg", "logo"); got != "logo" {
		t.Errorf("same owner re-claim = %q, want logo", got)
	}
	if got := cr.Resolve("images/logo.png", "logo"); got != "logo-dup1" {
		t.Errorf("second source = %q, want logo-dup1", got)
	}
	if got := cr.Resolve("images/logo.jpeg", "logo"); got != "logo-dup2" {
		t.Errorf("third source = %q, want logo-dup2", got)
	}
	if got := cr.Resolve("images/logo.png", "logo"); got != "logo-dup1" {
		t.Errorf("second source re-claim = %q, want logo-dup1", got)
	}
}

func TestCollisionResolver_SkipsTakenCandidate(t *testing.T) {
	cr := NewCollisionResolver()
	cr.Resolve("images/a-dup1.png", "a-dup1")
	cr.Resolve("images/a.jpg", "a")

	if got := cr.Resolve("images/a.png", "a"); got != "a-dup2" {
		t.Errorf("got %q, want a-dup2 (a-dup1 already owned)", got)
	}
}
