package narrate

import (
	"strings"
	"testing"
)

func TestResolvePrefersExplicitLabel(t *testing.T) {
	n := &Node{Label: "Borrow button", Text: "Borrow"}
	if got := Resolve(n); got != "Borrow button" {
		t.Errorf("Expected explicit label, got %q", got)
	}
}

func TestResolveWalksAncestors(t *testing.T) {
	root := &Node{Label: "Search form"}
	mid := &Node{Parent: root}
	leaf := &Node{Parent: mid, Text: strings.Repeat("x", 200)}

	if got := Resolve(leaf); got != "Search form" {
		t.Errorf("Expected ancestor label, got %q", got)
	}
}

func TestResolveAncestorDepthBounded(t *testing.T) {
	// Label four levels up is out of reach.
	far := &Node{Label: "Too far"}
	n := &Node{Parent: &Node{Parent: &Node{Parent: &Node{Parent: far}}}}

	if got := Resolve(n); got != "" {
		t.Errorf("Expected empty resolution beyond depth 3, got %q", got)
	}
}

func TestResolveFallbackText(t *testing.T) {
	n := &Node{Text: "  Return book  ", ChildCount: 1}
	if got := Resolve(n); got != "Return book" {
		t.Errorf("Expected trimmed visible text, got %q", got)
	}
}

func TestResolveFallbackBounds(t *testing.T) {
	longText := &Node{Text: strings.Repeat("a", maxFallbackTextLen+1)}
	if got := Resolve(longText); got != "" {
		t.Errorf("Long text must not be spoken, got %q", got)
	}

	container := &Node{Text: "short", ChildCount: maxFallbackChildren + 1}
	if got := Resolve(container); got != "" {
		t.Errorf("Containers with many children must not be read, got %q", got)
	}
}

func TestResolveNil(t *testing.T) {
	if got := Resolve(nil); got != "" {
		t.Errorf("Expected empty for nil node, got %q", got)
	}
}
