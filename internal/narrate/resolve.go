package narrate

import "strings"

const (
	// maxAncestorDepth bounds the upward label search.
	maxAncestorDepth = 3
	// maxFallbackTextLen bounds how much visible text is speakable.
	maxFallbackTextLen = 80
	// maxFallbackChildren keeps whole containers from being read out.
	maxFallbackChildren = 3
)

// Node is one element of the interaction tree, the minimum surface the
// resolver needs: an explicit accessible label, visible text, a child
// count, and a parent link.
type Node struct {
	Label      string
	Text       string
	ChildCount int
	Parent     *Node
}

// Resolve finds the speakable text for an interaction target: the
// target's explicit label, else the nearest labelled ancestor within
// maxAncestorDepth levels, else the target's own visible text when it
// is short and the node has few children. Empty when nothing qualifies.
func Resolve(n *Node) string {
	if n == nil {
		return ""
	}

	if label := strings.TrimSpace(n.Label); label != "" {
		return label
	}

	ancestor := n.Parent
	for depth := 0; depth < maxAncestorDepth && ancestor != nil; depth++ {
		if label := strings.TrimSpace(ancestor.Label); label != "" {
			return label
		}
		ancestor = ancestor.Parent
	}

	text := strings.TrimSpace(n.Text)
	if text != "" && len(text) <= maxFallbackTextLen && n.ChildCount <= maxFallbackChildren {
		return text
	}
	return ""
}
