package nix

import (
	"slices"

	"github.com/tiiuae/ghaf-slim-demo/internal/core/domain"
)

// flattenOutputs reduces the output graph to the dotted attribute paths of
// its buildable leaves, sorted.
func flattenOutputs(root outputNode) []domain.Target {
	var targets []domain.Target
	walkNode(root, "", &targets)
	slices.Sort(targets)
	return targets
}

func walkNode(n outputNode, path string, out *[]domain.Target) {
	if n.leaf() {
		if n.buildable() && path != "" {
			*out = append(*out, domain.Target(path))
		}
		return
	}

	for key, child := range n.Children {
		childPath := key
		if path != "" {
			childPath = path + "." + key
		}
		walkNode(child, childPath, out)
	}
}
