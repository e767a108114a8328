package nix

import "encoding/json"

// outputNode is one node of the output graph as reported by
// `nix flake show --json`. Leaves carry a "type" discriminator
// ("derivation", "nixos-configuration", ...); inner nodes are plain
// attribute sets whose entries are the children.
type outputNode struct {
	Type        string
	Name        string
	Description string
	Children    map[string]outputNode
}

// leaf reports whether the node is a leaf entry of the output graph.
func (n outputNode) leaf() bool {
	return n.Type != ""
}

// buildable reports whether the leaf can be handed to the build command.
func (n outputNode) buildable() bool {
	return n.Type == "derivation"
}

// UnmarshalJSON decodes either a leaf (an object with a string "type"
// field) or an inner attribute set.
func (n *outputNode) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if t, ok := raw["type"]; ok {
		var typ string
		if err := json.Unmarshal(t, &typ); err == nil {
			n.Type = typ
			if name, ok := raw["name"]; ok {
				_ = json.Unmarshal(name, &n.Name)
			}
			if desc, ok := raw["description"]; ok {
				_ = json.Unmarshal(desc, &n.Description)
			}
			return nil
		}
	}

	n.Children = make(map[string]outputNode, len(raw))
	for key, val := range raw {
		var child outputNode
		if err := json.Unmarshal(val, &child); err != nil {
			return err
		}
		n.Children[key] = child
	}
	return nil
}
