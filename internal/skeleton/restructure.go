package skeleton

import (
	"fmt"
	"strings"

	"rigtool/internal/scene"
)

// InsertNewAncestor creates a joint named name directly above child.
//
// When child has no parent or is the hierarchy Root, the new joint takes over the Root role
// and child is demoted to a limb. With absorbSiblings every child of the former parent moves
// under the new joint, which then sits where child used to be; otherwise only child moves.
// The tree is validated before any edge is touched, so a failure leaves it unchanged.
func InsertNewAncestor(s *scene.Scene, child *scene.Node, name string, absorbSiblings bool) (*scene.Node, error) {
	if child == nil {
		return nil, ErrNilNode
	}
	joint, ok := child.Joint()
	if !ok {
		return nil, fmt.Errorf("insert ancestor above %q: %w", child.Name, ErrNotJoint)
	}

	oldParent := child.Parent()
	isNewRoot := oldParent == nil || joint.Role == scene.RoleRoot

	role := scene.RoleLimbNode
	if isNewRoot {
		role = scene.RoleRoot
	}
	ancestor := scene.NewJoint(name, role)

	if oldParent == nil {
		if err := ancestor.AddChild(child); err != nil {
			return nil, fmt.Errorf("insert ancestor above %q: %w", child.Name, err)
		}
		if s != nil && s.Root == child {
			s.Root = ancestor
		}
	} else {
		slot := oldParent.IndexOf(child)
		moving := []*scene.Node{child}
		if absorbSiblings {
			moving = oldParent.Children()
			slot = 0
		}
		for _, c := range moving {
			oldParent.RemoveChild(c)
			// ancestor is detached and fresh, so these edges cannot cycle
			_ = ancestor.AddChild(c)
		}
		if err := oldParent.InsertChild(slot, ancestor); err != nil {
			return nil, fmt.Errorf("insert ancestor above %q: %w", child.Name, err)
		}
	}

	if isNewRoot {
		joint.Role = scene.RoleLimbNode
	}
	return ancestor, nil
}

// RemoveNode deletes node and re-homes its children onto node's former parent,
// in node's old slot and in their original order.
func RemoveNode(s *scene.Scene, node *scene.Node) error {
	if node == nil {
		return ErrNilNode
	}
	parent := node.Parent()
	if parent == nil || (s != nil && s.Root == node) {
		return fmt.Errorf("remove %q: %w", node.Name, ErrRootRemoval)
	}

	slot := parent.IndexOf(node)
	parent.RemoveChild(node)
	for i, c := range node.Children() {
		node.RemoveChild(c)
		// c was below node, which is no longer attached to parent
		_ = parent.InsertChild(slot+i, c)
	}
	return nil
}

// LeafFilter selects bones for pruning by substring match on their name.
type LeafFilter []string

// ParseLeafFilter splits a comma separated list of name fragments. Blank fragments are dropped.
func ParseLeafFilter(s string) LeafFilter {
	var f LeafFilter
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			f = append(f, part)
		}
	}
	return f
}

// Match reports whether name contains any fragment of the filter.
func (f LeafFilter) Match(name string) bool {
	for _, frag := range f {
		if frag != "" && strings.Contains(name, frag) {
			return true
		}
	}
	return false
}

// PruneOutcome records one bone that matched a leaf filter.
type PruneOutcome struct {
	Name    string
	Removed bool
	Err     error // ErrNotLeaf or a RemoveNode failure when Removed is false
}

// RemoveLeafBones removes, bottom-up, every node under node whose name matches filter and
// which has no children at the time it is checked. Children are processed first, so a chain
// of matching bones collapses from the tip. Matching nodes that still have children are
// reported, not removed; the pass itself never fails.
func RemoveLeafBones(s *scene.Scene, node *scene.Node, filter LeafFilter) []PruneOutcome {
	if node == nil || len(filter) == 0 {
		return nil
	}
	var out []PruneOutcome
	pruneLeaves(s, node, filter, &out)
	return out
}

func pruneLeaves(s *scene.Scene, node *scene.Node, filter LeafFilter, out *[]PruneOutcome) {
	for _, c := range node.Children() {
		pruneLeaves(s, c, filter, out)
	}

	if !filter.Match(node.Name) {
		return
	}
	if node.ChildCount() > 0 {
		*out = append(*out, PruneOutcome{Name: node.Name, Err: ErrNotLeaf})
		return
	}
	if err := RemoveNode(s, node); err != nil {
		*out = append(*out, PruneOutcome{Name: node.Name, Err: err})
		return
	}
	*out = append(*out, PruneOutcome{Name: node.Name, Removed: true})
}
