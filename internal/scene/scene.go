package scene

// Scene is a single loaded asset: one root node plus document-level data.
type Scene struct {
	Root       *Node
	Axis       string // axis system name, empty when unknown
	Metadata   Metadata
	Animations []*AnimStack
}

// New returns a scene with an empty unclassified root.
func New(rootName string) *Scene {
	return &Scene{Root: NewNode(rootName, nil)}
}

// FindNode looks a node up by name in pre-order from the root.
func (s *Scene) FindNode(name string) *Node {
	if s.Root == nil {
		return nil
	}
	return s.Root.Find(name)
}

// NodeCount returns the number of nodes in the scene, the root included.
func (s *Scene) NodeCount() int {
	if s.Root == nil {
		return 0
	}
	return s.Root.Count()
}

// Joints returns every skeleton joint in pre-order.
func (s *Scene) Joints() []*Node {
	var out []*Node
	if s.Root == nil {
		return out
	}
	s.Root.Walk(func(n *Node) bool {
		if n.Kind() == KindJoint {
			out = append(out, n)
		}
		return true
	})
	return out
}

// CurrentAnimation returns the index of the current animation stack, or -1.
// Without an explicit current flag the first stack is current.
func (s *Scene) CurrentAnimation() int {
	for i, a := range s.Animations {
		if a.Current {
			return i
		}
	}
	if len(s.Animations) > 0 {
		return 0
	}
	return -1
}

// RemoveAnimation drops the animation stack at index i.
func (s *Scene) RemoveAnimation(i int) *AnimStack {
	if i < 0 || i >= len(s.Animations) {
		return nil
	}
	removed := s.Animations[i]
	s.Animations = append(s.Animations[:i], s.Animations[i+1:]...)
	return removed
}
