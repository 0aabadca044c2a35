package skeleton

import "errors"

var (
	ErrNilNode      = errors.New("skeleton: nil node")
	ErrRootRemoval  = errors.New("skeleton: cannot remove a node without a parent")
	ErrNotJoint     = errors.New("skeleton: node is not a skeleton joint")
	ErrNotLeaf      = errors.New("skeleton: bone is not a leaf")
	ErrInvalidScale = errors.New("skeleton: scale factor must be positive and finite")
	ErrHandedness   = errors.New("skeleton: axis conversion between handedness is not supported")
)
