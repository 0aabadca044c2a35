package skeleton

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rigtool/internal/scene"
)

func TestRenameFirstAnimation(t *testing.T) {
	s := newRig(t)
	out := RenameFirstAnimation(s, "walk")

	assert.Equal(t, []AnimationRename{
		{From: "Take 001", To: "walk", Renamed: true},
		{From: "Idle", To: "Idle"},
	}, out)
	assert.Equal(t, "walk", s.Animations[0].Name)

	assert.Empty(t, RenameFirstAnimation(scene.New("x"), "walk"))
}
