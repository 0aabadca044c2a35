package skeleton

import "rigtool/internal/scene"

// AnimationRename reports one animation stack seen by RenameFirstAnimation.
type AnimationRename struct {
	From    string
	To      string
	Renamed bool
}

// RenameFirstAnimation renames the first animation stack to name and lists every stack.
func RenameFirstAnimation(s *scene.Scene, name string) []AnimationRename {
	if s == nil {
		return nil
	}
	out := make([]AnimationRename, 0, len(s.Animations))
	for i, a := range s.Animations {
		r := AnimationRename{From: a.Name, To: a.Name}
		if i == 0 {
			a.Name = name
			r.To = name
			r.Renamed = true
		}
		out = append(out, r)
	}
	return out
}
