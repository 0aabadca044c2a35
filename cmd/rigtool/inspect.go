package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"rigtool/internal/mathutil"
	"rigtool/internal/scene"
	"rigtool/internal/sceneio"
	"rigtool/internal/skeleton"
)

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	s, err := sceneio.Load(path)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	axis := s.Axis
	if axis == "" {
		axis = skeleton.DefaultAxisSystem.Name + " (default)"
	}
	fmt.Fprintf(w, "File: %s\n", path)
	fmt.Fprintf(w, "Axis: %s\n", axis)
	fmt.Fprintf(w, "Nodes: %d, Joints: %d\n\n", s.NodeCount(), len(s.Joints()))

	m := s.Metadata
	fmt.Fprintln(w, "Meta-Data")
	fmt.Fprintf(w, "    Title: %s\n", m.Title)
	fmt.Fprintf(w, "    Subject: %s\n", m.Subject)
	fmt.Fprintf(w, "    Author: %s\n", m.Author)
	fmt.Fprintf(w, "    Keywords: %s\n", m.Keywords)
	fmt.Fprintf(w, "    Revision: %s\n", m.Revision)
	fmt.Fprintf(w, "    Comment: %s\n", m.Comment)
	if th, err := sceneio.ReadThumbnail(path, s); err != nil {
		fmt.Fprintf(w, "    Thumbnail: unreadable (%v)\n", err)
	} else if th != nil {
		fmt.Fprintln(w, "    Thumbnail:")
		fmt.Fprintf(w, "        Format: %s\n", th.Format)
		fmt.Fprintf(w, "        Size: %d x %d pixels\n", th.Width, th.Height)
	}

	if len(s.Animations) > 0 {
		fmt.Fprintln(w, "\nAnimations")
		cur := s.CurrentAnimation()
		for i, a := range s.Animations {
			mark := ""
			if i == cur {
				mark = " (current)"
			}
			fmt.Fprintf(w, "    %s%s\n", a.Name, mark)
		}
	}

	fmt.Fprintln(w, "\nHierarchy")
	cache := skeleton.CaptureTransforms(s.Root)
	printNode(w, s.Root, cache)
	return nil
}

func printNode(w io.Writer, n *scene.Node, cache *skeleton.TransformCache) {
	world, _ := cache.Global(n)
	t := mathutil.Translation(world)

	label := n.Kind().String()
	switch attr := n.Attr.(type) {
	case *scene.Joint:
		label += "/" + attr.Role.String()
	case *scene.Mesh:
		label += fmt.Sprintf(" verts=%d skins=%d", len(attr.Vertices), len(attr.Skins))
	}
	fmt.Fprintf(w, "%s%s [%s] world=(%.3f, %.3f, %.3f)\n",
		strings.Repeat("    ", n.Depth()+1), n.Name, label, t[0], t[1], t[2])

	for _, c := range n.Children() {
		printNode(w, c, cache)
	}
}
