// Package sceneio reads and writes rig scene documents (JSON or YAML) and
// decodes referenced thumbnail images.
package sceneio

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"rigtool/internal/scene"
)

type document struct {
	Axis       string      `json:"axis,omitempty" yaml:"axis,omitempty"`
	Metadata   metadataDoc `json:"metadata" yaml:"metadata"`
	Animations []animDoc   `json:"animations,omitempty" yaml:"animations,omitempty"`
	Root       *nodeDoc    `json:"root" yaml:"root"`
}

type metadataDoc struct {
	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	Subject   string `json:"subject,omitempty" yaml:"subject,omitempty"`
	Author    string `json:"author,omitempty" yaml:"author,omitempty"`
	Keywords  string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Revision  string `json:"revision,omitempty" yaml:"revision,omitempty"`
	Comment   string `json:"comment,omitempty" yaml:"comment,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
}

type animDoc struct {
	Name    string `json:"name" yaml:"name"`
	Current bool   `json:"current,omitempty" yaml:"current,omitempty"`
	Curves  any    `json:"curves,omitempty" yaml:"curves,omitempty"`
}

type nodeDoc struct {
	Name string `json:"name" yaml:"name"`
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Role string `json:"role,omitempty" yaml:"role,omitempty"`

	Translation          []float64 `json:"translation,omitempty" yaml:"translation,omitempty,flow"`
	Rotation             []float64 `json:"rotation,omitempty" yaml:"rotation,omitempty,flow"`
	PreRotation          []float64 `json:"preRotation,omitempty" yaml:"preRotation,omitempty,flow"`
	PostRotation         []float64 `json:"postRotation,omitempty" yaml:"postRotation,omitempty,flow"`
	Scaling              []float64 `json:"scaling,omitempty" yaml:"scaling,omitempty,flow"`
	GeometricTranslation []float64 `json:"geometricTranslation,omitempty" yaml:"geometricTranslation,omitempty,flow"`
	PivotActive          bool      `json:"pivotActive,omitempty" yaml:"pivotActive,omitempty"`

	Vertices  [][]float64 `json:"vertices,omitempty" yaml:"vertices,omitempty,flow"`
	Primitive string      `json:"primitive,omitempty" yaml:"primitive,omitempty"`
	Skins     []skinDoc   `json:"skins,omitempty" yaml:"skins,omitempty"`

	Children []*nodeDoc `json:"children,omitempty" yaml:"children,omitempty"`
}

type skinDoc struct {
	Clusters []clusterDoc `json:"clusters" yaml:"clusters"`
}

type clusterDoc struct {
	Link          string      `json:"link" yaml:"link"`
	TransformLink []float64   `json:"transformLink,omitempty" yaml:"transformLink,omitempty,flow"`
	Weights       []weightDoc `json:"weights,omitempty" yaml:"weights,omitempty"`
}

type weightDoc struct {
	Index  int     `json:"index" yaml:"index"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// fromDocument builds the scene graph described by doc.
func fromDocument(doc *document) (*scene.Scene, error) {
	if doc.Root == nil {
		return nil, ErrNoRoot
	}
	root, err := buildNode(doc.Root, "root")
	if err != nil {
		return nil, err
	}

	s := &scene.Scene{
		Root: root,
		Axis: doc.Axis,
		Metadata: scene.Metadata{
			Title:     doc.Metadata.Title,
			Subject:   doc.Metadata.Subject,
			Author:    doc.Metadata.Author,
			Keywords:  doc.Metadata.Keywords,
			Revision:  doc.Metadata.Revision,
			Comment:   doc.Metadata.Comment,
			Thumbnail: doc.Metadata.Thumbnail,
		},
	}
	for _, a := range doc.Animations {
		s.Animations = append(s.Animations, &scene.AnimStack{Name: a.Name, Current: a.Current, Curves: a.Curves})
	}
	return s, nil
}

func buildNode(d *nodeDoc, path string) (*scene.Node, error) {
	if d.Name != "" {
		path = d.Name
	}
	kind, err := scene.ParseKind(d.Kind)
	if err != nil {
		return nil, fmt.Errorf("node %s: %w", path, err)
	}

	var attr scene.Attribute
	switch kind {
	case scene.KindJoint:
		role, err := scene.ParseRole(d.Role)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", path, err)
		}
		attr = &scene.Joint{Role: role}
	case scene.KindMesh:
		mesh, err := buildMesh(d)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", path, err)
		}
		attr = mesh
	}

	n := scene.NewNode(d.Name, attr)
	tr := &n.Transform
	fields := []struct {
		name string
		src  []float64
		dst  *mgl64.Vec3
	}{
		{"translation", d.Translation, &tr.Translation},
		{"rotation", d.Rotation, &tr.Rotation},
		{"preRotation", d.PreRotation, &tr.PreRotation},
		{"postRotation", d.PostRotation, &tr.PostRotation},
		{"scaling", d.Scaling, &tr.Scaling},
		{"geometricTranslation", d.GeometricTranslation, &tr.GeometricTranslation},
	}
	for _, f := range fields {
		if f.src == nil {
			continue
		}
		v, err := toVec3(f.src)
		if err != nil {
			return nil, fmt.Errorf("node %s: %s: %w", path, f.name, err)
		}
		*f.dst = v
	}
	tr.PivotActive = d.PivotActive

	for i, cd := range d.Children {
		if cd == nil {
			return nil, fmt.Errorf("node %s: child %d is null", path, i)
		}
		child, err := buildNode(cd, fmt.Sprintf("%s/%d", path, i))
		if err != nil {
			return nil, err
		}
		if err := n.AddChild(child); err != nil {
			return nil, fmt.Errorf("node %s: %w", path, err)
		}
	}
	return n, nil
}

func buildMesh(d *nodeDoc) (*scene.Mesh, error) {
	mesh := &scene.Mesh{Primitive: d.Primitive, Vertices: make([]mgl64.Vec3, len(d.Vertices))}
	for i, v := range d.Vertices {
		p, err := toVec3(v)
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		mesh.Vertices[i] = p
	}

	for si, sd := range d.Skins {
		skin := &scene.Skin{}
		for ci, cd := range sd.Clusters {
			c := &scene.Cluster{Link: cd.Link, TransformLink: mgl64.Ident4()}
			if cd.TransformLink != nil {
				if len(cd.TransformLink) != 16 {
					return nil, fmt.Errorf("skin %d cluster %d: transformLink has %d values, want 16", si, ci, len(cd.TransformLink))
				}
				copy(c.TransformLink[:], cd.TransformLink)
			}
			for _, w := range cd.Weights {
				if w.Index < 0 || w.Index >= len(mesh.Vertices) {
					return nil, fmt.Errorf("skin %d cluster %d: weight index %d out of range", si, ci, w.Index)
				}
				c.Weights = append(c.Weights, scene.Weight{Index: w.Index, Weight: w.Weight})
			}
			skin.Clusters = append(skin.Clusters, c)
		}
		mesh.Skins = append(mesh.Skins, skin)
	}
	return mesh, nil
}

func toVec3(v []float64) (mgl64.Vec3, error) {
	if len(v) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("got %d components, want 3", len(v))
	}
	return mgl64.Vec3{v[0], v[1], v[2]}, nil
}

// toDocument is the inverse of fromDocument.
func toDocument(s *scene.Scene) *document {
	doc := &document{
		Axis: s.Axis,
		Metadata: metadataDoc{
			Title:     s.Metadata.Title,
			Subject:   s.Metadata.Subject,
			Author:    s.Metadata.Author,
			Keywords:  s.Metadata.Keywords,
			Revision:  s.Metadata.Revision,
			Comment:   s.Metadata.Comment,
			Thumbnail: s.Metadata.Thumbnail,
		},
	}
	for _, a := range s.Animations {
		doc.Animations = append(doc.Animations, animDoc{Name: a.Name, Current: a.Current, Curves: a.Curves})
	}
	if s.Root != nil {
		doc.Root = nodeToDoc(s.Root)
	}
	return doc
}

func nodeToDoc(n *scene.Node) *nodeDoc {
	tr := n.Transform
	d := &nodeDoc{
		Name:                 n.Name,
		Translation:          nonZero(tr.Translation),
		Rotation:             nonZero(tr.Rotation),
		PreRotation:          nonZero(tr.PreRotation),
		PostRotation:         nonZero(tr.PostRotation),
		GeometricTranslation: nonZero(tr.GeometricTranslation),
		PivotActive:          tr.PivotActive,
	}
	if tr.Scaling != (mgl64.Vec3{1, 1, 1}) {
		d.Scaling = tr.Scaling[:]
	}

	switch attr := n.Attr.(type) {
	case *scene.Joint:
		d.Kind = scene.KindJoint.String()
		d.Role = attr.Role.String()
	case *scene.Mesh:
		d.Kind = scene.KindMesh.String()
		d.Primitive = attr.Primitive
		for _, v := range attr.Vertices {
			d.Vertices = append(d.Vertices, []float64{v[0], v[1], v[2]})
		}
		for _, skin := range attr.Skins {
			if skin == nil {
				continue
			}
			sd := skinDoc{}
			for _, c := range skin.Clusters {
				if c == nil {
					continue
				}
				cd := clusterDoc{Link: c.Link, TransformLink: append([]float64(nil), c.TransformLink[:]...)}
				for _, w := range c.Weights {
					cd.Weights = append(cd.Weights, weightDoc{Index: w.Index, Weight: w.Weight})
				}
				sd.Clusters = append(sd.Clusters, cd)
			}
			d.Skins = append(d.Skins, sd)
		}
	}

	for _, c := range n.Children() {
		d.Children = append(d.Children, nodeToDoc(c))
	}
	return d
}

func nonZero(v mgl64.Vec3) []float64 {
	if v == (mgl64.Vec3{}) {
		return nil
	}
	return []float64{v[0], v[1], v[2]}
}
