// Package pipeline runs the configured sequence of skeleton edits over one scene file.
package pipeline

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"rigtool/internal/config"
	"rigtool/internal/preview"
	"rigtool/internal/report"
	"rigtool/internal/scene"
	"rigtool/internal/sceneio"
	"rigtool/internal/skeleton"
)

// PreviewSuffix is appended to the output path when a preview image is written.
const PreviewSuffix = ".preview.webp"

// Options holds settings that come from the command line only.
type Options struct {
	Preview bool
}

// Pipeline holds the resolved configuration shared by every file of a run.
// It is read-only after New and safe for concurrent use.
type Pipeline struct {
	cfg    config.Config
	axis   *skeleton.AxisSystem
	table  skeleton.EnhancementTable
	filter skeleton.LeafFilter
	opts   Options
	log    *zap.Logger
}

// New validates cfg and prepares the lookup tables.
func New(cfg config.Config, log *zap.Logger, opts Options) (*Pipeline, error) {
	axis, err := cfg.AxisSystem()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		cfg:    cfg,
		axis:   axis,
		table:  cfg.Table(),
		filter: cfg.LeafFilter(),
		opts:   opts,
		log:    log,
	}, nil
}

// ProcessFile loads in, applies every configured edit and saves the result to out.
// Only load and save failures are returned; problems inside individual steps are logged.
func (p *Pipeline) ProcessFile(in, out string) error {
	log := p.log.With(zap.String("file", in))

	s, err := sceneio.Load(in)
	if err != nil {
		return err
	}
	log.Info("loaded", zap.Int("nodes", s.NodeCount()), zap.Int("animations", len(s.Animations)))

	p.dumpMetadata(log, in, s)
	p.Apply(log, s, sceneio.BaseName(in))

	if err := sceneio.Save(out, s); err != nil {
		return err
	}
	log.Info("saved", zap.String("output", out), zap.Int("nodes", s.NodeCount()))

	if p.opts.Preview {
		path := out + PreviewSuffix
		if err := preview.Write(path, s, preview.DefaultOptions()); err != nil {
			log.Warn("preview failed", zap.Error(err))
		} else {
			log.Debug("preview written", zap.String("path", path))
		}
	}
	return nil
}

// Apply runs the edit steps in order: axis conversion, leaf pruning, root insertion,
// bind-pose reset, rename and enhancement, rig quirk fixes, IK joints, uniform rescale
// and animation rename. animName becomes the name of the first animation stack.
func (p *Pipeline) Apply(log *zap.Logger, s *scene.Scene, animName string) {
	if log == nil {
		log = p.log
	}

	if p.axis != nil {
		p.convertAxis(log, s)
	}
	if len(p.filter) > 0 {
		p.pruneLeaves(log, s)
	}
	if p.cfg.AddRoot {
		p.addRoot(log, s)
	}
	if p.cfg.ApplyWeaponFix {
		stats := skeleton.ResetBindPose(s)
		log.Info("bind pose reset",
			zap.Int("meshes", stats.Meshes),
			zap.Int("clusters", stats.Clusters),
			zap.Int("unchanged", stats.Unchanged))
	}

	p.renameJoints(log, s)

	if p.cfg.ApplyRigFixes {
		stats := skeleton.ApplyRigQuirkFixes(s)
		log.Info("rig fixes applied",
			zap.Strings("renamed", stats.Renamed),
			zap.Strings("grouped", stats.GroupedMeshes),
			zap.Bool("hipsReparented", stats.HipsReparent))
	}
	if p.cfg.AddIK {
		made := skeleton.AddIKJoints(s)
		names := make([]string, len(made))
		for i, j := range made {
			names[i] = j.Name
			log.Debug("IK joint", zap.String("joint", j.Name), zap.String("parent", j.Parent().Name),
				report.Vec("translation", j.Transform.Translation))
		}
		log.Info("IK joints added", zap.Strings("joints", names),
			zap.Int("skipped", len(skeleton.StandardIKJoints)-len(made)))
	}

	p.rescale(log, s)

	for _, r := range skeleton.RenameFirstAnimation(s, animName) {
		if r.Renamed {
			log.Info("animation renamed", zap.String("from", r.From), zap.String("to", r.To))
		} else {
			log.Debug("animation", zap.String("name", r.From))
		}
	}
}

func (p *Pipeline) convertAxis(log *zap.Logger, s *scene.Scene) {
	from := s.Axis
	converted, err := skeleton.ConvertAxis(s, *p.axis)
	switch {
	case err != nil:
		log.Warn("axis conversion skipped", zap.Error(err))
	case converted:
		log.Info("axis converted", zap.String("from", from), zap.String("to", p.axis.Name))
	default:
		log.Debug("axis unchanged", zap.String("axis", p.axis.Name))
	}
}

func (p *Pipeline) pruneLeaves(log *zap.Logger, s *scene.Scene) {
	for _, o := range skeleton.RemoveLeafBones(s, s.Root, p.filter) {
		switch {
		case o.Removed:
			log.Info("removed leaf", zap.String("node", o.Name))
		case errors.Is(o.Err, skeleton.ErrNotLeaf):
			log.Warn("leaf not removed: node has children", zap.String("node", o.Name))
		default:
			log.Warn("leaf not removed", zap.String("node", o.Name), zap.Error(o.Err))
		}
	}
}

func (p *Pipeline) addRoot(log *zap.Logger, s *scene.Scene) {
	if s.Root == nil {
		return
	}
	if p.cfg.AddRootChildName == "" {
		log.Warn("add root: addRootChildName is not set")
		return
	}
	child := s.Root.FindDescendant(p.cfg.AddRootChildName)
	if child == nil {
		log.Debug("add root: child not found", zap.String("child", p.cfg.AddRootChildName))
		return
	}
	root, err := skeleton.InsertNewAncestor(s, child, p.cfg.AddRootRootName, false)
	if err != nil {
		log.Warn("add root failed", zap.String("child", child.Name), zap.Error(err))
		return
	}
	log.Info("root added", zap.String("root", root.Name), zap.String("child", child.Name))
}

func (p *Pipeline) renameJoints(log *zap.Logger, s *scene.Scene) {
	for _, r := range skeleton.RenameAndEnhance(s, p.table) {
		fields := []zap.Field{zap.String("old", r.OldName), zap.String("new", r.NewName)}
		if len(r.Proxies) > 0 {
			fields = append(fields, zap.Strings("proxies", r.Proxies))
		}
		if r.HipsNormalized {
			fields = append(fields, zap.Bool("hipsNormalized", true))
		}
		if r.Renamed {
			log.Info("joint renamed", fields...)
		} else {
			log.Debug("joint", fields...)
		}
	}
}

func (p *Pipeline) rescale(log *zap.Logger, s *scene.Scene) {
	stats, err := skeleton.UniformRescale(s, p.cfg.Scale)
	if err != nil {
		log.Warn("rescale failed", zap.Float64("scale", p.cfg.Scale), zap.Error(err))
		return
	}
	if stats.Skipped {
		return
	}
	log.Info("scene rescaled",
		zap.Float64("scale", p.cfg.Scale),
		zap.Int("nodes", stats.Nodes),
		zap.Int("vertices", stats.Vertices),
		zap.Int("clusters", stats.Clusters),
		zap.String("removedAnimation", stats.RemovedAnimation))
	for _, link := range stats.MissingLinks {
		log.Warn("cluster link not found", zap.String("link", link))
	}
}

func (p *Pipeline) dumpMetadata(log *zap.Logger, path string, s *scene.Scene) {
	m := s.Metadata
	log.Info("metadata",
		zap.String("title", m.Title),
		zap.String("subject", m.Subject),
		zap.String("author", m.Author),
		zap.String("keywords", m.Keywords),
		zap.String("revision", m.Revision),
		zap.String("comment", m.Comment))

	th, err := sceneio.ReadThumbnail(path, s)
	if err != nil {
		log.Warn("thumbnail unreadable", zap.Error(err))
		return
	}
	if th != nil {
		log.Info("thumbnail",
			zap.String("format", th.Format),
			zap.String("size", fmt.Sprintf("%d x %d pixels", th.Width, th.Height)))
	}
}
