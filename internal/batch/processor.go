// Package batch discovers scene files below a directory and processes them with a
// bounded worker pool.
package batch

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rigtool/internal/sceneio"
)

// Job is one input file and the path its result is written to.
type Job struct {
	Input  string
	Output string
}

// Result holds the outcome of processing one job.
type Result struct {
	Input    string
	Output   string
	Success  bool
	Error    string
	Duration time.Duration
}

// ProcessFunc transforms one input file into one output file.
type ProcessFunc func(in, out string) error

// ProgressInterval is how often Run logs progress while jobs are pending.
var ProgressInterval = 2 * time.Second

// Discover walks inRoot and returns a job for every scene file below it, with the output
// path mirrored under outRoot. When outRoot lies inside inRoot it is not descended into.
// A file given as inRoot yields a single job writing into outRoot.
func Discover(inRoot, outRoot string) ([]Job, error) {
	absOut, err := filepath.Abs(outRoot)
	if err != nil {
		return nil, fmt.Errorf("batch: resolve %s: %w", outRoot, err)
	}

	var jobs []Job
	err = filepath.WalkDir(inRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if abs, err := filepath.Abs(path); err == nil && abs == absOut && path != inRoot {
				return filepath.SkipDir
			}
			return nil
		}
		if !sceneio.IsSceneFile(path) {
			return nil
		}

		rel, err := filepath.Rel(inRoot, path)
		if err != nil || rel == "." {
			rel = filepath.Base(path)
		}
		jobs = append(jobs, Job{Input: path, Output: filepath.Join(outRoot, rel)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch: walk %s: %w", inRoot, err)
	}
	return jobs, nil
}

// Run processes all jobs with at most workers running at once. A failing job does not
// stop the others; once ctx is done, jobs that have not started are marked failed.
// Results are returned in job order.
func Run(ctx context.Context, log *zap.Logger, jobs []Job, workers int, process ProcessFunc) []Result {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = zap.NewNop()
	}

	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		ticker := time.NewTicker(ProgressInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if p := processed.Load(); p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					log.Info("progress", zap.Int64("done", p), zap.Int("total", total),
						zap.String("rate", fmt.Sprintf("%.1f files/sec", rate)))
				}
			}
		}
	}()

	var g errgroup.Group
	g.SetLimit(workers)
	for i, job := range jobs {
		g.Go(func() error {
			results[i] = runJob(ctx, job, process)
			processed.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	close(done)
	<-stopped

	return results
}

func runJob(ctx context.Context, job Job, process ProcessFunc) Result {
	res := Result{Input: job.Input, Output: job.Output}
	if err := ctx.Err(); err != nil {
		res.Error = err.Error()
		return res
	}

	t := time.Now()
	err := process(job.Input, job.Output)
	res.Duration = time.Since(t)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Success = true
	return res
}

// Failed counts the unsuccessful results.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Success {
			n++
		}
	}
	return n
}
