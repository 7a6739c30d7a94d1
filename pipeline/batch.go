package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"unframe/codec"
	"unframe/config"
	"unframe/util"
	"unframe/util/log"
)

// ErrBadInvocation is returned when the input/output pairing rules are
// violated. This is fatal before any image pipeline starts.
var ErrBadInvocation = errors.New("invalid input/output combination")

// Job pairs one input path with its requested output target. Output may
// be empty (derive from the input name), an existing directory, or an
// explicit file path.
type Job struct {
	Input  string
	Output string
}

// ResolveJobs pairs inputs with outputs. With multiple inputs, zero or
// one output names a target directory; otherwise the output count must
// equal the input count and the paths pair up verbatim. A single input
// takes at most one output.
func ResolveJobs(inputs, outputs []string) ([]Job, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: no inputs", ErrBadInvocation)
	}

	if len(inputs) == 1 {
		if len(outputs) > 1 {
			return nil, fmt.Errorf("%w: one input takes at most one output", ErrBadInvocation)
		}
		out := ""
		if len(outputs) == 1 {
			out = outputs[0]
		}
		return []Job{{Input: inputs[0], Output: out}}, nil
	}

	if len(outputs) > 1 {
		if len(outputs) != len(inputs) {
			return nil, fmt.Errorf("%w: %d inputs but %d outputs", ErrBadInvocation, len(inputs), len(outputs))
		}
		jobs := make([]Job, len(inputs))
		for i := range inputs {
			jobs[i] = Job{Input: inputs[i], Output: outputs[i]}
		}
		return jobs, nil
	}

	// Zero or one output: treat it as the target directory.
	base := "."
	if len(outputs) == 1 {
		base = outputs[0]
	}
	jobs := make([]Job, len(inputs))
	for i, in := range inputs {
		jobs[i] = Job{Input: in, Output: filepath.Join(base, withOutputExt(filepath.Base(in)))}
	}
	return jobs, nil
}

// Run processes every job on a worker pool bounded by cfg.Workers and
// returns how many failed. Per-file failures are logged and counted but
// never cancel sibling jobs.
func Run(cfg config.Config, jobs []Job) int {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var g errgroup.Group
	g.SetLimit(workers)

	failed := util.NewSafeCounter()
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			if err := processFile(cfg, job); err != nil {
				log.Printf("Error while converting %s: %v", job.Input, err)
				failed.Increment()
			}
			return nil
		})
	}
	_ = g.Wait()
	return failed.Value()
}

func processFile(cfg config.Config, job Job) error {
	data, err := os.ReadFile(job.Input)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	src, err := codec.Decode(data)
	if err != nil {
		return err
	}
	out, err := Process(cfg, src)
	if err != nil {
		return err
	}
	encoded, err := codec.EncodePNG(out)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath(job), encoded, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// outputPath resolves where a job's output lands: empty targets derive
// from the input basename in the working directory, existing directories
// receive the basename, explicit file paths are used verbatim. The
// encoded format is always PNG regardless of the path's extension.
func outputPath(job Job) string {
	if job.Output == "" {
		return withOutputExt(filepath.Base(job.Input))
	}
	if info, err := os.Stat(job.Output); err == nil && info.IsDir() {
		return filepath.Join(job.Output, withOutputExt(filepath.Base(job.Input)))
	}
	return job.Output
}

func withOutputExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + config.OutputExt
}
