// Package batch runs a pipeline operation over many files with a fixed pool of workers.
package batch

import (
	"context"
	"log"
	"runtime"
	"sync"

	"github.com/nvr-ai/go-imaging/images"
	"github.com/nvr-ai/go-imaging/pipeline"
	"github.com/nvr-ai/go-imaging/util"
	"github.com/pkg/errors"
)

// ErrOutputCollision is returned when two inputs would write the same output file.
var ErrOutputCollision = errors.New("inputs map to the same output")

// Job is one input file and where its output goes.
type Job struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// Outcome is the result of running a Job.
type Outcome struct {
	Job    Job                        `json:"job"`
	Result *pipeline.ConversionResult `json:"result,omitempty"`
	Err    error                      `json:"-"`
}

// Operation processes one file. Implementations must be safe for concurrent use.
type Operation func(in, out string) (*pipeline.ConversionResult, error)

// Convert returns an Operation running svc.Convert with opts.
func Convert(svc *pipeline.Service, opts pipeline.ConversionOptions) Operation {
	return func(in, out string) (*pipeline.ConversionResult, error) {
		return svc.Convert(in, out, opts)
	}
}

// RemoveBackground returns an Operation running svc.RemoveBackground with opts.
func RemoveBackground(svc *pipeline.Service, opts pipeline.BackgroundRemovalOptions) Operation {
	return func(in, out string) (*pipeline.ConversionResult, error) {
		return svc.RemoveBackground(in, out, opts)
	}
}

// Plan builds one Job per supported image in inDir, writing into outDir with
// the extension of format. Inputs sharing a base name, such as a.png and
// a.bmp, would overwrite each other and fail with ErrOutputCollision.
func Plan(inDir, outDir string, format images.Format) ([]Job, error) {
	files, err := util.ListImageFiles(inDir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", inDir)
	}

	jobs := make([]Job, 0, len(files))
	owners := make(map[string]string, len(files))
	for _, f := range files {
		out := util.OutputPath(f.Path, outDir, format)
		if prev, exists := owners[out]; exists {
			return nil, errors.Wrapf(ErrOutputCollision, "%s and %s -> %s", prev, f.Path, out)
		}
		owners[out] = f.Path
		jobs = append(jobs, Job{Input: f.Path, Output: out})
	}
	return jobs, nil
}

// Run executes op for every job on up to workers goroutines and returns the
// outcomes in job order. Once ctx is done no further jobs are started; jobs
// already running finish, and unstarted jobs report ctx.Err().
//
// Arguments:
// - ctx: Stops dispatch when done.
// - jobs: The work to do.
// - workers: Pool size; values < 1 mean runtime.NumCPU().
// - op: The operation to run.
//
// Returns:
// - []Outcome: One outcome per job.
func Run(ctx context.Context, jobs []Job, workers int, op Operation) []Outcome {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, max(len(jobs), 1))

	outcomes := make([]Outcome, len(jobs))
	for i, job := range jobs {
		outcomes[i].Job = job
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				res, err := op(jobs[i].Input, jobs[i].Output)
				outcomes[i].Result, outcomes[i].Err = res, err
			}
		}()
	}

	next := 0
dispatch:
	for ; next < len(jobs); next++ {
		if ctx.Err() != nil {
			break
		}
		select {
		case indexes <- next:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(indexes)
	wg.Wait()

	for i := next; i < len(jobs); i++ {
		outcomes[i].Err = ctx.Err()
	}
	if next < len(jobs) {
		log.Printf("batch: stopped after %d of %d jobs: %v", next, len(jobs), ctx.Err())
	}

	return outcomes
}

// Summary aggregates outcomes.
type Summary struct {
	Total      int   `json:"total"`
	Succeeded  int   `json:"succeeded"`
	Failed     int   `json:"failed"`
	SizeBefore int64 `json:"size_before"`
	SizeAfter  int64 `json:"size_after"`
}

// Summarize counts successes and failures and totals sizes of successful jobs.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Total: len(outcomes)}
	for _, o := range outcomes {
		if o.Err != nil || o.Result == nil {
			s.Failed++
			continue
		}
		s.Succeeded++
		s.SizeBefore += o.Result.SizeBefore
		s.SizeAfter += o.Result.SizeAfter
	}
	return s
}
