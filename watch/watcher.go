// Package watch turns a directory into a hot folder: every supported image
// written into it is processed and the result written to an output directory.
package watch

import (
	"context"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nvr-ai/go-imaging/batch"
	"github.com/nvr-ai/go-imaging/images"
	"github.com/nvr-ai/go-imaging/pipeline"
	"github.com/nvr-ai/go-imaging/util"
	"github.com/pkg/errors"
)

// DefaultDebounce is how long a file must stay quiet before it is processed.
const DefaultDebounce = 500 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	// InputDir is the folder being watched.
	InputDir string
	// OutputDir receives processed files.
	OutputDir string
	// Format decides the output extension.
	Format images.Format
	// Operation processes one file.
	Operation batch.Operation
	// Debounce overrides DefaultDebounce when positive.
	Debounce time.Duration
	// Results, when set, receives every outcome. Sends block until the caller
	// receives or the watcher shuts down.
	Results chan<- batch.Outcome
}

// Watcher monitors a folder for new or rewritten images.
type Watcher struct {
	opts    Options
	watcher *fsnotify.Watcher
	wg      sync.WaitGroup
	done    chan struct{}

	mu      sync.Mutex
	pending map[string]*time.Timer
	// owners maps each output path to the input that first claimed it.
	owners map[string]string
}

// NewWatcher creates a Watcher on opts.InputDir. The output directory must not
// be the input directory.
func NewWatcher(opts Options) (*Watcher, error) {
	if opts.Operation == nil {
		return nil, errors.New("watch: operation is required")
	}
	in, err := filepath.Abs(opts.InputDir)
	if err != nil {
		return nil, errors.Wrap(err, "watch: input dir")
	}
	out, err := filepath.Abs(opts.OutputDir)
	if err != nil {
		return nil, errors.Wrap(err, "watch: output dir")
	}
	if in == out {
		return nil, errors.New("watch: output dir must differ from input dir")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if err := fsWatcher.Add(opts.InputDir); err != nil {
		fsWatcher.Close()
		return nil, errors.Wrapf(err, "failed to watch folder %s", opts.InputDir)
	}

	return &Watcher{
		opts:    opts,
		watcher: fsWatcher,
		done:    make(chan struct{}),
		pending: make(map[string]*time.Timer),
		owners:  make(map[string]string),
	}, nil
}

// Run processes events until ctx is done, then waits for in-flight files.
func (w *Watcher) Run(ctx context.Context) error {
	log.Printf("Watching folder: %s", w.opts.InputDir)
	defer w.close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !accept(event.Name) {
				continue
			}
			w.schedule(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

// accept reports whether a path is a visible file with a supported extension.
func accept(path string) bool {
	if util.IsHidden(filepath.Base(path)) {
		return false
	}
	_, err := images.FormatFromPath(path)
	return err == nil
}

// schedule (re)starts the debounce timer for path.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if prev, exists := w.pending[path]; exists && prev.Stop() {
		w.wg.Done()
	}

	w.wg.Add(1)
	var timer *time.Timer
	timer = time.AfterFunc(w.opts.Debounce, func() {
		defer w.wg.Done()

		w.mu.Lock()
		if w.pending[path] == timer {
			delete(w.pending, path)
		}
		w.mu.Unlock()

		w.process(path)
	})
	w.pending[path] = timer
}

func (w *Watcher) process(path string) {
	job := batch.Job{Input: path, Output: util.OutputPath(path, w.opts.OutputDir, w.opts.Format)}

	var (
		res *pipeline.ConversionResult
		err error
	)
	if owner := w.claim(job); owner != job.Input {
		err = errors.Wrapf(batch.ErrOutputCollision, "%s and %s -> %s", owner, job.Input, job.Output)
	} else {
		res, err = w.opts.Operation(job.Input, job.Output)
	}
	if err != nil {
		log.Printf("Failed to process %s: %v", path, err)
	} else {
		log.Printf("Processed %s -> %s", job.Input, job.Output)
	}

	if w.opts.Results == nil {
		return
	}
	select {
	case w.opts.Results <- batch.Outcome{Job: job, Result: res, Err: err}:
	case <-w.done:
	}
}

// claim records job.Input as the writer of job.Output unless another input
// got there first, and returns the owning input.
func (w *Watcher) claim(job batch.Job) string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if owner, exists := w.owners[job.Output]; exists {
		return owner
	}
	w.owners[job.Output] = job.Input
	return job.Input
}

// close stops timers that have not fired and waits for running ones. Pending
// sends on Results are abandoned.
func (w *Watcher) close() {
	close(w.done)

	w.mu.Lock()
	for path, timer := range w.pending {
		if timer.Stop() {
			w.wg.Done()
		}
		delete(w.pending, path)
	}
	w.mu.Unlock()

	w.wg.Wait()
	w.watcher.Close()
}
