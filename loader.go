package driftwood

import (
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"
	"sync"

	// Register the common photo formats for image.Decode.
	_ "image/jpeg"
	_ "image/png"
)

const loaderWorkers = 2

// loadJob asks a worker to decode the image for one pool slot.
type loadJob struct {
	pool int
	path string
}

// loadResult carries a decoded image (or the error) back to the frame loop.
// The *ebiten.Image is created there, not on the worker.
type loadResult struct {
	pool int
	path string
	img  image.Image
	err  error
}

// textureLoader decodes pool images on background goroutines. Results are
// buffered so workers never block, and drained from the Strip's frame step;
// a Strip disposed before a decode completes simply abandons the buffered
// results.
type textureLoader struct {
	jobs    chan loadJob
	results chan loadResult
	quit    chan struct{}
	wg      sync.WaitGroup
	fsys    fs.FS
}

// newTextureLoader starts the worker pool and queues one job per pool path.
// fsys nil means the host OS filesystem.
func newTextureLoader(fsys fs.FS, paths []string) *textureLoader {
	l := &textureLoader{
		jobs:    make(chan loadJob, len(paths)),
		results: make(chan loadResult, len(paths)),
		quit:    make(chan struct{}),
		fsys:    fsys,
	}
	for i, path := range paths {
		l.jobs <- loadJob{pool: i, path: path}
	}
	close(l.jobs)

	workers := loaderWorkers
	if workers > len(paths) {
		workers = len(paths)
	}
	l.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go l.worker()
	}
	return l
}

func (l *textureLoader) worker() {
	defer l.wg.Done()
	for job := range l.jobs {
		select {
		case <-l.quit:
			return
		default:
		}

		img, err := l.decode(job.path)
		// Result channel is sized for every job; this never blocks.
		l.results <- loadResult{pool: job.pool, path: job.path, img: img, err: err}
	}
}

func (l *textureLoader) decode(path string) (image.Image, error) {
	var r io.ReadCloser
	var err error
	if l.fsys != nil {
		r, err = l.fsys.Open(path)
	} else {
		r, err = os.Open(path)
	}
	if err != nil {
		return nil, fmt.Errorf("driftwood: open %s: %w", path, err)
	}
	defer r.Close()

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("driftwood: decode %s: %w", path, err)
	}
	return img, nil
}

// drain returns all results decoded so far without blocking.
func (l *textureLoader) drain(buf []loadResult) []loadResult {
	for {
		select {
		case res := <-l.results:
			buf = append(buf, res)
		default:
			return buf
		}
	}
}

// stop signals the workers to exit. Buffered results are left to the GC.
func (l *textureLoader) stop() {
	close(l.quit)
	l.wg.Wait()
}
