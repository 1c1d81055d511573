package tft

import (
	"context"
	"sync"
)

type job struct {
	index int
	file  string
}

func (g *Generator) findJobs(ctx context.Context, files []string) (<-chan job, <-chan error, error) {
	out := make(chan job)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for i, file := range files {
			select {
			case out <- job{index: i, file: file}:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return out, errc, nil
}

// encodeWorker encodes each job it receives, storing the result at the
// job's index so the output order never depends on which worker finishes
// first.
func (g *Generator) encodeWorker(ctx context.Context, in <-chan job, f format, results [][]byte) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for j := range in {
			if err := ctx.Err(); err != nil {
				errc <- err
				return
			}

			b, err := g.encodeFile(j.file, f)
			if err != nil {
				errc <- err
				return
			}
			results[j.index] = b
		}
	}()
	return errc, nil
}

// waitForPipeline returns the first error from any stage, cancelling the
// rest of the pipeline and waiting for every stage to stop.
func waitForPipeline(cancelFunc context.CancelFunc, errs ...<-chan error) error {
	var first error
	for err := range mergeErrors(errs...) {
		if err != nil && first == nil {
			first = err
			cancelFunc()
		}
	}
	return first
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// encodeAll encodes files as f and returns the records in the same order
// as files. The first error stops the remaining work.
func (g *Generator) encodeAll(ctx context.Context, files []string, f format) ([][]byte, error) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	results := make([][]byte, len(files))

	var errcList []<-chan error

	jobs, errc, err := g.findJobs(ctx, files)
	if err != nil {
		return nil, err
	}
	errcList = append(errcList, errc)

	workers := g.workers
	if workers > len(files) {
		workers = len(files)
	}
	for i := 0; i < workers; i++ {
		errc, err := g.encodeWorker(ctx, jobs, f, results)
		if err != nil {
			return nil, err
		}
		errcList = append(errcList, errc)
	}

	if err := waitForPipeline(cancelFunc, errcList...); err != nil {
		return nil, err
	}

	return results, nil
}
