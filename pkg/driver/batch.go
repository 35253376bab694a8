package driver

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// FileJob names one script to transform and where to write it. An empty
// Output derives the path with OutputPath.
type FileJob struct {
	Input  string
	Output string
}

// FileResult is the outcome of one FileJob.
type FileResult struct {
	Input    string
	Output   string
	Err      error
	WorkerID int
	Duration time.Duration
}

// BatchStats summarises a WriteFiles run.
type BatchStats struct {
	Workers   int
	Completed int
	Failed    int
	TotalTime time.Duration
}

// WriteFiles transforms jobs on a pool of workers. Results keep the order
// of jobs. Jobs not started before ctx is cancelled fail with ctx.Err().
func (t *Transpiler) WriteFiles(ctx context.Context, jobs []FileJob, workers int) ([]FileResult, BatchStats) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(jobs) {
		workers = max(len(jobs), 1)
	}

	results := make([]FileResult, len(jobs))
	queue := make(chan int)
	var (
		wg        sync.WaitGroup
		completed int32
		failed    int32
		busy      int64
	)

	for id := 0; id < workers; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := range queue {
				start := time.Now()
				job := jobs[i]
				output, err := t.WriteFile(job.Input, job.Output)
				elapsed := time.Since(start)
				atomic.AddInt64(&busy, int64(elapsed))
				if err != nil {
					atomic.AddInt32(&failed, 1)
					output = job.Output
				} else {
					atomic.AddInt32(&completed, 1)
				}
				results[i] = FileResult{Input: job.Input, Output: output, Err: err, WorkerID: id, Duration: elapsed}
			}
		}(id)
	}

	next := 0
feed:
	for ; next < len(jobs); next++ {
		select {
		case queue <- next:
		case <-ctx.Done():
			break feed
		}
	}
	close(queue)
	wg.Wait()

	for i := next; i < len(jobs); i++ {
		results[i] = FileResult{Input: jobs[i].Input, Output: jobs[i].Output, Err: ctx.Err(), WorkerID: -1}
		failed++
	}

	stats := BatchStats{
		Workers:   workers,
		Completed: int(completed),
		Failed:    int(failed),
		TotalTime: time.Duration(busy),
	}
	Logger().Debug("batch finished",
		zap.Int("workers", stats.Workers),
		zap.Int("completed", stats.Completed),
		zap.Int("failed", stats.Failed),
		zap.Duration("busy", stats.TotalTime))
	return results, stats
}
