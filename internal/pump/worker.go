package pump

import (
	"context"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/seclab-tools/redosprobe/internal/dbg"
	"github.com/seclab-tools/redosprobe/internal/sampler"
)

// Job is one witness to search, destined for whichever worker claims it
// off the queue.
type Job struct {
	ID       string
	Witness  []byte
	Width    int
	Deadline time.Time
}

// JobResult pairs a [Job] with the search outcome, or the error that
// aborted it.
type JobResult struct {
	Job    Job
	Result *SearchResult
	Err    error
}

// cpuFreeList is a mutex-protected pool of CPU slot ids. Workers acquire a
// slot before opening their sampler subprocess and release it when they
// retire; this is the only coordination workers need beyond the job queue.
type cpuFreeList struct {
	mu   sync.Mutex
	free []int
}

func newCPUFreeList(n int) *cpuFreeList {
	free := make([]int, n)
	for i := range free {
		free[i] = i
	}
	return &cpuFreeList{free: free}
}

func (f *cpuFreeList) acquire() (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.free) == 0 {
		return 0, false
	}
	id := f.free[len(f.free)-1]
	f.free = f.free[:len(f.free)-1]
	return id, true
}

func (f *cpuFreeList) release(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.free = append(f.free, id)
}

// Pool runs a fixed set of worker goroutines, one per CPU, each holding an
// exclusive sampler subprocess for its entire lifetime. Jobs are pulled
// from a bounded queue; there is no other shared mutable state between
// workers.
type Pool struct {
	spawn   func(cpu int) *sampler.Client
	jobs    chan Job
	results chan JobResult
	workers int
	cpus    *cpuFreeList
}

// NewPool builds a worker pool sized to runtime.NumCPU() (or workers, if
// positive). spawn constructs the sampler subprocess a worker should use
// for the CPU slot it was handed; it is called once per worker at startup.
func NewPool(workers int, queueDepth int, spawn func(cpu int) *sampler.Client) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool{
		spawn:   spawn,
		jobs:    make(chan Job, queueDepth),
		results: make(chan JobResult, queueDepth),
		workers: workers,
		cpus:    newCPUFreeList(workers),
	}
}

// Submit enqueues a job, blocking if the queue is full or ctx is done.
func (p *Pool) Submit(ctx context.Context, job Job) error {
	select {
	case p.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting new jobs. Call after the last Submit.
func (p *Pool) Close() { close(p.jobs) }

// Results returns the channel workers publish completed jobs to. It closes
// once every worker has exited.
func (p *Pool) Results() <-chan JobResult { return p.results }

// Run starts the worker goroutines and blocks until the job queue is
// closed and drained, or ctx is cancelled. Each worker's suspension points
// are: pulling a job off the queue, every sampler round-trip, and the
// deadline check before starting a new (pos, len) probe.
func (p *Pool) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for w := 0; w < p.workers; w++ {
		g.Go(func() error {
			cpu, ok := p.cpus.acquire()
			if !ok {
				return nil // more workers than CPU slots; nothing to do
			}
			defer p.cpus.release(cpu)

			client := p.spawn(cpu)
			defer client.Close()

			for {
				select {
				case job, open := <-p.jobs:
					if !open {
						return nil
					}
					dbg.Log(nil, "pump.Pool", "cpu=%d job=%s", cpu, job.ID)
					res, err := Search(ctx, client, job.Witness, job.Width, job.Deadline)
					select {
					case p.results <- JobResult{Job: job, Result: res, Err: err}:
					case <-ctx.Done():
						return ctx.Err()
					}
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		})
	}

	err := g.Wait()
	close(p.results)
	return err
}
