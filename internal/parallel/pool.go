package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool runs batches of row-band jobs on a fixed set of goroutines.
//
// Each worker owns a queue and steals from the others when its own queue
// is empty, so a slow band (for example one with many saturated pixels
// that hit the clamp path) does not leave other workers idle.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers    int
	workQueues []chan func()
	done       chan struct{}
	wg         sync.WaitGroup
	running    atomic.Bool

	// lifecycle is held shared by ExecuteAll and exclusively by Close, so
	// workers never exit while a batch is being queued or waited on.
	lifecycle sync.RWMutex
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// Workers start immediately and block until work arrives.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}
	for i := range workers {
		p.workQueues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.workQueues[id]

	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case job := <-own:
			run(job)
		default:
			if stolen := p.steal(id); stolen != nil {
				run(stolen)
				continue
			}
			select {
			case <-p.done:
				p.drain(own)
				return
			case job := <-own:
				run(job)
			}
		}
	}
}

func run(job func()) {
	if job != nil {
		job()
	}
}

// drain runs whatever is left in queue without blocking.
func (p *WorkerPool) drain(queue chan func()) {
	for {
		select {
		case job := <-queue:
			run(job)
		default:
			return
		}
	}
}

// steal takes one job from another worker's queue, or returns nil.
func (p *WorkerPool) steal(self int) func() {
	for i := range p.workers {
		if i == self {
			continue
		}
		select {
		case job := <-p.workQueues[i]:
			return job
		default:
		}
	}
	return nil
}

// ExecuteAll distributes jobs round-robin across workers and blocks until
// every job has finished. A concurrent Close waits for the batch. After
// Close, jobs run on the calling goroutine so callers always get complete
// results.
func (p *WorkerPool) ExecuteAll(jobs []func()) {
	if len(jobs) == 0 {
		return
	}

	p.lifecycle.RLock()
	defer p.lifecycle.RUnlock()

	if !p.running.Load() {
		for _, job := range jobs {
			run(job)
		}
		return
	}

	var pending sync.WaitGroup
	pending.Add(len(jobs))

	for i, job := range jobs {
		wrapped := func() {
			defer pending.Done()
			run(job)
		}

		p.workQueues[i%p.workers] <- wrapped
	}

	pending.Wait()
}

// Close stops the workers after in-flight ExecuteAll calls complete.
// Close is safe to call multiple times and concurrently with ExecuteAll.
func (p *WorkerPool) Close() {
	p.lifecycle.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.lifecycle.Unlock()
		return
	}
	close(p.done)
	p.lifecycle.Unlock()

	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
