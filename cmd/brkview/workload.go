package main

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/joshuapare/brkalloc/cmd/brkview/logger"
	"github.com/joshuapare/brkalloc/heap"
)

// Workload settings
const (
	defaultWorkers  = 4
	defaultMaxSize  = 256
	defaultMaxLive  = 64
	defaultInterval = 2 * time.Millisecond
)

// worker is one allocating goroutine's state. mu serializes the goroutine
// against single steps taken while the workload is paused.
type worker struct {
	mu   sync.Mutex
	id   byte
	rng  *rand.Rand
	live []unsafe.Pointer
}

// Workload drives random allocations and releases against a heap in the
// background so the view has something to watch.
type Workload struct {
	h        *heap.Heap
	workers  []*worker
	maxSize  int
	maxLive  int
	interval time.Duration

	paused   atomic.Bool
	stepped  atomic.Uint64
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	started  bool
}

// NewWorkload creates a paused-capable workload of n workers. It does not
// start any goroutine until Start.
func NewWorkload(h *heap.Heap, n int, seed uint64) *Workload {
	w := &Workload{
		h:        h,
		maxSize:  defaultMaxSize,
		maxLive:  defaultMaxLive,
		interval: defaultInterval,
		stop:     make(chan struct{}),
	}
	for i := range n {
		w.workers = append(w.workers, &worker{
			id:  byte(i + 1),
			rng: rand.New(rand.NewPCG(seed, uint64(i))),
		})
	}
	return w
}

// Start launches one goroutine per worker.
func (w *Workload) Start() {
	w.started = true
	for _, wk := range w.workers {
		w.wg.Add(1)
		go w.run(wk)
	}
	logger.Info("workload started", "workers", len(w.workers))
}

func (w *Workload) run(wk *worker) {
	defer w.wg.Done()
	t := time.NewTicker(w.interval)
	defer t.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-t.C:
		}
		if w.paused.Load() {
			continue
		}
		wk.mu.Lock()
		w.op(wk)
		wk.mu.Unlock()
	}
}

// op performs one random allocation or release for wk.
func (w *Workload) op(wk *worker) {
	if n := len(wk.live); n > 0 && (n >= w.maxLive || wk.rng.IntN(2) == 0) {
		i := wk.rng.IntN(n)
		p := wk.live[i]
		wk.live[i] = wk.live[n-1]
		wk.live = wk.live[:n-1]
		w.h.Free(p)
		return
	}

	p := w.h.Alloc(uintptr(1 + wk.rng.IntN(w.maxSize)))
	if p == nil {
		logger.Warn("allocation failed", "worker", wk.id)
		return
	}
	buf := w.h.Slice(p)
	for i := range buf {
		buf[i] = wk.id
	}
	wk.live = append(wk.live, p)
}

// TogglePause pauses or resumes the background goroutines and reports the
// new state.
func (w *Workload) TogglePause() bool {
	paused := !w.paused.Load()
	w.paused.Store(paused)
	logger.Debug("workload pause toggled", "paused", paused)
	return paused
}

// Paused reports whether the background goroutines are idle.
func (w *Workload) Paused() bool {
	return w.paused.Load()
}

// Step performs a single operation, rotating across workers.
func (w *Workload) Step() {
	if len(w.workers) == 0 {
		return
	}
	n := w.stepped.Add(1)
	wk := w.workers[int(n-1)%len(w.workers)]
	wk.mu.Lock()
	w.op(wk)
	wk.mu.Unlock()
}

// Live returns the number of regions the workers currently hold.
func (w *Workload) Live() int {
	total := 0
	for _, wk := range w.workers {
		wk.mu.Lock()
		total += len(wk.live)
		wk.mu.Unlock()
	}
	return total
}

// Stop ends the goroutines and releases every region they hold. It is safe
// to call more than once and from several goroutines.
func (w *Workload) Stop() {
	w.stopOnce.Do(w.shutdown)
}

func (w *Workload) shutdown() {
	close(w.stop)
	if w.started {
		w.wg.Wait()
	}
	for _, wk := range w.workers {
		wk.mu.Lock()
		for _, p := range wk.live {
			w.h.Free(p)
		}
		wk.live = nil
		wk.mu.Unlock()
	}
	logger.Info("workload stopped")
}
