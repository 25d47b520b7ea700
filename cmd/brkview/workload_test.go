package main

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/brkalloc/heap/verify"
)

func TestWorkload_RunAndStop(t *testing.T) {
	if testing.Short() {
		t.Skip("runs background workers")
	}
	helper := NewTestHelper(t, 4)
	w := helper.work
	w.interval = 100 * time.Microsecond

	w.Start()
	require.Eventually(t, func() bool {
		return helper.heap.Stats().AllocCalls > 100
	}, 5*time.Second, time.Millisecond)

	w.Stop()
	w.Stop()

	require.NoError(t, verify.Heap(helper.heap))
	require.Zero(t, w.Live())
	require.Zero(t, helper.heap.Stats().InUseBytes)
}

func TestWorkload_StepRotatesWorkers(t *testing.T) {
	helper := NewTestHelper(t, 3)
	w := helper.work

	for range 3 {
		w.Step()
	}
	for _, wk := range w.workers {
		require.Len(t, wk.live, 1, "worker %d", wk.id)
	}
}

func TestWorkload_RegionsHoldOwnerID(t *testing.T) {
	helper := NewTestHelper(t, 2)
	w := helper.work

	for range 200 {
		w.Step()
	}
	for _, wk := range w.workers {
		for _, p := range wk.live {
			for _, b := range helper.heap.Slice(p) {
				require.Equal(t, wk.id, b)
			}
		}
	}
}

func TestWorkload_MaxLive(t *testing.T) {
	helper := NewTestHelper(t, 1)
	w := helper.work
	w.maxLive = 4

	for range 500 {
		w.Step()
		require.LessOrEqual(t, w.Live(), 4)
	}
}

func TestWorkload_ConcurrentStop(t *testing.T) {
	helper := NewTestHelper(t, 4)
	w := helper.work
	w.interval = 100 * time.Microsecond
	w.Start()
	require.Eventually(t, func() bool {
		return helper.heap.Stats().AllocCalls > 20
	}, 5*time.Second, time.Millisecond)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Stop()
		}()
	}
	wg.Wait()

	require.Zero(t, w.Live())
	require.Zero(t, helper.heap.Stats().InUseBytes)
	require.NoError(t, verify.Heap(helper.heap))
}
