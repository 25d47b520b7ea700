package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/brkalloc/heap/verify"
)

func TestStress(t *testing.T) {
	resetFlags()
	h, err := openHeap()
	require.NoError(t, err)
	defer h.Close()

	cfg := stressConfig{Workers: 4, Ops: 2000, MaxSize: 256, Seed: 7}
	if testing.Short() {
		cfg.Ops = 200
	}
	require.NoError(t, stress(h, cfg))
	require.NoError(t, verify.Heap(h))

	st := h.Stats()
	require.Zero(t, st.InUseBytes, "every worker releases what it holds")
	require.Equal(t, st.AllocCalls-st.ZeroRequests-st.Failed, st.FreeCalls-st.NilFrees)
}

func TestStressCommand(t *testing.T) {
	resetFlags()
	defer resetFlags()
	stressWorkers, stressOps, stressMaxSize, stressSeed = 2, 100, 64, 1

	output, err := captureOutput(t, runStress)
	require.NoError(t, err)
	assertContains(t, output, []string{"2 workers x 100 ops", "heap verified", "allocations"})
}

func TestStressCommand_BadFlags(t *testing.T) {
	resetFlags()
	defer resetFlags()

	stressWorkers, stressOps, stressMaxSize = 0, 100, 64
	_, err := captureOutput(t, runStress)
	require.Error(t, err)

	stressWorkers = 256
	_, err = captureOutput(t, runStress)
	require.Error(t, err)
}
