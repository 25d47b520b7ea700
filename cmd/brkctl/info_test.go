package main

import (
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/brkalloc/heap"
)

func TestCollectInfo(t *testing.T) {
	info := collectInfo()
	require.Equal(t, runtime.GOOS, info.OS)
	require.Equal(t, heap.HeaderSize, info.HeaderSize)
	require.Equal(t, 16, info.Alignment)
	require.NotZero(t, info.PageSize)
	require.Equal(t, runtime.GOOS == "linux", info.ProcessBreak)
}

func TestInfoCommand_JSON(t *testing.T) {
	resetFlags()
	jsonOut = true
	defer resetFlags()

	output, err := captureOutput(t, runInfo)
	require.NoError(t, err)

	var info platformInfo
	require.NoError(t, json.Unmarshal([]byte(output), &info))
	require.Equal(t, heap.HeaderSize, info.HeaderSize)
}
