package main

import (
	"errors"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/joshuapare/brkalloc/heap"
	"github.com/joshuapare/brkalloc/heap/segment"
	"github.com/joshuapare/brkalloc/internal/format"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Report block layout constants and platform support",
		Long: `The info command prints the header size, alignment and page size the
allocator uses on this platform, and whether the process break segment is
available.

Example:
  brkctl info
  brkctl info --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo()
		},
	}
	return cmd
}

// platformInfo is what info reports.
type platformInfo struct {
	OS           string  `json:"os"`
	Arch         string  `json:"arch"`
	HeaderSize   uintptr `json:"header_size"`
	Alignment    int     `json:"alignment"`
	PageSize     uintptr `json:"page_size"`
	ProcessBreak bool    `json:"process_break"`
}

func collectInfo() platformInfo {
	_, err := segment.ProcessBreak()
	return platformInfo{
		OS:           runtime.GOOS,
		Arch:         runtime.GOARCH,
		HeaderSize:   heap.HeaderSize,
		Alignment:    format.Alignment,
		PageSize:     format.PageSize,
		ProcessBreak: !errors.Is(err, segment.ErrUnsupported),
	}
}

func runInfo() error {
	info := collectInfo()
	if jsonOut {
		return printJSON(info)
	}

	printInfo("Platform:       %s/%s\n", info.OS, info.Arch)
	printInfo("Header size:    %d bytes\n", info.HeaderSize)
	printInfo("Alignment:      %d bytes\n", info.Alignment)
	printInfo("Page size:      %d bytes\n", info.PageSize)
	printInfo("Process break:  %t\n", info.ProcessBreak)
	return nil
}
