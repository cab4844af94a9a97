//go:build windows

package main

import (
	"os"

	winapi "golang.org/x/sys/windows"
)

func shutdownSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}

// terminalSize reports the visible console window size in cells.
func terminalSize() (width, height int, ok bool) {
	var info winapi.ConsoleScreenBufferInfo
	if err := winapi.GetConsoleScreenBufferInfo(winapi.Handle(os.Stdout.Fd()), &info); err != nil {
		return 0, 0, false
	}
	w := int(info.Window.Right-info.Window.Left) + 1
	h := int(info.Window.Bottom-info.Window.Top) + 1
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}
