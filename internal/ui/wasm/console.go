//go:build js && wasm

package wasm

import (
	"strings"
	"syscall/js"
)

// consoleWriter forwards each JSON log line to console.log.
type consoleWriter struct {
	console js.Value
}

func (w consoleWriter) Write(p []byte) (int, error) {
	if w.console.Truthy() {
		w.console.Call("log", strings.TrimRight(string(p), "\n"))
	}
	return len(p), nil
}
