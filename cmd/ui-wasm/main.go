//go:build js && wasm

package main

import (
	"github.com/Its-donkey/menu-restore/internal/ui/wasm"
	"github.com/Its-donkey/menu-restore/logging"
)

// logLevel can be overridden at build time with
// -ldflags "-X main.logLevel=DEBUG".
var logLevel = "INFO"

func main() {
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		level = logging.INFO
	}
	wasm.RunApp(level)
}
