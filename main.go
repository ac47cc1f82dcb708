package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"
)

// shutdownGrace is how long a child gets to exit after being interrupted
// before it is killed. It covers the server's own shutdown timeout.
const shutdownGrace = 6 * time.Second

type procConfig struct {
	Name string
	Args []string
	Dir  string
	Env  []string
}

// main builds the WASM bundle, copies the Go runtime shim next to it and
// then runs the UI server until interrupted.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	build := procConfig{
		Name: "build-ui-wasm",
		Args: []string{"go", "build", "-o", "ui/main.wasm", "./cmd/ui-wasm"},
		Env:  []string{"GOOS=js", "GOARCH=wasm"},
	}
	if err := runOnce(ctx, build); err != nil {
		fmt.Fprintf(os.Stderr, "menu-restore: %v\n", err)
		os.Exit(1)
	}
	if err := copyWasmExec(ctx, "ui/wasm_exec.js"); err != nil {
		fmt.Fprintf(os.Stderr, "menu-restore: %v\n", err)
		os.Exit(1)
	}

	serve := procConfig{
		Name: "ui",
		Args: []string{
			"go", "run", "./cmd/ui-server",
			"-listen", "127.0.0.1:4173",
			"-assets", "ui",
		},
	}
	if err := runUntilDone(ctx, serve); err != nil {
		fmt.Fprintf(os.Stderr, "menu-restore exited with error: %v\n", err)
		os.Exit(1)
	}
}

func command(ctx context.Context, cfg procConfig) *exec.Cmd {
	cmd := exec.CommandContext(ctx, cfg.Args[0], cfg.Args[1:]...)
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = shutdownGrace
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if cfg.Dir != "" {
		cmd.Dir = cfg.Dir
	}
	if len(cfg.Env) > 0 {
		cmd.Env = append(append([]string{}, os.Environ()...), cfg.Env...)
	}
	return cmd
}

func runOnce(ctx context.Context, cfg procConfig) error {
	if err := command(ctx, cfg).Run(); err != nil {
		return fmt.Errorf("%s: %w", cfg.Name, err)
	}
	return nil
}

func runUntilDone(ctx context.Context, cfg procConfig) error {
	cmd := command(ctx, cfg)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%s start: %w", cfg.Name, err)
	}
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case <-ctx.Done():
		// The child was interrupted; Wait returns once it exits or is killed
		// after shutdownGrace.
		<-done
		return nil
	case err := <-done:
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("%s exited: %w", cfg.Name, err)
		}
		return nil
	}
}

// copyWasmExec copies the JS glue matching the toolchain that built the
// bundle. Go 1.24 moved it from misc/wasm to lib/wasm.
func copyWasmExec(ctx context.Context, dst string) error {
	out, err := exec.CommandContext(ctx, "go", "env", "GOROOT").Output()
	if err != nil {
		return fmt.Errorf("go env GOROOT: %w", err)
	}
	root := strings.TrimSpace(string(out))
	for _, dir := range []string{"lib/wasm", "misc/wasm"} {
		data, err := os.ReadFile(filepath.Join(root, dir, "wasm_exec.js"))
		if err != nil {
			continue
		}
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", dst, err)
		}
		return nil
	}
	return fmt.Errorf("wasm_exec.js not found under %s", root)
}
