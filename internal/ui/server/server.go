// Package server serves the WASM bundle and the single HTML shell that every
// client-side route loads from.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Its-donkey/menu-restore/logging"
)

// AppRootID is the element the WASM bundle mounts into.
const AppRootID = "app-root"

// Options configures the UI HTTP server.
type Options struct {
	Listen    string
	AssetsDir string
	// ShellFile is the HTML shell, relative to AssetsDir.
	ShellFile string
	Logger    *logging.Logger
}

type server struct {
	assetsDir string
	shell     []byte
	modTime   time.Time
	logger    *logging.Logger
}

var assets = map[string]string{
	"/main.wasm":    "application/wasm",
	"/wasm_exec.js": "application/javascript",
	"/styles.css":   "text/css; charset=utf-8",
}

// New loads and checks the HTML shell and returns the server's handler.
func New(opts Options) (http.Handler, error) {
	s, err := newServer(opts)
	if err != nil {
		return nil, err
	}
	return s.routes(), nil
}

func newServer(opts Options) (*server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	assetsDir, err := filepath.Abs(opts.AssetsDir)
	if err != nil {
		return nil, fmt.Errorf("resolve assets dir: %w", err)
	}
	shellPath := filepath.Join(assetsDir, opts.ShellFile)
	shell, err := os.ReadFile(shellPath)
	if err != nil {
		return nil, fmt.Errorf("read shell: %w", err)
	}
	if err := CheckShell(shell); err != nil {
		return nil, fmt.Errorf("check shell %s: %w", shellPath, err)
	}
	modTime := time.Now()
	if info, err := os.Stat(shellPath); err == nil {
		modTime = info.ModTime()
	}
	return &server{
		assetsDir: assetsDir,
		shell:     shell,
		modTime:   modTime,
		logger:    logger,
	}, nil
}

// CheckShell verifies the HTML shell can boot the app: it needs the mount
// element and must load both wasm_exec.js and main.wasm.
func CheckShell(shell []byte) error {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(shell))
	if err != nil {
		return fmt.Errorf("parse shell: %w", err)
	}
	var errs []error
	if doc.Find("#"+AppRootID).Length() == 0 {
		errs = append(errs, fmt.Errorf("missing #%s element", AppRootID))
	}
	if doc.Find(`script[src$="wasm_exec.js"]`).Length() == 0 {
		errs = append(errs, errors.New("missing wasm_exec.js script"))
	}
	loadsWasm := false
	doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
		if bytes.Contains([]byte(sel.Text()), []byte("main.wasm")) {
			loadsWasm = true
		}
	})
	if !loadsWasm {
		errs = append(errs, errors.New("no script instantiates main.wasm"))
	}
	return errors.Join(errs...)
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	for name, contentType := range assets {
		mux.Handle(name, s.assetHandler(name, contentType))
	}
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/", s.handleShell)
	return logging.NewHTTPLogger(s.logger).Middleware(mux)
}

func (s *server) assetHandler(name, contentType string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := filepath.Join(s.assetsDir, filepath.FromSlash(name))
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		http.ServeFile(w, r, p)
	})
}

// handleShell answers every client-side route with the same document so a
// reload on a nested path still boots the app. Paths that look like files
// are not routes.
func (s *server) handleShell(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if path.Ext(r.URL.Path) != "" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeContent(w, r, "index.html", s.modTime, bytes.NewReader(s.shell))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, opts Options) error {
	handler, err := New(opts)
	if err != nil {
		return err
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	server := &http.Server{
		Addr:              opts.Listen,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	logger.WithCategory("server").
		WithField("url", "http://"+opts.Listen).
		WithField("assets", opts.AssetsDir).
		Info("serving UI")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server shutdown: %w", err)
		}
		logger.WithCategory("server").Info("server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	}
}
