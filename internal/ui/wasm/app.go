//go:build js && wasm

// Package wasm boots the route-restoring UI inside the browser.
package wasm

import (
	"syscall/js"

	"github.com/Its-donkey/menu-restore/internal/navsync"
	"github.com/Its-donkey/menu-restore/internal/session"
	"github.com/Its-donkey/menu-restore/internal/ui/view"
	"github.com/Its-donkey/menu-restore/logging"
)

type app struct {
	window   js.Value
	document js.Value
	outlet   js.Value
	sync     *navsync.Synchronizer
	logger   *logging.Logger
}

// pageHandlers holds callbacks registered for the whole page lifetime. They
// are never released; the page itself is their scope.
var pageHandlers []js.Func

// RunApp restores the last visited route, installs the navigation hooks and
// renders the current page. It blocks forever.
func RunApp(level logging.Level) {
	window := js.Global().Get("window")
	if !window.Truthy() {
		panic("window object is not available")
	}
	logger := logging.New(level, consoleWriter{console: window.Get("console")})
	logger.Info("app", "starting", nil)

	store := session.NewStore(newSessionBackend(window), logger)
	if r, ok := store.MainRoute(); ok {
		logger.Info("app", "stored main route", map[string]any{"route": r.String()})
	}
	if r, ok := store.Submenu(); ok {
		logger.Info("app", "stored submenu route", map[string]any{"route": r.String()})
	}

	a := &app{
		window:   window,
		document: window.Get("document"),
		sync:     navsync.New(store, logger),
		logger:   logger,
	}

	if target, ok := a.sync.Restore(a.pathname()); ok {
		a.window.Get("location").Set("pathname", target)
		select {}
	}

	a.buildShell()
	a.installHooks()
	a.render(a.pathname())
	select {}
}

func (a *app) pathname() string {
	p := a.window.Get("location").Get("pathname")
	if p.Type() != js.TypeString {
		return ""
	}
	return p.String()
}

func (a *app) buildShell() {
	root := a.document.Call("getElementById", "app-root")
	if !root.Truthy() {
		root = a.document.Get("body")
	}
	root.Set("innerHTML", view.Shell())
	a.outlet = a.document.Call("getElementById", view.OutletID)
}

func (a *app) installHooks() {
	beforeUnload := js.FuncOf(func(this js.Value, args []js.Value) any {
		a.logger.Info("app", "leaving page, saving route", nil)
		a.sync.Save(a.pathname())
		// An empty return value never triggers the leave-page prompt.
		return ""
	})
	popState := js.FuncOf(func(this js.Value, args []js.Value) any {
		path := a.pathname()
		a.logger.Info("app", "history navigation, saving route", map[string]any{"path": path})
		a.sync.Save(path)
		a.render(path)
		return nil
	})
	click := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		a.handleClick(args[0])
		return nil
	})
	pageHandlers = append(pageHandlers, beforeUnload, popState, click)

	a.window.Call("addEventListener", "beforeunload", beforeUnload)
	a.window.Call("addEventListener", "popstate", popState)
	a.document.Call("addEventListener", "click", click)
}

func (a *app) handleClick(event js.Value) {
	if event.Get("defaultPrevented").Bool() || event.Get("button").Int() != 0 {
		return
	}
	for _, mod := range []string{"metaKey", "ctrlKey", "shiftKey", "altKey"} {
		if event.Get(mod).Bool() {
			return
		}
	}
	target := event.Get("target")
	if !target.Truthy() || target.Get("closest").Type() != js.TypeFunction {
		return
	}
	anchor := target.Call("closest", "a["+view.RouteAttr+"]")
	if !anchor.Truthy() {
		return
	}
	path := anchor.Call("getAttribute", view.RouteAttr).String()
	event.Call("preventDefault")
	if path == a.pathname() {
		return
	}
	a.window.Get("history").Call("pushState", nil, "", path)
	a.render(path)
}

// render draws path into the outlet and records the rendered routes.
func (a *app) render(path string) {
	nav := a.sync.Navigate(path)
	if nav.ReplacePath != "" {
		a.window.Get("history").Call("replaceState", nil, "", nav.ReplacePath)
	}
	if a.outlet.Truthy() {
		a.outlet.Set("innerHTML", nav.Page.HTML)
	}
}
