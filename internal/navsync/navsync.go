// Package navsync keeps the stored "last route" in step with the URL path and
// computes where a fresh page load on "/" should be sent back to.
package navsync

import (
	"strings"

	"github.com/Its-donkey/menu-restore/internal/route"
	"github.com/Its-donkey/menu-restore/internal/session"
	"github.com/Its-donkey/menu-restore/internal/ui/view"
	"github.com/Its-donkey/menu-restore/logging"
)

// Synchronizer maps URL paths onto the two session slots.
type Synchronizer struct {
	store  *session.Store
	logger *logging.Logger
}

// New returns a Synchronizer writing through store.
func New(store *session.Store, logger *logging.Logger) *Synchronizer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Synchronizer{store: store, logger: logger}
}

// Save classifies path and records it. Paths outside the known table,
// including every NotFound page, leave both slots untouched so the last
// known-good route survives.
func (s *Synchronizer) Save(path string) {
	switch {
	case strings.HasPrefix(path, route.PathSubmenu2):
		s.store.SetSubmenu(route.Submenu2)
		s.store.SetMainRoute(route.Menu1Submenu)
	case strings.HasPrefix(path, route.PathSubmenu3):
		s.store.SetSubmenu(route.Submenu3)
		s.store.SetMainRoute(route.Menu1Submenu)
	case path == route.PathMenu1:
		s.store.SetSubmenu(route.Index)
		s.store.SetMainRoute(route.Menu1)
	case path == route.PathHome:
		s.store.SetMainRoute(route.Home)
		s.store.DeleteSubmenu()
	default:
		s.logger.Debug("navsync", "path not recorded", map[string]any{"path": path})
	}
}

// Restore runs once at startup. On "/" it returns the path of the last
// visited page, preferring the submenu slot over the coarser main-route
// slot. On any other path it records that path and returns no target.
func (s *Synchronizer) Restore(path string) (string, bool) {
	s.logger.Info("navsync", "current path", map[string]any{"path": path})
	if path != route.PathHome {
		s.Save(path)
		return "", false
	}

	if sub, ok := s.store.Submenu(); ok {
		switch sub {
		case route.Submenu2, route.Submenu3, route.Index:
			target := sub.Path()
			s.logger.Info("navsync", "restoring submenu", map[string]any{"submenu": sub.String(), "target": target})
			return target, true
		}
	}

	if main, ok := s.store.MainRoute(); ok {
		switch main {
		case route.Menu1, route.Menu1Submenu:
			// Only the coarse flag survived; the exact submenu is lost.
			s.logger.Info("navsync", "restoring menu1", map[string]any{"route": main.String()})
			return route.PathMenu1, true
		}
	}
	return "", false
}

// RecordMain stores the main route that was just rendered. Rendering Home
// clears the submenu slot. NotFound is not recorded, matching Save.
func (s *Synchronizer) RecordMain(r route.MainRoute) {
	if r == route.MainNotFound {
		return
	}
	s.store.SetMainRoute(r)
	if r == route.Home {
		s.store.DeleteSubmenu()
	}
}

// RecordSubmenu stores the /menu1 route that was just rendered together with
// the main route it implies. NotFound is not recorded, matching Save.
func (s *Synchronizer) RecordSubmenu(r route.Menu1Route) {
	if r == route.Menu1NotFound {
		return
	}
	s.store.SetSubmenu(r)
	if r == route.Index {
		s.store.SetMainRoute(route.Menu1)
		return
	}
	s.store.SetMainRoute(route.Menu1Submenu)
}

// Navigation is the outcome of showing a path.
type Navigation struct {
	Page view.Page
	// ReplacePath is set when the requested path redirected; the browser
	// URL should be replaced with it.
	ReplacePath string
}

// Navigate renders path, follows a view redirect once and records the routes
// of the page that is finally shown.
func (s *Synchronizer) Navigate(path string) Navigation {
	var nav Navigation
	page := view.Render(path)
	if page.Redirect != "" {
		s.logger.Info("navsync", "redirecting", map[string]any{"from": path, "to": page.Redirect})
		nav.ReplacePath = page.Redirect
		page = view.Render(page.Redirect)
	}
	nav.Page = page

	s.RecordMain(page.Main)
	if page.HasSubmenu {
		s.RecordSubmenu(page.Submenu)
	}
	return nav
}
