package navsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Its-donkey/menu-restore/internal/route"
	"github.com/Its-donkey/menu-restore/internal/session"
)

func newSync(t *testing.T) (*Synchronizer, *session.Store, *session.MemoryBackend) {
	t.Helper()
	backend := session.NewMemoryBackend()
	store := session.NewStore(backend, nil)
	return New(store, nil), store, backend
}

type slots struct {
	main    route.MainRoute
	hasMain bool
	sub     route.Menu1Route
	hasSub  bool
}

func readSlots(store *session.Store) slots {
	var s slots
	s.main, s.hasMain = store.MainRoute()
	s.sub, s.hasSub = store.Submenu()
	return s
}

func TestSaveClassifiesPaths(t *testing.T) {
	tests := []struct {
		path string
		want slots
	}{
		{path: "/menu1/submenu2", want: slots{main: route.Menu1Submenu, hasMain: true, sub: route.Submenu2, hasSub: true}},
		{path: "/menu1/submenu2/detail", want: slots{main: route.Menu1Submenu, hasMain: true, sub: route.Submenu2, hasSub: true}},
		{path: "/menu1/submenu2extra", want: slots{main: route.Menu1Submenu, hasMain: true, sub: route.Submenu2, hasSub: true}},
		{path: "/menu1/submenu3", want: slots{main: route.Menu1Submenu, hasMain: true, sub: route.Submenu3, hasSub: true}},
		{path: "/menu1/submenu3/x/y", want: slots{main: route.Menu1Submenu, hasMain: true, sub: route.Submenu3, hasSub: true}},
		{path: "/menu1", want: slots{main: route.Menu1, hasMain: true, sub: route.Index, hasSub: true}},
		{path: "/", want: slots{main: route.Home, hasMain: true}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			s, store, _ := newSync(t)
			s.Save(tt.path)
			assert.Equal(t, tt.want, readSlots(store))
		})
	}
}

func TestSaveHomeDeletesSubmenu(t *testing.T) {
	s, store, backend := newSync(t)
	s.Save("/menu1/submenu3")
	s.Save("/")

	assert.Equal(t, slots{main: route.Home, hasMain: true}, readSlots(store))
	_, present := backend.Snapshot()[session.CurrentSubmenuKey]
	assert.False(t, present)
}

func TestSaveIsIdempotent(t *testing.T) {
	for _, path := range []string{"/", "/menu1", "/menu1/submenu2", "/menu1/submenu3", "/unknown"} {
		t.Run(path, func(t *testing.T) {
			once, _, onceBackend := newSync(t)
			once.Save(path)

			twice, _, twiceBackend := newSync(t)
			twice.Save(path)
			twice.Save(path)

			assert.Equal(t, onceBackend.Snapshot(), twiceBackend.Snapshot())
		})
	}
}

// Paths resolving to a NotFound page are deliberately not recorded; the
// previously stored route is kept.
func TestSaveIgnoresUnmatchedPaths(t *testing.T) {
	for _, path := range []string{"/unknown", "/menu1/", "/menu1/submenu4", "/404", "/menu1/404", ""} {
		t.Run(path, func(t *testing.T) {
			s, _, backend := newSync(t)
			s.Save("/menu1/submenu2")
			before := backend.Snapshot()

			s.Save(path)

			assert.Equal(t, before, backend.Snapshot())
		})
	}

	s, _, backend := newSync(t)
	s.Save("/unknown")
	assert.Empty(t, backend.Snapshot())
}

func TestRestoreRoundTrip(t *testing.T) {
	tests := []struct {
		saved  string
		target string
	}{
		{saved: "/menu1/submenu2", target: "/menu1/submenu2"},
		{saved: "/menu1/submenu3", target: "/menu1/submenu3"},
		{saved: "/menu1/submenu3/deep", target: "/menu1/submenu3"},
		{saved: "/menu1", target: "/menu1"},
	}
	for _, tt := range tests {
		t.Run(tt.saved, func(t *testing.T) {
			s, _, _ := newSync(t)
			s.Save(tt.saved)

			target, ok := s.Restore("/")
			require.True(t, ok)
			assert.Equal(t, tt.target, target)
		})
	}
}

func TestRestoreFallsBackToMainRoute(t *testing.T) {
	s, store, _ := newSync(t)
	s.Save("/menu1")
	store.DeleteSubmenu()

	target, ok := s.Restore("/")
	require.True(t, ok)
	assert.Equal(t, "/menu1", target)

	s2, store2, _ := newSync(t)
	store2.SetMainRoute(route.Menu1Submenu)
	target, ok = s2.Restore("/")
	require.True(t, ok)
	assert.Equal(t, "/menu1", target, "submenu detail is lost when only the coarse flag survives")
}

func TestRestoreSubmenuWinsOverMainRoute(t *testing.T) {
	s, store, _ := newSync(t)
	store.SetMainRoute(route.Menu1)
	store.SetSubmenu(route.Submenu3)

	target, ok := s.Restore("/")
	require.True(t, ok)
	assert.Equal(t, "/menu1/submenu3", target)
}

func TestRestoreWithoutUsableStateDoesNotRedirect(t *testing.T) {
	tests := map[string]func(*session.Store){
		"empty": func(*session.Store) {},
		"home": func(store *session.Store) {
			store.SetMainRoute(route.Home)
		},
		"main not found": func(store *session.Store) {
			store.SetMainRoute(route.MainNotFound)
		},
		"submenu not found without main": func(store *session.Store) {
			store.SetSubmenu(route.Menu1NotFound)
		},
	}
	for name, seed := range tests {
		t.Run(name, func(t *testing.T) {
			s, store, _ := newSync(t)
			seed(store)
			target, ok := s.Restore("/")
			assert.False(t, ok)
			assert.Empty(t, target)
		})
	}
}

func TestRestoreSubmenuNotFoundFallsThroughToMainRoute(t *testing.T) {
	s, store, _ := newSync(t)
	store.SetSubmenu(route.Menu1NotFound)
	store.SetMainRoute(route.Menu1Submenu)

	target, ok := s.Restore("/")
	require.True(t, ok)
	assert.Equal(t, "/menu1", target)
}

func TestRestoreCorruptStateDoesNotRedirect(t *testing.T) {
	s, _, backend := newSync(t)
	require.NoError(t, backend.SetItem(session.CurrentSubmenuKey, `"Submenu9"`))
	require.NoError(t, backend.SetItem(session.CurrentRouteKey, `{}`))

	_, ok := s.Restore("/")
	assert.False(t, ok)
}

func TestRestoreNullStateDoesNotRedirect(t *testing.T) {
	s, _, backend := newSync(t)
	require.NoError(t, backend.SetItem(session.CurrentSubmenuKey, `null`))
	require.NoError(t, backend.SetItem(session.CurrentRouteKey, `null`))

	target, ok := s.Restore("/")
	assert.False(t, ok)
	assert.Empty(t, target)
}

func TestRestoreOnDeepLinkRecordsPathWithoutRedirect(t *testing.T) {
	s, store, _ := newSync(t)
	store.SetMainRoute(route.Home)

	target, ok := s.Restore("/menu1/submenu2")
	assert.False(t, ok)
	assert.Empty(t, target)
	assert.Equal(t, slots{main: route.Menu1Submenu, hasMain: true, sub: route.Submenu2, hasSub: true}, readSlots(store))
}

func TestRecordersKeepSlotsConsistent(t *testing.T) {
	s, store, _ := newSync(t)

	s.RecordMain(route.Menu1Submenu)
	s.RecordSubmenu(route.Submenu2)
	assert.Equal(t, slots{main: route.Menu1Submenu, hasMain: true, sub: route.Submenu2, hasSub: true}, readSlots(store))

	s.RecordMain(route.Menu1)
	s.RecordSubmenu(route.Index)
	assert.Equal(t, slots{main: route.Menu1, hasMain: true, sub: route.Index, hasSub: true}, readSlots(store))

	s.RecordMain(route.Home)
	assert.Equal(t, slots{main: route.Home, hasMain: true}, readSlots(store))
}

func TestRecordersSkipNotFound(t *testing.T) {
	s, _, backend := newSync(t)
	s.RecordMain(route.Menu1Submenu)
	s.RecordSubmenu(route.Submenu3)
	before := backend.Snapshot()

	s.RecordMain(route.MainNotFound)
	s.RecordSubmenu(route.Menu1NotFound)

	assert.Equal(t, before, backend.Snapshot())
}

func TestNavigateRecordsRenderedPage(t *testing.T) {
	tests := []struct {
		path string
		want slots
	}{
		{path: "/", want: slots{main: route.Home, hasMain: true}},
		{path: "/menu1", want: slots{main: route.Menu1, hasMain: true, sub: route.Index, hasSub: true}},
		{path: "/menu1/submenu2", want: slots{main: route.Menu1Submenu, hasMain: true, sub: route.Submenu2, hasSub: true}},
		{path: "/menu1/submenu3/", want: slots{main: route.Menu1Submenu, hasMain: true, sub: route.Submenu3, hasSub: true}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			s, store, _ := newSync(t)
			nav := s.Navigate(tt.path)
			assert.Empty(t, nav.ReplacePath)
			assert.NotEmpty(t, nav.Page.HTML)
			assert.Equal(t, tt.want, readSlots(store))
		})
	}
}

func TestNavigateUnknownSubmenuRedirectsWithoutTouchingStorage(t *testing.T) {
	s, _, backend := newSync(t)
	s.Navigate("/menu1/submenu2")
	before := backend.Snapshot()

	nav := s.Navigate("/menu1/unknown")

	assert.Equal(t, route.PathNotFound, nav.ReplacePath)
	assert.Equal(t, route.MainNotFound, nav.Page.Main)
	assert.Contains(t, nav.Page.HTML, "404")
	assert.Equal(t, before, backend.Snapshot())
}

func TestNavigateNotFoundKeepsStoredRoute(t *testing.T) {
	s, _, backend := newSync(t)
	s.Navigate("/menu1")
	before := backend.Snapshot()

	nav := s.Navigate("/elsewhere")

	assert.Empty(t, nav.ReplacePath)
	assert.Equal(t, route.MainNotFound, nav.Page.Main)
	assert.Equal(t, before, backend.Snapshot())
}
