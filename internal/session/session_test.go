package session

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Its-donkey/menu-restore/internal/route"
	"github.com/Its-donkey/menu-restore/logging"
)

type failingBackend struct {
	err error
}

func (f failingBackend) GetItem(string) (string, bool, error) { return "", false, f.err }
func (f failingBackend) SetItem(string, string) error          { return f.err }
func (f failingBackend) RemoveItem(string) error               { return f.err }

func TestStoreRoundTripsRoutes(t *testing.T) {
	backend := NewMemoryBackend()
	store := NewStore(backend, nil)

	_, ok := store.MainRoute()
	assert.False(t, ok)
	_, ok = store.Submenu()
	assert.False(t, ok)

	store.SetMainRoute(route.Menu1Submenu)
	store.SetSubmenu(route.Submenu3)

	main, ok := store.MainRoute()
	require.True(t, ok)
	assert.Equal(t, route.Menu1Submenu, main)
	sub, ok := store.Submenu()
	require.True(t, ok)
	assert.Equal(t, route.Submenu3, sub)

	assert.Equal(t, map[string]string{
		CurrentRouteKey:   `"Menu1Submenu"`,
		CurrentSubmenuKey: `"Submenu3"`,
	}, backend.Snapshot())
}

func TestDeleteSubmenuLeavesMainRoute(t *testing.T) {
	backend := NewMemoryBackend()
	store := NewStore(backend, nil)
	store.SetMainRoute(route.Menu1)
	store.SetSubmenu(route.Index)

	store.DeleteSubmenu()

	_, ok := store.Submenu()
	assert.False(t, ok)
	main, ok := store.MainRoute()
	require.True(t, ok)
	assert.Equal(t, route.Menu1, main)
}

func TestCorruptValueIsTreatedAsAbsent(t *testing.T) {
	var buf bytes.Buffer
	backend := NewMemoryBackend()
	require.NoError(t, backend.SetItem(CurrentRouteKey, `"Menu9"`))
	require.NoError(t, backend.SetItem(CurrentSubmenuKey, `not json`))
	store := NewStore(backend, logging.New(logging.DEBUG, &buf))

	_, ok := store.MainRoute()
	assert.False(t, ok)
	_, ok = store.Submenu()
	assert.False(t, ok)
	assert.True(t, strings.Contains(buf.String(), "discarding stored main route"))
}

func TestNullValueIsTreatedAsAbsent(t *testing.T) {
	backend := NewMemoryBackend()
	require.NoError(t, backend.SetItem(CurrentRouteKey, `null`))
	require.NoError(t, backend.SetItem(CurrentSubmenuKey, `null`))
	store := NewStore(backend, nil)

	_, ok := store.MainRoute()
	assert.False(t, ok)
	_, ok = store.Submenu()
	assert.False(t, ok)
}

func TestBackendFailuresAreSwallowed(t *testing.T) {
	for name, backend := range map[string]Backend{
		"failing":     failingBackend{err: errors.New("quota exceeded")},
		"unavailable": Unavailable(),
		"nil":         nil,
	} {
		t.Run(name, func(t *testing.T) {
			store := NewStore(backend, nil)
			assert.NotPanics(t, func() {
				store.SetMainRoute(route.Home)
				store.SetSubmenu(route.Submenu2)
				store.DeleteSubmenu()
			})
			_, ok := store.MainRoute()
			assert.False(t, ok)
			_, ok = store.Submenu()
			assert.False(t, ok)
		})
	}
}

func TestUnavailableReportsSentinel(t *testing.T) {
	_, _, err := Unavailable().GetItem(CurrentRouteKey)
	assert.ErrorIs(t, err, ErrUnavailable)
}
