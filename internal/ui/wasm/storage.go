//go:build js && wasm

package wasm

import (
	"fmt"
	"syscall/js"

	"github.com/Its-donkey/menu-restore/internal/session"
)

// sessionStorage adapts window.sessionStorage to session.Backend. Browsers
// throw from the Storage API when storage is disabled or over quota; those
// exceptions surface as errors rather than panics.
type sessionStorage struct {
	storage js.Value
}

func newSessionBackend(window js.Value) session.Backend {
	var storage js.Value
	err := catch(func() {
		storage = window.Get("sessionStorage")
	})
	if err != nil || !storage.Truthy() {
		return session.Unavailable()
	}
	return &sessionStorage{storage: storage}
}

func (s *sessionStorage) GetItem(key string) (value string, ok bool, err error) {
	err = catch(func() {
		v := s.storage.Call("getItem", key)
		if v.Type() == js.TypeString {
			value, ok = v.String(), true
		}
	})
	return value, ok, err
}

func (s *sessionStorage) SetItem(key, value string) error {
	return catch(func() {
		s.storage.Call("setItem", key, value)
	})
}

func (s *sessionStorage) RemoveItem(key string) error {
	return catch(func() {
		s.storage.Call("removeItem", key)
	})
}

// catch converts a thrown JS exception into an error.
func catch(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if jsErr, ok := r.(js.Error); ok {
				err = jsErr
				return
			}
			err = fmt.Errorf("storage call panicked: %v", r)
		}
	}()
	fn()
	return nil
}
