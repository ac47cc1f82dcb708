// Package route defines the two-level route table of the UI and the codec used
// to persist route variants in session storage.
package route

import (
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRoute is returned when a stored tag does not name a known variant.
var ErrUnknownRoute = errors.New("unknown route")

// MainRoute identifies a top-level page.
type MainRoute int

const (
	Home MainRoute = iota
	Menu1
	// Menu1Submenu marks any page under /menu1/* other than /menu1 itself.
	Menu1Submenu
	MainNotFound
)

// Menu1Route identifies a page nested under /menu1.
type Menu1Route int

const (
	Index Menu1Route = iota
	Submenu2
	Submenu3
	Menu1NotFound
)

// Canonical paths.
const (
	PathHome          = "/"
	PathMenu1         = "/menu1"
	PathSubmenu2      = "/menu1/submenu2"
	PathSubmenu3      = "/menu1/submenu3"
	PathNotFound      = "/404"
	PathMenu1NotFound = "/menu1/404"
)

var mainTags = map[MainRoute]string{
	Home:         "Home",
	Menu1:        "Menu1",
	Menu1Submenu: "Menu1Submenu",
	MainNotFound: "NotFound",
}

var menu1Tags = map[Menu1Route]string{
	Index:         "Index",
	Submenu2:      "Submenu2",
	Submenu3:      "Submenu3",
	Menu1NotFound: "NotFound",
}

func (r MainRoute) String() string {
	if tag, ok := mainTags[r]; ok {
		return tag
	}
	return fmt.Sprintf("MainRoute(%d)", int(r))
}

func (r Menu1Route) String() string {
	if tag, ok := menu1Tags[r]; ok {
		return tag
	}
	return fmt.Sprintf("Menu1Route(%d)", int(r))
}

// Path returns the canonical URL path for the route. Menu1Submenu has no page
// of its own and maps to /menu1.
func (r MainRoute) Path() string {
	switch r {
	case Home:
		return PathHome
	case Menu1, Menu1Submenu:
		return PathMenu1
	default:
		return PathNotFound
	}
}

// Path returns the canonical URL path for the submenu route.
func (r Menu1Route) Path() string {
	switch r {
	case Index:
		return PathMenu1
	case Submenu2:
		return PathSubmenu2
	case Submenu3:
		return PathSubmenu3
	default:
		return PathMenu1NotFound
	}
}

// RecognizeMain resolves a URL path against the top-level table. Unmatched
// paths resolve to MainNotFound.
func RecognizeMain(path string) MainRoute {
	path = normalize(path)
	switch {
	case path == PathHome:
		return Home
	case path == PathMenu1:
		return Menu1
	case strings.HasPrefix(path, PathMenu1+"/"):
		return Menu1Submenu
	default:
		return MainNotFound
	}
}

// RecognizeMenu1 resolves a URL path against the /menu1 table. Unmatched
// paths resolve to Menu1NotFound.
func RecognizeMenu1(path string) Menu1Route {
	switch normalize(path) {
	case PathMenu1:
		return Index
	case PathSubmenu2:
		return Submenu2
	case PathSubmenu3:
		return Submenu3
	default:
		return Menu1NotFound
	}
}

// normalize drops a trailing slash so "/menu1/" and "/menu1" match the same
// entry, the way the router treats them.
func normalize(path string) string {
	if path == "" {
		return PathHome
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

// MarshalText encodes the variant tag.
func (r MainRoute) MarshalText() ([]byte, error) {
	tag, ok := mainTags[r]
	if !ok {
		return nil, fmt.Errorf("encode main route %d: %w", int(r), ErrUnknownRoute)
	}
	return []byte(tag), nil
}

// UnmarshalText decodes a variant tag.
func (r *MainRoute) UnmarshalText(text []byte) error {
	for v, tag := range mainTags {
		if tag == string(text) {
			*r = v
			return nil
		}
	}
	return fmt.Errorf("decode main route %q: %w", text, ErrUnknownRoute)
}

// MarshalText encodes the variant tag.
func (r Menu1Route) MarshalText() ([]byte, error) {
	tag, ok := menu1Tags[r]
	if !ok {
		return nil, fmt.Errorf("encode menu1 route %d: %w", int(r), ErrUnknownRoute)
	}
	return []byte(tag), nil
}

// UnmarshalText decodes a variant tag.
func (r *Menu1Route) UnmarshalText(text []byte) error {
	for v, tag := range menu1Tags {
		if tag == string(text) {
			*r = v
			return nil
		}
	}
	return fmt.Errorf("decode menu1 route %q: %w", text, ErrUnknownRoute)
}

// Encode renders a route as the JSON string stored in session storage, e.g.
// "Menu1Submenu" including the quotes.
func Encode(v encoding.TextMarshaler) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeMain parses a stored value back into a MainRoute.
func DecodeMain(raw string) (MainRoute, error) {
	var r MainRoute
	tag, err := decodeTag(raw)
	if err != nil {
		return r, fmt.Errorf("decode main route: %w", err)
	}
	if err := r.UnmarshalText([]byte(tag)); err != nil {
		return r, err
	}
	return r, nil
}

// DecodeMenu1 parses a stored value back into a Menu1Route.
func DecodeMenu1(raw string) (Menu1Route, error) {
	var r Menu1Route
	tag, err := decodeTag(raw)
	if err != nil {
		return r, fmt.Errorf("decode menu1 route: %w", err)
	}
	if err := r.UnmarshalText([]byte(tag)); err != nil {
		return r, err
	}
	return r, nil
}

// decodeTag accepts only a JSON string. A stored null would otherwise
// decode as the zero variant without error.
func decodeTag(raw string) (string, error) {
	var tag *string
	if err := json.Unmarshal([]byte(raw), &tag); err != nil {
		return "", err
	}
	if tag == nil {
		return "", fmt.Errorf("stored value is null: %w", ErrUnknownRoute)
	}
	return *tag, nil
}
