// Package view renders the static page fragments for each route.
package view

import (
	"html"
	"strings"

	"github.com/Its-donkey/menu-restore/internal/route"
)

// RouteAttr marks anchors whose clicks are handled in-app instead of by a
// full page load.
const RouteAttr = "data-route"

// Page is the result of rendering a URL path.
type Page struct {
	Main       route.MainRoute
	Submenu    route.Menu1Route
	HasSubmenu bool
	// HTML is the content fragment. It is empty when Redirect is set.
	HTML string
	// Redirect names a path the router should replace the current one with.
	Redirect string
}

// Render resolves path through both route tables and renders the matching
// fragment. An unknown page under /menu1 redirects to the top-level 404.
func Render(path string) Page {
	main := route.RecognizeMain(path)
	page := Page{Main: main}

	switch main {
	case route.Home:
		page.HTML = homeView()
	case route.Menu1, route.Menu1Submenu:
		sub := route.RecognizeMenu1(path)
		page.Submenu = sub
		page.HasSubmenu = true
		content, ok := menu1Content(sub)
		if !ok {
			page.Redirect = route.MainNotFound.Path()
			return page
		}
		page.HTML = menu1Layout(sub, content)
	default:
		page.HTML = notFoundView()
	}
	return page
}

func homeView() string {
	var b strings.Builder
	b.WriteString(`<div class="page page-home">`)
	b.WriteString(`<h2>Home</h2>`)
	b.WriteString(`<p>Pick an entry from the menu.</p>`)
	b.WriteString(`<nav>`)
	b.WriteString(link(route.PathMenu1, "Menu 1", false))
	b.WriteString(`</nav>`)
	b.WriteString(`</div>`)
	return b.String()
}

func notFoundView() string {
	var b strings.Builder
	b.WriteString(`<div class="page page-not-found">`)
	b.WriteString(`<h2>404 - Page not found</h2>`)
	b.WriteString(link(route.PathHome, "Back to home", false))
	b.WriteString(`</div>`)
	return b.String()
}

var menu1Entries = []struct {
	Route route.Menu1Route
	Label string
}{
	{Route: route.Index, Label: "Menu 1 overview"},
	{Route: route.Submenu2, Label: "Submenu 2"},
	{Route: route.Submenu3, Label: "Submenu 3"},
}

func menu1Layout(active route.Menu1Route, content string) string {
	var b strings.Builder
	b.WriteString(`<div class="menu-layout">`)
	b.WriteString(`<div class="sidebar"><h3>Menu 1</h3><nav><ul>`)
	for _, e := range menu1Entries {
		b.WriteString("<li>")
		b.WriteString(link(e.Route.Path(), e.Label, e.Route == active))
		b.WriteString("</li>")
	}
	b.WriteString(`</ul></nav></div>`)
	b.WriteString(`<div class="content" id="menu1-content">`)
	b.WriteString(content)
	b.WriteString(`</div></div>`)
	return b.String()
}

func menu1Content(r route.Menu1Route) (string, bool) {
	switch r {
	case route.Index:
		return section("Menu 1 overview", "This is the main page of Menu 1."), true
	case route.Submenu2:
		return section("Submenu 2", "Submenu 2 content. This page is remembered across reloads."), true
	case route.Submenu3:
		return section("Submenu 3", "Submenu 3 content. This page is remembered across reloads."), true
	default:
		return "", false
	}
}

func section(title, body string) string {
	return `<div><h2>` + html.EscapeString(title) + `</h2><p>` + html.EscapeString(body) + `</p></div>`
}

func link(path, label string, active bool) string {
	class := "nav-link"
	if active {
		class += " active"
	}
	href := html.EscapeString(path)
	return `<a class="` + class + `" href="` + href + `" ` + RouteAttr + `="` + href + `">` + html.EscapeString(label) + `</a>`
}

// Shell returns the application frame the page fragments are rendered into.
func Shell() string {
	return `
<div class="app-container">
  <div class="header">
    <h1>Route-based reload, back and forward</h1>
  </div>
  <div class="content" id="route-outlet"></div>
</div>
`
}

// OutletID is the element id that receives rendered fragments.
const OutletID = "route-outlet"
