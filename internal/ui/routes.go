package ui

import (
	"net/url"
	"strings"
)

// Route paths
const (
	PathHome        = "/"
	PathUpload      = "/upload"
	PathDashboard   = "/dashboard"
	PathDiveSites   = "/dive-sites"
	coralPathPrefix = "/coral/"
)

// routeKind identifies which page a path resolves to
type routeKind int

const (
	routeNotFound routeKind = iota
	routeHome
	routeUpload
	routeDashboard
	routeTimeline
	routeDiveSites
)

// navLink is an entry in the navigation bar
type navLink struct {
	label string
	path  string
	key   string // digit shortcut
	fkey  string // function key shortcut
}

var navLinks = []navLink{
	{label: "Home", path: PathHome, key: "1", fkey: "f1"},
	{label: "Upload", path: PathUpload, key: "2", fkey: "f2"},
	{label: "Dashboard", path: PathDashboard, key: "3", fkey: "f3"},
	{label: "Dive Sites", path: PathDiveSites, key: "4", fkey: "f4"},
}

// CoralPath returns the timeline route for a coral
func CoralPath(coralInternalID string) string {
	return coralPathPrefix + url.PathEscape(coralInternalID)
}

// resolveRoute matches path against the static route table. For the timeline
// route it also returns the coral id, which may be empty.
func resolveRoute(path string) (routeKind, string) {
	switch path {
	case PathHome:
		return routeHome, ""
	case PathUpload:
		return routeUpload, ""
	case PathDashboard:
		return routeDashboard, ""
	case PathDiveSites:
		return routeDiveSites, ""
	}

	if rest, ok := strings.CutPrefix(path, coralPathPrefix); ok {
		if strings.Contains(rest, "/") {
			return routeNotFound, ""
		}
		id, err := url.PathUnescape(rest)
		if err != nil {
			return routeNotFound, ""
		}
		return routeTimeline, id
	}

	return routeNotFound, ""
}

// isActiveLink reports whether a nav link is highlighted for the current path.
// Matching is exact, so no link is active on a timeline route.
func isActiveLink(link navLink, currentPath string) bool {
	return link.path == currentPath
}

func linkForKey(key string, allowDigits bool) (navLink, bool) {
	for _, l := range navLinks {
		if key == l.fkey || (allowDigits && key == l.key) {
			return l, true
		}
	}
	return navLink{}, false
}
