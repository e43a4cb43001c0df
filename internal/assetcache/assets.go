// Package assetcache keeps the application's static assets available
// offline. It stores HTTP responses in two versioned caches and serves them
// cache-first for static assets and network-first for everything else.
package assetcache

import "strings"

// StaticAssets are pre-cached on install. Relative paths resolve against
// the worker's origin.
var StaticAssets = []string{
	"/",
	"/index.html",
	"/stats.html",
	"/styles.css",
	"/script.js",
	"/stats.js",
	"/manifest.json",
	"https://cdn.jsdelivr.net/npm/chart.js",
	"https://fonts.googleapis.com/css2?family=Inter:wght@300;400;500;600;700&display=swap",
}

var (
	staticPaths = []string{
		"/",
		"/index.html",
		"/stats.html",
		"/styles.css",
		"/script.js",
		"/stats.js",
		"/manifest.json",
	}
	staticExtensions = []string{
		".html", ".css", ".js", ".json",
		".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico",
	}
	staticPrefixes = []string{"/icons/", "/screenshots/"}
)

// IsStaticAsset reports whether a URL path is served cache-first
func IsStaticAsset(path string) bool {
	for _, p := range staticPaths {
		if path == p {
			return true
		}
	}
	for _, ext := range staticExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	for _, prefix := range staticPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// appShellFallback returns the cached document served for path when the
// network is unreachable
func appShellFallback(path string) (string, bool) {
	switch path {
	case "/", "/index.html":
		return "/index.html", true
	case "/stats.html":
		return "/stats.html", true
	default:
		return "", false
	}
}
