package assetcache

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"futurtask/internal/errors"
	"futurtask/internal/logging"
	"futurtask/internal/repository/sqlite"
)

// State is the lifecycle stage of a worker
type State string

const (
	StateParsed     State = "parsed"
	StateInstalling State = "installing"
	StateInstalled  State = "installed"
	StateActivating State = "activating"
	StateActivated  State = "activated"
	StateRedundant  State = "redundant"
)

// Options configures a worker
type Options struct {
	Prefix  string
	Version string
	// Origin is the base URL relative asset paths resolve against
	Origin string
	// Assets overrides StaticAssets when set
	Assets []string
}

// Worker manages the static and dynamic caches of one version
type Worker struct {
	store   sqlite.CacheStorage
	fetcher Fetcher
	origin  *url.URL
	assets  []string

	version      string
	staticCache  string
	dynamicCache string

	mu          sync.Mutex
	state       State
	skipWaiting bool
}

// NewWorker creates a worker for the given cache version
func NewWorker(store sqlite.CacheStorage, fetcher Fetcher, opts Options) (*Worker, error) {
	if opts.Prefix == "" || opts.Version == "" {
		return nil, errors.NewInvalidInputError("cache", opts.Prefix+"/"+opts.Version, "prefix and version are required")
	}
	origin, err := url.Parse(opts.Origin)
	if err != nil || !origin.IsAbs() {
		return nil, errors.NewInvalidInputError("origin", opts.Origin, "must be an absolute URL")
	}

	assets := opts.Assets
	if assets == nil {
		assets = StaticAssets
	}

	return &Worker{
		store:        store,
		fetcher:      fetcher,
		origin:       origin,
		assets:       assets,
		version:      fmt.Sprintf("%s-v%s", opts.Prefix, opts.Version),
		staticCache:  fmt.Sprintf("%s-static-v%s", opts.Prefix, opts.Version),
		dynamicCache: fmt.Sprintf("%s-dynamic-v%s", opts.Prefix, opts.Version),
		state:        StateParsed,
	}, nil
}

// Version returns the version string reported to clients
func (w *Worker) Version() string {
	return w.version
}

// StaticCacheName returns the name of the cache-first cache
func (w *Worker) StaticCacheName() string {
	return w.staticCache
}

// DynamicCacheName returns the name of the network-first cache
func (w *Worker) DynamicCacheName() string {
	return w.dynamicCache
}

// Origin returns the base URL of the application
func (w *Worker) Origin() *url.URL {
	u := *w.origin
	return &u
}

// State returns the current lifecycle stage
func (w *Worker) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// SkipWaiting reports whether the worker asked to activate without waiting
func (w *Worker) SkipWaiting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.skipWaiting
}

func (w *Worker) setState(state State) {
	w.mu.Lock()
	w.state = state
	w.mu.Unlock()
}

// Install fetches every static asset and stores them in the static cache.
// A failed or non-OK fetch aborts the install with nothing stored.
func (w *Worker) Install(ctx context.Context) error {
	w.setState(StateInstalling)

	entries := make([]*sqlite.CacheEntry, 0, len(w.assets))
	for _, asset := range w.assets {
		target, err := w.resolve(asset)
		if err != nil {
			w.setState(StateRedundant)
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
		if err != nil {
			w.setState(StateRedundant)
			return errors.NewNetworkError(target.String(), err)
		}
		resp, err := w.fetcher.Fetch(ctx, req)
		if err != nil {
			w.setState(StateRedundant)
			logging.Error("install failed", "asset", target.String(), "err", err)
			return err
		}
		if !resp.OK() {
			w.setState(StateRedundant)
			err := errors.NewNetworkError(target.String(), fmt.Errorf("unexpected status %d", resp.Status))
			logging.Error("install failed", "asset", target.String(), "status", resp.Status)
			return err
		}

		entries = append(entries, &sqlite.CacheEntry{
			RequestKey: target.String(),
			Status:     resp.Status,
			Header:     resp.Header,
			Body:       resp.Body,
		})
	}

	if err := w.store.PutAll(ctx, w.staticCache, entries); err != nil {
		w.setState(StateRedundant)
		return err
	}

	w.mu.Lock()
	w.state = StateInstalled
	w.skipWaiting = true
	w.mu.Unlock()

	logging.Info("static assets cached", "cache", w.staticCache, "count", len(entries))
	return nil
}

// Activate deletes every cache other than the current static and dynamic
// caches and returns the names it deleted
func (w *Worker) Activate(ctx context.Context) ([]string, error) {
	w.setState(StateActivating)

	caches, err := w.store.ListCaches(ctx)
	if err != nil {
		return nil, err
	}

	deleted := []string{}
	for _, cache := range caches {
		if cache.Name == w.staticCache || cache.Name == w.dynamicCache {
			continue
		}
		removed, err := w.store.DeleteCache(ctx, cache.Name)
		if err != nil {
			return deleted, err
		}
		if removed {
			logging.Info("deleted old cache", "cache", cache.Name)
			deleted = append(deleted, cache.Name)
		}
	}

	w.setState(StateActivated)
	return deleted, nil
}

// CacheContents is one stored cache and the request keys it holds
type CacheContents struct {
	Name    string   `json:"name"`
	Keys    []string `json:"keys"`
	Current bool     `json:"current"`
}

// Contents lists every stored cache in the order it was opened. Current
// marks the caches this worker version owns.
func (w *Worker) Contents(ctx context.Context) ([]CacheContents, error) {
	caches, err := w.store.ListCaches(ctx)
	if err != nil {
		return nil, err
	}

	contents := make([]CacheContents, 0, len(caches))
	for _, cache := range caches {
		keys, err := w.store.Keys(ctx, cache.Name)
		if err != nil {
			return nil, err
		}
		contents = append(contents, CacheContents{
			Name:    cache.Name,
			Keys:    keys,
			Current: cache.Name == w.staticCache || cache.Name == w.dynamicCache,
		})
	}
	return contents, nil
}

// Fetch answers a request. Static assets are served cache-first, other GET
// requests network-first, and everything else goes straight to the network.
// When no response can be produced the error is a network error.
func (w *Worker) Fetch(ctx context.Context, req *http.Request) (*Response, error) {
	target, err := w.resolve(req.URL.String())
	if err != nil {
		return nil, err
	}
	req = req.Clone(ctx)
	req.URL = target
	req.Host = target.Host

	switch {
	case req.Method != http.MethodGet:
		return w.fetcher.Fetch(ctx, req)
	case IsStaticAsset(target.Path):
		return w.fetchStatic(ctx, req)
	default:
		return w.fetchDynamic(ctx, req)
	}
}

func (w *Worker) fetchStatic(ctx context.Context, req *http.Request) (*Response, error) {
	key := req.URL.String()
	if cached, ok := w.match(ctx, key); ok {
		logging.Debugf("cache hit %s", key)
		return cached, nil
	}

	resp, err := w.fetcher.Fetch(ctx, req)
	if err != nil {
		if fallback, ok := appShellFallback(req.URL.Path); ok {
			if cached, ok := w.match(ctx, w.originURL(fallback)); ok {
				return cached, nil
			}
		}
		return nil, err
	}

	if resp.Status == http.StatusOK {
		w.put(ctx, w.staticCache, key, resp)
	}
	return resp, nil
}

func (w *Worker) fetchDynamic(ctx context.Context, req *http.Request) (*Response, error) {
	key := req.URL.String()
	resp, err := w.fetcher.Fetch(ctx, req)
	if err != nil {
		if cached, ok := w.match(ctx, key); ok {
			return cached, nil
		}
		return nil, err
	}

	if resp.Status == http.StatusOK {
		w.put(ctx, w.dynamicCache, key, resp)
	}
	return resp, nil
}

// match looks key up across all caches. Storage errors count as a miss.
func (w *Worker) match(ctx context.Context, key string) (*Response, bool) {
	entry, err := w.store.MatchAny(ctx, key)
	if err != nil {
		if !sqlite.IsNotFound(err) {
			logging.Warn("cache lookup failed", "key", key, "err", err)
		}
		return nil, false
	}
	return &Response{
		Status:    entry.Status,
		Header:    entry.Header,
		Body:      entry.Body,
		FromCache: true,
	}, true
}

// put stores a copy of resp. A failed write never fails the request.
func (w *Worker) put(ctx context.Context, cacheName, key string, resp *Response) {
	err := w.store.Put(ctx, &sqlite.CacheEntry{
		CacheName:  cacheName,
		RequestKey: key,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       resp.Body,
	})
	if err != nil {
		logging.Warn("cache write failed", "cache", cacheName, "key", key, "err", err)
	}
}

// resolve turns an asset path or URL into an absolute URL on the origin
func (w *Worker) resolve(raw string) (*url.URL, error) {
	ref, err := url.Parse(raw)
	if err != nil {
		return nil, errors.NewInvalidInputError("url", raw, err.Error())
	}
	return w.origin.ResolveReference(ref), nil
}

func (w *Worker) originURL(path string) string {
	return w.origin.ResolveReference(&url.URL{Path: path}).String()
}
