package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"sync"
	"time"

	"go.uber.org/zap"
)

var errLoaderSourceRequired = errors.New("catalog loader: source filesystem is required")

// LoaderDeps wires the catalog source and ambient dependencies.
type LoaderDeps struct {
	// FS is the filesystem the catalog document is read from.
	FS fs.FS
	// Path is the document path within FS.
	Path string
	// CacheTTL bounds how long a parsed catalog is served before re-reading.
	// Zero disables caching.
	CacheTTL time.Duration
	Logger   *zap.Logger
	Clock    func() time.Time
}

// Loader reads the static product catalog. Failures degrade to an empty
// catalog; callers must treat "no products" as a valid result.
type Loader struct {
	fsys   fs.FS
	path   string
	ttl    time.Duration
	logger *zap.Logger
	clock  func() time.Time

	mu        sync.RWMutex
	cached    []Product
	fetchedAt time.Time
}

// NewLoader constructs a Loader enforcing dependency validation.
func NewLoader(deps LoaderDeps) (*Loader, error) {
	if deps.FS == nil {
		return nil, errLoaderSourceRequired
	}
	path := deps.Path
	if path == "" {
		path = "products.json"
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Loader{
		fsys:   deps.FS,
		path:   path,
		ttl:    deps.CacheTTL,
		logger: logger,
		clock:  clock,
	}, nil
}

// Products returns the catalog in document order. A fresh copy is returned so
// callers only ever read snapshots.
func (l *Loader) Products(ctx context.Context) []Product {
	if cached, ok := l.fresh(); ok {
		return cached
	}

	data, err := fs.ReadFile(l.fsys, l.path)
	if err != nil {
		l.logger.Warn("catalog read failed", zap.String("path", l.path), zap.Error(err))
		return nil
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		l.logger.Warn("catalog parse failed", zap.String("path", l.path), zap.Error(err))
		return nil
	}

	l.mu.Lock()
	l.cached = products
	l.fetchedAt = l.clock()
	l.mu.Unlock()

	return snapshot(products)
}

// Product looks up a single product by id.
func (l *Loader) Product(ctx context.Context, id string) (Product, bool) {
	for _, p := range l.Products(ctx) {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Featured returns the first n products, matching the home page region.
func (l *Loader) Featured(ctx context.Context, n int) []Product {
	products := l.Products(ctx)
	if n < 0 {
		n = 0
	}
	if len(products) > n {
		products = products[:n]
	}
	return products
}

func (l *Loader) fresh() ([]Product, bool) {
	if l.ttl <= 0 {
		return nil, false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.cached == nil || l.clock().Sub(l.fetchedAt) > l.ttl {
		return nil, false
	}
	return snapshot(l.cached), true
}

func snapshot(products []Product) []Product {
	if len(products) == 0 {
		return nil
	}
	dup := make([]Product, len(products))
	copy(dup, products)
	return dup
}
