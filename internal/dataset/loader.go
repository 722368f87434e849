// Package dataset memoizes loaded tables and their role bindings for the
// lifetime of the process.
package dataset

import (
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/KaramelBytes/housedash/internal/analysis"
	"github.com/KaramelBytes/housedash/internal/artifacts"
	"github.com/KaramelBytes/housedash/internal/columns"
	"github.com/KaramelBytes/housedash/internal/parser"
)

// Dataset is a loaded table with its resolved role bindings. Both are
// read-only once published by the Loader.
type Dataset struct {
	Path     string
	Table    *analysis.Table
	Bindings columns.Bindings
	LoadedAt time.Time
}

// Loader reads dataset files once per distinct path. Concurrent first loads of
// the same path share a single read; failures are not cached.
type Loader struct {
	opt parser.Options
	log *zap.Logger

	mu    sync.RWMutex
	cache map[string]*Dataset
	group singleflight.Group
	reads atomic.Int64
}

// NewLoader returns an empty loader. A nil logger disables logging.
func NewLoader(opt parser.Options, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{opt: opt, log: log, cache: make(map[string]*Dataset)}
}

// Load returns the dataset at path, reading it on first use. A path that is
// not a regular file fails with *artifacts.MissingFileError before any read
// is attempted.
func (l *Loader) Load(path string) (*Dataset, error) {
	key := filepath.Clean(path)
	l.mu.RLock()
	ds, ok := l.cache[key]
	l.mu.RUnlock()
	if ok {
		return ds, nil
	}
	if !artifacts.Exists(key) {
		return nil, &artifacts.MissingFileError{Artifact: "data", Path: path}
	}
	v, err, _ := l.group.Do(key, func() (any, error) {
		l.mu.RLock()
		ds, ok := l.cache[key]
		l.mu.RUnlock()
		if ok {
			return ds, nil
		}
		start := time.Now()
		l.reads.Add(1)
		t, err := parser.ParseFile(key, l.opt)
		if err != nil {
			return nil, fmt.Errorf("load dataset %s: %w", filepath.Base(key), err)
		}
		ds = &Dataset{Path: key, Table: t, Bindings: columns.ResolveAll(t), LoadedAt: time.Now()}
		l.mu.Lock()
		l.cache[key] = ds
		l.mu.Unlock()
		l.log.Info("dataset loaded",
			zap.String("path", key),
			zap.Int("rows", t.Len()),
			zap.Int("columns", len(t.Columns)),
			zap.Int("bound_roles", len(ds.Bindings)),
			zap.Duration("took", time.Since(start)))
		return ds, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Dataset), nil
}

// Reads returns how many times a file was actually parsed.
func (l *Loader) Reads() int64 { return l.reads.Load() }
