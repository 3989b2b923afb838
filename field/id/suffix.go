package id

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/weppos/publicsuffix-go/publicsuffix"

	"github.com/reoring/metainfo/internal/watch"
)

// SuffixList answers whether a top-level domain is a recognized public
// suffix. Implementations must be safe for concurrent use.
type SuffixList interface {
	Known(tld string) bool
}

// pslSuffixes adapts a parsed public suffix list. The list is never mutated
// after construction.
type pslSuffixes struct {
	list *publicsuffix.List
}

// exact lookups only: an unknown suffix must not fall back to the "*" rule.
var findOpts = &publicsuffix.FindOptions{IgnorePrivate: false, DefaultRule: nil}

func (p pslSuffixes) Known(tld string) bool {
	if tld == "" {
		return false
	}
	return p.list.Find("example."+strings.ToLower(tld), findOpts) != nil
}

var defaultSuffixes = sync.OnceValue(func() SuffixList {
	return pslSuffixes{list: publicsuffix.DefaultList}
})

// DefaultSuffixes returns the suffix list bundled with the publicsuffix
// library.
func DefaultSuffixes() SuffixList { return defaultSuffixes() }

var parserOpts = &publicsuffix.ParserOption{PrivateDomains: true}

// ParseSuffixList parses text in the publicsuffix.org list format.
func ParseSuffixList(text string) (SuffixList, error) {
	l, err := publicsuffix.NewListFromString(text, parserOpts)
	if err != nil {
		return nil, fmt.Errorf("parse suffix list: %w", err)
	}
	return pslSuffixes{list: l}, nil
}

// LoadSuffixFile reads a suffix list in the publicsuffix.org format from path.
func LoadSuffixFile(path string) (SuffixList, error) {
	l, err := publicsuffix.NewListFromFile(path, parserOpts)
	if err != nil {
		return nil, fmt.Errorf("load suffix list %s: %w", path, err)
	}
	return pslSuffixes{list: l}, nil
}

// ReloadingSuffixes serves a suffix list loaded from a file and swaps in a
// fresh copy whenever Reload succeeds. Readers always see a complete list.
type ReloadingSuffixes struct {
	path    string
	current atomic.Pointer[SuffixList]
	logger  *slog.Logger
}

// NewReloadingSuffixes loads path once and returns a list that can be
// refreshed with Reload or Watch.
func NewReloadingSuffixes(path string, logger *slog.Logger) (*ReloadingSuffixes, error) {
	if logger == nil {
		logger = slog.Default()
	}
	r := &ReloadingSuffixes{path: path, logger: logger}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Known implements SuffixList.
func (r *ReloadingSuffixes) Known(tld string) bool {
	return (*r.current.Load()).Known(tld)
}

// Reload re-reads the file. On failure the previous list stays in place.
func (r *ReloadingSuffixes) Reload() error {
	l, err := LoadSuffixFile(r.path)
	if err != nil {
		return err
	}
	r.current.Store(&l)
	return nil
}

// Watch reloads the list whenever the file changes until ctx is done.
func (r *ReloadingSuffixes) Watch(ctx context.Context) error {
	cfg := watch.DefaultConfig()
	cfg.Path = r.path
	cfg.Extensions = nil
	w, err := watch.New(cfg, r.logger)
	if err != nil {
		return err
	}
	defer w.Stop()
	return w.Watch(ctx, func(string) error {
		if err := r.Reload(); err != nil {
			return err
		}
		r.logger.Info("suffix list reloaded", "path", r.path)
		return nil
	})
}
