// Package bank defines the adapter interface every institution
// implements plus the registry the CLI selects adapters from.
package bank

import (
	"context"
	"sort"
	"strings"

	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/progress"
)

// Bank is one institution's adapter. FetchData logs in, retrieves and
// parses everything in one pass; Transactions and Summary expose the
// result of the last successful fetch. Adapters are not safe for
// concurrent use and hold no state across fetches.
type Bank interface {
	Name() string
	FetchData(ctx context.Context, r progress.Reporter) error
	Transactions() []model.Transaction
	Summary() model.Summary
}

// Registry holds named bank adapters. It is built explicitly at
// startup and passed down the call chain.
type Registry struct {
	banks map[string]Bank
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{banks: make(map[string]Bank)}
}

// Register adds a bank. Panics on duplicate name.
func (r *Registry) Register(b Bank) {
	key := strings.ToLower(b.Name())
	if _, ok := r.banks[key]; ok {
		panic("duplicate bank name: " + key)
	}
	r.banks[key] = b
}

// Get returns the bank for name (case-insensitive), or nil.
func (r *Registry) Get(name string) Bank {
	return r.banks[strings.ToLower(name)]
}

// Names returns the registered bank names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.banks))
	for name := range r.banks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
