package codeatlas

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"codeatlas/internal/registry"
)

// ErrRootBusy is returned when a root is claimed while another analysis of
// the same root is still running.
var ErrRootBusy = errors.New("root already under analysis")

// Group fans a set of roots out over a bounded worker pool, one Analyzer per
// root. A registry keyed by root path keeps two concurrent analyses off the
// same root: the second claim fails with ErrRootBusy instead of racing.
type Group struct {
	opts   []Option
	active *registry.Registry[*Analyzer]
}

// NewGroup creates a Group. The options are applied to every Analyzer it
// spawns.
func NewGroup(opts ...Option) *Group {
	return &Group{
		opts:   opts,
		active: registry.New[*Analyzer](),
	}
}

// Active returns the roots currently under analysis.
func (g *Group) Active() []string {
	return g.active.Names()
}

// Analyze runs one Analyzer per root, at most NumCPU at a time, and merges
// the per-root results in input order so the output is deterministic
// regardless of scheduling. Any root failure fails the whole call.
func (g *Group) Analyze(roots []string) (*Result, error) {
	if len(roots) == 0 {
		return &Result{}, nil
	}

	workers := runtime.NumCPU()
	if workers > len(roots) {
		workers = len(roots)
	}

	results := make([]*Result, len(roots))
	errs := make([]error, len(roots))

	work := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				results[i], errs[i] = g.analyzeRoot(roots[i])
			}
		}()
	}
	for i := range roots {
		work <- i
	}
	close(work)
	wg.Wait()

	var first error
	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
			if first == nil {
				first = err
			}
		}
	}
	if first != nil {
		return nil, fmt.Errorf("analysis had %d error(s): %w", failed, first)
	}

	merged := &Result{}
	for _, r := range results {
		merged.Modules = append(merged.Modules, r.Modules...)
		merged.Classes = append(merged.Classes, r.Classes...)
		merged.Methods = append(merged.Methods, r.Methods...)
		merged.RootModules = append(merged.RootModules, r.RootModules...)
		merged.Failures = append(merged.Failures, r.Failures...)
	}
	return merged, nil
}

func (g *Group) analyzeRoot(root string) (*Result, error) {
	a := NewAnalyzer([]string{root}, g.opts...)
	if !g.active.Register(root, a) {
		// Registration bumped the existing holder's count; give it back.
		g.active.Unregister(root)
		return nil, fmt.Errorf("%w: %s", ErrRootBusy, root)
	}
	defer g.active.Unregister(root)
	return a.Analyze()
}
