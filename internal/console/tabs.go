package console

import (
	"context"
	"fmt"
)

// Tabs toggles between named panels. Exactly one panel is active at a
// time. Panels registered with a loader re-run it on every activation;
// there is no caching, so switching back always fetches fresh data.
type Tabs struct {
	order   []string
	loaders map[string]func(context.Context) error
	active  string
}

// NewTabs creates an empty tab set.
func NewTabs() *Tabs {
	return &Tabs{loaders: map[string]func(context.Context) error{}}
}

// Register adds a panel. loader may be nil for static panels. The
// first registered panel starts active.
func (t *Tabs) Register(name string, loader func(context.Context) error) {
	if _, exists := t.loaders[name]; !exists {
		t.order = append(t.order, name)
	}
	t.loaders[name] = loader
	if t.active == "" {
		t.active = name
	}
}

// Names returns the panels in registration order.
func (t *Tabs) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Active returns the currently visible panel.
func (t *Tabs) Active() string { return t.active }

// Activate switches to the named panel and runs its loader, if any.
// Re-activating the current panel still re-runs the loader.
func (t *Tabs) Activate(ctx context.Context, name string) error {
	loader, ok := t.loaders[name]
	if !ok {
		return fmt.Errorf("unknown tab: %s", name)
	}
	t.active = name
	if loader == nil {
		return nil
	}
	return loader(ctx)
}
