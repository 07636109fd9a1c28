package console

import (
	"context"
	"errors"
	"testing"
)

func TestTabsFirstRegisteredIsActive(t *testing.T) {
	tabs := NewTabs()
	tabs.Register("Analytics", nil)
	tabs.Register("Leaderboard", nil)

	if tabs.Active() != "Analytics" {
		t.Errorf("Active = %q, want Analytics", tabs.Active())
	}
	names := tabs.Names()
	if len(names) != 2 || names[0] != "Analytics" || names[1] != "Leaderboard" {
		t.Errorf("Names = %v", names)
	}
}

func TestTabsActivateRunsLoaderEveryTime(t *testing.T) {
	calls := 0
	tabs := NewTabs()
	tabs.Register("Analytics", func(ctx context.Context) error {
		calls++
		return nil
	})
	tabs.Register("Leaderboard", nil)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := tabs.Activate(ctx, "Analytics"); err != nil {
			t.Fatalf("Activate: %v", err)
		}
	}
	if calls != 3 {
		t.Errorf("loader ran %d times, want 3 (no caching)", calls)
	}
	if tabs.Active() != "Analytics" {
		t.Errorf("Active = %q, want Analytics", tabs.Active())
	}
}

func TestTabsActivateUnknown(t *testing.T) {
	tabs := NewTabs()
	tabs.Register("Analytics", nil)

	if err := tabs.Activate(context.Background(), "Settings"); err == nil {
		t.Error("Activate accepted an unknown tab")
	}
	if tabs.Active() != "Analytics" {
		t.Errorf("Active changed to %q after a failed Activate", tabs.Active())
	}
}

func TestTabsLoaderErrorStillSwitches(t *testing.T) {
	tabs := NewTabs()
	tabs.Register("Analytics", nil)
	tabs.Register("Leaderboard", func(ctx context.Context) error {
		return errors.New("fetch failed")
	})

	if err := tabs.Activate(context.Background(), "Leaderboard"); err == nil {
		t.Error("Activate swallowed the loader error")
	}
	if tabs.Active() != "Leaderboard" {
		t.Errorf("Active = %q, want Leaderboard", tabs.Active())
	}
}
