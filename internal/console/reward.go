package console

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ROHANDEV-web/school-assistant/internal/apiclient"
)

// AdDuration is how long the student must watch before claiming.
const AdDuration = 15 * time.Second

var (
	ErrCountdownNotStarted = errors.New("countdown not started")
	ErrCountdownRunning    = errors.New("countdown still running")
)

// RewardFlow gates the watch-ad credit grant behind a countdown. The
// countdown is a deadline, not a ticking goroutine: Start always
// resets it to the full duration, so at most one countdown exists per
// flow and restarting is idempotent. Claiming before the deadline is
// rejected; claiming after it requests the reward.
type RewardFlow struct {
	client   *apiclient.Client
	duration time.Duration
	now      func() time.Time

	mu       sync.Mutex
	deadline time.Time
	active   bool
	onGrant  func(newLimit int)
}

// NewRewardFlow creates a reward flow with the standard ad duration.
// onGrant, if non-nil, observes the granted limit (the optimistic
// credit display update).
func NewRewardFlow(client *apiclient.Client, onGrant func(newLimit int)) *RewardFlow {
	return &RewardFlow{
		client:   client,
		duration: AdDuration,
		now:      time.Now,
		onGrant:  onGrant,
	}
}

// SetDuration overrides the countdown length. Test hook.
func (f *RewardFlow) SetDuration(d time.Duration) { f.duration = d }

// SetNow overrides the clock. Test hook.
func (f *RewardFlow) SetNow(now func() time.Time) { f.now = now }

// Start begins (or restarts) the countdown at the full duration.
func (f *RewardFlow) Start() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deadline = f.now().Add(f.duration)
	f.active = true
}

// Cancel exits the flow, discarding the countdown.
func (f *RewardFlow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.active = false
	f.deadline = time.Time{}
}

// Remaining reports how much countdown is left.
func (f *RewardFlow) Remaining() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.active {
		return 0
	}
	left := f.deadline.Sub(f.now())
	if left < 0 {
		return 0
	}
	return left
}

// Claimable reports whether the countdown has expired.
func (f *RewardFlow) Claimable() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active && !f.now().Before(f.deadline)
}

// Claim requests the credit grant. It fails without side effects if
// the flow is idle or the countdown is still running; on success the
// flow resets.
func (f *RewardFlow) Claim(ctx context.Context) (*apiclient.WatchAdResponse, error) {
	f.mu.Lock()
	if !f.active {
		f.mu.Unlock()
		return nil, ErrCountdownNotStarted
	}
	if f.now().Before(f.deadline) {
		f.mu.Unlock()
		return nil, ErrCountdownRunning
	}
	f.mu.Unlock()

	resp, err := f.client.WatchAd(ctx)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.active = false
	f.deadline = time.Time{}
	hook := f.onGrant
	f.mu.Unlock()

	if hook != nil {
		hook(resp.NewLimit)
	}
	return resp, nil
}
