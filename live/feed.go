package live

import (
	"context"
	"sync"
	"time"

	log "github.com/spf13/jwalterweatherman"

	"github.com/nlwcopa/bolao-web/models"
)

type CountLoader interface {
	LoadCounts(ctx context.Context) (models.Counts, error)
}

// Feed polls the counters and fans the latest values out to subscribers.
type Feed struct {
	loader   CountLoader
	interval time.Duration

	lock    sync.RWMutex
	latest  *models.Counts
	subs    map[chan models.Counts]struct{}
	stopped bool
}

func NewFeed(loader CountLoader, interval time.Duration) *Feed {
	return &Feed{
		loader:   loader,
		interval: interval,
		subs:     make(map[chan models.Counts]struct{}),
	}
}

// Run polls until ctx is cancelled. A failed poll keeps the previous value.
func (f *Feed) Run(ctx context.Context) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		if err := f.Poll(ctx); err != nil && ctx.Err() == nil {
			log.WARN.Printf("live: refreshing counts failed: %v", err)
		}
		select {
		case <-ctx.Done():
			f.closeAll()
			log.DEBUG.Printf("live: feed stopped")
			return
		case <-ticker.C:
		}
	}
}

func (f *Feed) Poll(ctx context.Context) error {
	counts, err := f.loader.LoadCounts(ctx)
	if err != nil {
		return err
	}
	f.Publish(counts)
	return nil
}

// Publish records counts as the latest value and hands them to every
// subscriber. Slow subscribers only ever see the most recent value.
func (f *Feed) Publish(counts models.Counts) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.latest = &counts
	for ch := range f.subs {
		select {
		case <-ch:
		default:
		}
		ch <- counts
	}
}

func (f *Feed) Latest() (models.Counts, bool) {
	f.lock.RLock()
	defer f.lock.RUnlock()
	if f.latest == nil {
		return models.Counts{}, false
	}
	return *f.latest, true
}

// Subscribe returns a channel of updates and a function that cancels the
// subscription. The channel is closed when either happens or the feed stops.
func (f *Feed) Subscribe() (<-chan models.Counts, func()) {
	ch := make(chan models.Counts, 1)

	f.lock.Lock()
	if f.stopped {
		f.lock.Unlock()
		close(ch)
		return ch, func() {}
	}
	f.subs[ch] = struct{}{}
	f.lock.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			f.lock.Lock()
			defer f.lock.Unlock()
			if _, ok := f.subs[ch]; ok {
				delete(f.subs, ch)
				close(ch)
			}
		})
	}
}

func (f *Feed) Subscribers() int {
	f.lock.RLock()
	defer f.lock.RUnlock()
	return len(f.subs)
}

func (f *Feed) closeAll() {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.stopped = true
	for ch := range f.subs {
		delete(f.subs, ch)
		close(ch)
	}
}
