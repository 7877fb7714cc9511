package bankx

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"golang.org/x/sync/semaphore"
)

// Locker hands out per-account exclusivity. Each account gets a weighted
// semaphore of size 1; multi-account acquisition always goes in ascending id
// order so two transfers between the same pair cannot deadlock.
type Locker struct {
	mu      sync.Mutex
	sems    map[snowflake.ID]*semaphore.Weighted
	timeout time.Duration
}

func NewLocker(timeout time.Duration) *Locker {
	return &Locker{
		sems:    make(map[snowflake.ID]*semaphore.Weighted),
		timeout: timeout,
	}
}

func (l *Locker) sem(id snowflake.ID) *semaphore.Weighted {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.sems[id]
	if !ok {
		s = semaphore.NewWeighted(1)
		l.sems[id] = s
	}
	return s
}

// Lock acquires every id (duplicates collapse) and returns the matching
// release func. If any acquisition misses the timeout, the ones already held
// are released and ErrContention is returned. A cancelled or expired caller
// context is returned as is, since retrying on its behalf is pointless.
func (l *Locker) Lock(parent context.Context, ids ...snowflake.ID) (func(), error) {
	ordered := make([]snowflake.ID, 0, len(ids))
	seen := make(map[snowflake.ID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ordered = append(ordered, id)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	ctx, cancel := context.WithTimeout(parent, l.timeout)
	defer cancel()

	held := make([]*semaphore.Weighted, 0, len(ordered))
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Release(1)
		}
	}
	for _, id := range ordered {
		s := l.sem(id)
		if err := s.Acquire(ctx, 1); err != nil {
			release()
			if perr := parent.Err(); perr != nil {
				return nil, perr
			}
			return nil, ErrContention{Resource: "account " + id.String()}
		}
		held = append(held, s)
	}
	return release, nil
}
