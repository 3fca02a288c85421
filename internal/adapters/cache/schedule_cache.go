package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"hospitaladmin/internal/domain"
)

type lruScheduleCache struct {
	cache *lru.Cache[domain.ScheduleKey, *domain.DaySchedule]
}

// NewLRUScheduleCache returns a DayScheduleCache bounded to size entries. Evicted entries are
// reloaded from the repository on the next read, so eviction never loses state.
func NewLRUScheduleCache(size int) (domain.DayScheduleCache, error) {
	c, err := lru.New[domain.ScheduleKey, *domain.DaySchedule](size)
	if err != nil {
		return nil, fmt.Errorf("create schedule cache: %w", err)
	}
	return &lruScheduleCache{cache: c}, nil
}

// Get returns a copy of the cached schedule.
func (c *lruScheduleCache) Get(key domain.ScheduleKey) (*domain.DaySchedule, bool) {
	s, ok := c.cache.Get(key)
	if !ok {
		return nil, false
	}
	return s.Clone(), true
}

func (c *lruScheduleCache) Put(s *domain.DaySchedule) {
	if s == nil {
		return
	}
	c.cache.Add(s.Key(), s.Clone())
}

func (c *lruScheduleCache) Invalidate(key domain.ScheduleKey) {
	c.cache.Remove(key)
}

// InvalidateDoctor drops every cached date of doctorID and reports how many were removed.
func (c *lruScheduleCache) InvalidateDoctor(doctorID string) int {
	n := 0
	for _, key := range c.cache.Keys() {
		if key.DoctorID == doctorID && c.cache.Remove(key) {
			n++
		}
	}
	return n
}

func (c *lruScheduleCache) Len() int {
	return c.cache.Len()
}
