package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"hospitaladmin/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeScheduleRepo is an in-memory ScheduleRepository for tests.
type fakeScheduleRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.DaySchedule
	nextID    int
	upsertErr error // if set, Upsert returns this error
	getErr    error // if set, GetByKey returns this error
	upserts   int
	getByKeys int
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{byID: make(map[string]*domain.DaySchedule), nextID: 1}
}

func (f *fakeScheduleRepo) seed(s *domain.DaySchedule) *domain.DaySchedule {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s.ID == "" {
		s.ID = f.id()
	}
	f.byID[s.ID] = s.Clone()
	return s
}

func (f *fakeScheduleRepo) id() string {
	id := fmt.Sprintf("00000000-0000-0000-0000-%012d", f.nextID)
	f.nextID++
	return id
}

func (f *fakeScheduleRepo) findKey(key domain.ScheduleKey) *domain.DaySchedule {
	for _, s := range f.byID {
		if s.Key() == key {
			return s
		}
	}
	return nil
}

func (f *fakeScheduleRepo) Create(ctx context.Context, s *domain.DaySchedule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findKey(s.Key()) != nil {
		return domain.ErrDuplicateSchedule
	}
	s.ID = f.id()
	f.byID[s.ID] = s.Clone()
	return nil
}

func (f *fakeScheduleRepo) GetByID(ctx context.Context, id string) (*domain.DaySchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.byID[id]; ok {
		return s.Clone(), nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeScheduleRepo) GetByKey(ctx context.Context, key domain.ScheduleKey) (*domain.DaySchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getByKeys++
	if f.getErr != nil {
		return nil, f.getErr
	}
	if s := f.findKey(key); s != nil {
		return s.Clone(), nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeScheduleRepo) List(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.DaySchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.DaySchedule, 0)
	for _, s := range f.byID {
		if filter.DoctorID != "" && s.DoctorID != filter.DoctorID {
			continue
		}
		if filter.Date != "" && s.Date != filter.Date {
			continue
		}
		out = append(out, s.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (f *fakeScheduleRepo) Upsert(ctx context.Context, s *domain.DaySchedule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++
	if f.upsertErr != nil {
		return f.upsertErr
	}
	if existing := f.findKey(s.Key()); existing != nil {
		s.ID = existing.ID
		s.CreatedAt = existing.CreatedAt
	} else {
		s.ID = f.id()
	}
	f.byID[s.ID] = s.Clone()
	return nil
}

func (f *fakeScheduleRepo) Update(ctx context.Context, s *domain.DaySchedule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.byID[s.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if other := f.findKey(s.Key()); other != nil && other.ID != s.ID {
		return domain.ErrDuplicateSchedule
	}
	s.CreatedAt = existing.CreatedAt
	f.byID[s.ID] = s.Clone()
	return nil
}

func (f *fakeScheduleRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeCache is an unbounded DayScheduleCache that copies on the way in and out.
type fakeCache struct {
	mu      sync.Mutex
	entries map[domain.ScheduleKey]*domain.DaySchedule
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[domain.ScheduleKey]*domain.DaySchedule)}
}

func (c *fakeCache) Get(key domain.ScheduleKey) (*domain.DaySchedule, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return s.Clone(), true
}

func (c *fakeCache) Put(s *domain.DaySchedule) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[s.Key()] = s.Clone()
}

func (c *fakeCache) Invalidate(key domain.ScheduleKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *fakeCache) InvalidateDoctor(doctorID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for key := range c.entries {
		if key.DoctorID == doctorID {
			delete(c.entries, key)
			n++
		}
	}
	return n
}

func (c *fakeCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// fakePublisher records published events.
type fakePublisher struct {
	mu     sync.Mutex
	events []domain.ScheduleEvent
	err    error
}

func (p *fakePublisher) Publish(ctx context.Context, e domain.ScheduleEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *fakePublisher) types() []domain.ScheduleEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.ScheduleEventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

// fakeDoctorRepo is an in-memory DoctorRepository for tests.
type fakeDoctorRepo struct {
	byID   map[string]*domain.Doctor
	nextID int
	err    error
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{byID: make(map[string]*domain.Doctor), nextID: 1}
}

func (f *fakeDoctorRepo) Create(ctx context.Context, d *domain.Doctor) error {
	if f.err != nil {
		return f.err
	}
	d.ID = fmt.Sprintf("10000000-0000-0000-0000-%012d", f.nextID)
	f.nextID++
	cp := *d
	f.byID[d.ID] = &cp
	return nil
}

func (f *fakeDoctorRepo) GetByID(ctx context.Context, id string) (*domain.Doctor, error) {
	if d, ok := f.byID[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeDoctorRepo) GetByEmail(ctx context.Context, email string) (*domain.Doctor, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, d := range f.byID {
		if strings.ToLower(d.Email) == email {
			cp := *d
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeDoctorRepo) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Doctor, int, error) {
	out := make([]*domain.Doctor, 0, len(f.byID))
	for _, d := range f.byID {
		cp := *d
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, len(out), nil
}

func (f *fakeDoctorRepo) Update(ctx context.Context, d *domain.Doctor) error {
	if _, ok := f.byID[d.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *d
	f.byID[d.ID] = &cp
	return nil
}

func (f *fakeDoctorRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeEmailService records feedback notifications.
type fakeEmailService struct {
	sent []*domain.FeedbackReceivedEmailData
	err  error
}

func (f *fakeEmailService) SendFeedbackReceived(ctx context.Context, data *domain.FeedbackReceivedEmailData) error {
	f.sent = append(f.sent, data)
	return f.err
}
