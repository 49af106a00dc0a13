package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"agenda/internal/domain"
	"agenda/internal/scheduling"
)

type memoryState struct {
	services          map[int64]domain.Service
	appointments      []domain.Appointment
	nextServiceID     int64
	nextAppointmentID int64
}

func (s *memoryState) clone() *memoryState {
	c := &memoryState{
		services:          make(map[int64]domain.Service, len(s.services)),
		appointments:      append([]domain.Appointment(nil), s.appointments...),
		nextServiceID:     s.nextServiceID,
		nextAppointmentID: s.nextAppointmentID,
	}
	for id, svc := range s.services {
		c.services[id] = svc
	}
	return c
}

// memoryStore keeps everything in process memory. A transaction holds the
// store lock for its whole callback, so transactions are fully serialized.
type memoryStore struct {
	mu    sync.Mutex
	state *memoryState
}

// NewMemoryRepositories returns repositories with the same contract as the
// Postgres ones, including the no-overlap guarantee on insert.
func NewMemoryRepositories() *Repositories {
	store := &memoryStore{
		state: &memoryState{
			services:          make(map[int64]domain.Service),
			nextServiceID:     1,
			nextAppointmentID: 1,
		},
	}
	return store.repositories(false)
}

func (m *memoryStore) repositories(inTx bool) *Repositories {
	repos := &Repositories{
		Service:     &memoryServiceRepo{store: m, inTx: inTx},
		Appointment: &memoryAppointmentRepo{store: m, inTx: inTx},
	}
	if !inTx {
		repos.Tx = m
		repos.Health = m
	}
	return repos
}

func (m *memoryStore) WithinTx(ctx context.Context, fn func(repos *Repositories) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	snapshot := m.state.clone()
	if err := fn(m.repositories(true)); err != nil {
		m.state = snapshot
		return err
	}
	return nil
}

func (m *memoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *memoryStore) acquire(inTx bool) func() {
	if inTx {
		return func() {}
	}
	m.mu.Lock()
	return m.mu.Unlock
}

type memoryServiceRepo struct {
	store *memoryStore
	inTx  bool
}

func (r *memoryServiceRepo) Create(_ context.Context, dto domain.CreateServiceDTO) (*domain.Service, error) {
	defer r.store.acquire(r.inTx)()
	st := r.store.state

	for _, svc := range st.services {
		if svc.Name == dto.Name {
			return nil, fmt.Errorf("create service: %w", ErrDuplicate)
		}
	}

	now := time.Now()
	svc := domain.Service{
		ID:        st.nextServiceID,
		Name:      dto.Name,
		Duration:  dto.Duration,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if dto.Price != nil {
		svc.Price = *dto.Price
	}
	st.services[svc.ID] = svc
	st.nextServiceID++

	return &svc, nil
}

func (r *memoryServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	defer r.store.acquire(r.inTx)()

	svc, ok := r.store.state.services[id]
	if !ok {
		return nil, fmt.Errorf("get service %d: %w", id, ErrNotFound)
	}
	return &svc, nil
}

func (r *memoryServiceRepo) GetByName(_ context.Context, name string) (*domain.Service, error) {
	defer r.store.acquire(r.inTx)()

	for _, svc := range r.store.state.services {
		if svc.Name == name {
			return &svc, nil
		}
	}
	return nil, fmt.Errorf("get service by name: %w", ErrNotFound)
}

func (r *memoryServiceRepo) Update(_ context.Context, id int64, dto domain.UpdateServiceDTO) (*domain.Service, error) {
	defer r.store.acquire(r.inTx)()
	st := r.store.state

	svc, ok := st.services[id]
	if !ok {
		return nil, fmt.Errorf("update service %d: %w", id, ErrNotFound)
	}

	if dto.Name != nil {
		for otherID, other := range st.services {
			if otherID != id && other.Name == *dto.Name {
				return nil, fmt.Errorf("update service %d: %w", id, ErrDuplicate)
			}
		}
		svc.Name = *dto.Name
	}
	if dto.Duration != nil {
		svc.Duration = *dto.Duration
	}
	if dto.Price != nil {
		svc.Price = *dto.Price
	}
	svc.UpdatedAt = time.Now()
	st.services[id] = svc

	return &svc, nil
}

func (r *memoryServiceRepo) Delete(_ context.Context, id int64) error {
	defer r.store.acquire(r.inTx)()
	st := r.store.state

	if _, ok := st.services[id]; !ok {
		return fmt.Errorf("delete service %d: %w", id, ErrNotFound)
	}
	for _, a := range st.appointments {
		if a.ServiceID == id {
			return fmt.Errorf("delete service %d: %w", id, ErrInUse)
		}
	}
	delete(st.services, id)
	return nil
}

func (r *memoryServiceRepo) List(_ context.Context) ([]domain.Service, error) {
	defer r.store.acquire(r.inTx)()

	services := make([]domain.Service, 0, len(r.store.state.services))
	for _, svc := range r.store.state.services {
		services = append(services, svc)
	}
	sort.Slice(services, func(i, j int) bool { return services[i].Name < services[j].Name })
	return services, nil
}

type memoryAppointmentRepo struct {
	store *memoryStore
	inTx  bool
}

func (r *memoryAppointmentRepo) Insert(_ context.Context, appointment domain.Appointment) (*domain.Appointment, error) {
	defer r.store.acquire(r.inTx)()
	st := r.store.state

	svc, ok := st.services[appointment.ServiceID]
	if !ok {
		return nil, fmt.Errorf("insert appointment: service %d: %w", appointment.ServiceID, ErrNotFound)
	}
	booked := make([]scheduling.Interval, 0, len(st.appointments))
	for _, existing := range st.appointments {
		booked = append(booked, existing.Interval())
	}
	if scheduling.OverlapsAny(appointment.Interval(), booked) {
		return nil, fmt.Errorf("insert appointment: %w", ErrOverlap)
	}

	appointment.ID = st.nextAppointmentID
	appointment.ServiceName = svc.Name
	if appointment.CreatedAt.IsZero() {
		appointment.CreatedAt = time.Now()
	}
	st.appointments = append(st.appointments, appointment)
	st.nextAppointmentID++

	return &appointment, nil
}

func (r *memoryAppointmentRepo) ListOverlapping(_ context.Context, from, to time.Time) ([]domain.Appointment, error) {
	defer r.store.acquire(r.inTx)()

	window := scheduling.Interval{Start: from, End: to}
	return r.collect(func(a domain.Appointment) bool {
		return scheduling.Overlaps(a.Interval(), window)
	}), nil
}

func (r *memoryAppointmentRepo) List(_ context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	defer r.store.acquire(r.inTx)()

	return r.collect(func(a domain.Appointment) bool {
		if filter.From != nil && a.StartTime.Before(*filter.From) {
			return false
		}
		if filter.To != nil && !a.StartTime.Before(*filter.To) {
			return false
		}
		return true
	}), nil
}

func (r *memoryAppointmentRepo) collect(keep func(domain.Appointment) bool) []domain.Appointment {
	st := r.store.state

	out := make([]domain.Appointment, 0)
	for _, a := range st.appointments {
		if !keep(a) {
			continue
		}
		if svc, ok := st.services[a.ServiceID]; ok {
			a.ServiceName = svc.Name
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}
