package state

import (
	"context"
	"sync"

	"github.com/flexirent/flexirent-client/internal/api"
	"github.com/flexirent/flexirent-client/internal/domain"
)

// PropertySource is the slice of the properties client the store drives.
type PropertySource interface {
	List(ctx context.Context) ([]domain.Property, error)
	Search(ctx context.Context, filters domain.PropertySearch) ([]domain.Property, error)
}

// BookingSource is the slice of the bookings client the store drives.
type BookingSource interface {
	List(ctx context.Context) ([]domain.Booking, error)
	ListByTenant(ctx context.Context, tenantID int64) ([]domain.Booking, error)
	ListByLandlord(ctx context.Context, landlordID int64) ([]domain.Booking, error)
	Create(ctx context.Context, req api.BookingRequest) (*domain.Booking, error)
}

// Store groups the properties and bookings slices with the operations
// that transition them. Overlapping fetches against the same slice are
// not de-duplicated or ordered: the last resolution to complete
// overwrites the slice, whichever was issued first.
type Store struct {
	Properties *Slice[[]domain.Property]
	Bookings   *Slice[[]domain.Booking]

	properties PropertySource
	bookings   BookingSource

	mu              sync.Mutex
	currentProperty *domain.Property
	searchFilters   domain.PropertySearch
}

func NewStore(properties PropertySource, bookings BookingSource) *Store {
	return &Store{
		Properties: NewSlice[[]domain.Property](),
		Bookings:   NewSlice[[]domain.Booking](),
		properties: properties,
		bookings:   bookings,
	}
}

func (s *Store) FetchProperties(ctx context.Context) error {
	s.Properties.Start()
	props, err := s.properties.List(ctx)
	if err != nil {
		s.Properties.Fail(err.Error())
		return err
	}
	s.Properties.Succeed(props)
	return nil
}

func (s *Store) SearchProperties(ctx context.Context, filters domain.PropertySearch) error {
	s.Properties.Start()
	props, err := s.properties.Search(ctx, filters)
	if err != nil {
		s.Properties.Fail(err.Error())
		return err
	}
	s.Properties.Succeed(props)
	return nil
}

func (s *Store) FetchAllBookings(ctx context.Context) error {
	s.Bookings.Start()
	bookings, err := s.bookings.List(ctx)
	if err != nil {
		s.Bookings.Fail(err.Error())
		return err
	}
	s.Bookings.Succeed(bookings)
	return nil
}

func (s *Store) FetchTenantBookings(ctx context.Context, tenantID int64) error {
	s.Bookings.Start()
	bookings, err := s.bookings.ListByTenant(ctx, tenantID)
	if err != nil {
		s.Bookings.Fail(err.Error())
		return err
	}
	s.Bookings.Succeed(bookings)
	return nil
}

func (s *Store) FetchLandlordBookings(ctx context.Context, landlordID int64) error {
	s.Bookings.Start()
	bookings, err := s.bookings.ListByLandlord(ctx, landlordID)
	if err != nil {
		s.Bookings.Fail(err.Error())
		return err
	}
	s.Bookings.Succeed(bookings)
	return nil
}

// CreateBooking submits a booking request. On success the new record is
// appended to the bookings slice; the rest of the sequence is untouched.
func (s *Store) CreateBooking(ctx context.Context, req api.BookingRequest) (*domain.Booking, error) {
	s.Bookings.Start()
	booking, err := s.bookings.Create(ctx, req)
	if err != nil {
		s.Bookings.Fail(err.Error())
		return nil, err
	}
	s.Bookings.SucceedWith(func(cur []domain.Booking) []domain.Booking {
		return append(cur, *booking)
	})
	return booking, nil
}

func (s *Store) SetCurrentProperty(p *domain.Property) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentProperty = p
}

func (s *Store) CurrentProperty() *domain.Property {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentProperty
}

func (s *Store) UpdateSearchFilters(filters domain.PropertySearch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchFilters = filters
}

func (s *Store) SearchFilters() domain.PropertySearch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchFilters
}
