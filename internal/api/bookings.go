package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/flexirent/flexirent-client/internal/domain"
	"github.com/flexirent/flexirent-client/internal/gateway"
)

type BookingsClient struct {
	gw *gateway.Gateway
}

func NewBookingsClient(gw *gateway.Gateway) *BookingsClient {
	return &BookingsClient{gw: gw}
}

type BookingRequest struct {
	PropertyID      int64       `json:"propertyId" validate:"required"`
	TenantID        int64       `json:"tenantId" validate:"required"`
	LandlordID      int64       `json:"landlordId" validate:"required"`
	StartDate       domain.Date `json:"startDate" validate:"required"`
	EndDate         domain.Date `json:"endDate" validate:"required"`
	TotalAmount     float64     `json:"totalAmount" validate:"gte=0"`
	SpecialRequests string      `json:"specialRequests,omitempty"`
}

func (c *BookingsClient) List(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := c.gw.Send(ctx, "GET", "/api/bookings", nil, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *BookingsClient) Get(ctx context.Context, id int64) (*domain.Booking, error) {
	var booking domain.Booking
	if err := c.gw.Send(ctx, "GET", fmt.Sprintf("/api/bookings/%d", id), nil, nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *BookingsClient) ListByTenant(ctx context.Context, tenantID int64) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := c.gw.Send(ctx, "GET", fmt.Sprintf("/api/bookings/tenant/%d", tenantID), nil, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *BookingsClient) ListByLandlord(ctx context.Context, landlordID int64) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := c.gw.Send(ctx, "GET", fmt.Sprintf("/api/bookings/landlord/%d", landlordID), nil, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *BookingsClient) ListByProperty(ctx context.Context, propertyID int64) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := c.gw.Send(ctx, "GET", fmt.Sprintf("/api/bookings/property/%d", propertyID), nil, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *BookingsClient) Create(ctx context.Context, req BookingRequest) (*domain.Booking, error) {
	var booking domain.Booking
	if err := c.gw.Send(ctx, "POST", "/api/bookings", nil, req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *BookingsClient) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	query := url.Values{"status": {string(status)}}
	var booking domain.Booking
	if err := c.gw.Send(ctx, "PUT", fmt.Sprintf("/api/bookings/%d/status", id), query, nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// CheckAvailability asks the remote whether a date range is free. Date
// conflicts are decided server-side only; the client never recomputes
// them from cached bookings.
func (c *BookingsClient) CheckAvailability(ctx context.Context, propertyID int64, start, end domain.Date) (bool, error) {
	query := url.Values{
		"startDate": {start.String()},
		"endDate":   {end.String()},
	}
	var available bool
	if err := c.gw.Send(ctx, "GET", fmt.Sprintf("/api/bookings/property/%d/availability", propertyID), query, nil, &available); err != nil {
		return false, err
	}
	return available, nil
}
