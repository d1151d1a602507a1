// Package view computes what the UI may show from session and slice
// state. Everything here is a pure function: no I/O, no mutation.
package view

import (
	"errors"
	"math"

	"github.com/flexirent/flexirent-client/internal/domain"
)

var ErrInvalidDateRange = errors.New("end date must be after start date")

// CanManageProperties gates the landlord surface. A missing identity
// hides every gated action; nothing ever defaults to visible.
func CanManageProperties(user *domain.User) bool {
	return user != nil && user.Role == domain.RoleLandlord
}

// CanAccessAdmin gates the admin surface.
func CanAccessAdmin(user *domain.User) bool {
	return user != nil && user.Role == domain.RoleAdmin
}

// CanBook reports whether a property accepts booking requests. Date
// conflicts are not checked here; the remote decides those when the
// booking is created.
func CanBook(p domain.Property) bool {
	return p.Available
}

// CanRespondToBooking reports whether the user may move a booking to the
// given status, combining the status machine with ownership: landlords
// answer only their own requests, tenants withdraw only their own.
func CanRespondToBooking(user *domain.User, b domain.Booking, to domain.BookingStatus) bool {
	if user == nil {
		return false
	}
	switch user.Role {
	case domain.RoleLandlord:
		if b.LandlordID != user.ID {
			return false
		}
	case domain.RoleTenant:
		if b.TenantID != user.ID {
			return false
		}
	}
	return domain.CanUpdateBookingStatus(user.Role, b.Status, to)
}

// StayDays returns the length of a stay in whole days, rounding partial
// days up.
func StayDays(start, end domain.Date) int {
	return int(math.Ceil(end.Sub(start.Time).Hours() / 24))
}

// EstimateTotalAmount prices a stay as ceil(days) * pricePerMonth / 30.
// The 30-day month is a deliberate approximation; the remote computes the
// binding amount. A range of zero or negative days is rejected.
func EstimateTotalAmount(start, end domain.Date, pricePerMonth float64) (float64, error) {
	days := StayDays(start, end)
	if days <= 0 {
		return 0, ErrInvalidDateRange
	}
	return float64(days) * pricePerMonth / 30, nil
}
