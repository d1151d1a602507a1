package domain

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusRejected  BookingStatus = "REJECTED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
)

type Booking struct {
	ID              int64         `json:"id"`
	PropertyID      int64         `json:"propertyId"`
	TenantID        int64         `json:"tenantId"`
	LandlordID      int64         `json:"landlordId"`
	StartDate       Date          `json:"startDate"`
	EndDate         Date          `json:"endDate"`
	TotalAmount     float64       `json:"totalAmount"`
	Status          BookingStatus `json:"status"`
	SpecialRequests string        `json:"specialRequests,omitempty"`
}

// CanUpdateBookingStatus reports whether an actor with the given role may
// move a booking from one status to another. Only PENDING bookings admit a
// transition from non-admin actors: the landlord answers the request, the
// tenant may withdraw it. Admins may set any status from any state.
func CanUpdateBookingStatus(actor Role, from, to BookingStatus) bool {
	if actor == RoleAdmin {
		return true
	}
	if from != BookingStatusPending {
		return false
	}
	switch actor {
	case RoleLandlord:
		return to == BookingStatusConfirmed || to == BookingStatusRejected
	case RoleTenant:
		return to == BookingStatusCancelled
	}
	return false
}
