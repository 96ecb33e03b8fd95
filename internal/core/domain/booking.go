package domain

import "time"

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending    BookingStatus = "PENDING"
	BookingConfirmed  BookingStatus = "CONFIRMED"
	BookingInProgress BookingStatus = "IN_PROGRESS"
	BookingCompleted  BookingStatus = "COMPLETED"
	BookingCancelled  BookingStatus = "CANCELLED"
	BookingNoShow     BookingStatus = "NO_SHOW"
)

// validBookingTransitions defines the allowed state machine transitions.
var validBookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:    {BookingConfirmed, BookingCancelled},
	BookingConfirmed:  {BookingInProgress, BookingCancelled, BookingNoShow},
	BookingInProgress: {BookingCompleted, BookingCancelled},
}

// CanTransitionTo reports whether moving from s to next is a valid booking
// lifecycle step.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range validBookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking is an appointment tying a customer, a stylist and a service to a
// time slot. The console holds transient read-mostly copies fetched per page.
type Booking struct {
	ID           string        `json:"id"`
	CustomerID   string        `json:"customer_id"`
	CustomerName string        `json:"customer_name"`
	StylistID    string        `json:"stylist_id"`
	StylistName  string        `json:"stylist_name"`
	ServiceID    string        `json:"service_id"`
	ServiceName  string        `json:"service_name"`
	StartsAt     time.Time     `json:"starts_at"`
	DurationMin  int           `json:"duration_min"`
	Status       BookingStatus `json:"status"`
	Notes        string        `json:"notes,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
