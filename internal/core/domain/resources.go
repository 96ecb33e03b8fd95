package domain

import "time"

// PaymentStatus represents the settlement state of a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

// ReviewStatus represents the moderation state of a customer review.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "PENDING"
	ReviewApproved ReviewStatus = "APPROVED"
	ReviewRejected ReviewStatus = "REJECTED"
)

// Customer is a client of the shop.
type Customer struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	Visits    int       `json:"visits"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Payment records money received for a booking.
type Payment struct {
	ID        string        `json:"id"`
	BookingID string        `json:"booking_id"`
	Amount    float64       `json:"amount"`
	Currency  string        `json:"currency"`
	Method    string        `json:"method"`
	Status    PaymentStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Review is customer feedback on a completed booking.
type Review struct {
	ID         string       `json:"id"`
	BookingID  string       `json:"booking_id"`
	CustomerID string       `json:"customer_id"`
	StylistID  string       `json:"stylist_id"`
	Rating     int          `json:"rating"`
	Comment    string       `json:"comment,omitempty"`
	Status     ReviewStatus `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// Service is a bookable offering from the shop catalogue.
type Service struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	DurationMin int       `json:"duration_min"`
	Price       float64   `json:"price"`
	Currency    string    `json:"currency"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Stylist is a staff member who performs services.
type Stylist struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	Phone       string    `json:"phone,omitempty"`
	Specialties []string  `json:"specialties,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
