package server

import (
	"context"
	"fmt"
	"time"

	"github.com/barberbook/admin-console/internal/demo/store"
)

// SeedData populates every resource collection with deterministic demo rows
// when empty. Ids are fixed strings so repeated runs (and docs) can refer to
// them.
func SeedData(ctx context.Context, st store.Store) error {
	now := time.Now().UTC()
	day := func(d int) string { return now.AddDate(0, 0, d).Format(time.RFC3339) }

	seed := map[string][]store.Doc{
		"stylists": {
			{"id": "sty_1", "email": "sam@barberbook.test", "full_name": "Sam Scissorhands", "phone": "+1-555-0102", "specialties": []string{"fade", "beard trim"}, "is_active": true},
			{"id": "sty_2", "email": "riley@barberbook.test", "full_name": "Riley Razor", "phone": "+1-555-0103", "specialties": []string{"classic cut"}, "is_active": true},
		},
		"services": {
			{"id": "svc_1", "name": "Classic Cut", "description": "Scissor cut with hot towel finish", "duration_min": 30, "price": 25.0, "currency": "USD", "is_active": true},
			{"id": "svc_2", "name": "Skin Fade", "description": "Zero fade with lineup", "duration_min": 45, "price": 35.0, "currency": "USD", "is_active": true},
			{"id": "svc_3", "name": "Beard Trim", "description": "Shape and condition", "duration_min": 20, "price": 15.0, "currency": "USD", "is_active": true},
		},
		"customers": {
			{"id": "cus_1", "email": "jordan@example.com", "full_name": "Jordan Fields", "phone": "+1-555-0200", "is_active": true, "visits": 12},
			{"id": "cus_2", "email": "casey@example.com", "full_name": "Casey Brook", "phone": "+1-555-0201", "is_active": true, "visits": 3},
			{"id": "cus_3", "email": "drew@example.com", "full_name": "Drew Lane", "phone": "+1-555-0202", "is_active": false, "visits": 1},
		},
		"bookings": {
			{"id": "bkg_1", "customer_id": "cus_1", "customer_name": "Jordan Fields", "stylist_id": "sty_1", "stylist_name": "Sam Scissorhands", "service_id": "svc_2", "service_name": "Skin Fade", "starts_at": day(1), "duration_min": 45, "status": "CONFIRMED"},
			{"id": "bkg_2", "customer_id": "cus_2", "customer_name": "Casey Brook", "stylist_id": "sty_2", "stylist_name": "Riley Razor", "service_id": "svc_1", "service_name": "Classic Cut", "starts_at": day(2), "duration_min": 30, "status": "PENDING"},
			{"id": "bkg_3", "customer_id": "cus_1", "customer_name": "Jordan Fields", "stylist_id": "sty_1", "stylist_name": "Sam Scissorhands", "service_id": "svc_3", "service_name": "Beard Trim", "starts_at": day(-7), "duration_min": 20, "status": "COMPLETED"},
			{"id": "bkg_4", "customer_id": "cus_3", "customer_name": "Drew Lane", "stylist_id": "sty_2", "stylist_name": "Riley Razor", "service_id": "svc_1", "service_name": "Classic Cut", "starts_at": day(-3), "duration_min": 30, "status": "NO_SHOW"},
		},
		"payments": {
			{"id": "pay_1", "booking_id": "bkg_3", "amount": 15.0, "currency": "USD", "method": "card", "status": "COMPLETED"},
			{"id": "pay_2", "booking_id": "bkg_1", "amount": 35.0, "currency": "USD", "method": "cash", "status": "PENDING"},
		},
		"reviews": {
			{"id": "rev_1", "booking_id": "bkg_3", "customer_id": "cus_1", "stylist_id": "sty_1", "rating": 5, "comment": "Best trim in town", "status": "APPROVED"},
			{"id": "rev_2", "booking_id": "bkg_4", "customer_id": "cus_3", "stylist_id": "sty_2", "rating": 2, "comment": "Had to reschedule twice", "status": "PENDING"},
		},
	}

	for collection, docs := range seed {
		if err := st.Seed(ctx, collection, docs); err != nil {
			return fmt.Errorf("seed %s: %w", collection, err)
		}
	}
	return nil
}
