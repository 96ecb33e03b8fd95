package domain

import "testing"

func TestPageCount(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{100, 25, 4},
		{3, 0, 0},
		{-5, 10, 0},
	}
	for _, tt := range tests {
		if got := PageCount(tt.total, tt.limit); got != tt.want {
			t.Fatalf("PageCount(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		page, totalPages, want int
	}{
		{1, 5, 1},
		{5, 5, 5},
		{7, 5, 5},
		{0, 5, 1},
		{-3, 5, 1},
		{4, 0, 4}, // no known total yet, page passes through
		{0, 0, 1},
	}
	for _, tt := range tests {
		if got := ClampPage(tt.page, tt.totalPages); got != tt.want {
			t.Fatalf("ClampPage(%d, %d) = %d, want %d", tt.page, tt.totalPages, got, tt.want)
		}
	}
}

func TestBookingStatusTransitions(t *testing.T) {
	allowed := []struct{ from, to BookingStatus }{
		{BookingPending, BookingConfirmed},
		{BookingPending, BookingCancelled},
		{BookingConfirmed, BookingInProgress},
		{BookingConfirmed, BookingCancelled},
		{BookingConfirmed, BookingNoShow},
		{BookingInProgress, BookingCompleted},
		{BookingInProgress, BookingCancelled},
	}
	for _, tt := range allowed {
		if !tt.from.CanTransitionTo(tt.to) {
			t.Fatalf("expected %s -> %s to be allowed", tt.from, tt.to)
		}
	}

	denied := []struct{ from, to BookingStatus }{
		{BookingPending, BookingCompleted},
		{BookingCompleted, BookingPending},
		{BookingCancelled, BookingConfirmed},
		{BookingNoShow, BookingInProgress},
		{BookingPending, BookingPending},
	}
	for _, tt := range denied {
		if tt.from.CanTransitionTo(tt.to) {
			t.Fatalf("expected %s -> %s to be rejected", tt.from, tt.to)
		}
	}
}
