package model

import (
	"fmt"
	"time"

	"courtbook/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID          = "id"
	FieldCourtID     = "court_id"
	FieldStartTime   = "start_time"
	FieldEndTime     = "end_time"
	FieldTotalPrice  = "total_price"
	FieldStatus      = "status"
	FieldHasReviewed = "has_reviewed"
	FieldCreatedBy   = "created_by"
)

// Cache key prefixes for booking entries. Payment and review mutations touch
// bookings too, so every domain that invalidates these must share one source.
const (
	CacheKeyGet          = "booking:get"
	CacheKeyList         = "booking:gets"
	CacheKeyCount        = "booking:count"
	CacheKeyAvailability = "booking:availability"
)

type Status string

// Booking lifecycle. PENDING means awaiting payment, WAITING means the
// payer reported a transfer and an admin has not verified it yet,
// CONFIRMED is the only state a review can be written from, and
// CANCELLED is terminal.
const (
	StatusPending   Status = "PENDING"
	StatusWaiting   Status = "WAITING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusWaiting, StatusConfirmed, StatusCancelled},
	StatusWaiting:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
	StatusCancelled: {},
}

// ParseStatus rejects any value outside the known status set so a bad
// row never flows through transition checks unnoticed.
func ParseStatus(raw string) (Status, error) {
	status := Status(raw)
	if _, ok := transitions[status]; !ok {
		return status, fmt.Errorf("unknown booking status: %q", raw)
	}

	return status, nil
}

func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

func (s Status) Terminal() bool {
	return s == StatusCancelled
}

type Booking struct {
	ID          string    `db:"id"`
	CourtID     string    `db:"court_id"`
	CourtName   string    `db:"court_name" table:"courts" column:"name"`
	StartTime   time.Time `db:"start_time"`
	EndTime     time.Time `db:"end_time"`
	TotalPrice  int64     `db:"total_price"`
	Status      string    `db:"status"`
	HasReviewed bool      `db:"has_reviewed"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return fmt.Sprintf("LEFT JOIN courts ON courts.id = %s.%s", TableName, FieldCourtID)
}

// TotalPrice derives the amount owed from the interval length and the
// court's hourly rate. Intervals are slot aligned, so minute precision
// is enough.
func TotalPrice(start, end time.Time, pricePerHour int64) int64 {
	minutes := int64(end.Sub(start) / time.Minute)

	return pricePerHour * minutes / 60
}
