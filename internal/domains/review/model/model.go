package model

import "courtbook/shared/model"

const (
	TableName  = "reviews"
	EntityName = "review"

	FieldID        = "id"
	FieldBookingID = "booking_id"
	FieldRating    = "rating"
	FieldComment   = "comment"
)

type Review struct {
	ID        string `db:"id"`
	BookingID string `db:"booking_id"`
	Rating    int    `db:"rating"`
	Comment   string `db:"comment"`
	model.Metadata
}
