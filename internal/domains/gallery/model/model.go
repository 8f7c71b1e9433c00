package model

import (
	"courtbook/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "galleries"
	EntityName = "gallery"

	FieldID          = "id"
	FieldCourtID     = "court_id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldImages      = "images"
)

type Gallery struct {
	ID          string         `db:"id"`
	CourtID     string         `db:"court_id"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	Images      pq.StringArray `db:"images"`
	model.Metadata
}
