package model

import "courtbook/shared/model"

const (
	TableName  = "categories"
	EntityName = "category"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldActive      = "active"
)

type Category struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Active      bool   `db:"active"`
	model.Metadata
}
