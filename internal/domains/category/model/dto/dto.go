package dto

import (
	"courtbook/internal/domains/category/model"
	"courtbook/shared"
	gDto "courtbook/shared/dto"
	gModel "courtbook/shared/model"
	"courtbook/shared/timezone"

	"github.com/google/uuid"
)

type CreateCategoryRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=255"`
	Active      *bool  `json:"active"      validate:"omitempty"`
}

func (c *CreateCategoryRequest) ToModel(user string) model.Category {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Category{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Description: c.Description,
		Active:      active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateCategoryRequest struct {
	Name        string `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Description string `db:"description" json:"description" validate:"omitempty,max=255"`
	Active      *bool  `db:"active"      json:"active"      validate:"omitempty"`
}

type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
	gDto.Metadata
}

func (r *CategoryResponse) FromModel(model model.Category) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

func (r *GetCategoriesResponse) FromModels(models []model.Category, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Categories = make([]CategoryResponse, len(models))
	for i, mod := range models {
		r.Categories[i].FromModel(mod)
	}
}
