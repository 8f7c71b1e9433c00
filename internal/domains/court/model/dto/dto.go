package dto

import (
	"mime/multipart"

	"courtbook/internal/domains/court/model"
	"courtbook/shared"
	gDto "courtbook/shared/dto"
	gModel "courtbook/shared/model"
	"courtbook/shared/timezone"

	"github.com/google/uuid"
)

type CreateCourtRequest struct {
	Name         string                `json:"name"           validate:"required,max=100"`
	Address      string                `json:"address"        validate:"required,max=255"`
	Area         string                `json:"area"           validate:"required,max=100"`
	PricePerHour int64                 `json:"price_per_hour" validate:"required,min=1"`
	OpenTime     string                `json:"open_time"      validate:"required,datetime=15:04"`
	CloseTime    string                `json:"close_time"     validate:"required,datetime=15:04"`
	Description  string                `json:"description"    validate:"omitempty"`
	Image        *multipart.FileHeader `json:"image"          validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile    multipart.File        `json:"-"`
	Active       *bool                 `json:"active"         validate:"omitempty"`
}

func (c *CreateCourtRequest) ToModel(user string, imageURL string) model.Court {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Court{
		ID:           uuid.NewString(),
		Name:         c.Name,
		Address:      c.Address,
		Area:         c.Area,
		PricePerHour: c.PricePerHour,
		OpenTime:     c.OpenTime,
		CloseTime:    c.CloseTime,
		Image:        imageURL,
		Description:  c.Description,
		Active:       active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateCourtRequest struct {
	Name         string                `db:"name"           json:"name"           validate:"omitempty,max=100"`
	Address      string                `db:"address"        json:"address"        validate:"omitempty,max=255"`
	Area         string                `db:"area"           json:"area"           validate:"omitempty,max=100"`
	PricePerHour *int64                `db:"price_per_hour" json:"price_per_hour" validate:"omitempty,min=1"`
	OpenTime     string                `db:"open_time"      json:"open_time"      validate:"omitempty,datetime=15:04"`
	CloseTime    string                `db:"close_time"     json:"close_time"     validate:"omitempty,datetime=15:04"`
	Description  string                `db:"description"    json:"description"    validate:"omitempty"`
	Image        *multipart.FileHeader `json:"image"        validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile    multipart.File        `json:"-"`
	Active       *bool                 `db:"active"         json:"active"         validate:"omitempty"`
}

type CourtResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	Area         string `json:"area"`
	PricePerHour int64  `json:"price_per_hour"`
	PriceBracket string `json:"price_bracket"`
	OpenTime     string `json:"open_time"`
	CloseTime    string `json:"close_time"`
	Image        string `json:"image"`
	Description  string `json:"description"`
	Active       bool   `json:"active"`
	gDto.Metadata
}

func (r *CourtResponse) FromModel(model model.Court) {
	r.ID = model.ID
	r.Name = model.Name
	r.Address = model.Address
	r.Area = model.Area
	r.PricePerHour = model.PricePerHour
	r.PriceBracket = courtBracket(model.PricePerHour)
	r.OpenTime = model.OpenTime
	r.CloseTime = model.CloseTime
	r.Image = model.Image
	r.Description = model.Description
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetCourtsResponse struct {
	Courts    []CourtResponse `json:"courts"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetCourtsResponse) FromModels(models []model.Court, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Courts = make([]CourtResponse, len(models))
	for i, mod := range models {
		r.Courts[i].FromModel(mod)
	}
}

func courtBracket(pricePerHour int64) string {
	return model.BracketFor(pricePerHour)
}
