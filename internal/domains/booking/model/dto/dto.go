package dto

import (
	"fmt"
	"time"

	"courtbook/internal/domains/booking/model"
	"courtbook/shared"
	"courtbook/shared/constant"
	gDto "courtbook/shared/dto"
	gModel "courtbook/shared/model"
	"courtbook/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	CourtID   string `json:"court_id"   validate:"required"`
	Date      string `json:"date"       validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time"   validate:"required,datetime=15:04"`
}

// Interval resolves the requested date and times into concrete instants
// in the application timezone.
func (c *CreateBookingRequest) Interval() (start, end time.Time, err error) {
	start, err = timezone.Parse(constant.DateOnlyFormat+" "+constant.TimeOnlyFormat, c.Date+" "+c.StartTime)
	if err != nil {
		return start, end, err
	}

	end, err = timezone.Parse(constant.DateOnlyFormat+" "+constant.TimeOnlyFormat, c.Date+" "+c.EndTime)
	if err != nil {
		return start, end, err
	}

	return start, end, nil
}

// ValidateInterval enforces the booking interval rules before anything
// touches storage: end after start, a future start, and both endpoints
// aligned to the slot grid.
func ValidateInterval(start, end, now time.Time, slotMinutes int) error {
	if !end.After(start) {
		return fmt.Errorf("end_time must be after start_time")
	}

	if !start.After(now) {
		return fmt.Errorf("start_time must be in the future")
	}

	if !slotAligned(start, slotMinutes) || !slotAligned(end, slotMinutes) {
		return fmt.Errorf("times must align to %d minute slots", slotMinutes)
	}

	return nil
}

func slotAligned(t time.Time, slotMinutes int) bool {
	return t.Second() == 0 && t.Nanosecond() == 0 && t.Minute()%slotMinutes == 0
}

func (c *CreateBookingRequest) ToModel(user string, start, end time.Time, totalPrice int64) model.Booking {
	return model.Booking{
		ID:         uuid.NewString(),
		CourtID:    c.CourtID,
		StartTime:  start,
		EndTime:    end,
		TotalPrice: totalPrice,
		Status:     string(model.StatusPending),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type BookingResponse struct {
	ID          string `json:"id"`
	CourtID     string `json:"court_id"`
	CourtName   string `json:"court_name"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	TotalPrice  int64  `json:"total_price"`
	Status      string `json:"status"`
	HasReviewed bool   `json:"has_reviewed"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.CourtID = model.CourtID
	r.CourtName = model.CourtName
	r.Date = timezone.Format(model.StartTime, constant.DateOnlyFormat)
	r.StartTime = timezone.Format(model.StartTime, constant.TimeOnlyFormat)
	r.EndTime = timezone.Format(model.EndTime, constant.TimeOnlyFormat)
	r.TotalPrice = model.TotalPrice
	r.Status = model.Status
	r.HasReviewed = model.HasReviewed
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type BookingEvent struct {
	Event      string    `json:"event"`
	BookingID  string    `json:"booking_id"`
	CourtID    string    `json:"court_id"`
	UserID     string    `json:"user_id"`
	Status     string    `json:"status"`
	TotalPrice int64     `json:"total_price"`
	OccurredAt time.Time `json:"occurred_at"`
}

type BusySlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type AvailabilityResponse struct {
	CourtID   string     `json:"court_id"`
	Date      string     `json:"date"`
	BusySlots []BusySlot `json:"busy_slots"`
}

func (r *AvailabilityResponse) FromModels(courtID, date string, models []model.Booking) {
	r.CourtID = courtID
	r.Date = date

	r.BusySlots = make([]BusySlot, len(models))
	for i, mod := range models {
		r.BusySlots[i] = BusySlot{
			StartTime: timezone.Format(mod.StartTime, constant.TimeOnlyFormat),
			EndTime:   timezone.Format(mod.EndTime, constant.TimeOnlyFormat),
		}
	}
}
