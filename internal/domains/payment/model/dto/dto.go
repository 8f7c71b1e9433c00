package dto

import (
	"fmt"
	"net/url"
	"time"
)

type CreatePaymentURLRequest struct {
	BookingID string `json:"booking_id" validate:"required"`
	Amount    int64  `json:"amount"     validate:"required,min=1"`
}

type PaymentURLResponse struct {
	BookingID  string `json:"booking_id"`
	PaymentURL string `json:"payment_url"`
}

// FromBooking renders a VNPay-style redirect URL. Amounts are carried in
// hundredths per the gateway convention and the booking id doubles as
// the transaction reference.
func (r *PaymentURLResponse) FromBooking(baseURL, bookingID, currency string, amount int64) error {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid payment base URL: %w", err)
	}

	query := parsed.Query()
	query.Set("vnp_Amount", fmt.Sprintf("%d", amount*100))
	query.Set("vnp_TxnRef", bookingID)
	query.Set("vnp_CurrCode", currency)
	query.Set("vnp_OrderInfo", "court booking "+bookingID)
	parsed.RawQuery = query.Encode()

	r.BookingID = bookingID
	r.PaymentURL = parsed.String()

	return nil
}

type ConfirmTransferResponse struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

type PaymentEvent struct {
	Event      string    `json:"event"`
	BookingID  string    `json:"booking_id"`
	UserID     string    `json:"user_id"`
	Amount     int64     `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
}
