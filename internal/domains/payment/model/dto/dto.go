package dto

const (
	SuccessPath = "/loader/my-bookings?payment=success"
	CancelPath  = "/my-bookings"
)

type StartPaymentRequest struct {
	BookingID string `json:"bookingId" validate:"required"`
}

type StartPaymentResponse struct {
	RedirectURL string `json:"redirectURL"`
}

// WebhookResponse tells the provider whether the event changed anything. Received is false when
// the event carried no booking reference.
type WebhookResponse struct {
	Received bool `json:"received"`
}
