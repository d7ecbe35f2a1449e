package model

// DisplayMetadata is what the payment provider shows the guest next to the
// amount. At most one preview image is forwarded; extras are dropped by the
// session builder.
type DisplayMetadata struct {
	Name          string
	Description   string
	PreviewImages []string
}

type LineItem struct {
	Description     string   `json:"description"`
	Images          []string `json:"images,omitempty"`
	UnitAmountMinor int64    `json:"unit_amount"`
	Quantity        int      `json:"quantity"`
}

// PaymentSessionRequest is the wire shape sent to the payment provider.
// ReturnURL carries exactly one unresolved session placeholder that the
// provider substitutes at session-creation time.
type PaymentSessionRequest struct {
	Mode      string     `json:"mode"`
	LineItems []LineItem `json:"line_items"`
	ReturnURL string     `json:"return_url"`
}

// PaymentSessionHandle is the only datum extracted from the provider's
// session-creation response. Everything else is ignored by contract.
type PaymentSessionHandle struct {
	ClientSecret string `json:"client_secret"`
}

// PaymentSessionResponse is the validated schema for the provider's
// session-creation response.
type PaymentSessionResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

// CardDetails is the card portion of a completed session's payment method.
type CardDetails struct {
	Brand    string `json:"brand"`
	LastFour string `json:"last4"`
}

// PaymentMethodDetails is the typed replacement for the provider's loosely
// shaped payment_method_details field. Card is nil for non-card payments.
type PaymentMethodDetails struct {
	Type string       `json:"type"`
	Card *CardDetails `json:"card,omitempty"`
}

// SessionStatusResponse is the validated schema for the provider's
// session-status response.
type SessionStatusResponse struct {
	ID            string                `json:"id"`
	Status        string                `json:"status"`
	PaymentStatus string                `json:"payment_status"`
	PaymentMethod *PaymentMethodDetails `json:"payment_method_details,omitempty"`
}

// SessionStatus is the caller-facing view of a checkout session.
type SessionStatus struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	CardLastFour  string `json:"card_last_four,omitempty"`
}

type PortalResponse struct {
	URL string `json:"url"`
}
