package models

import (
	"encoding/json"
)

// PaymentInitRequest is the payload sent to the PayNecta payment
// initialization endpoint.
type PaymentInitRequest struct {
	Amount            int    `json:"amount"`
	PhoneNumber       string `json:"phone_number"`
	ExternalReference string `json:"external_reference"`
	CustomerName      string `json:"customer_name"`
	CallbackURL       string `json:"callback_url"`
	ChannelID         string `json:"channel_id"`
}

// PaymentInitResponse is PayNecta's reply to an initialization request.
type PaymentInitResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	TransactionID string `json:"transaction_id"`
}

// CallbackRequest is the provider-originated notification delivered to the
// callback endpoint once the STK push resolves.
type CallbackRequest struct {
	ExternalReference string `json:"external_reference"`
	Status            string `json:"status"`
	ResultCode        *int   `json:"resultCode"`
	TransactionID     string `json:"transaction_id"`
	TransactionCode   string `json:"transaction_code"`
	CustomerName      string `json:"customer_name"`
	Message           string `json:"message"`
}

// Succeeded reports whether the notification carries a success signal,
// either as a textual status or a zero result code.
func (c *CallbackRequest) Succeeded() bool {
	return c.Status == "success" || (c.ResultCode != nil && *c.ResultCode == 0)
}

// CallbackAck is the unconditional acknowledgment returned to the provider.
// Anything other than a zero result code makes the provider treat delivery
// as failed and retry.
type CallbackAck struct {
	ResultCode int    `json:"ResultCode"`
	ResultDesc string `json:"ResultDesc"`
}

// FlexAmount is a scalar that accepts either a JSON string or a JSON number,
// normalized to its string form. Clients are inconsistent about how they
// send loan_amount.
type FlexAmount string

func (f *FlexAmount) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexAmount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexAmount(n.String())
	return nil
}

// PayRequest is the inbound body for a payment initiation.
type PayRequest struct {
	Phone      string     `json:"phone"`
	Amount     float64    `json:"amount"`
	LoanAmount FlexAmount `json:"loan_amount"`
}

// PayResponse is returned when an STK push was sent successfully.
type PayResponse struct {
	Success   bool     `json:"success"`
	Message   string   `json:"message"`
	Reference string   `json:"reference"`
	Receipt   *Receipt `json:"receipt"`
}

// PayErrorResponse is returned when initiation failed after validation; the
// persisted error receipt is attached so the client keeps a traceable record.
type PayErrorResponse struct {
	Success bool     `json:"success"`
	Error   string   `json:"error"`
	Receipt *Receipt `json:"receipt"`
}

// ReceiptResponse wraps a single receipt lookup.
type ReceiptResponse struct {
	Success bool     `json:"success"`
	Receipt *Receipt `json:"receipt"`
}
