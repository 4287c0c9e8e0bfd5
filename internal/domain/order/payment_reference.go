package order

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// PaymentReference bundles the delivery and payment metadata attached to an
// order. It is stored serialized in a single text column, so older rows
// with partial bundles still scan cleanly.
type PaymentReference struct {
	Address          string     `json:"address,omitempty"`
	DeliveryTimeFrom string     `json:"delivery_time_from,omitempty"`
	DeliveryTimeTo   string     `json:"delivery_time_to,omitempty"`
	TransactionID    string     `json:"transaction_id,omitempty"`
	PaymentProof     string     `json:"payment_proof,omitempty"`
	PaymentPhone     string     `json:"payment_phone,omitempty"`
	SubmittedAt      *time.Time `json:"submitted_at,omitempty"`
}

// HasTransactionID reports whether a payment transaction id was submitted
func (r *PaymentReference) HasTransactionID() bool {
	return r != nil && r.TransactionID != ""
}

// Value implements driver.Valuer, serializing the bundle as JSON text
func (r PaymentReference) Value() (driver.Value, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payment reference: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (r *PaymentReference) Scan(value any) error {
	if value == nil {
		*r = PaymentReference{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into PaymentReference", value)
	}
	if len(data) == 0 {
		*r = PaymentReference{}
		return nil
	}
	return json.Unmarshal(data, r)
}

// Merge copies non-empty fields from other into the bundle
func (r *PaymentReference) Merge(other PaymentReference) {
	if other.Address != "" {
		r.Address = other.Address
	}
	if other.DeliveryTimeFrom != "" {
		r.DeliveryTimeFrom = other.DeliveryTimeFrom
	}
	if other.DeliveryTimeTo != "" {
		r.DeliveryTimeTo = other.DeliveryTimeTo
	}
	if other.TransactionID != "" {
		r.TransactionID = other.TransactionID
	}
	if other.PaymentProof != "" {
		r.PaymentProof = other.PaymentProof
	}
	if other.PaymentPhone != "" {
		r.PaymentPhone = other.PaymentPhone
	}
	if other.SubmittedAt != nil {
		r.SubmittedAt = other.SubmittedAt
	}
}
