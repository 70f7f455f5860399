package models

import "github.com/google/uuid"

// Town is a serviced municipality. Delivery terms hang off the town; its
// zones carve up where those terms apply.
type Town struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	State          string    `json:"state"`
	Country        string    `json:"country"`
	DeliveryFee    float64   `json:"delivery_fee"`
	MinOrderAmount float64   `json:"min_order_amount"`
	IsActive       bool      `json:"is_active"`
}
