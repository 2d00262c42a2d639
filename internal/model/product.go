package model

import "time"

// Product represents one catalog item. The Image field holds an asset
// reference: either the bare filename of a locally stored upload or an
// absolute URL reported by the hosted media backend.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Image       string
	Ingredients string
	Category    string
	Allergens   string
	UpdatedAt   time.Time
	CreatedAt   time.Time
}

// InitMeta initializes the product timestamps. The ID is assigned by the
// database on insert and must not be set here.
func (p *Product) InitMeta() {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
}
