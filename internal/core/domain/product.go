package domain

import (
	"math"
	"strings"
)

// Product is a catalogue entry held by the backend.
type Product struct {
	// ID is the backend product identifier (product_id).
	ID string

	// Name is the product or service name.
	Name string

	// Description is the product text. Entries the backend only holds as raw
	// content carry it here.
	Description string

	// Price is the listed price. Finite and never negative.
	Price float64

	// Specifications is free-form specification text.
	Specifications string

	// Features is free-form feature text.
	Features string

	// ImageURL is an optional product image.
	ImageURL string
}

// Validate checks the product before it is submitted.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return MissingField("name")
	}
	if strings.TrimSpace(p.Description) == "" {
		return MissingField("description")
	}
	if math.IsNaN(p.Price) || math.IsInf(p.Price, 1) {
		return ErrPriceNotNumber
	}
	if p.Price < 0 {
		return ErrNegativePrice
	}
	if p.ImageURL != "" {
		if _, err := ValidateURL(p.ImageURL); err != nil {
			return err
		}
	}
	return nil
}

// ProductRef identifies a product for removal by id, name or both.
type ProductRef struct {
	ID   string
	Name string
}

// Validate checks that at least one identifier is present.
func (r ProductRef) Validate() error {
	if strings.TrimSpace(r.ID) == "" && strings.TrimSpace(r.Name) == "" {
		return MissingField("product_id or name")
	}
	return nil
}

// ImportOutcome reports the result of importing one catalogue entry.
type ImportOutcome struct {
	Index   int
	Name    string
	ID      string
	Err     error
	Message string
}

// OK returns true if the entry was added.
func (o ImportOutcome) OK() bool {
	return o.Err == nil
}
