package domain

import (
	"strings"
	"unicode/utf8"
)

// MinTextLength is the shortest text the backend will ingest, measured
// after trimming surrounding whitespace.
const MinTextLength = 50

// ValidateText checks text content before it is submitted for processing.
func ValidateText(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ErrEmptyText
	}
	if utf8.RuneCountInString(trimmed) < MinTextLength {
		return ErrTextTooShort
	}
	return nil
}

// ListKind selects one of the two content categories the backend ingests.
type ListKind string

// Content kinds.
const (
	KindDescription ListKind = "desc"
	KindProduct     ListKind = "product"
)

// IsValid returns true if the kind is recognised.
func (k ListKind) IsValid() bool {
	return k == KindDescription || k == KindProduct
}

// String returns the string representation.
func (k ListKind) String() string {
	return string(k)
}

// Label returns a human-readable label.
func (k ListKind) Label() string {
	switch k {
	case KindDescription:
		return "Description"
	case KindProduct:
		return "Product/Service"
	default:
		return "Unknown"
	}
}

// Other returns the opposite kind.
func (k ListKind) Other() ListKind {
	if k == KindDescription {
		return KindProduct
	}
	return KindDescription
}

// ParseListKind accepts the short and long spellings of a kind.
func ParseListKind(s string) (ListKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "desc", "description", "descriptions":
		return KindDescription, nil
	case "product", "products", "product_service", "service":
		return KindProduct, nil
	default:
		return "", ErrUnknownKind
	}
}

// AllListKinds returns both kinds in display order.
func AllListKinds() []ListKind {
	return []ListKind{KindDescription, KindProduct}
}
