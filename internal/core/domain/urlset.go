package domain

import (
	"net/url"
	"slices"
	"strings"
)

// ValidateURL checks that raw is an absolute http or https URL with a host.
// It returns the trimmed URL.
func ValidateURL(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrInvalidURL
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", ErrInvalidURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", ErrInvalidURL
	}
	if u.Host == "" || u.Hostname() == "" {
		return "", ErrInvalidURL
	}
	return s, nil
}

// ClassifiedURLSet holds the two URL lists produced by classification.
// The lists are edited locally until each is submitted for processing.
type ClassifiedURLSet struct {
	Description []string
	Product     []string
}

// NewClassifiedURLSet copies the given lists into a new set.
func NewClassifiedURLSet(desc, product []string) *ClassifiedURLSet {
	return &ClassifiedURLSet{
		Description: slices.Clone(desc),
		Product:     slices.Clone(product),
	}
}

// List returns the list for kind. Unknown kinds return nil.
func (s *ClassifiedURLSet) List(kind ListKind) []string {
	switch kind {
	case KindDescription:
		return s.Description
	case KindProduct:
		return s.Product
	default:
		return nil
	}
}

func (s *ClassifiedURLSet) set(kind ListKind, urls []string) {
	if kind == KindDescription {
		s.Description = urls
	} else {
		s.Product = urls
	}
}

// Contains reports whether kind's list holds u.
func (s *ClassifiedURLSet) Contains(kind ListKind, u string) bool {
	return slices.Contains(s.List(kind), u)
}

// Move takes u out of from and appends it to to.
// from == to is a no-op. If u is not in from, ErrNotFound is returned and
// nothing changes. If to already holds u, only the source entry is removed.
func (s *ClassifiedURLSet) Move(u string, from, to ListKind) error {
	if !from.IsValid() || !to.IsValid() {
		return ErrUnknownKind
	}
	if from == to {
		return nil
	}
	src := s.List(from)
	i := slices.Index(src, u)
	if i < 0 {
		return ErrNotFound
	}
	s.set(from, slices.Delete(slices.Clone(src), i, i+1))
	if !s.Contains(to, u) {
		s.set(to, append(slices.Clone(s.List(to)), u))
	}
	return nil
}

// Remove deletes the first entry equal to u from kind's list.
// It returns false when no entry matched.
func (s *ClassifiedURLSet) Remove(kind ListKind, u string) bool {
	list := s.List(kind)
	i := slices.Index(list, u)
	if i < 0 {
		return false
	}
	s.set(kind, slices.Delete(slices.Clone(list), i, i+1))
	return true
}

// Add validates raw and appends it to kind's list.
// Malformed input leaves both lists untouched.
func (s *ClassifiedURLSet) Add(kind ListKind, raw string) (string, error) {
	if !kind.IsValid() {
		return "", ErrUnknownKind
	}
	u, err := ValidateURL(raw)
	if err != nil {
		return "", err
	}
	if s.Contains(kind, u) {
		return "", ErrAlreadyExists
	}
	s.set(kind, append(slices.Clone(s.List(kind)), u))
	return u, nil
}

// Len returns the total number of URLs across both lists.
func (s *ClassifiedURLSet) Len() int {
	return len(s.Description) + len(s.Product)
}

// Clone returns a deep copy.
func (s *ClassifiedURLSet) Clone() *ClassifiedURLSet {
	return NewClassifiedURLSet(s.Description, s.Product)
}
