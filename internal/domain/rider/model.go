package rider

import "time"

// Category is the championship class a rider competes in.
type Category string

const (
	CategoryMotoGP Category = "MOTOGP"
	CategoryMoto2  Category = "MOTO2"
	CategoryMoto3  Category = "MOTO3"
)

// Categories lists every class in scoring order, premier class first.
func Categories() []Category {
	return []Category{CategoryMotoGP, CategoryMoto2, CategoryMoto3}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryMotoGP, CategoryMoto2, CategoryMoto3:
		return true
	}
	return false
}

// Type distinguishes full-season entries from one-off appearances.
type Type string

const (
	// TypeOfficial riders hold a permanent grid slot and are the only
	// riders eligible for fantasy rosters.
	TypeOfficial Type = "OFFICIAL"
	// TypeWildcard riders race selected rounds only.
	TypeWildcard Type = "WILDCARD"
	// TypeReplacement riders substitute an injured official entry.
	TypeReplacement Type = "REPLACEMENT"
)

func (t Type) Valid() bool {
	switch t {
	case TypeOfficial, TypeWildcard, TypeReplacement:
		return true
	}
	return false
}

// Rider is a championship entry for one season.
type Rider struct {
	ID        string
	Name      string
	Number    int
	Team      string
	Category  Category
	Type      Type
	Value     int
	Season    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Eligible reports whether the rider may be picked into a roster.
func (r Rider) Eligible() bool {
	return r.Type == TypeOfficial
}
