package domain

import "strings"

// Category groups meetings by purpose.
type Category string

const (
	CategoryCodeMonkey   Category = "CodeMonkey"
	CategoryHub          Category = "Hub"
	CategoryShort        Category = "Short"
	CategoryTeamBuilding Category = "TeamBuilding"
)

// Categories lists every category in declaration order.
func Categories() []Category {
	return []Category{CategoryCodeMonkey, CategoryHub, CategoryShort, CategoryTeamBuilding}
}

// IsValid checks if the category is supported.
func (c Category) IsValid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory resolves a case-insensitive category name.
func ParseCategory(value string) (Category, error) {
	value = strings.TrimSpace(value)
	for _, known := range Categories() {
		if strings.EqualFold(value, string(known)) {
			return known, nil
		}
	}
	return "", ErrInvalidCategory
}

// Type describes how a meeting is attended.
type Type string

const (
	TypeInPerson Type = "InPerson"
	TypeRemote   Type = "Remote"
)

// Types lists every meeting type in declaration order.
func Types() []Type {
	return []Type{TypeInPerson, TypeRemote}
}

// IsValid checks if the type is supported.
func (t Type) IsValid() bool {
	for _, known := range Types() {
		if t == known {
			return true
		}
	}
	return false
}

// ParseType resolves a case-insensitive type name.
func ParseType(value string) (Type, error) {
	value = strings.TrimSpace(value)
	for _, known := range Types() {
		if strings.EqualFold(value, string(known)) {
			return known, nil
		}
	}
	return "", ErrInvalidType
}
