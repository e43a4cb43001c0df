package domain

import (
	"strings"
	"time"
)

// DefaultProfileID is reserved for the profile created on first start.
const DefaultProfileID = "default"

// Profile is an isolated namespace of tasks.
type Profile struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Icon      string    `json:"icon" yaml:"icon"`
	Color     string    `json:"color" yaml:"color"`
	CreatedAt time.Time `json:"createdAt,omitzero" yaml:"createdAt,omitempty"`
}

// SameName compares profile names case-insensitively.
func (p Profile) SameName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(p.Name), strings.TrimSpace(name))
}

// String returns the icon and name.
func (p Profile) String() string {
	if p.Icon == "" {
		return p.Name
	}
	return p.Icon + " " + p.Name
}
