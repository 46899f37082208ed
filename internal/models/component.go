package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// ComponentItem is one reusable UI component: an HTML fragment plus its
// component-scoped CSS/JS and catalog metadata.
type ComponentItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	HTML        string    `json:"html"`
	CSS         string    `json:"css"`
	JS          string    `json:"js"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewComponentItem creates a component with a fresh id and timestamps.
func NewComponentItem(name, category string) *ComponentItem {
	now := time.Now()
	return &ComponentItem{
		ID:        uuid.NewString(),
		Name:      name,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SortComponents orders components by (category, name). Every mutation
// to a project's component list re-applies this ordering.
func SortComponents(components []*ComponentItem) {
	sort.SliceStable(components, func(i, j int) bool {
		if components[i].Category != components[j].Category {
			return components[i].Category < components[j].Category
		}
		return components[i].Name < components[j].Name
	})
}
