package model

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID            uuid.UUID            `json:"id"`
	Name          string               `json:"name"`
	Slug          string               `json:"slug"`
	ColorHex      string               `json:"color_hex"`
	Restricted    bool                 `json:"restricted"`
	DefaultEmojis []string             `json:"default_emojis"`
	MetaConfig    []CategoryMetaConfig `json:"meta_config"`
	CreatedAt     time.Time            `json:"created_at"`
}

type CategoryInfo struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Slug     string    `json:"slug"`
	ColorHex string    `json:"color_hex"`
}

type CategoryMetaConfig struct {
	Name        string `json:"name" binding:"required"`
	Required    bool   `json:"required"`
	Description string `json:"description"`
}

type CategoryEmail struct {
	ID         uuid.UUID `json:"id"`
	CategoryID uuid.UUID `json:"category_id"`
	To         string    `json:"to"`
}

type CategorySlack struct {
	ID         uuid.UUID `json:"id"`
	CategoryID uuid.UUID `json:"category_id"`
	WebhookURL string    `json:"webhook_url"`
}

// CanPostIn reports whether the user may author posts in the category.
func (c *Category) CanPostIn(user User) bool {
	if !c.Restricted {
		return true
	}
	return user.Admin || user.CanPostRestricted
}

// MissingMeta returns the required metadata fields absent or empty in meta.
func (c *Category) MissingMeta(meta []PostMeta) []string {
	present := make(map[string]bool, len(meta))
	for _, m := range meta {
		if m.Content != "" {
			present[m.Name] = true
		}
	}

	var missing []string
	for _, field := range c.MetaConfig {
		if field.Required && !present[field.Name] {
			missing = append(missing, field.Name)
		}
	}
	return missing
}
