package dto

import "github.com/BloggingApp/vanguard/internal/model"

type CreateCategoryRequest struct {
	Name          string                     `json:"name" binding:"required"`
	Slug          string                     `json:"slug" binding:"required"`
	ColorHex      string                     `json:"color_hex" binding:"omitempty,hexadecimal,len=6"`
	Restricted    bool                       `json:"restricted"`
	DefaultEmojis []string                   `json:"default_emojis" binding:"dive,emoji"`
	MetaConfig    []model.CategoryMetaConfig `json:"meta_config" binding:"dive"`
	Emails        []string                   `json:"emails" binding:"dive,email"`
	SlackWebhooks []string                   `json:"slack_webhooks" binding:"dive,url"`
}
