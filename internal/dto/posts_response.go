package dto

import "github.com/BloggingApp/vanguard/internal/model"

type GetPost struct {
	Post      model.FullPost         `json:"post"`
	Reactions []*model.ReactionCount `json:"reactions"`
}
