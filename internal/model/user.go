package model

import "github.com/google/uuid"

type User struct {
	ID                uuid.UUID `json:"id"`
	Email             string    `json:"email"`
	Name              *string   `json:"name"`
	Picture           *string   `json:"picture"`
	Admin             bool      `json:"admin"`
	CanPostRestricted bool      `json:"can_post_restricted"`
}

func (u User) DisplayName() string {
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	return u.Email
}

type UserAuthor struct {
	ID      uuid.UUID `json:"id"`
	Email   string    `json:"email"`
	Name    *string   `json:"name"`
	Picture *string   `json:"picture"`
}

func (a UserAuthor) DisplayName() string {
	if a.Name != nil && *a.Name != "" {
		return *a.Name
	}
	return a.Email
}

// UserChangeset holds the user fields an update may touch. Admin and
// CanPostRestricted are applied only when the acting user is an admin.
type UserChangeset struct {
	Name              *string `json:"name"`
	Picture           *string `json:"picture"`
	Admin             *bool   `json:"admin"`
	CanPostRestricted *bool   `json:"can_post_restricted"`
}

func (c UserChangeset) Updates(actor User) map[string]interface{} {
	updates := make(map[string]interface{})
	if c.Name != nil {
		updates["name"] = *c.Name
	}
	if c.Picture != nil {
		updates["picture"] = *c.Picture
	}
	if actor.Admin {
		if c.Admin != nil {
			updates["admin"] = *c.Admin
		}
		if c.CanPostRestricted != nil {
			updates["can_post_restricted"] = *c.CanPostRestricted
		}
	}
	return updates
}
