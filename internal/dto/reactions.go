package dto

type ToggleReactionRequest struct {
	Emoji string `json:"emoji" binding:"required,emoji"`
}

type ToggleReactionResponse struct {
	Emoji string `json:"emoji"`
	Delta int    `json:"delta"`
}
