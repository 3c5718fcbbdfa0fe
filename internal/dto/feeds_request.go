package dto

import "github.com/google/uuid"

type CreateFeedRequest struct {
	Name        string      `json:"name"`
	Restricted  bool        `json:"restricted"`
	CategoryIDs []uuid.UUID `json:"category_ids"`
}
