package model

import "time"

// Project is the top-level grouping of machines under one compliance effort.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProjectPatch carries the fields of a partial project update. Nil fields are
// left untouched.
type ProjectPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}
