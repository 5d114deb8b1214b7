package models

import "time"

type Favorite struct {
	ID        int64     `json:"id"`
	UserID    int       `json:"user_id"`
	LandID    int64     `json:"land_id"`
	CreatedAt time.Time `json:"created_at"`

	Land *Land `json:"land,omitempty"`
}
