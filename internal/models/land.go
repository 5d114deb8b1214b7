package models

import "time"

const (
	LandStatusAvailable = "available"
	LandStatusPending   = "pending"
	LandStatusSold      = "sold"
)

type Land struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	SizeAcres   float64  `json:"size_acres"`
	County      string   `json:"county"`
	SubCounty   string   `json:"sub_county,omitempty"`
	Lat         *float64 `json:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty"`

	// пути к загруженным файлам (относительно files.root_dir)
	TitleDeedCopy string   `json:"title_deed_copy,omitempty"`
	UserIDCopy    string   `json:"user_id_copy,omitempty"`
	Images        []string `json:"images"`

	Status   string `json:"status"`
	Verified bool   `json:"verified"`
	OwnerID  int    `json:"owner_id"`

	Owner *UserSummary `json:"owner,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func IsValidLandStatus(s string) bool {
	switch s {
	case LandStatusAvailable, LandStatusPending, LandStatusSold:
		return true
	}
	return false
}

// LandFilter — параметры выборки для списка участков.
type LandFilter struct {
	County   string
	Status   string
	MinPrice *float64
	MaxPrice *float64
	Limit    int
	Offset   int
}

// LandUpdate — частичное обновление; nil-поля не трогаем.
type LandUpdate struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	SizeAcres   *float64 `json:"size_acres"`
	County      *string  `json:"county"`
	SubCounty   *string  `json:"sub_county"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	Status      *string  `json:"status"`
}
