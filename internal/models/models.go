package models

import "time"

// Entry is one persisted key of the storefront state mirror.
type Entry struct {
	Name      string    `gorm:"primaryKey;size:191"  json:"name"`
	Value     string    `gorm:"type:text;not null"   json:"value"`
	UpdatedAt time.Time `gorm:"not null"             json:"updated_at"`
}

func (Entry) TableName() string { return "kv_entries" }
