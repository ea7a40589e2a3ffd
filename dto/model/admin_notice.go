package model

import "time"

type AdminNotice struct {
	ID        string     `gorm:"size:36;primaryKey" json:"id"`
	Level     string     `gorm:"type:VARCHAR(10);not null" json:"level"`
	Message   string     `gorm:"type:TEXT;not null" json:"message"`
	ShownAt   *time.Time `json:"shown_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
