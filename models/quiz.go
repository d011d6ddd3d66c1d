package models

import (
	"time"

	"gorm.io/gorm"
)

type Quiz struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Question  string         `json:"question" gorm:"not null"`
	Answer    string         `json:"answer" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
