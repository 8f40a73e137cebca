package model

import "time"

// DefaultTaskTime is the initial value of a task's tracked time.
const DefaultTaskTime = "00:00:00"

// Task is a unit of tracked work owned by exactly one user.
type Task struct {
	ID     uint      `json:"id" gorm:"primaryKey"`
	Name   string    `json:"name" gorm:"size:255;not null"`
	Tag    string    `json:"tag" gorm:"size:255;not null"`
	Time   string    `json:"time" gorm:"size:16;not null;default:'00:00:00'"` // HH:MM:SS
	UserID uint      `json:"user_id" gorm:"not null;index"`
	Date   time.Time `json:"date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
