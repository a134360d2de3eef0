package model

import "gorm.io/gorm"

// Notification is an in-app message produced by the follow event
// dispatcher for profiles that have app notifications enabled.
type Notification struct {
	gorm.Model
	ID      string `gorm:"primaryKey;uuid;not null"`
	UserID  string `gorm:"uuid;not null;index"`
	Message string `gorm:"not null"`
	Read    bool   `gorm:"default:false"`
}
