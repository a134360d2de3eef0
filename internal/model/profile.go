package model

import "gorm.io/gorm"

// Profile holds the public face of a user. The ID is the opaque user id
// issued by the identity provider; this service never authenticates.
type Profile struct {
	gorm.Model
	ID               string `gorm:"primaryKey;uuid;not null"`
	Username         string `gorm:"uniqueIndex;not null"`
	Bio              string
	Avatar           string
	AppNotifications bool `gorm:"default:true"`
}
