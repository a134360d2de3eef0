package model

import "time"

// Follow is a directed edge in the social graph: follower -> followed.
// Existence of the row is the whole state; the composite unique index
// rejects duplicate edges at the database. Unfollow hard-deletes the row.
type Follow struct {
	ID         uint   `gorm:"primaryKey"`
	FollowerID string `gorm:"uuid;not null;index;uniqueIndex:idx_follow_edge"`
	FollowedID string `gorm:"uuid;not null;index;uniqueIndex:idx_follow_edge"`
	CreatedAt  time.Time
}
