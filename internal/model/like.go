package model

import "time"

// Like is a single user's vote on an article. IsLike true means like,
// false means dislike. The composite unique index keeps at most one row
// per (user, article) pair; a concurrent duplicate insert fails at the
// database rather than in application code.
//
// Rows are removed with a hard delete so the unique index does not block
// a user from voting again after withdrawing a vote.
type Like struct {
	ID        string `gorm:"primaryKey;uuid;not null"`
	UserID    string `gorm:"uuid;not null;uniqueIndex:idx_like_user_article"`
	ArticleID string `gorm:"uuid;not null;uniqueIndex:idx_like_user_article"`
	IsLike    bool   `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
