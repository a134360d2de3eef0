package service

import (
	"errors"
	"fmt"
)

// Error kinds. Every service error wraps exactly one of these so the
// transport layer can pick a status with errors.Is while the message
// stays specific to the violation.
var (
	// ErrNotFound marks an entity that is absent or not visible to the caller.
	ErrNotFound = errors.New("not found")
	// ErrForbidden marks a mutation by an authenticated but unauthorized user.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict marks a violated uniqueness or state invariant.
	ErrConflict = errors.New("conflict")
	// ErrInvalidState marks a transition whose preconditions do not hold.
	ErrInvalidState = errors.New("invalid state")
	// ErrInvalidOperation marks a request that can never be valid, such as
	// following yourself.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrEmptyResult marks a listing with zero visible items. Not a
	// failure, but distinguished from success so callers can render
	// absence explicitly.
	ErrEmptyResult = errors.New("empty result")
)

var (
	// ErrArticleNotFound is returned when a slug resolves to nothing visible.
	ErrArticleNotFound = fmt.Errorf("%w: this article has not been found", ErrNotFound)
	// ErrArticleDeactivated is returned to the author after a soft delete.
	// Deactivation is final for everyone, the owner included.
	ErrArticleDeactivated = fmt.Errorf("%w: this article does not exist", ErrNotFound)
	// ErrNotArticleOwner is returned when the requester did not author the article.
	ErrNotArticleOwner = fmt.Errorf("%w: you are not the owner of the article", ErrForbidden)
	// ErrEmptyDraft is returned when publishing an article with no draft text.
	ErrEmptyDraft = fmt.Errorf("%w: draft has no data", ErrInvalidState)
	// ErrSlugTaken is returned when a title derives an already used slug.
	ErrSlugTaken = fmt.Errorf("%w: an article with this title already exists", ErrConflict)
	// ErrNoArticles is returned when no visible article exists at all.
	ErrNoArticles = fmt.Errorf("%w: no articles have been found", ErrEmptyResult)

	// ErrAlreadyVoted is returned on a second vote for the same pair.
	ErrAlreadyVoted = fmt.Errorf("%w: article already liked or disliked, use the update route", ErrConflict)
	// ErrNoVote is returned when the user holds no vote on the article.
	ErrNoVote = fmt.Errorf("%w: this user has neither liked nor disliked the article", ErrNotFound)
	// ErrLikeNotFound is returned when a vote id resolves to nothing.
	ErrLikeNotFound = fmt.Errorf("%w: this like has not been found", ErrNotFound)
	// ErrNotLikeOwner is returned when the requester does not own the vote.
	ErrNotLikeOwner = fmt.Errorf("%w: this user does not own this like", ErrForbidden)

	// ErrTitleRequired is returned when a title is empty or derives an
	// empty slug.
	ErrTitleRequired = fmt.Errorf("%w: article title is required", ErrInvalidOperation)

	// ErrProfileNotFound is returned when a username resolves to nothing.
	ErrProfileNotFound = fmt.Errorf("%w: this profile does not exist", ErrNotFound)
	// ErrSelfFollow is returned on an attempt to follow yourself.
	ErrSelfFollow = fmt.Errorf("%w: you cannot follow yourself", ErrInvalidOperation)
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = fmt.Errorf("%w: this username is already taken", ErrConflict)
	// ErrUsernameRequired is returned when registering an empty username.
	ErrUsernameRequired = fmt.Errorf("%w: username is required", ErrInvalidOperation)
	// ErrNotificationNotFound is returned when a notification id resolves
	// to nothing owned by the requester.
	ErrNotificationNotFound = fmt.Errorf("%w: this notification has not been found", ErrNotFound)
)

func alreadyFollowing(username string) error {
	return fmt.Errorf("%w: you are already following %s", ErrConflict, username)
}

func notFollowing(username string) error {
	return fmt.Errorf("%w: you are not following %s", ErrConflict, username)
}
