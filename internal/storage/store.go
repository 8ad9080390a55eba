// Package storage persists the small client-side state that must survive
// process restarts: the bearer token, the last validated profile, and the
// last-selected worker set. Values are plain text; anything unreadable is
// treated as absent.
package storage

import "github.com/olejniktut/dc-landscaping/internal/domain"

// Store is the durable client state. Writes are synchronous: when a Save
// returns, the value is on disk, so in-memory state installed afterwards is
// consistent with what a reload would see.
type Store interface {
	// SaveToken persists the bearer token
	SaveToken(token string) error
	// Token returns the persisted token, if any
	Token() (string, bool)
	// SaveUser persists the validated profile
	SaveUser(user *domain.User) error
	// User returns the persisted profile, or nil
	User() *domain.User
	// ClearSession removes token and user together
	ClearSession() error
	// SaveLastWorkers persists the worker set from the most recent start
	SaveLastWorkers(ids []int64) error
	// LastWorkers returns the remembered worker set, possibly empty
	LastWorkers() []int64
}
