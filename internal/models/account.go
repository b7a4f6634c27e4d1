// Package models defines the account and task types shared by the store,
// the persistence codec, and the session controller.
package models

// Account is a registered user: credential material plus the ordered task
// list it exclusively owns. UserName is the primary key and is
// case-sensitive. Salt is generated once at registration and never changes.
type Account struct {
	UserName string
	Digest   []byte
	Salt     []byte
	Tasks    []*Task

	// NextTaskID is the id the next added task receives. It only grows, so
	// ids are never reused even after deletions. Rebuilt as max(id)+1 when
	// an account is loaded from disk.
	NextTaskID int
}
