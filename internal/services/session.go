// Package services contains the session controller: registration, login,
// and the task operations scoped to the single active account.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/cryptox"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/models"
	"github.com/dmitrijs2005/taskkeeper/internal/repositories/accounts"
)

// Persister is the persistence surface the controller flushes through.
// *storage.FileStore satisfies it.
type Persister interface {
	Save(repo accounts.Repository) error
}

// SessionService orchestrates the account store, the credential hasher, and
// the persistence codec. It has two states: anonymous (active == nil) and
// authenticated (active points at an account in the store). At most one
// account is active per SessionService; independent sessions are simply
// independent SessionService values.
//
// The store is flushed on registration, on logout, and on every task
// mutation, so only work done between a mutation and an abnormal exit can
// be lost.
type SessionService struct {
	repo   accounts.Repository
	store  Persister
	logger logging.Logger
	active *models.Account
}

func NewSessionService(repo accounts.Repository, store Persister, logger logging.Logger) *SessionService {
	return &SessionService{
		repo:   repo,
		store:  store,
		logger: logger.With("component", "session"),
	}
}

// IsAuthenticated reports whether an account is currently logged in.
func (s *SessionService) IsAuthenticated() bool {
	return s.active != nil
}

// ActiveUsername returns the logged-in account's username, or "" when
// anonymous.
func (s *SessionService) ActiveUsername() string {
	if s.active == nil {
		return ""
	}
	return s.active.UserName
}

// Register creates an account with a fresh salt and a digest derived from
// password, then persists the store. The session stays anonymous; a
// duplicate username fails with common.ErrDuplicateUsername and leaves the
// existing account untouched.
func (s *SessionService) Register(ctx context.Context, username string, password []byte) error {
	salt, err := cryptox.NewSalt()
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	digest := cryptox.DeriveDigest(password, salt)

	account := &models.Account{UserName: username, Digest: digest, Salt: salt}
	if _, err := s.repo.Create(account); err != nil {
		return err
	}

	if err := s.flush(ctx); err != nil {
		return err
	}
	s.logger.Info(ctx, "account registered", "username", username)
	return nil
}

// Login verifies the password against the stored credential record and, on
// success, makes the account active. An absent account reports
// common.ErrUnknownUsername; a failed verification reports
// common.ErrWrongPassword and the session stays anonymous.
func (s *SessionService) Login(ctx context.Context, username string, password []byte) error {
	account, err := s.repo.Get(username)
	if err != nil {
		return err
	}
	if !cryptox.VerifyPassword(password, account.Salt, account.Digest) {
		s.logger.Warn(ctx, "failed login attempt", "username", username)
		return common.ErrWrongPassword
	}

	s.active = account
	s.logger.Info(ctx, "login successful", "username", username)
	return nil
}

// Logout persists the store and returns the session to anonymous. Only
// valid while authenticated.
func (s *SessionService) Logout(ctx context.Context) error {
	if s.active == nil {
		return common.ErrNoActiveSession
	}
	if err := s.flush(ctx); err != nil {
		return err
	}
	s.logger.Info(ctx, "logout", "username", s.active.UserName)
	s.active = nil
	return nil
}

// ListTasks returns the active account's tasks in insertion order. The
// returned slice is a copy; the tasks themselves are shared.
func (s *SessionService) ListTasks() ([]*models.Task, error) {
	if s.active == nil {
		return nil, common.ErrNoActiveSession
	}
	tasks := make([]*models.Task, len(s.active.Tasks))
	copy(tasks, s.active.Tasks)
	return tasks, nil
}

// AddTask appends a pending task to the active account and persists the
// store.
func (s *SessionService) AddTask(ctx context.Context, description string) (*models.Task, error) {
	if s.active == nil {
		return nil, common.ErrNoActiveSession
	}
	task, err := s.repo.AddTask(s.active.UserName, description)
	if err != nil {
		return nil, err
	}
	if err := s.flush(ctx); err != nil {
		return nil, err
	}
	return task, nil
}

// CompleteTask marks one of the active account's tasks completed and
// persists the store.
func (s *SessionService) CompleteTask(ctx context.Context, taskID int) error {
	if s.active == nil {
		return common.ErrNoActiveSession
	}
	if err := s.repo.SetTaskStatus(s.active.UserName, taskID, models.StatusCompleted); err != nil {
		return err
	}
	return s.flush(ctx)
}

// DeleteTask removes one of the active account's tasks and persists the
// store. The removed id is never assigned again.
func (s *SessionService) DeleteTask(ctx context.Context, taskID int) error {
	if s.active == nil {
		return common.ErrNoActiveSession
	}
	if err := s.repo.RemoveTask(s.active.UserName, taskID); err != nil {
		return err
	}
	return s.flush(ctx)
}

func (s *SessionService) flush(ctx context.Context) error {
	if err := s.store.Save(s.repo); err != nil {
		s.logger.Error(ctx, "persisting store failed", "error", err)
		return err
	}
	return nil
}
