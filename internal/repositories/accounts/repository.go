// Package accounts implements the in-memory account store. It owns the
// username -> account mapping and all task mutations; persisting the store
// is a separate, explicit step handled by the storage package.
package accounts

import "github.com/dmitrijs2005/taskkeeper/internal/models"

// Repository is the account store surface consumed by the session
// controller and the persistence codec.
type Repository interface {
	// Get returns the account for username or common.ErrUnknownUsername.
	Get(username string) (*models.Account, error)

	// List returns all accounts in insertion order.
	List() []*models.Account

	// Create inserts a new account, failing with
	// common.ErrDuplicateUsername if the username is taken.
	Create(account *models.Account) (*models.Account, error)

	// AddTask appends a task with the account's next id and Pending status.
	AddTask(username, description string) (*models.Task, error)

	// SetTaskStatus updates the status of one task.
	SetTaskStatus(username string, taskID int, status models.TaskStatus) error

	// RemoveTask deletes one task. The freed id is never assigned again.
	RemoveTask(username string, taskID int) error
}
