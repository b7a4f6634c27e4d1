package accounts

import (
	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/models"
)

// MemoryRepository keeps accounts in a map keyed by username, with a
// separate slice preserving insertion order for deterministic listing and
// serialization.
type MemoryRepository struct {
	byName map[string]*models.Account
	order  []string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byName: make(map[string]*models.Account)}
}

func (r *MemoryRepository) Get(username string) (*models.Account, error) {
	account, ok := r.byName[username]
	if !ok {
		return nil, common.ErrUnknownUsername
	}
	return account, nil
}

func (r *MemoryRepository) List() []*models.Account {
	result := make([]*models.Account, 0, len(r.order))
	for _, username := range r.order {
		result = append(result, r.byName[username])
	}
	return result
}

func (r *MemoryRepository) Create(account *models.Account) (*models.Account, error) {
	if _, ok := r.byName[account.UserName]; ok {
		return nil, common.ErrDuplicateUsername
	}
	if account.NextTaskID < 1 {
		account.NextTaskID = nextTaskID(account.Tasks)
	}
	r.byName[account.UserName] = account
	r.order = append(r.order, account.UserName)
	return account, nil
}

func (r *MemoryRepository) AddTask(username, description string) (*models.Task, error) {
	account, err := r.Get(username)
	if err != nil {
		return nil, err
	}
	task := &models.Task{
		ID:          account.NextTaskID,
		Description: description,
		Status:      models.StatusPending,
	}
	account.NextTaskID++
	account.Tasks = append(account.Tasks, task)
	return task, nil
}

func (r *MemoryRepository) SetTaskStatus(username string, taskID int, status models.TaskStatus) error {
	account, err := r.Get(username)
	if err != nil {
		return err
	}
	for _, task := range account.Tasks {
		if task.ID == taskID {
			task.Status = status
			return nil
		}
	}
	return common.ErrTaskNotFound
}

func (r *MemoryRepository) RemoveTask(username string, taskID int) error {
	account, err := r.Get(username)
	if err != nil {
		return err
	}
	for i, task := range account.Tasks {
		if task.ID == taskID {
			account.Tasks = append(account.Tasks[:i], account.Tasks[i+1:]...)
			return nil
		}
	}
	return common.ErrTaskNotFound
}

// nextTaskID derives the id counter for an account restored from disk:
// one past the highest id currently present.
func nextTaskID(tasks []*models.Task) int {
	next := 1
	for _, task := range tasks {
		if task.ID >= next {
			next = task.ID + 1
		}
	}
	return next
}
