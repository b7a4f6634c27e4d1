package accounts

import (
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/models"
	"github.com/stretchr/testify/require"
)

func newAccount(username string) *models.Account {
	return &models.Account{
		UserName: username,
		Digest:   []byte("digest-" + username),
		Salt:     []byte("salt-" + username),
	}
}

func TestCreate_Duplicate(t *testing.T) {
	repo := NewMemoryRepository()

	_, err := repo.Create(newAccount("alice"))
	require.NoError(t, err)

	_, err = repo.Create(newAccount("alice"))
	require.ErrorIs(t, err, common.ErrDuplicateUsername)
}

func TestCreate_CaseSensitiveUsernames(t *testing.T) {
	repo := NewMemoryRepository()

	_, err := repo.Create(newAccount("alice"))
	require.NoError(t, err)
	_, err = repo.Create(newAccount("Alice"))
	require.NoError(t, err)

	a, err := repo.Get("alice")
	require.NoError(t, err)
	require.Equal(t, "alice", a.UserName)
}

func TestGet_Unknown(t *testing.T) {
	repo := NewMemoryRepository()
	_, err := repo.Get("nobody")
	require.ErrorIs(t, err, common.ErrUnknownUsername)
}

func TestList_InsertionOrder(t *testing.T) {
	repo := NewMemoryRepository()
	for _, name := range []string{"carol", "alice", "bob"} {
		_, err := repo.Create(newAccount(name))
		require.NoError(t, err)
	}

	var names []string
	for _, account := range repo.List() {
		names = append(names, account.UserName)
	}
	require.Equal(t, []string{"carol", "alice", "bob"}, names)
}

func TestAddTask_SequentialIDs(t *testing.T) {
	repo := NewMemoryRepository()
	_, err := repo.Create(newAccount("alice"))
	require.NoError(t, err)

	for i, desc := range []string{"one", "two", "three"} {
		task, err := repo.AddTask("alice", desc)
		require.NoError(t, err)
		require.Equal(t, i+1, task.ID)
		require.Equal(t, desc, task.Description)
		require.Equal(t, models.StatusPending, task.Status)
	}
}

func TestAddTask_UnknownUser(t *testing.T) {
	repo := NewMemoryRepository()
	_, err := repo.AddTask("nobody", "x")
	require.ErrorIs(t, err, common.ErrUnknownUsername)
}

func TestRemoveTask_IDsNeverReused(t *testing.T) {
	repo := NewMemoryRepository()
	_, err := repo.Create(newAccount("alice"))
	require.NoError(t, err)

	for _, desc := range []string{"one", "two", "three"} {
		_, err := repo.AddTask("alice", desc)
		require.NoError(t, err)
	}

	require.NoError(t, repo.RemoveTask("alice", 2))

	task, err := repo.AddTask("alice", "four")
	require.NoError(t, err)
	require.Equal(t, 4, task.ID)

	account, err := repo.Get("alice")
	require.NoError(t, err)
	var ids []int
	for _, task := range account.Tasks {
		ids = append(ids, task.ID)
	}
	require.Equal(t, []int{1, 3, 4}, ids)
}

func TestRemoveTask_HighestIDNotReused(t *testing.T) {
	repo := NewMemoryRepository()
	_, err := repo.Create(newAccount("alice"))
	require.NoError(t, err)

	_, err = repo.AddTask("alice", "one")
	require.NoError(t, err)
	_, err = repo.AddTask("alice", "two")
	require.NoError(t, err)

	require.NoError(t, repo.RemoveTask("alice", 2))

	task, err := repo.AddTask("alice", "three")
	require.NoError(t, err)
	require.Equal(t, 3, task.ID)
}

func TestSetTaskStatus(t *testing.T) {
	repo := NewMemoryRepository()
	_, err := repo.Create(newAccount("alice"))
	require.NoError(t, err)
	_, err = repo.AddTask("alice", "one")
	require.NoError(t, err)

	require.NoError(t, repo.SetTaskStatus("alice", 1, models.StatusCompleted))

	account, err := repo.Get("alice")
	require.NoError(t, err)
	require.Equal(t, models.StatusCompleted, account.Tasks[0].Status)
}

func TestSetTaskStatus_NotFoundLeavesStateUnchanged(t *testing.T) {
	repo := NewMemoryRepository()
	_, err := repo.Create(newAccount("alice"))
	require.NoError(t, err)
	_, err = repo.AddTask("alice", "one")
	require.NoError(t, err)

	err = repo.SetTaskStatus("alice", 99, models.StatusCompleted)
	require.ErrorIs(t, err, common.ErrTaskNotFound)

	account, err := repo.Get("alice")
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, account.Tasks[0].Status)
}

func TestRemoveTask_NotFound(t *testing.T) {
	repo := NewMemoryRepository()
	_, err := repo.Create(newAccount("alice"))
	require.NoError(t, err)

	err = repo.RemoveTask("alice", 1)
	require.ErrorIs(t, err, common.ErrTaskNotFound)
}

func TestCreate_RestoredAccountCounter(t *testing.T) {
	repo := NewMemoryRepository()

	restored := newAccount("alice")
	restored.Tasks = []*models.Task{
		{ID: 1, Description: "one", Status: models.StatusCompleted},
		{ID: 5, Description: "five", Status: models.StatusPending},
	}
	_, err := repo.Create(restored)
	require.NoError(t, err)

	task, err := repo.AddTask("alice", "six")
	require.NoError(t, err)
	require.Equal(t, 6, task.ID)
}
