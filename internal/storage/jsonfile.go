// Package storage implements the persistence codec for the account store:
// a single JSON file holding all accounts and their task lists. Writes are
// atomic (temp file + fsync + rename) and both load and save take an
// advisory file lock so a second accidentally started process fails loudly
// instead of interleaving writes.
package storage

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/models"
	"github.com/dmitrijs2005/taskkeeper/internal/repositories/accounts"
)

const DefaultLockTimeout = 5 * time.Second

// userJSON is the on-disk representation of an account's credential record.
// Digest and salt are base64 since the file format is textual.
type userJSON struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Salt     string `json:"salt"`
}

// taskJSON is the on-disk representation of one task. Status holds the
// display label ("Pending"/"Completed"), not the internal enum value.
type taskJSON struct {
	TaskID      int    `json:"task_id"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// fileJSON is the full file schema: the account records plus a map from
// username to that account's task list.
type fileJSON struct {
	Users []userJSON            `json:"users"`
	Tasks map[string][]taskJSON `json:"tasks"`
}

// FileStore loads and saves an account store at a fixed path.
type FileStore struct {
	path        string
	lockPath    string
	lockTimeout time.Duration
}

func NewFileStore(path string, lockTimeout time.Duration) *FileStore {
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	return &FileStore{
		path:        path,
		lockPath:    path + ".lock",
		lockTimeout: lockTimeout,
	}
}

// Path returns the location of the store file.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the store file and rebuilds the in-memory repository. If the
// file does not exist yet, an empty store is created, persisted, and
// returned. A file that exists but cannot be decoded yields
// common.ErrMalformedStoreFile and never a partial store.
func (s *FileStore) Load() (*accounts.MemoryRepository, error) {
	lock, err := s.acquireLock()
	if err != nil {
		return nil, err
	}
	defer lock.Unlock()

	repo := accounts.NewMemoryRepository()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := s.writeFile(repo); err != nil {
				return nil, err
			}
			return repo, nil
		}
		return nil, fmt.Errorf("%w: reading %s: %v", common.ErrStorageIO, s.path, err)
	}

	var file fileJSON
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedStoreFile, err)
	}

	for _, u := range file.Users {
		account, err := decodeAccount(u, file.Tasks[u.Username])
		if err != nil {
			return nil, fmt.Errorf("%w: user %q: %v", common.ErrMalformedStoreFile, u.Username, err)
		}
		if _, err := repo.Create(account); err != nil {
			return nil, fmt.Errorf("%w: user %q: %v", common.ErrMalformedStoreFile, u.Username, err)
		}
	}

	return repo, nil
}

// Save serializes the full store and replaces the file atomically: a
// subsequent Load observes either the previous or the new content, never a
// partial write.
func (s *FileStore) Save(repo accounts.Repository) error {
	lock, err := s.acquireLock()
	if err != nil {
		return err
	}
	defer lock.Unlock()

	return s.writeFile(repo)
}

func decodeAccount(u userJSON, tasks []taskJSON) (*models.Account, error) {
	digest, err := base64.StdEncoding.DecodeString(u.Password)
	if err != nil {
		return nil, fmt.Errorf("invalid password digest: %v", err)
	}
	salt, err := base64.StdEncoding.DecodeString(u.Salt)
	if err != nil {
		return nil, fmt.Errorf("invalid salt: %v", err)
	}

	account := &models.Account{UserName: u.Username, Digest: digest, Salt: salt}
	for _, t := range tasks {
		status, err := models.ParseTaskStatus(t.Status)
		if err != nil {
			return nil, err
		}
		account.Tasks = append(account.Tasks, &models.Task{
			ID:          t.TaskID,
			Description: t.Description,
			Status:      status,
		})
	}
	return account, nil
}

func encodeStore(repo accounts.Repository) *fileJSON {
	file := &fileJSON{
		Users: make([]userJSON, 0),
		Tasks: make(map[string][]taskJSON),
	}
	for _, account := range repo.List() {
		file.Users = append(file.Users, userJSON{
			Username: account.UserName,
			Password: base64.StdEncoding.EncodeToString(account.Digest),
			Salt:     base64.StdEncoding.EncodeToString(account.Salt),
		})
		tasks := make([]taskJSON, 0, len(account.Tasks))
		for _, task := range account.Tasks {
			tasks = append(tasks, taskJSON{
				TaskID:      task.ID,
				Description: task.Description,
				Status:      task.Status.Label(),
			})
		}
		file.Tasks[account.UserName] = tasks
	}
	return file
}

// writeFile performs the atomic write. The caller must hold the file lock.
func (s *FileStore) writeFile(repo accounts.Repository) error {
	data, err := json.MarshalIndent(encodeStore(repo), "", "    ")
	if err != nil {
		return fmt.Errorf("%w: encoding store: %v", common.ErrStorageIO, err)
	}

	dir := filepath.Dir(s.path)
	base := filepath.Base(s.path)

	tmpFile, err := os.CreateTemp(dir, "."+base+".tmp*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", common.ErrStorageIO, err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			tmpFile.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("%w: writing temp file: %v", common.ErrStorageIO, err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("%w: fsync temp file: %v", common.ErrStorageIO, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("%w: closing temp file: %v", common.ErrStorageIO, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("%w: replacing %s: %v", common.ErrStorageIO, s.path, err)
	}

	success = true
	return nil
}

func (s *FileStore) acquireLock() (*flock.Flock, error) {
	fl := flock.New(s.lockPath)

	ctx, cancel := context.WithTimeout(context.Background(), s.lockTimeout)
	defer cancel()

	locked, err := fl.TryLockContext(ctx, 10*time.Millisecond)
	if err != nil || !locked {
		return nil, fmt.Errorf("%w: could not lock %s, another process may be using the store", common.ErrStorageIO, s.lockPath)
	}
	return fl, nil
}
