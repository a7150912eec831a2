package seen

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/gofrs/flock"
)

// FileStore keeps delivered ids in a flat text file, one id per line.
// Deliberately low-tech: an operator can read it, grep it, and append to it
// with a text editor. A sibling .lock file enforces the single-writer rule
// for the life of the process.
type FileStore struct {
	mu   sync.Mutex
	path string
	f    *os.File // append handle
	lock *flock.Flock
	ids  map[string]struct{}
}

func NewFileStore(path string) (*FileStore, error) {
	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock seen store: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("seen store %s is locked by another process", path)
	}

	ids := make(map[string]struct{})
	if rf, err := os.Open(path); err == nil {
		sc := bufio.NewScanner(rf)
		for sc.Scan() {
			id := strings.TrimSpace(sc.Text())
			if id != "" {
				ids[id] = struct{}{}
			}
		}
		scanErr := sc.Err()
		_ = rf.Close()
		if scanErr != nil {
			_ = lock.Unlock()
			return nil, fmt.Errorf("read seen store: %w", scanErr)
		}
	} else if !os.IsNotExist(err) {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open seen store: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open seen store for append: %w", err)
	}

	return &FileStore{path: path, f: f, lock: lock, ids: ids}, nil
}

func (s *FileStore) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

// Commit appends the id and fsyncs before reporting success, so a crash
// right after a successful commit can't lose it.
func (s *FileStore) Commit(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("empty id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; ok {
		return nil
	}
	if _, err := s.f.WriteString(id + "\n"); err != nil {
		return fmt.Errorf("append seen id: %w", err)
	}
	if err := s.f.Sync(); err != nil {
		return fmt.Errorf("sync seen store: %w", err)
	}
	s.ids[id] = struct{}{}
	return nil
}

func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.f.Close()
	if uerr := s.lock.Unlock(); err == nil {
		err = uerr
	}
	return err
}

// Len reports how many ids are loaded; used for startup logging.
func (s *FileStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}
