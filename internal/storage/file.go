package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/shreyansh232/wysa/internal"
)

// FileStorage keeps users and assessments in memory and persists them to
// JSON files with debounced background writes. It backs development and
// tests; production runs on Postgres.
type FileStorage struct {
	users               map[string]*internal.User       // nickname -> User
	assessments         map[string]*internal.Assessment // id -> Assessment
	mu                  sync.RWMutex
	usersFile           string
	assessmentsFile     string
	saveUsersChan       chan struct{}
	saveAssessmentsChan chan struct{}
	shutdownChan        chan struct{}
	saveDelay           time.Duration
	logger              internal.Logger
}

func NewFileStorage(usersFile, assessmentsFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		users:               make(map[string]*internal.User),
		assessments:         make(map[string]*internal.Assessment),
		usersFile:           usersFile,
		assessmentsFile:     assessmentsFile,
		saveUsersChan:       make(chan struct{}, 1),
		saveAssessmentsChan: make(chan struct{}, 1),
		shutdownChan:        make(chan struct{}),
		saveDelay:           500 * time.Millisecond,
		logger:              logger,
	}

	if err := s.loadUsers(); err != nil {
		logger.Errorf("storage: failed to load users: %v", err)
		return nil, err
	}
	if err := s.loadAssessments(); err != nil {
		logger.Errorf("storage: failed to load assessments: %v", err)
		return nil, err
	}

	go s.saveWorker(s.saveUsersChan, s.saveUsers, "users")
	go s.saveWorker(s.saveAssessmentsChan, s.saveAssessments, "assessments")

	return s, nil
}

func (s *FileStorage) loadUsers() error {
	file, err := os.Open(s.usersFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var users []*internal.User
	if err := json.NewDecoder(file).Decode(&users); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		s.users[u.Nickname] = u
	}
	return nil
}

func (s *FileStorage) loadAssessments() error {
	file, err := os.Open(s.assessmentsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var assessments []*internal.Assessment
	if err := json.NewDecoder(file).Decode(&assessments); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range assessments {
		s.assessments[a.ID] = a
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) saveUsers() error {
	s.mu.RLock()
	users := make([]*internal.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.usersFile, users)
}

func (s *FileStorage) saveAssessments() error {
	s.mu.RLock()
	assessments := make([]*internal.Assessment, 0, len(s.assessments))
	for _, a := range s.assessments {
		assessments = append(assessments, a)
	}
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.assessmentsFile, assessments)
}

func (s *FileStorage) saveWorker(trigger chan struct{}, save func() error, name string) {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-trigger:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := save(); err != nil {
				s.logger.Errorf("storage: error saving %s: %v", name, err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

// Close stops the save workers and flushes pending data synchronously.
func (s *FileStorage) Close() error {
	close(s.shutdownChan)

	if err := s.saveUsers(); err != nil {
		return err
	}
	return s.saveAssessments()
}

// --- UserRepository ---

func (s *FileStorage) CreateUser(ctx context.Context, u *internal.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[u.Nickname]; exists {
		return ErrDuplicateNickname
	}
	cp := *u
	s.users[u.Nickname] = &cp
	s.notify(s.saveUsersChan)
	return nil
}

func (s *FileStorage) GetUserByNickname(ctx context.Context, nickname string) (*internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[nickname]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// --- AssessmentRepository ---

func (s *FileStorage) CreateAssessment(ctx context.Context, a *internal.Assessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *a
	s.assessments[a.ID] = &cp
	s.notify(s.saveAssessmentsChan)
	return nil
}

func (s *FileStorage) GetAssessment(ctx context.Context, id string) (*internal.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.assessments[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *FileStorage) SetAnswer(ctx context.Context, id string, field internal.AnswerField, value any, now time.Time) (*internal.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.assessments[id]
	if !ok {
		return nil, ErrNotFound
	}

	switch field {
	case internal.FieldSleepStruggle:
		v := value.(string)
		a.SleepStruggleDuration = &v
	case internal.FieldBedTime:
		v := value.(string)
		a.BedTime = &v
	case internal.FieldWakeTime:
		v := value.(string)
		a.WakeTime = &v
	case internal.FieldSleepHours:
		v := value.(int)
		a.SleepHours = &v
	default:
		return nil, ErrNotFound
	}
	a.UpdatedAt = now

	s.notify(s.saveAssessmentsChan)
	cp := *a
	return &cp, nil
}

func (s *FileStorage) CompleteAssessment(ctx context.Context, id string, score int, now time.Time) (*internal.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.assessments[id]
	if !ok {
		return nil, ErrNotFound
	}

	a.Score = &score
	a.Status = internal.StatusCompleted
	a.UpdatedAt = now

	s.notify(s.saveAssessmentsChan)
	cp := *a
	return &cp, nil
}

func (s *FileStorage) notify(trigger chan struct{}) {
	select {
	case trigger <- struct{}{}:
	default:
	}
}

// --- Compile-time assertions ---
var _ UserRepository = (*FileStorage)(nil)
var _ AssessmentRepository = (*FileStorage)(nil)
