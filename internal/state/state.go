// Package state holds the in-memory application state shared by the
// profile registry, the task store and the views.
package state

import (
	"sync"

	"futurtask/internal/domain"
)

// Snapshot is a copy of the application state.
type Snapshot struct {
	Profiles         []domain.Profile
	CurrentProfileID string
	Tasks            []domain.Task
}

// CurrentProfile returns the profile the snapshot points at.
func (s Snapshot) CurrentProfile() (domain.Profile, bool) {
	for _, p := range s.Profiles {
		if p.ID == s.CurrentProfileID {
			return p, true
		}
	}
	return domain.Profile{}, false
}

// State guards the profiles, the current profile pointer and the tasks of
// the current profile.
type State struct {
	mu               sync.RWMutex
	profiles         []domain.Profile
	currentProfileID string
	tasks            []domain.Task
}

// New returns an empty state.
func New() *State {
	return &State{
		profiles: []domain.Profile{},
		tasks:    []domain.Task{},
	}
}

// Snapshot returns a deep copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *State) snapshotLocked() Snapshot {
	profiles := make([]domain.Profile, len(s.profiles))
	copy(profiles, s.profiles)
	return Snapshot{
		Profiles:         profiles,
		CurrentProfileID: s.currentProfileID,
		Tasks:            domain.CloneTasks(s.tasks),
	}
}

// Tasks returns a copy of the current profile's tasks.
func (s *State) Tasks() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CloneTasks(s.tasks)
}

// Profiles returns a copy of the profile list.
func (s *State) Profiles() []domain.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profiles := make([]domain.Profile, len(s.profiles))
	copy(profiles, s.profiles)
	return profiles
}

// CurrentProfileID returns the id of the active profile.
func (s *State) CurrentProfileID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentProfileID
}

// Mutate runs fn on a copy of the state while holding the write lock.
// The copy replaces the state only when fn returns nil, so persistence done
// inside fn is ordered with the in-memory change.
func (s *State) Mutate(fn func(snap *Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshotLocked()
	if err := fn(&snap); err != nil {
		return err
	}

	s.profiles = snap.Profiles
	if s.profiles == nil {
		s.profiles = []domain.Profile{}
	}
	s.currentProfileID = snap.CurrentProfileID
	s.tasks = snap.Tasks
	if s.tasks == nil {
		s.tasks = []domain.Task{}
	}
	return nil
}
