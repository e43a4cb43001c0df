package services

import (
	"context"
	"strings"

	"futurtask/internal/domain"
	"futurtask/internal/errors"
	"futurtask/internal/logging"
	"futurtask/internal/repository/sqlite"
	"futurtask/internal/state"
	"futurtask/internal/validation"

	"github.com/google/uuid"
)

// ProfileDefaults are applied to the first profile and to blank icon or
// colour fields of new profiles
type ProfileDefaults struct {
	Name  string
	Icon  string
	Color string
}

// DefaultProfileDefaults returns the built-in profile defaults
func DefaultProfileDefaults() ProfileDefaults {
	return ProfileDefaults{Name: "Main", Icon: "👤", Color: "#00ff88"}
}

// profileServiceImpl implements the ProfileService interface
type profileServiceImpl struct {
	repo             sqlite.KeyValueStore
	state            *state.State
	timeService      TimeService
	defaults         ProfileDefaults
	profileValidator *validation.ProfileValidator
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(repo sqlite.KeyValueStore, st *state.State, timeService TimeService, defaults ProfileDefaults) ProfileService {
	return &profileServiceImpl{
		repo:             repo,
		state:            st,
		timeService:      timeService,
		defaults:         defaults,
		profileValidator: validation.NewProfileValidator(),
	}
}

// LoadProfiles restores the profile list and the current profile pointer,
// creating the default profile when none exist, then loads the current
// profile's tasks
func (p *profileServiceImpl) LoadProfiles(ctx context.Context) ([]domain.Profile, error) {
	var loaded []domain.Profile
	err := p.state.Mutate(func(snap *state.Snapshot) error {
		profiles, err := p.readProfiles(ctx)
		if err != nil {
			return err
		}
		if len(profiles) == 0 {
			profiles = []domain.Profile{p.defaultProfile()}
			if err := p.writeProfiles(ctx, profiles); err != nil {
				return err
			}
		} else {
			p.sweepOrphanedTasks(ctx, profiles)
		}

		currentID, err := p.readCurrentID(ctx)
		if err != nil {
			return err
		}
		if indexOfProfile(profiles, currentID) < 0 {
			currentID = profiles[0].ID
			if err := p.writeCurrentID(ctx, currentID); err != nil {
				return err
			}
		}

		tasks, err := readTasks(ctx, p.repo, currentID)
		if err != nil {
			return err
		}

		snap.Profiles = profiles
		snap.CurrentProfileID = currentID
		snap.Tasks = tasks
		loaded = append([]domain.Profile(nil), profiles...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loaded, nil
}

// ListProfiles returns the profiles in creation order
func (p *profileServiceImpl) ListProfiles() []domain.Profile {
	return p.state.Profiles()
}

// CurrentProfile returns the active profile
func (p *profileServiceImpl) CurrentProfile() domain.Profile {
	profile, _ := p.state.Snapshot().CurrentProfile()
	return profile
}

// CreateProfile registers a new profile and switches to it
func (p *profileServiceImpl) CreateProfile(ctx context.Context, name, icon, color string) (*domain.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewEmptyNameError("profile")
	}

	if err := p.profileValidator.ValidateColor(strings.TrimSpace(color)); err != nil {
		return nil, errors.NewValidationError("invalid profile", err)
	}

	profile := domain.Profile{
		ID:        "profile_" + uuid.NewString(),
		Name:      name,
		Icon:      firstNonEmpty(strings.TrimSpace(icon), p.defaults.Icon),
		Color:     firstNonEmpty(strings.TrimSpace(color), p.defaults.Color),
		CreatedAt: p.timeService.Now(),
	}

	err := p.state.Mutate(func(snap *state.Snapshot) error {
		for _, existing := range snap.Profiles {
			if existing.SameName(name) {
				return errors.NewDuplicateNameError("profile", name)
			}
		}

		snap.Profiles = append(snap.Profiles, profile)
		if err := p.writeProfiles(ctx, snap.Profiles); err != nil {
			return err
		}
		return p.switchLocked(ctx, snap, profile.ID)
	})
	if err != nil {
		return nil, err
	}

	logging.Debugf("created profile %s (%s)", profile.ID, profile.Name)
	return &profile, nil
}

// SwitchProfile makes id the current profile and reloads its tasks
func (p *profileServiceImpl) SwitchProfile(ctx context.Context, id string) (*domain.Profile, error) {
	var switched domain.Profile
	err := p.state.Mutate(func(snap *state.Snapshot) error {
		index := indexOfProfile(snap.Profiles, id)
		if index < 0 {
			return errors.NewNotFoundError("profile", id)
		}
		switched = snap.Profiles[index]
		return p.switchLocked(ctx, snap, id)
	})
	if err != nil {
		return nil, err
	}
	return &switched, nil
}

// DeleteProfile removes a profile and its stored tasks. The current
// pointer moves to the first remaining profile when it pointed at id.
// The pointer is persisted first so an interrupted delete never leaves it
// naming a removed profile; a task list left behind is swept on next load.
func (p *profileServiceImpl) DeleteProfile(ctx context.Context, id string) error {
	return p.state.Mutate(func(snap *state.Snapshot) error {
		if len(snap.Profiles) <= 1 {
			return errors.NewLastProfileError(id)
		}
		index := indexOfProfile(snap.Profiles, id)
		if index < 0 {
			return errors.NewNotFoundError("profile", id)
		}

		remaining := append(snap.Profiles[:index:index], snap.Profiles[index+1:]...)
		currentID := snap.CurrentProfileID
		if currentID == id {
			currentID = remaining[0].ID
		}

		if err := p.writeCurrentID(ctx, currentID); err != nil {
			return err
		}
		if err := p.writeProfiles(ctx, remaining); err != nil {
			return err
		}
		if err := p.repo.RemoveItem(ctx, domain.TasksKey(id)); err != nil {
			return err
		}

		tasks, err := readTasks(ctx, p.repo, currentID)
		if err != nil {
			return err
		}
		snap.Profiles = remaining
		snap.CurrentProfileID = currentID
		snap.Tasks = tasks
		return nil
	})
}

// switchLocked points snap at id, persists the pointer and reloads tasks
func (p *profileServiceImpl) switchLocked(ctx context.Context, snap *state.Snapshot, id string) error {
	if err := p.writeCurrentID(ctx, id); err != nil {
		return err
	}
	tasks, err := readTasks(ctx, p.repo, id)
	if err != nil {
		return err
	}
	snap.CurrentProfileID = id
	snap.Tasks = tasks
	return nil
}

func (p *profileServiceImpl) defaultProfile() domain.Profile {
	return domain.Profile{
		ID:        domain.DefaultProfileID,
		Name:      firstNonEmpty(p.defaults.Name, DefaultProfileDefaults().Name),
		Icon:      p.defaults.Icon,
		Color:     p.defaults.Color,
		CreatedAt: p.timeService.Now(),
	}
}

// readProfiles returns the stored profiles; missing or corrupt data yields none
func (p *profileServiceImpl) readProfiles(ctx context.Context) ([]domain.Profile, error) {
	item, err := p.repo.GetItem(ctx, domain.ProfilesKey)
	if err != nil {
		if sqlite.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	profiles, err := domain.DecodeProfiles(item.Value)
	if err != nil {
		corrupt := errors.NewStorageCorruptError(domain.ProfilesKey, err)
		logging.Warn("replacing corrupt profile list with the default profile", "key", domain.ProfilesKey, "err", corrupt)
		return nil, nil
	}
	return profiles, nil
}

func (p *profileServiceImpl) writeProfiles(ctx context.Context, profiles []domain.Profile) error {
	value, err := domain.EncodeProfiles(profiles)
	if err != nil {
		return errors.NewStorageError("encode profiles", err)
	}
	return p.repo.SetItem(ctx, domain.ProfilesKey, value)
}

// readCurrentID returns the stored current profile id. Older data stored
// the id as a bare string rather than JSON.
func (p *profileServiceImpl) readCurrentID(ctx context.Context) (string, error) {
	return readStringItem(ctx, p.repo, domain.CurrentProfileKey)
}

func (p *profileServiceImpl) writeCurrentID(ctx context.Context, id string) error {
	return writeStringItem(ctx, p.repo, domain.CurrentProfileKey, id)
}

// sweepOrphanedTasks removes stored task lists whose profile no longer
// exists. Failures are logged and never block loading.
func (p *profileServiceImpl) sweepOrphanedTasks(ctx context.Context, profiles []domain.Profile) {
	prefix := domain.TasksKeyPrefix()
	keys, err := p.repo.ListKeys(ctx, prefix)
	if err != nil {
		logging.Warn("could not list stored task lists", "err", err)
		return
	}
	for _, key := range keys {
		if indexOfProfile(profiles, strings.TrimPrefix(key, prefix)) >= 0 {
			continue
		}
		if err := p.repo.RemoveItem(ctx, key); err != nil {
			logging.Warn("could not remove orphaned task list", "key", key, "err", err)
			continue
		}
		logging.Debugf("removed orphaned task list %s", key)
	}
}

func indexOfProfile(profiles []domain.Profile, id string) int {
	for i, profile := range profiles {
		if profile.ID == id {
			return i
		}
	}
	return -1
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// readStringItem reads a JSON string value, accepting a raw string when the
// value is not valid JSON. A missing key reads as "".
func readStringItem(ctx context.Context, repo sqlite.KeyValueStore, key string) (string, error) {
	item, err := repo.GetItem(ctx, key)
	if err != nil {
		if sqlite.IsNotFound(err) {
			return "", nil
		}
		return "", err
	}
	value, err := domain.DecodeString(item.Value)
	if err != nil {
		return item.Value, nil
	}
	return value, nil
}

func writeStringItem(ctx context.Context, repo sqlite.KeyValueStore, key, value string) error {
	encoded, err := domain.EncodeString(value)
	if err != nil {
		return errors.NewStorageError("encode "+key, err)
	}
	return repo.SetItem(ctx, key, encoded)
}
