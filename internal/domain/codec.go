package domain

import (
	"encoding/json"
	"time"
)

// Persisted keys of the local store.
const (
	ThemeKey          = "theme"
	ProfilesKey       = "profiles"
	CurrentProfileKey = "currentProfile"
	tasksKeyPrefix    = "tasks-"
)

// TasksKey returns the key holding a profile's task list.
func TasksKey(profileID string) string {
	return tasksKeyPrefix + profileID
}

// TasksKeyPrefix is shared by every per-profile task key.
func TasksKeyPrefix() string {
	return tasksKeyPrefix
}

// EncodeTasks serialises a task list. A nil list encodes as [].
func EncodeTasks(tasks []Task) (string, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeTasks parses a stored task list. Null tags decode as empty.
func DecodeTasks(s string) ([]Task, error) {
	var tasks []Task
	if err := json.Unmarshal([]byte(s), &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []Task{}
	}
	for i := range tasks {
		if tasks[i].Tags == nil {
			tasks[i].Tags = []string{}
		}
	}
	return tasks, nil
}

// EncodeProfiles serialises the profile list.
func EncodeProfiles(profiles []Profile) (string, error) {
	if profiles == nil {
		profiles = []Profile{}
	}
	data, err := json.Marshal(profiles)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeProfiles parses the stored profile list.
func DecodeProfiles(s string) ([]Profile, error) {
	var profiles []Profile
	if err := json.Unmarshal([]byte(s), &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// EncodeString serialises a scalar string value as JSON.
func EncodeString(v string) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeString parses a JSON string value.
func DecodeString(s string) (string, error) {
	var v string
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return "", err
	}
	return v, nil
}

// UnmarshalJSON decodes a stored task. An empty, missing or unreadable
// createdAt leaves CreatedAt zero instead of failing the whole list.
func (t *Task) UnmarshalJSON(data []byte) error {
	type plain Task
	aux := struct {
		*plain
		CreatedAt json.RawMessage `json:"createdAt"`
	}{plain: (*plain)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t.CreatedAt = decodeTimestamp(aux.CreatedAt)
	return nil
}

// UnmarshalJSON decodes a stored profile with the same createdAt leniency
// as Task.
func (p *Profile) UnmarshalJSON(data []byte) error {
	type plain Profile
	aux := struct {
		*plain
		CreatedAt json.RawMessage `json:"createdAt"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.CreatedAt = decodeTimestamp(aux.CreatedAt)
	return nil
}

// decodeTimestamp accepts an RFC 3339 string or Unix milliseconds. Anything
// else is the zero time.
func decodeTimestamp(raw json.RawMessage) time.Time {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return time.Time{}
		}
		return t
	}

	var ms float64
	if err := json.Unmarshal(raw, &ms); err == nil && ms > 0 {
		return time.UnixMilli(int64(ms)).UTC()
	}
	return time.Time{}
}
