package migrations

import (
	"database/sql"
	"fmt"
	"time"
)

// LegacyTaskKeys are the un-namespaced keys older releases stored the task list under.
var LegacyTaskKeys = []string{"tasks", "futurTask-tasks"}

const defaultTasksKey = "tasks-default"

func init() {
	RegisterGoMigration(3, Up_000003_namespace_legacy_tasks)
}

// Up_000003_namespace_legacy_tasks moves a task list saved before profiles
// existed into the default profile's key. An existing tasks-default value wins
// and the legacy value is dropped.
func Up_000003_namespace_legacy_tasks(tx *sql.Tx) error {
	for _, key := range LegacyTaskKeys {
		var value string
		err := tx.QueryRow("SELECT value FROM kv_store WHERE key = ?", key).Scan(&value)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read legacy key %s: %w", key, err)
		}

		_, err = tx.Exec(
			"INSERT OR IGNORE INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)",
			defaultTasksKey, value, time.Now().UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("failed to copy legacy key %s: %w", key, err)
		}

		if _, err := tx.Exec("DELETE FROM kv_store WHERE key = ?", key); err != nil {
			return fmt.Errorf("failed to remove legacy key %s: %w", key, err)
		}
	}
	return nil
}
