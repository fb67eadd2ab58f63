package ops

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hpungsan/jot/internal/errors"
	"github.com/hpungsan/jot/internal/store"
)

// BackupAction is the backup sub-action.
type BackupAction string

const (
	BackupCreate  BackupAction = "create"
	BackupRestore BackupAction = "restore"
)

// ParseBackupAction accepts create/c and restore/r. Empty means create.
func ParseBackupAction(s string) (BackupAction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "create", "c":
		return BackupCreate, nil
	case "restore", "r":
		return BackupRestore, nil
	}
	return "", errors.NewBackup(fmt.Sprintf("invalid backup action %q (expected create or restore)", s))
}

// BackupInput contains parameters for the Backup operation.
type BackupInput struct {
	Action string // create (default) or restore
}

// BackupOutput contains the result of the Backup operation.
type BackupOutput struct {
	Action BackupAction `json:"action"`
	Path   string       `json:"path"`
}

// Backup snapshots the journal, or restores it from the last snapshot.
func Backup(st *store.Store, input BackupInput) (*BackupOutput, error) {
	action, err := ParseBackupAction(input.Action)
	if err != nil {
		return nil, err
	}

	var path string
	switch action {
	case BackupCreate:
		path, err = st.CreateBackup()
	case BackupRestore:
		path, err = st.RestoreBackup()
	}
	if err != nil {
		return nil, err
	}

	logger(st).Info("backup", zap.String("action", string(action)), zap.String("path", path))
	return &BackupOutput{Action: action, Path: path}, nil
}
