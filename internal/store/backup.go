package store

import (
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/hpungsan/jot/internal/atomicfile"
	"github.com/hpungsan/jot/internal/entry"
	"github.com/hpungsan/jot/internal/errors"
)

// Backup file suffixes, appended to the journal path.
const (
	RotatedSuffix    = ".bak"
	RotatedOldSuffix = ".bak.old"
	SnapshotSuffix   = ".backup"
)

// BackupState describes which rotated backup files exist next to a journal.
type BackupState int

const (
	// BackupNone: no .bak file.
	BackupNone BackupState = iota
	// BackupCurrent: exactly one generation in .bak.
	BackupCurrent
	// BackupRotating: a .bak.old survives from an interrupted rotation.
	BackupRotating
)

func (b BackupState) String() string {
	switch b {
	case BackupCurrent:
		return "current"
	case BackupRotating:
		return "rotating"
	default:
		return "none"
	}
}

// RotatedPath returns the path of the automatic single-generation backup.
func (s *Store) RotatedPath() string {
	return s.path + RotatedSuffix
}

// SnapshotPath returns the path used by CreateBackup and RestoreBackup.
func (s *Store) SnapshotPath() string {
	return s.path + SnapshotSuffix
}

// BackupState inspects the rotated backup files of the store's journal.
func (s *Store) BackupState() (BackupState, error) {
	return s.backupStateOf(s.path)
}

func (s *Store) backupStateOf(target string) (BackupState, error) {
	old, err := atomicfile.Exists(s.fs, target+RotatedOldSuffix)
	if err != nil {
		return BackupNone, err
	}
	if old {
		return BackupRotating, nil
	}
	cur, err := atomicfile.Exists(s.fs, target+RotatedSuffix)
	if err != nil {
		return BackupNone, err
	}
	if cur {
		return BackupCurrent, nil
	}
	return BackupNone, nil
}

// rotateBackup moves the state machine one step for target:
//
//	none     -> current  (copy journal to .bak)
//	current  -> current  (.bak -> .bak.old, copy journal to .bak, drop .bak.old)
//	rotating -> resolved first (keep .bak if present, else restore .bak.old)
//
// At most one generation remains once it returns.
func (s *Store) rotateBackup(target string) error {
	live, err := atomicfile.Exists(s.fs, target)
	if err != nil {
		return err
	}
	if !live {
		return nil
	}

	rotated := target + RotatedSuffix
	old := target + RotatedOldSuffix

	state, err := s.backupStateOf(target)
	if err != nil {
		return err
	}

	if state == BackupRotating {
		if state, err = s.recoverRotation(rotated, old); err != nil {
			return err
		}
	}

	if state == BackupCurrent {
		if err := s.fs.Rename(rotated, old); err != nil {
			return fmt.Errorf("retire previous backup: %w", err)
		}
	}

	if err := atomicfile.CopyFile(s.fs, target, rotated, 0600); err != nil {
		if state == BackupCurrent {
			if rbErr := s.fs.Rename(old, rotated); rbErr != nil {
				s.logger.Warn("failed to reinstate previous backup", zap.String("path", old), zap.Error(rbErr))
			}
		}
		return fmt.Errorf("copy journal to backup: %w", err)
	}

	if state == BackupCurrent {
		if err := s.fs.Remove(old); err != nil {
			return fmt.Errorf("discard previous backup: %w", err)
		}
	}

	s.logger.Debug("backup rotated", zap.String("path", rotated), zap.Stringer("from", state))
	return nil
}

// recoverRotation resolves a leftover .bak.old and returns the resulting state.
func (s *Store) recoverRotation(rotated, old string) (BackupState, error) {
	cur, err := atomicfile.Exists(s.fs, rotated)
	if err != nil {
		return BackupNone, err
	}
	if cur {
		if err := s.fs.Remove(old); err != nil {
			return BackupNone, fmt.Errorf("discard stale backup: %w", err)
		}
	} else if err := s.fs.Rename(old, rotated); err != nil {
		return BackupNone, fmt.Errorf("reinstate stale backup: %w", err)
	}
	s.logger.Info("recovered interrupted backup rotation", zap.String("path", rotated))
	return BackupCurrent, nil
}

// CreateBackup snapshots the live journal to SnapshotPath.
func (s *Store) CreateBackup() (string, error) {
	exists, err := atomicfile.Exists(s.fs, s.path)
	if err != nil {
		return "", errors.NewIO("stat journal", err)
	}
	if !exists {
		return "", errors.NewBackup(fmt.Sprintf("no journal to back up at %s", s.path))
	}

	dst := s.SnapshotPath()
	if err := atomicfile.CopyFile(s.fs, s.path, dst, 0600); err != nil {
		return "", errors.NewBackup("create").Wrap(err)
	}
	s.logger.Info("backup created", zap.String("path", dst))
	return dst, nil
}

// RestoreBackup overwrites the live journal with the snapshot at SnapshotPath.
// With rotation enabled, the journal being replaced is kept as the .bak
// generation. Callers must reload the journal afterwards.
func (s *Store) RestoreBackup() (string, error) {
	src := s.SnapshotPath()
	exists, err := atomicfile.Exists(s.fs, src)
	if err != nil {
		return "", errors.NewIO("stat backup", err)
	}
	if !exists {
		return "", errors.NewBackup(fmt.Sprintf("no backup found at %s", src))
	}

	data, err := afero.ReadFile(s.fs, src)
	if err != nil {
		return "", errors.NewIO("read backup", err)
	}
	var entries []entry.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return "", errors.NewBackup(fmt.Sprintf("backup at %s is not a valid journal", src)).Wrap(err)
	}

	if rotateErr, err := s.writeRotated(s.path, data); err != nil {
		if rotateErr != nil {
			return "", errors.NewIO("rotate backup", rotateErr)
		}
		return "", errors.NewBackup("restore").Wrap(err)
	}
	s.logger.Info("backup restored", zap.String("path", src))
	return src, nil
}
