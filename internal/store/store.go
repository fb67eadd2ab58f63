package store

import (
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/hpungsan/jot/internal/atomicfile"
	"github.com/hpungsan/jot/internal/entry"
	"github.com/hpungsan/jot/internal/errors"
	"github.com/hpungsan/jot/internal/journal"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JournalFileName is the journal file name inside the jot home directory.
const JournalFileName = "journal.json"

// Store loads and saves a journal file and manages its backups.
type Store struct {
	fs     afero.Fs
	path   string
	rotate bool
	logger *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence events.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRotation enables or disables the single-generation .bak rotation on save.
func WithRotation(enabled bool) Option {
	return func(s *Store) {
		s.rotate = enabled
	}
}

// New returns a Store for the journal file at path.
// Rotation is enabled and logging disabled unless overridden by opts.
func New(fs afero.Fs, path string, opts ...Option) *Store {
	s := &Store{
		fs:     fs,
		path:   path,
		rotate: true,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// JournalPath returns the journal file path inside baseDir.
func JournalPath(baseDir string) string {
	return filepath.Join(baseDir, JournalFileName)
}

// Path returns the journal file path.
func (s *Store) Path() string {
	return s.path
}

// Logger returns the store's logger.
func (s *Store) Logger() *zap.Logger {
	return s.logger
}

// Fs returns the filesystem the store operates on.
func (s *Store) Fs() afero.Fs {
	return s.fs
}

// Load reads the journal file. A missing file yields an empty journal bound to
// the path; malformed content is a serialization error.
func (s *Store) Load() (*journal.Journal, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("journal not found, starting empty", zap.String("path", s.path))
			return journal.New(s.path), nil
		}
		return nil, errors.NewIO("read journal", err)
	}

	var entries []entry.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.NewSerialization("journal", err)
	}

	s.logger.Debug("journal loaded", zap.String("path", s.path), zap.Int("entries", len(entries)))
	return journal.FromEntries(s.path, entries), nil
}

// Save writes the full entry sequence atomically. When rotation is enabled and
// the journal already exists, the pre-write file becomes the single backup
// generation once the new contents are synced to a temp file, just before the
// rename. A save that fails before that point leaves the backup untouched.
func (s *Store) Save(j *journal.Journal) error {
	target := j.Path()
	if target == "" {
		target = s.path
	}

	data, err := json.MarshalIndent(j.Entries(), "", "  ")
	if err != nil {
		return errors.NewSerialization("journal", err)
	}

	if rotateErr, err := s.writeRotated(target, data); err != nil {
		if rotateErr != nil {
			return errors.NewIO("rotate backup", rotateErr)
		}
		return errors.NewIO("save journal", err)
	}

	s.logger.Debug("journal saved", zap.String("path", target), zap.Int("entries", j.Len()))
	return nil
}

// writeRotated atomically replaces target with data, rotating the backup
// between the temp-file sync and the rename. rotateErr is set when the
// rotation itself is what failed.
func (s *Store) writeRotated(target string, data []byte) (rotateErr, err error) {
	rotate := func() error {
		if !s.rotate {
			return nil
		}
		rotateErr = s.rotateBackup(target)
		return rotateErr
	}
	err = atomicfile.WriteFileBeforeRename(s.fs, target, data, 0600, rotate)
	return rotateErr, err
}

// Init creates the journal directory and an empty journal file if none exists.
// It reports whether a new journal was created.
func (s *Store) Init() (bool, error) {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return false, errors.NewInit(err)
	}

	exists, err := atomicfile.Exists(s.fs, s.path)
	if err != nil {
		return false, errors.NewInit(err)
	}
	if exists {
		return false, nil
	}

	if err := atomicfile.WriteFile(s.fs, s.path, []byte("[]"), 0600); err != nil {
		return false, errors.NewInit(err)
	}
	s.logger.Info("journal initialized", zap.String("path", s.path))
	return true, nil
}
