// Package tasksfilestore keeps the task collection in a single local file.
//
// The file holds a list of records with exactly the keys title, description,
// category and completed. JSON is used unless the path ends in .yaml or .yml.
// Every Save rewrites the whole file atomically.
package tasksfilestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jrazmi/todolist/core/repositories/tasksrepo"
	"github.com/jrazmi/todolist/infrastructure/filedb"
	"github.com/jrazmi/todolist/sdk/cryptids"
	"github.com/jrazmi/todolist/sdk/logger"
)

const filePerm = 0o644

// Options configures the file store.
type Options struct {
	Path          string `env:"FILE_PATH" default:"tasks.json"`
	BackupCorrupt bool   `env:"BACKUP_CORRUPT" default:"true"`
}

// Store provides file access for Task collections.
type Store struct {
	log           *logger.Logger
	path          string
	codec         codec
	backupCorrupt bool
}

// NewStore creates a Store for opts.Path.
func NewStore(log *logger.Logger, opts Options) (*Store, error) {
	if opts.Path == "" {
		return nil, errors.New("file store path is required")
	}
	return &Store{
		log:           log.With("mod", "tasksfilestore", "path", opts.Path),
		path:          opts.Path,
		codec:         codecFor(opts.Path),
		backupCorrupt: opts.BackupCorrupt,
	}, nil
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Load reads every task from the file in file order. A missing file yields an
// empty collection. Content that does not decode yields an error wrapping
// tasksrepo.ErrCorruptStorage; when backups are enabled the unreadable file is
// first copied aside so the next Save cannot destroy it.
func (s *Store) Load(ctx context.Context) ([]tasksrepo.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.DebugContext(ctx, "task file not found, starting empty")
		return []tasksrepo.Task{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	tasks, err := s.decode(data)
	if err != nil {
		if s.backupCorrupt {
			s.backup(ctx)
		}
		return nil, fmt.Errorf("%w: %s: %v", tasksrepo.ErrCorruptStorage, s.path, err)
	}

	return tasks, nil
}

// Save overwrites the file with tasks in the given order.
func (s *Store) Save(ctx context.Context, tasks []tasksrepo.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := s.codec.marshal(encodeRecords(tasks))
	if err != nil {
		return fmt.Errorf("encoding tasks: %w", err)
	}
	err = filedb.WriteFileAtomic(s.path, data, filePerm)
	switch {
	case errors.Is(err, filedb.ErrDirSync):
		s.log.WarnContext(ctx, "tasks written but directory not synced", "err", err)
	case err != nil:
		return err
	}

	s.log.DebugContext(ctx, "tasks saved", "count", len(tasks))
	return nil
}

func (s *Store) decode(data []byte) ([]tasksrepo.Task, error) {
	records, err := s.codec.unmarshal(data)
	if err != nil {
		return nil, err
	}
	return decodeRecords(records)
}

// backup copies the unreadable file to <path>.corrupt-<id>. Failure is logged
// and otherwise ignored.
func (s *Store) backup(ctx context.Context) {
	id, err := cryptids.GenerateID()
	if err != nil {
		s.log.WarnContext(ctx, "naming corrupt task file backup", "err", err)
		return
	}

	dst := s.path + ".corrupt-" + id
	if err := filedb.CopyFile(s.path, dst); err != nil {
		s.log.WarnContext(ctx, "backing up corrupt task file", "backup", dst, "err", err)
		return
	}
	s.log.WarnContext(ctx, "corrupt task file backed up", "backup", dst)
}
