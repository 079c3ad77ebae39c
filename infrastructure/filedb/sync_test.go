package filedb

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomicDirSyncFailureKeepsContent(t *testing.T) {
	orig := syncDir
	t.Cleanup(func() { syncDir = orig })
	errSync := errors.New("sync refused")
	syncDir = func(string) error { return errSync }

	path := filepath.Join(t.TempDir(), "tasks.json")
	err := WriteFileAtomic(path, []byte("landed"), 0o644)
	if !errors.Is(err, ErrDirSync) || !errors.Is(err, errSync) {
		t.Fatalf("WriteFileAtomic error = %v, want ErrDirSync wrapping the cause", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "landed" {
		t.Errorf("content = %q, want landed", got)
	}
}
