package environment_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jrazmi/todolist/sdk/environment"
)

type testConfig struct {
	Path     string        `env:"FILE_PATH" default:"tasks.json"`
	Backup   bool          `env:"BACKUP" default:"true"`
	MaxConns int           `env:"MAX_CONNS" default:"4"`
	Timeout  time.Duration `env:"TIMEOUT" default:"1m"`
	Tags     []string      `env:"TAGS" separator:";"`
	ignored  string        `env:"IGNORED"`
	NoTag    string
}

func TestParseEnvTagsDefaults(t *testing.T) {
	var cfg testConfig
	if err := environment.ParseEnvTags("TESTAPP", &cfg); err != nil {
		t.Fatalf("ParseEnvTags: %v", err)
	}

	if cfg.Path != "tasks.json" {
		t.Errorf("Path = %q, want tasks.json", cfg.Path)
	}
	if !cfg.Backup {
		t.Error("Backup = false, want true")
	}
	if cfg.MaxConns != 4 {
		t.Errorf("MaxConns = %d, want 4", cfg.MaxConns)
	}
	if cfg.Timeout != time.Minute {
		t.Errorf("Timeout = %v, want 1m", cfg.Timeout)
	}
	if cfg.Tags != nil {
		t.Errorf("Tags = %v, want nil", cfg.Tags)
	}
	if cfg.ignored != "" || cfg.NoTag != "" {
		t.Error("untagged or unexported fields should be left alone")
	}
}

func TestParseEnvTagsOverrides(t *testing.T) {
	t.Setenv("TESTAPP_FILE_PATH", "/tmp/todo.yaml")
	t.Setenv("TESTAPP_BACKUP", "false")
	t.Setenv("TESTAPP_MAX_CONNS", "12")
	t.Setenv("TESTAPP_TIMEOUT", "250ms")
	t.Setenv("TESTAPP_TAGS", "home; work ;errands")

	var cfg testConfig
	if err := environment.ParseEnvTags("TESTAPP", &cfg); err != nil {
		t.Fatalf("ParseEnvTags: %v", err)
	}

	want := testConfig{
		Path:     "/tmp/todo.yaml",
		Backup:   false,
		MaxConns: 12,
		Timeout:  250 * time.Millisecond,
		Tags:     []string{"home", "work", "errands"},
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("cfg = %+v, want %+v", cfg, want)
	}
}

func TestParseEnvTagsErrors(t *testing.T) {
	t.Run("not a pointer", func(t *testing.T) {
		if err := environment.ParseEnvTags("", testConfig{}); err == nil {
			t.Fatal("expected error for non-pointer cfg")
		}
	})

	t.Run("required missing", func(t *testing.T) {
		var cfg struct {
			URL string `env:"URL" required:"true"`
		}
		err := environment.ParseEnvTags("TESTREQ", &cfg)
		if err == nil || !strings.Contains(err.Error(), "TESTREQ_URL") {
			t.Fatalf("err = %v, want mention of TESTREQ_URL", err)
		}
	})

	t.Run("bad bool", func(t *testing.T) {
		t.Setenv("TESTBAD_BACKUP", "maybe")
		var cfg testConfig
		if err := environment.ParseEnvTags("TESTBAD", &cfg); err == nil {
			t.Fatal("expected parse error")
		}
	})
}

func TestLoadPathMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.env")
	if err := environment.LoadPath(missing); err != nil {
		t.Fatalf("LoadPath(missing) = %v, want nil", err)
	}
}

func TestLoadPathKeepsProcessEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "TESTDOT_FILE_PATH=from-dotenv.json\nTESTDOT_ONLY_IN_FILE=yes\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TESTDOT_FILE_PATH", "from-process.json")
	t.Setenv("TESTDOT_ONLY_IN_FILE", "")
	os.Unsetenv("TESTDOT_ONLY_IN_FILE")

	if err := environment.LoadPath(path); err != nil {
		t.Fatalf("LoadPath: %v", err)
	}
	if got := os.Getenv("TESTDOT_FILE_PATH"); got != "from-process.json" {
		t.Errorf("TESTDOT_FILE_PATH = %q, want process value", got)
	}
	if got := environment.GetPrefixEnvOrDefault("TESTDOT", "ONLY_IN_FILE", "no"); got != "yes" {
		t.Errorf("TESTDOT_ONLY_IN_FILE = %q, want yes", got)
	}
}
