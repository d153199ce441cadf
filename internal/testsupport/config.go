package testsupport

import (
	"path/filepath"
	"testing"

	"gloss/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.WorkDir = filepath.Join(base, "work")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Corpus.DatabasePath = filepath.Join(base, "corpus.db")
	cfgVal.Update.ProjectDir = filepath.Join(base, "tool")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithUpdateTool sets the update tool binary and project directory.
func WithUpdateTool(binary, projectDir string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Update.Binary = binary
		b.cfg.Update.ProjectDir = projectDir
	}
}

// WithLogFormat overrides the log format on the test config.
func WithLogFormat(format string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Logging.Format = format
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.WorkDir)
}
