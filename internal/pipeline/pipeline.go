// Package pipeline chains the full localization cycle for a set of
// asset containers: extract text, merge against the previous corpus
// through the external update tool, apply the merged translations, and
// serialize patched containers. One run owns the working directory via
// a file lock so concurrent invocations cannot interleave output.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"gloss/internal/application"
	"gloss/internal/assetgraph/memgraph"
	"gloss/internal/config"
	"gloss/internal/extraction"
	"gloss/internal/fileutil"
	"gloss/internal/fontadopt"
	"gloss/internal/logging"
	"gloss/internal/processors"
	"gloss/internal/records"
	"gloss/internal/services"
)

// Working directory layout for one run.
const (
	extractedDirName = "1_extracted"
	updatedDirName   = "2_updated"
	patchedDirName   = "3_patched"
	lockFileName     = "gloss.lock"
)

// Updater merges an old corpus directory with a freshly extracted one.
type Updater interface {
	Update(ctx context.Context, oldDir, newDir, outputDir string) error
}

// Options selects the inputs of one pipeline run.
type Options struct {
	// Sources are the asset container files to localize.
	Sources []string
	// OldCorpusDir holds the previous run's corpora. Empty skips the
	// update tool and applies the extracted corpora directly.
	OldCorpusDir string
	// FontDonor and FontConfig enable the font transplant step on every
	// patched container. Both must be set together.
	FontDonor  string
	FontConfig string
}

// ContainerResult reports the outcome for one source container.
type ContainerResult struct {
	Source    string
	Patched   string
	Extracted int
	Applied   int
	Skipped   int
	Failed    int
}

// Summary aggregates one pipeline run.
type Summary struct {
	RunID      string
	Containers []ContainerResult
	Fonts      *fontadopt.Summary
}

// Runner executes pipeline runs against a fixed configuration.
type Runner struct {
	cfg     *config.Config
	updater Updater
	logger  *slog.Logger
}

// New constructs a Runner. updater may be nil when runs never pass an
// old corpus directory.
func New(cfg *config.Config, updater Updater, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		cfg:     cfg,
		updater: updater,
		logger:  logger.With(logging.String(logging.FieldComponent, "pipeline")),
	}
}

// Run executes the full cycle for opts. The working directory is locked
// for the duration; a second concurrent run fails fast instead of
// corrupting intermediate state.
func (r *Runner) Run(ctx context.Context, opts Options) (*Summary, error) {
	if len(opts.Sources) == 0 {
		return nil, services.Wrap(services.ErrValidation, "pipeline", "options",
			"at least one source container required", nil)
	}
	if (opts.FontDonor == "") != (opts.FontConfig == "") {
		return nil, services.Wrap(services.ErrValidation, "pipeline", "options",
			"font donor and font config must be set together", nil)
	}
	if err := r.cfg.EnsureDirectories(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "directories",
			"ensure directories", err)
	}

	lock := flock.New(filepath.Join(r.cfg.Paths.WorkDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "pipeline", "lock",
			"acquire work directory lock", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrValidation, "pipeline", "lock",
			"another run holds the work directory", nil)
	}
	defer func() { _ = lock.Unlock() }()

	summary := &Summary{RunID: uuid.NewString()}
	logger := r.logger.With(logging.String(logging.FieldRunID, summary.RunID))
	logger.Info("pipeline run starting", logging.Int("containers", len(opts.Sources)))

	dirs, err := r.prepareDirs()
	if err != nil {
		return nil, err
	}

	registry := processors.NewRegistry()
	for _, source := range opts.Sources {
		result, err := r.extractOne(source, dirs.extracted, registry, logger)
		if err != nil {
			return nil, err
		}
		summary.Containers = append(summary.Containers, result)
	}

	corpusDir := dirs.extracted
	if opts.OldCorpusDir != "" {
		if r.updater == nil {
			return nil, services.Wrap(services.ErrConfiguration, "pipeline", "update",
				"update tool not configured", nil)
		}
		if err := r.updater.Update(ctx, opts.OldCorpusDir, dirs.extracted, dirs.updated); err != nil {
			return nil, err
		}
		corpusDir = dirs.updated
	}

	var donor *memgraph.Container
	var fontCfg *fontadopt.Config
	if opts.FontConfig != "" {
		fontCfg, err = fontadopt.LoadConfig(opts.FontConfig)
		if err != nil {
			return nil, err
		}
		donor, err = memgraph.Load(opts.FontDonor)
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, "pipeline", "font",
				fmt.Sprintf("load donor container %s", opts.FontDonor), err)
		}
	}

	for i, source := range opts.Sources {
		if err := r.patchOne(&summary.Containers[i], source, corpusDir, dirs.patched, registry, donor, fontCfg, summary, logger); err != nil {
			return nil, err
		}
	}

	logger.Info("pipeline run complete")
	return summary, nil
}

type runDirs struct {
	extracted string
	updated   string
	patched   string
}

func (r *Runner) prepareDirs() (runDirs, error) {
	dirs := runDirs{
		extracted: filepath.Join(r.cfg.Paths.WorkDir, extractedDirName),
		updated:   filepath.Join(r.cfg.Paths.WorkDir, updatedDirName),
		patched:   filepath.Join(r.cfg.Paths.WorkDir, patchedDirName),
	}
	for _, dir := range []string{dirs.extracted, dirs.updated, dirs.patched} {
		if err := os.RemoveAll(dir); err != nil {
			return runDirs{}, fmt.Errorf("clear %s: %w", dir, err)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return runDirs{}, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return dirs, nil
}

func (r *Runner) extractOne(source, extractedDir string, registry *processors.Registry, logger *slog.Logger) (ContainerResult, error) {
	container, err := memgraph.Load(source)
	if err != nil {
		return ContainerResult{}, services.Wrap(services.ErrValidation, "pipeline", "extract",
			fmt.Sprintf("load container %s", source), err)
	}
	logger = logger.With(logging.String(logging.FieldContainer, container.Name()))

	result := extraction.Run(container, registry, logger)
	corpusPath := filepath.Join(extractedDir, corpusName(source))
	if err := records.Save(corpusPath, result.Entries); err != nil {
		return ContainerResult{}, services.Wrap(services.ErrValidation, "pipeline", "extract",
			"save extracted corpus", err)
	}
	logger.Info("extraction complete",
		logging.Int("entries", len(result.Entries)),
		logging.Int("collisions", len(result.Collisions)))
	return ContainerResult{Source: source, Extracted: len(result.Entries)}, nil
}

func (r *Runner) patchOne(into *ContainerResult, source, corpusDir, patchedDir string, registry *processors.Registry, donor *memgraph.Container, fontCfg *fontadopt.Config, summary *Summary, logger *slog.Logger) error {
	corpusPath := filepath.Join(corpusDir, corpusName(source))
	entries, err := records.Load(corpusPath)
	if err != nil {
		return services.Wrap(services.ErrValidation, "pipeline", "apply",
			fmt.Sprintf("load corpus %s", corpusPath), err)
	}

	patched := filepath.Join(patchedDir, filepath.Base(source))
	if err := fileutil.CopyFileVerified(source, patched); err != nil {
		return services.Wrap(services.ErrValidation, "pipeline", "apply",
			"stage container copy", err)
	}
	container, err := memgraph.Load(patched)
	if err != nil {
		return services.Wrap(services.ErrValidation, "pipeline", "apply",
			fmt.Sprintf("load staged container %s", patched), err)
	}
	logger = logger.With(logging.String(logging.FieldContainer, container.Name()))

	applied := application.Run(container, entries, registry, logger)
	into.Patched = patched
	into.Applied = applied.Applied
	into.Skipped = applied.SkippedRecords
	into.Failed = applied.Failed

	if fontCfg != nil {
		fonts, err := fontadopt.Run(container, donor, fontCfg, logger)
		if err != nil {
			return err
		}
		if summary.Fonts == nil {
			summary.Fonts = &fontadopt.Summary{}
		}
		summary.Fonts.FontAssets += fonts.FontAssets
		summary.Fonts.Textures += fonts.Textures
		summary.Fonts.Materials += fonts.Materials
	}

	if err := container.WriteFile(patched); err != nil {
		return services.Wrap(services.ErrValidation, "pipeline", "serialize",
			fmt.Sprintf("write patched container %s", patched), err)
	}
	logger.Info("container patched", logging.Int("applied", applied.Applied))
	return nil
}

func corpusName(source string) string {
	base := filepath.Base(source)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base + ".json"
}
