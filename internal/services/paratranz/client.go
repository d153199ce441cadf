// Package paratranz wraps the external translation-memory tool that
// merges old and new corpora. The tool is a .NET project invoked as a
// blocking child process; its combined output is forwarded line by line
// while the caller waits for exit.
package paratranz

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"gloss/internal/logging"
	"gloss/internal/services"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onLine func(string)) error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client invokes the translation-memory update tool.
type Client struct {
	binary     string
	projectDir string
	timeout    time.Duration
	exec       Executor
	logger     *slog.Logger
}

// New constructs a client. binary is the dotnet executable, projectDir
// the tool's project locator. A zero timeout waits indefinitely.
func New(binary, projectDir string, timeoutSeconds int, logger *slog.Logger, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("update tool binary required")
	}
	if strings.TrimSpace(projectDir) == "" {
		return nil, errors.New("update tool project directory required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	client := &Client{
		binary:     binary,
		projectDir: projectDir,
		timeout:    time.Duration(timeoutSeconds) * time.Second,
		exec:       commandExecutor{},
		logger:     logger.With(logging.String(logging.FieldComponent, "paratranz")),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Update merges the old corpus directory with the freshly extracted
// one into outputDir. It blocks until the tool exits; a non-zero exit
// or a missing executable is one fatal error.
func (c *Client) Update(ctx context.Context, oldDir, newDir, outputDir string) error {
	for _, dir := range []string{c.projectDir, oldDir, newDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return services.Wrap(services.ErrValidation, "update", "inputs",
				fmt.Sprintf("directory %s not found", dir), nil)
		}
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return services.Wrap(services.ErrValidation, "update", "output",
			"create output directory", err)
	}

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := []string{
		"run",
		"--project", c.projectDir,
		"--",
		"update-asset",
		"--old", oldDir,
		"--new", newDir,
		"--output", outputDir,
	}
	c.logger.Info("running update tool", logging.String("binary", c.binary))

	err := c.exec.Run(runCtx, c.binary, args, func(line string) {
		c.logger.Info(line)
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, exec.ErrNotFound):
		return services.Wrap(services.ErrExternalTool, "update", "run",
			fmt.Sprintf("%s not found in PATH", c.binary), err)
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		return services.Wrap(services.ErrTimeout, "update", "run",
			fmt.Sprintf("tool exceeded %s", c.timeout), err)
	default:
		return services.Wrap(services.ErrExternalTool, "update", "run",
			"update tool failed", err)
	}
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, onLine func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}

	var wg sync.WaitGroup
	var scanErr error
	var once sync.Once

	scan := func(r io.Reader) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if onLine != nil {
				onLine(scanner.Text())
			}
		}
		if err := scanner.Err(); err != nil {
			once.Do(func() {
				scanErr = err
			})
		}
	}

	wg.Add(2)
	go scan(stdout)
	go scan(stderr)

	wg.Wait()
	if scanErr != nil {
		_ = cmd.Process.Kill()
		return fmt.Errorf("scan output: %w", scanErr)
	}

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("wait command: %w", err)
	}
	return nil
}
