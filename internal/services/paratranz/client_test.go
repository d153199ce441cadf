package paratranz

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"gloss/internal/services"
)

type fakeExecutor struct {
	binary string
	args   []string
	lines  []string
	err    error
	delay  func(ctx context.Context) error
}

func (f *fakeExecutor) Run(ctx context.Context, binary string, args []string, onLine func(string)) error {
	f.binary = binary
	f.args = args
	for _, line := range f.lines {
		onLine(line)
	}
	if f.delay != nil {
		if err := f.delay(ctx); err != nil {
			return err
		}
	}
	return f.err
}

func tempDirs(t *testing.T) (project, oldDir, newDir string) {
	t.Helper()
	base := t.TempDir()
	project = filepath.Join(base, "tool")
	oldDir = filepath.Join(base, "old")
	newDir = filepath.Join(base, "new")
	for _, dir := range []string{project, oldDir, newDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	return project, oldDir, newDir
}

func TestUpdateBuildsCommandLine(t *testing.T) {
	project, oldDir, newDir := tempDirs(t)
	output := filepath.Join(t.TempDir(), "out")

	fake := &fakeExecutor{lines: []string{"merging entries"}}
	client, err := New("dotnet", project, 30, nil, WithExecutor(fake))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := client.Update(context.Background(), oldDir, newDir, output); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if fake.binary != "dotnet" {
		t.Fatalf("binary = %q, want dotnet", fake.binary)
	}
	want := []string{"run", "--project", project, "--", "update-asset", "--old", oldDir, "--new", newDir, "--output", output}
	if len(fake.args) != len(want) {
		t.Fatalf("args = %v, want %v", fake.args, want)
	}
	for i := range want {
		if fake.args[i] != want[i] {
			t.Fatalf("args[%d] = %q, want %q", i, fake.args[i], want[i])
		}
	}
	if _, err := os.Stat(output); err != nil {
		t.Fatalf("output directory not created: %v", err)
	}
}

func TestUpdateMissingExecutable(t *testing.T) {
	project, oldDir, newDir := tempDirs(t)
	fake := &fakeExecutor{err: exec.ErrNotFound}
	client, err := New("dotnet", project, 0, nil, WithExecutor(fake))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = client.Update(context.Background(), oldDir, newDir, filepath.Join(t.TempDir(), "out"))
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("error = %v, want ErrExternalTool", err)
	}
}

func TestUpdateTimeout(t *testing.T) {
	project, oldDir, newDir := tempDirs(t)
	fake := &fakeExecutor{delay: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}}
	client, err := New("dotnet", project, 1, nil, WithExecutor(fake))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = client.Update(context.Background(), oldDir, newDir, filepath.Join(t.TempDir(), "out"))
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("error = %v, want ErrTimeout", err)
	}
}

func TestUpdateRejectsMissingInputs(t *testing.T) {
	project, _, newDir := tempDirs(t)
	client, err := New("dotnet", project, 0, nil, WithExecutor(&fakeExecutor{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = client.Update(context.Background(), filepath.Join(t.TempDir(), "absent"), newDir, t.TempDir())
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
}

func TestNewRequiresBinary(t *testing.T) {
	if _, err := New("", "proj", 0, nil); err == nil {
		t.Fatal("expected error for empty binary")
	}
	if _, err := New("dotnet", "  ", 0, nil); err == nil {
		t.Fatal("expected error for empty project dir")
	}
}
