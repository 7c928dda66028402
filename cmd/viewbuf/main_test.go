package main

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/vango-dev/viewbuf/internal/config"
	"github.com/vango-dev/viewbuf/internal/errors"
)

func newTestApp(t *testing.T) *app {
	t.Helper()
	a := &app{stdout: io.Discard, stderr: io.Discard}
	a.init(config.Default())
	return a
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestVersionShort(t *testing.T) {
	out, _, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version output = %q", out)
	}
}

func TestRenderCommand(t *testing.T) {
	out, _, err := execute(t, "render", "about")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	if !strings.HasPrefix(out, "<!DOCTYPE html>") || !strings.Contains(out, "<h1>About</h1>") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRenderCommandStream(t *testing.T) {
	out, _, err := execute(t, "render", "stream", "--stream")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	if !strings.Contains(out, `<li data-row="100">Row 100</li>`) {
		t.Errorf("streamed output incomplete: %q", out)
	}
}

func TestRenderCommandUnknownPage(t *testing.T) {
	_, _, err := execute(t, "render", "missing")
	if !errors.HasCode(err, errors.CodeUnknownPage) {
		t.Fatalf("expected %s, got %v", errors.CodeUnknownPage, err)
	}
}

func TestRenderCommandBadConfig(t *testing.T) {
	t.Setenv("VIEWBUF_LOG_FORMAT", "xml")
	_, _, err := execute(t, "render")
	if !errors.HasCode(err, errors.CodeInvalidConfig) {
		t.Fatalf("expected %s, got %v", errors.CodeInvalidConfig, err)
	}
}

func TestRunBuild(t *testing.T) {
	a := newTestApp(t)
	var stderr bytes.Buffer
	a.stderr = &stderr
	a.cfg.Build.Out = "site"

	fs := afero.NewMemMapFs()
	if err := runBuild(context.Background(), a, fs); err != nil {
		t.Fatalf("runBuild() error = %v", err)
	}
	for _, name := range a.site.Names() {
		if ok, _ := afero.Exists(fs, filepath.Join("site", name+".html")); !ok {
			t.Errorf("missing %s.html", name)
		}
	}
	if !strings.Contains(stderr.String(), "built 3 pages into site") {
		t.Errorf("stderr = %q", stderr.String())
	}
}
