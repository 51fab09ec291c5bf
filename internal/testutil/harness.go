package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/stepconf/internal/app"
	"github.com/vk/stepconf/internal/registry"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// WriteFiles writes files, keyed by slash-separated relative path, below a
// fresh temporary directory and returns the directory.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

// NewRegistry returns a registry holding every core module.
func NewRegistry() *registry.Registry {
	r := registry.New()
	r.RegisterModules(app.CoreModules...)
	return r
}

// HarnessResult holds the outcome of a harness run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	App       *app.App
}

// NewApp writes files to a temporary directory and creates an app over it
// with debug logging. cfg may be used to override further fields; its
// Paths are replaced by the temporary directory.
func NewApp(t *testing.T, files map[string]string, cfg app.Config) (*app.App, *SafeBuffer, *SafeBuffer) {
	t.Helper()

	cfg.Paths = []string{WriteFiles(t, files)}
	cfg.LogLevel = "debug"
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out, logs := &SafeBuffer{}, &SafeBuffer{}
	testApp := app.NewApp(out, logs, appConfig)

	t.Cleanup(func() {
		if os.Getenv("STEPCONF_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	return testApp, out, logs
}

// RunValidate runs the validate operation over files.
func RunValidate(t *testing.T, files map[string]string) *HarnessResult {
	t.Helper()
	testApp, out, logs := NewApp(t, files, app.Config{})
	err := testApp.Validate(context.Background())
	return &HarnessResult{Output: out.String(), LogOutput: logs.String(), Err: err, App: testApp}
}
