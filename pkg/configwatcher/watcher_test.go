package configwatcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"progress_charts/internal/config"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, path, uploads string, width int) {
	t.Helper()
	content := fmt.Sprintf("storage:\n  local_path: %q\nrender:\n  width: %d\n", uploads, width)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestWatchReloadsOnWrite(t *testing.T) {
	debounce = 50 * time.Millisecond

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	uploads := filepath.Join(dir, "uploads")
	writeConfig(t, path, uploads, 800)

	reloaded := make(chan *config.Config, 4)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(cfg *config.Config) { reloaded <- cfg })
	}()

	// 等待 watcher 就绪后再改文件
	time.Sleep(200 * time.Millisecond)
	writeConfig(t, path, uploads, 1024)

	select {
	case cfg := <-reloaded:
		require.Equal(t, 1024, cfg.Render.Width)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}

	cancel()
	require.NoError(t, <-done)
}
