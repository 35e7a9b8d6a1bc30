package render

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"

	"crime-report/utils"
)

// MapSnapshot captures a static PNG of the rendered interactive map with a
// headless browser. It is an optional stage: the base pipeline never touches
// a browser unless MAP_SNAPSHOT is enabled.
type MapSnapshot struct {
	logger    *utils.Logger
	chromeBin string
}

// NewMapSnapshot creates a MapSnapshot. chromeBin may be empty, in which
// case common browser binaries are searched on PATH.
func NewMapSnapshot(chromeBin string, logger *utils.Logger) *MapSnapshot {
	return &MapSnapshot{logger: logger, chromeBin: chromeBin}
}

// Capture loads the map document from disk and writes a full-page PNG
// screenshot to outPath.
func (m *MapSnapshot) Capture(mapPath, outPath string) error {
	abs, err := filepath.Abs(mapPath)
	if err != nil {
		return fmt.Errorf("snapshot: resolve %q: %w", mapPath, err)
	}

	bin := m.chromeBin
	if bin == "" {
		bin = findChromeBinary()
	}
	m.logger.Info("[snapshot] Using browser binary: %s", bin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
	)
	if bin != "" {
		opts = append(opts, chromedp.ExecPath(bin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	ctx, cancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancel()

	var buf []byte
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(1200, 800),
		chromedp.Navigate("file://" + abs),
		// Let tiles and cluster icons settle before capturing.
		chromedp.Sleep(3 * time.Second),
		chromedp.FullScreenshot(&buf, 90),
	}
	if err := chromedp.Run(ctx, tasks); err != nil {
		return fmt.Errorf("snapshot: capture: %w", err)
	}

	if err := os.WriteFile(outPath, buf, 0644); err != nil {
		return fmt.Errorf("snapshot: write %q: %w", outPath, err)
	}

	m.logger.Info("[snapshot] Wrote %s", outPath)
	return nil
}

func findChromeBinary() string {
	candidates := []string{
		"google-chrome", "google-chrome-stable",
		"chromium", "chromium-browser", "chrome",
	}
	for _, c := range candidates {
		if path, err := exec.LookPath(c); err == nil {
			return path
		}
	}
	return ""
}
