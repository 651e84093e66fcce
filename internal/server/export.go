// FilePath: internal/server/export.go
package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kc0bfv/power-sensor-monitor/internal/config"
	"github.com/kc0bfv/power-sensor-monitor/internal/dashboard"
	"github.com/kc0bfv/power-sensor-monitor/internal/fetcher"
	"github.com/kc0bfv/power-sensor-monitor/internal/models"
	"github.com/kc0bfv/power-sensor-monitor/internal/view"
	nuts "github.com/vaudience/go-nuts"
	"go.uber.org/zap"
)

// Export renders the dashboard for the key in address's fragment into
// outDir as index.html plus one PNG per chart. When the data cannot be
// fetched, index.html holds the alert page and the fetch error is returned.
func Export(ctx context.Context, cfg config.DashboardConfig, logger *zap.Logger, address, outDir string) error {
	key := dashboard.ReadKey(address)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", outDir, err)
	}

	var alert string
	client := NewFetcher(cfg).WithAlerter(fetcher.AlerterFunc(func(message string) {
		alert = message
		fetcher.LogAlerter{}.Alert(message)
	}))
	renderer := dashboard.NewRenderer(RenderOptions(cfg, logger))
	page := view.NewPage(key)
	images := view.NewPNG(0, 0)

	err := client.Load(ctx, key, func(record *models.RawRecord) error {
		if err := renderer.Render(record, page); err != nil {
			return err
		}
		return renderer.Render(record, images)
	})

	index, ferr := os.Create(filepath.Join(outDir, "index.html"))
	if ferr != nil {
		return ferr
	}
	defer index.Close()

	if alert != "" {
		if werr := view.WriteAlert(index, alert); werr != nil {
			return werr
		}
		return err
	}
	if err != nil {
		return err
	}
	if err := page.Write(index); err != nil {
		return err
	}

	for _, id := range images.IDs() {
		img, err := images.Image(id)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(outDir, id+".png"), img, 0644); err != nil {
			return err
		}
	}
	nuts.L.Infof("[Export] Wrote dashboard for %q to %s (status %s)", key, outDir, images.Status())
	return nil
}
