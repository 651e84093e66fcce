// FilePath: cmd/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	tm "github.com/buger/goterm"
	"github.com/kc0bfv/power-sensor-monitor/internal/config"
	"github.com/kc0bfv/power-sensor-monitor/internal/logging"
	"github.com/kc0bfv/power-sensor-monitor/internal/server"
	nuts "github.com/vaudience/go-nuts"
)

func main() {
	render := flag.String("render", "", "render the dashboard for this address (key after '#') and exit")
	out := flag.String("out", "dashboard", "output directory for -render")
	monitorOnce := flag.Bool("monitor", false, "run the sensor health check once and exit")
	flag.Parse()

	// Initialize version info
	nuts.InitVersion()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	switch {
	case *render != "":
		logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
		if err != nil {
			log.Fatalf("Failed to create logger: %v", err)
		}
		defer logger.Sync()
		if err := server.Export(context.Background(), cfg.Dashboard, logger, *render, *out); err != nil {
			nuts.L.Errorf("[Main] Render failed: %v", err)
			os.Exit(1)
		}
		return

	case *monitorOnce:
		if cfg.Monitor.URL == "" {
			log.Fatalf("monitor.url is not configured")
		}
		alerts, err := server.NewMonitor(cfg.Monitor).Run(context.Background())
		if err != nil {
			os.Exit(1)
		}
		for _, alert := range alerts {
			fmt.Println(alert)
		}
		return
	}

	// Clear console and draw logo
	ClearConsole()
	DrawLogo()
	nuts.L.Infof("[Main] Starting Power Sensor Monitor v%s", nuts.GetVersion())

	// Create and start server
	srv := server.New(cfg)
	if err := srv.Start(); err != nil {
		nuts.L.Errorf("[Main] Server error: %v", err)
		os.Exit(1)
	}
}

// ClearConsole clears the console screen and draws the logo.
func ClearConsole() {
	tm.Clear()
	tm.MoveCursor(1, 1)
	tm.Flush()
}

func DrawLogo() {
	fmt.Println()
	lines := []string{
		"    ____                          __  ___            _ __            ",
		"   / __ \\____ _      _____  _____/  |/  /___  ____  (_) /_____  _____",
		"  / /_/ / __ \\ | /| / / _ \\/ ___/ /|_/ / __ \\/ __ \\/ / __/ __ \\/ ___/",
		" / ____/ /_/ / |/ |/ /  __/ /  / /  / / /_/ / / / / / /_/ /_/ / /    ",
		"/_/    \\____/|__/|__/\\___/_/  /_/  /_/\\____/_/ /_/_/\\__/\\____/_/     ",
		"......................................................................  " + tm.Color(nuts.GetVersion(), tm.GREEN),
	}

	for _, line := range lines {
		fmt.Println(line)
	}
}
