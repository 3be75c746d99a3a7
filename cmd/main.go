// FilePath: cmd/main.go
package main

import (
	"fmt"
	"os"

	tm "github.com/buger/goterm"
	"github.com/itsatony/w4b_v3/server/stations/internal/config"
	"github.com/itsatony/w4b_v3/server/stations/internal/server"
	nuts "github.com/vaudience/go-nuts"
)

func main() {
	// Banner first, logs follow underneath
	ClearConsole()
	DrawLogo()
	nuts.InitVersion()
	nuts.L.Infof("[Main] Starting Stations API v%s", nuts.GetVersion())

	// config.yaml is optional; STATIONS_* env vars override it
	cfg, err := config.Load()
	if err != nil {
		nuts.L.Errorf("[Main] Failed to load configuration: %v", err)
		os.Exit(1)
	}
	logStartup(cfg)

	// Blocks until SIGINT/SIGTERM or a fatal listen error
	if err := server.New(cfg).Start(); err != nil {
		nuts.L.Errorf("[Main] Server error: %v", err)
		os.Exit(1)
	}
	nuts.L.Infof("[Main] Bye")
}

func logStartup(cfg *config.Config) {
	nuts.L.Infof("[Main] Database %s@%s:%d/%s (auto_migrate=%v), station keys of %d chars",
		cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName,
		cfg.Database.AutoMigrate, cfg.Stations.KeyLength)
}

// ClearConsole wipes the terminal so the banner starts at the top.
func ClearConsole() {
	tm.Clear()
	tm.MoveCursor(1, 1)
	tm.Flush()
}

func DrawLogo() {
	fmt.Println()
	lines := []string{
		"   _____ __        __  _                 ",
		"  / ___// /_____ _/ /_(_)___  ____  _____",
		"  \\__ \\/ __/ __ `/ __/ / __ \\/ __ \\/ ___/",
		" ___/ / /_/ /_/ / /_/ / /_/ / / / (__  ) ",
		"/____/\\__/\\__,_/\\__/_/\\____/_/ /_/____/  ",
		"..........................................  " + nuts.GetVersion(),
	}

	for _, line := range lines {
		fmt.Println(line)
	}
}
