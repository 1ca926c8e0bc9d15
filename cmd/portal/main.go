package main

import (
	"fmt"
	"os"
	"path/filepath"

	"codeberg.org/lendora/server/internal/client"
	"codeberg.org/lendora/server/internal/config"
	"codeberg.org/lendora/server/internal/logger"
	"codeberg.org/lendora/server/internal/sessioncache"
	"codeberg.org/lendora/server/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
)

func main() {
	flags := config.ParsePortalFlags(os.Args[1:])

	if !term.IsTerminal(os.Stdout.Fd()) {
		fmt.Println("lendora needs an interactive terminal")
		os.Exit(1)
	}

	storage, err := sessioncache.NewFileStorage(flags.StateDir)
	if err != nil {
		fmt.Printf("error preparing state directory: %v\n", err)
		os.Exit(1)
	}

	// the terminal belongs to the UI, logs go next to the session file
	logFile, err := os.OpenFile(filepath.Join(flags.StateDir, "portal.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Printf("error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger.SetDefault(logger.New(logFile, os.Getenv("ENVIRONMENT"), os.Getenv("LOG_LEVEL")))

	cache := sessioncache.New(client.New(flags.APIURL), storage)
	defer cache.Close()

	app := tui.NewApp(cache, flags.Start)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		logger.ErrorErr(err, "portal exited with error")
		fmt.Printf("error running lendora: %v\n", err)
		os.Exit(1)
	}
}
