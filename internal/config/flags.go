package config

import (
	"flag"
	"os"
	"path/filepath"
)

// parses CLI flags for the portal, falling back to LENDORA_* environment variables
func ParsePortalFlags(args []string) Flags {
	defaults := DefaultPortalFlags()

	fs := flag.NewFlagSet("portal", flag.ExitOnError)
	apiURL := fs.String("api", defaults.APIURL, "base URL of the lendora API")
	stateDir := fs.String("state-dir", defaults.StateDir, "directory for the persisted session")
	start := fs.String("open", defaults.Start, "location to open, e.g. /user/profile")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return Flags{APIURL: *apiURL, StateDir: *stateDir, Start: *start}
}

// returns default portal flags
func DefaultPortalFlags() Flags {
	apiURL := os.Getenv("LENDORA_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080/api"
	}

	stateDir := os.Getenv("LENDORA_STATE_DIR")
	if stateDir == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			stateDir = filepath.Join(dir, "lendora")
		} else {
			stateDir = ".lendora"
		}
	}

	return Flags{APIURL: apiURL, StateDir: stateDir, Start: "/"}
}
