package tui

import (
	"context"
	"time"

	"codeberg.org/lendora/server/internal/client"
	"codeberg.org/lendora/server/internal/sessioncache"
	tea "github.com/charmbracelet/bubbletea"
)

const requestTimeout = 15 * time.Second

// waits for the next session cache transition
func listen(updates <-chan sessioncache.Entry) tea.Cmd {
	return func() tea.Msg {
		entry, ok := <-updates
		if !ok {
			return nil
		}
		return EntryMsg(entry)
	}
}

// loads the persisted snapshot and reconciles it with the server
func startCmd(cache *sessioncache.Cache) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		cache.Start(ctx)
		return StartedMsg{}
	}
}

func loginCmd(cache *sessioncache.Cache, assertion string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		_, err := cache.Login(ctx, assertion)
		return LoginDoneMsg{err: err}
	}
}

func updateProfileCmd(cache *sessioncache.Cache, update client.ProfileUpdate) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		user, err := cache.UpdateProfile(ctx, update)
		return ProfileSavedMsg{user: user, err: err}
	}
}

func logoutCmd(cache *sessioncache.Cache) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		cache.Logout(ctx)
		return LoggedOutMsg{}
	}
}

func navigateCmd(location string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Location: location}
	}
}
