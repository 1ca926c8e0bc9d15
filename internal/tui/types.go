package tui

import (
	"codeberg.org/lendora/server/internal/client"
	"codeberg.org/lendora/server/internal/guard"
	"codeberg.org/lendora/server/internal/sessioncache"
	"github.com/charmbracelet/bubbles/spinner"
)

// the screen rendered for the current location
type Screen int

const (
	ScreenHome Screen = iota
	ScreenLogin
	ScreenSignup
	ScreenDashboard
	ScreenProfile
	ScreenApplications
)

// main TUI application model
type Model struct {
	cache   *sessioncache.Cache
	updates <-chan sessioncache.Entry
	cancel  func()
	routes  guard.Routes

	entry    sessioncache.Entry
	location string
	// a protected location waiting for reconciliation to finish
	pending string

	width   int
	height  int
	spinner spinner.Model
	home    *Home
	login   *LoginScreen
	form    *ProfileForm
	editing bool
	notice  string
	err     error
}

// sent on every session cache transition
type EntryMsg sessioncache.Entry

// sent when startup reconciliation completes
type StartedMsg struct{}

// sent when a login attempt completes
type LoginDoneMsg struct {
	err error
}

// sent when a profile update completes
type ProfileSavedMsg struct {
	user *client.User
	err  error
}

// sent when logout completes
type LoggedOutMsg struct{}

// asks the app to navigate
type NavigateMsg struct {
	Location string
}
