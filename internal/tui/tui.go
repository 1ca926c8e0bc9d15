package tui

import (
	"fmt"
	"net/url"

	"codeberg.org/lendora/server/internal/guard"
	"codeberg.org/lendora/server/internal/sessioncache"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// redirects followed for one navigation before giving up
const maxRedirects = 5

// creates the portal app over an unstarted session cache
func NewApp(cache *sessioncache.Cache, start string) *Model {
	updates, cancel := cache.Subscribe()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = infoStyle

	m := &Model{
		cache:   cache,
		updates: updates,
		cancel:  cancel,
		routes:  guard.DefaultRoutes(),
		entry:   cache.Entry(),
		spinner: s,
		home:    NewHome(),
		login:   NewLoginScreen(),
		form:    NewProfileForm(),
	}

	if start == "" {
		start = "/"
	}
	m.navigate(start)

	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, listen(m.updates), startCmd(m.cache))
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancel()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.form.SetWidth(msg.Width)
		m.login.SetWidth(msg.Width)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case EntryMsg:
		m.entry = sessioncache.Entry(msg)
		m.renavigate()
		return m, listen(m.updates)

	case StartedMsg:
		return m, nil

	case NavigateMsg:
		m.err = nil
		m.notice = ""
		m.editing = false
		m.navigate(msg.Location)
		return m, m.focusCmd()

	case LoginDoneMsg:
		m.login.Reset()
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		// the login location carries ?from=, the guard sends us on
		m.navigate(m.location)
		return m, m.focusCmd()

	case ProfileSavedMsg:
		return m.profileSaved(msg)

	case LoggedOutMsg:
		m.notice = "signed out"
		m.navigate("/")
		return m, nil
	}

	return m.updateScreen(msg)
}

func (m *Model) View() string {
	if m.pending != "" {
		return fmt.Sprintf("\n  %s checking your session...\n", m.spinner.View())
	}

	var body string

	switch m.Screen() {
	case ScreenLogin:
		body = m.login.View()
	case ScreenSignup:
		body = m.signupView()
	case ScreenDashboard:
		body = m.dashboardView()
	case ScreenProfile:
		body = m.profileView()
	case ScreenApplications:
		body = m.applicationsView()
	default:
		body = m.home.View(m.entry)
	}

	if m.notice != "" {
		body += "\n\n" + successStyle.Render(m.notice)
	}

	if m.err != nil {
		body += "\n\n" + errorView(m.err)
	}

	return body
}

// the current location, for tests and the status line
func (m *Model) Location() string {
	return m.location
}

// the screen for the current location
func (m *Model) Screen() Screen {
	u, err := url.Parse(m.location)
	if err != nil {
		return ScreenHome
	}

	switch u.Path {
	case m.routes.Login:
		return ScreenLogin
	case m.routes.Onboarding:
		return ScreenSignup
	case m.routes.Home:
		return ScreenDashboard
	case "/user/profile":
		return ScreenProfile
	case "/user/applications":
		return ScreenApplications
	default:
		return ScreenHome
	}
}

// asks the guard about target and follows redirects. Wait parks the target
// until the next cache transition.
func (m *Model) navigate(target string) {
	for i := 0; i < maxRedirects; i++ {
		decision := guard.Check(target, m.entry, m.routes)

		switch decision.Action {
		case guard.Allow:
			m.pending = ""
			m.location = target
			return
		case guard.Wait:
			m.pending = target
			return
		case guard.Redirect:
			target = decision.Location
		}
	}

	m.pending = ""
	m.location = "/"
}

// re-checks the current or parked location after a session transition
func (m *Model) renavigate() {
	target := m.location
	if m.pending != "" {
		target = m.pending
	}

	if target == "" {
		target = "/"
	}

	m.navigate(target)
}

func (m *Model) updateScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.pending != "" {
		return m, nil
	}

	key, isKey := msg.(tea.KeyMsg)

	switch m.Screen() {
	case ScreenLogin:
		if isKey && key.String() == "esc" {
			return m, navigateCmd("/")
		}
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(msg, m.cache)
		return m, cmd

	case ScreenSignup:
		if m.entry.Authenticated {
			return m.updateForm(msg)
		}
		if isKey {
			switch key.String() {
			case "enter":
				return m, navigateCmd("/login?from=%2Fsignup")
			case "esc":
				return m, navigateCmd("/")
			}
		}
		return m, nil

	case ScreenProfile:
		if m.editing {
			return m.updateForm(msg)
		}
		if isKey && key.String() == "e" {
			m.editing = true
			m.form.Load(m.entry.User)
			return m, m.form.Focus()
		}
	}

	if !isKey {
		return m, nil
	}

	if m.Screen() == ScreenHome {
		var cmd tea.Cmd
		m.home, cmd = m.home.Update(key, m.cache)
		return m, cmd
	}

	return m, m.shortcut(key.String())
}

func (m *Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.editing = false
		if m.Screen() == ScreenSignup {
			return m, navigateCmd("/")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg, m.cache)
	return m, cmd
}

func (m *Model) profileSaved(msg ProfileSavedMsg) (tea.Model, tea.Cmd) {
	m.form.Saved(msg.err)

	if msg.err != nil {
		if !m.form.HasFieldErrors() {
			m.err = msg.err
		}
		return m, nil
	}

	m.err = nil
	m.editing = false
	m.notice = "profile saved"

	if m.Screen() == ScreenSignup {
		m.navigate(guard.ReturnTo(m.location, m.routes.Home))
	}

	return m, nil
}

// single-key navigation on read-only screens
func (m *Model) shortcut(key string) tea.Cmd {
	switch key {
	case "h":
		return navigateCmd("/")
	case "u":
		return navigateCmd(m.routes.Home)
	case "p":
		return navigateCmd("/user/profile")
	case "a":
		return navigateCmd("/user/applications")
	case "l":
		return logoutCmd(m.cache)
	case "q":
		m.cancel()
		return tea.Quit
	}

	return nil
}

func (m *Model) focusCmd() tea.Cmd {
	switch m.Screen() {
	case ScreenLogin:
		return m.login.Focus()
	case ScreenSignup:
		if m.entry.Authenticated {
			m.form.Load(m.entry.User)
			return m.form.Focus()
		}
	}

	return nil
}

func errorView(err error) string {
	return errorStyle.Render(fmt.Sprintf("  error: %v", err))
}
