package tui

import (
	"strings"

	"codeberg.org/lendora/server/internal/sessioncache"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// accepts a pasted ID token from the identity provider
type LoginScreen struct {
	input      textinput.Model
	submitting bool
}

func NewLoginScreen() *LoginScreen {
	ti := textinput.New()
	ti.Placeholder = "paste your ID token"
	ti.CharLimit = 0
	ti.Width = 60
	ti.Prompt = "> "
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorLightGray)
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorWhite)

	return &LoginScreen{input: ti}
}

func (m *LoginScreen) SetWidth(width int) {
	if width > 10 {
		m.input.Width = width - 10
	}
}

func (m *LoginScreen) Focus() tea.Cmd {
	return m.input.Focus()
}

// clears the input after an attempt
func (m *LoginScreen) Reset() {
	m.submitting = false
	m.input.SetValue("")
}

func (m *LoginScreen) Update(msg tea.Msg, cache *sessioncache.Cache) (*LoginScreen, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		assertion := strings.TrimSpace(m.input.Value())
		if assertion == "" || m.submitting {
			return m, nil
		}

		m.submitting = true
		return m, loginCmd(cache, assertion)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *LoginScreen) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("sign in"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("paste the ID token issued by your identity provider"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.submitting {
		b.WriteString("\n")
		b.WriteString(infoStyle.Render("signing in..."))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("enter to sign in. esc to go back."))

	return b.String()
}
