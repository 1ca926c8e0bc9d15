package tui

import (
	"fmt"
	"strings"

	"codeberg.org/lendora/server/internal/sessioncache"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// landing screen with a command prompt
type Home struct {
	input    string
	commands []Command
}

// represents an available portal command
type Command struct {
	Name        string
	Description string
	Location    string
}

// returns a new home screen
func NewHome() *Home {
	return &Home{
		commands: []Command{
			{Name: "login", Description: "sign in with your identity provider token", Location: "/login"},
			{Name: "signup", Description: "create your account and finish onboarding", Location: "/signup"},
			{Name: "dashboard", Description: "your account overview", Location: "/user"},
			{Name: "profile", Description: "view and edit your profile", Location: "/user/profile"},
			{Name: "apply", Description: "loan applications", Location: "/user/applications"},
			{Name: "logout", Description: "end this session"},
			{Name: "quit", Description: "exit the portal"},
		},
	}
}

func (m *Home) Update(msg tea.KeyMsg, cache *sessioncache.Cache) (*Home, tea.Cmd) {
	switch msg.String() {
	case "enter":
		cmd := m.executeCommand(cache)
		m.input = ""
		return m, cmd
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	default:
		if len(msg.String()) == 1 {
			m.input += msg.String()
		}
	}

	return m, nil
}

func (m *Home) View(entry sessioncache.Entry) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(logo))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("loans without the paperwork"))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(sessionLine(entry)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(colorWhite).Render("commands:"))
	b.WriteString("\n\n")

	for _, cmd := range m.commands {
		line := fmt.Sprintf("  %s %s",
			commandStyle.Render(cmd.Name),
			commandDescStyle.Render("- "+cmd.Description),
		)
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(promptStyle.Render("> ") + inputStyle.Render(m.input+"_"))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("type a command and press enter. press ctrl+c to quit."))

	return b.String()
}

func (m *Home) executeCommand(cache *sessioncache.Cache) tea.Cmd {
	name := strings.TrimSpace(m.input)

	switch name {
	case "":
		return nil
	case "quit":
		return tea.Quit
	case "logout":
		return logoutCmd(cache)
	}

	for _, cmd := range m.commands {
		if cmd.Name == name && cmd.Location != "" {
			return navigateCmd(cmd.Location)
		}
	}

	return nil
}

func sessionLine(entry sessioncache.Entry) string {
	switch {
	case entry.Loading:
		return "session: checking..."
	case entry.Authenticated && entry.User != nil:
		line := "signed in as " + entry.User.Email
		if !entry.Verified {
			line += " (offline)"
		}
		return line
	case entry.Error != "":
		return "session: " + entry.Error
	default:
		return "not signed in"
	}
}
