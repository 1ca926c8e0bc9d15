package tui

import (
	"strings"

	"codeberg.org/lendora/server/internal/client"
)

const notProvided = "Not provided"

func (m *Model) signupView() string {
	var b strings.Builder

	if !m.entry.Authenticated {
		b.WriteString(titleStyle.Render("create your account"))
		b.WriteString("\n")
		b.WriteString(subtitleStyle.Render("sign in with your identity provider to get started"))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter to sign in. esc to go back."))
		return b.String()
	}

	b.WriteString(titleStyle.Render("complete your profile"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("we need a few details before you can apply for a loan"))
	b.WriteString("\n\n")
	b.WriteString(m.form.View())

	return b.String()
}

func (m *Model) dashboardView() string {
	user := m.entry.User
	var b strings.Builder

	b.WriteString(titleStyle.Render("welcome back, " + displayName(user)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("profile") + statusBadge(user))
	b.WriteString("\n")

	if !user.IsComplete() {
		b.WriteString("\n")
		b.WriteString(infoStyle.Render("finish your profile to unlock loan applications (press p)"))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(shortcutHelp))

	return b.String()
}

func (m *Model) profileView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("your profile"))
	b.WriteString("\n")

	if m.editing {
		b.WriteString(m.form.View())
		return b.String()
	}

	user := m.entry.User
	info := client.AdditionalInfo{}
	if user != nil {
		info = user.AdditionalInfo
	}

	rows := []struct{ label, value string }{
		{"name", displayName(user)},
		{"email", emailOf(user)},
		{"phone number", info.PhoneNumber},
		{"address", info.Address},
		{"bio", info.Bio},
	}

	for _, row := range rows {
		b.WriteString(labelStyle.Render(row.label))
		b.WriteString(valueOrMissing(row.value))
		b.WriteString("\n")
	}

	b.WriteString(labelStyle.Render("status") + statusBadge(user))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("e to edit. " + shortcutHelp))

	return b.String()
}

func (m *Model) applicationsView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("loan applications"))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render("you have no loan applications yet"))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(shortcutHelp))

	return b.String()
}

const shortcutHelp = "h home · u dashboard · p profile · a applications · l logout · q quit"

func valueOrMissing(value string) string {
	if strings.TrimSpace(value) == "" {
		return missingStyle.Render(notProvided)
	}
	return valueStyle.Render(value)
}

func statusBadge(user *client.User) string {
	if user.IsComplete() {
		return successStyle.Render(client.StatusComplete)
	}
	return pendingStyle.Render(client.StatusPending)
}

func displayName(user *client.User) string {
	if user == nil {
		return ""
	}
	if user.DisplayName != "" {
		return user.DisplayName
	}
	return emailOf(user)
}

func emailOf(user *client.User) string {
	if user == nil {
		return ""
	}
	return user.Email
}

