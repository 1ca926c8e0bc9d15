package tui

import (
	"errors"
	"strings"

	"codeberg.org/lendora/server/internal/client"
	"codeberg.org/lendora/server/internal/sessioncache"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	fieldPhone = iota
	fieldAddress
	fieldBio
	fieldCount
)

var (
	fieldKeys   = [fieldCount]string{"phone_number", "address", "bio"}
	fieldLabels = [fieldCount]string{"phone number", "address", "bio"}
)

// onboarding and profile edit form
type ProfileForm struct {
	inputs     [fieldCount]textinput.Model
	focus      int
	errors     map[string]string
	submitting bool
}

func NewProfileForm() *ProfileForm {
	f := &ProfileForm{}

	placeholders := [fieldCount]string{"+1 555 123 4567", "12 Main St, Springfield", "a few words about you"}
	limits := [fieldCount]int{32, 200, 500}

	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = limits[i]
		ti.Width = 60
		ti.Prompt = "> "
		ti.PromptStyle = lipgloss.NewStyle().Foreground(colorLightGray)
		ti.TextStyle = lipgloss.NewStyle().Foreground(colorWhite)
		f.inputs[i] = ti
	}

	return f
}

func (f *ProfileForm) SetWidth(width int) {
	for i := range f.inputs {
		if width > 10 {
			f.inputs[i].Width = width - 10
		}
	}
}

// fills the inputs from the cached user
func (f *ProfileForm) Load(user *client.User) {
	f.errors = nil
	f.submitting = false
	f.focus = fieldPhone

	if user == nil {
		return
	}

	f.inputs[fieldPhone].SetValue(user.AdditionalInfo.PhoneNumber)
	f.inputs[fieldAddress].SetValue(user.AdditionalInfo.Address)
	f.inputs[fieldBio].SetValue(user.AdditionalInfo.Bio)
}

func (f *ProfileForm) Focus() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	return f.inputs[f.focus].Focus()
}

// records the outcome of a submit
func (f *ProfileForm) Saved(err error) {
	f.submitting = false
	f.errors = nil

	var verr *client.ValidationError
	if errors.As(err, &verr) {
		f.errors = verr.Fields
	}
}

func (f *ProfileForm) HasFieldErrors() bool {
	return len(f.errors) > 0
}

// the fields to submit; every field is sent so the server validates all of them
func (f *ProfileForm) Values() client.ProfileUpdate {
	phone := strings.TrimSpace(f.inputs[fieldPhone].Value())
	address := strings.TrimSpace(f.inputs[fieldAddress].Value())
	bio := strings.TrimSpace(f.inputs[fieldBio].Value())

	return client.ProfileUpdate{PhoneNumber: &phone, Address: &address, Bio: &bio}
}

func (f *ProfileForm) Update(msg tea.Msg, cache *sessioncache.Cache) (*ProfileForm, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			f.focus = (f.focus + 1) % fieldCount
			return f, f.Focus()
		case "shift+tab", "up":
			f.focus = (f.focus + fieldCount - 1) % fieldCount
			return f, f.Focus()
		case "ctrl+s":
			return f, f.submit(cache)
		case "enter":
			if f.focus < fieldBio {
				f.focus++
				return f, f.Focus()
			}
			return f, f.submit(cache)
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f *ProfileForm) submit(cache *sessioncache.Cache) tea.Cmd {
	if f.submitting {
		return nil
	}

	f.submitting = true
	return updateProfileCmd(cache, f.Values())
}

func (f *ProfileForm) View() string {
	var b strings.Builder

	for i := range f.inputs {
		b.WriteString(labelStyle.Render(fieldLabels[i]))
		b.WriteString("\n")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")

		if msg, ok := f.errors[fieldKeys[i]]; ok {
			b.WriteString(errorStyle.Render("  " + msg))
			b.WriteString("\n")
		}

		b.WriteString("\n")
	}

	if f.submitting {
		b.WriteString(infoStyle.Render("saving..."))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("tab to move between fields. enter on bio or ctrl+s to save. esc to cancel."))

	return b.String()
}
