// internal/tui/form.go
//
// The campaign brief form. Free-text fields are bubbles textinput/textarea
// components; the timeline unit and channel toggles are plain keyed state.
// Validation runs on submit and per-field errors render inline under the
// offending field.

package tui

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	timelineUnitDays  = "days"
	timelineUnitWeeks = "weeks"
)

// Channels a calendar can target. Order is render order.
var channelNames = []string{"Instagram", "Facebook", "YouTube", "Blog", "Email"}

// Focusable field positions, top to bottom.
const (
	fieldProduct = iota
	fieldAudience
	fieldGoal
	fieldTimeline
	fieldTimelineUnit
	fieldChannels
	fieldBrandLink
	fieldInstructions
	fieldCount
)

var (
	formLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#CCCCCC"))
	formErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	formFocusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B48CF6")).Bold(true)
	formDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	channelOnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
)

type briefForm struct {
	product      textinput.Model
	audience     textarea.Model
	goal         textinput.Model
	timeline     textinput.Model
	timelineUnit string
	channels     map[string]bool
	brandLink    textinput.Model
	instructions textarea.Model

	focus         int
	channelCursor int
	errors        map[int]string
}

func newBriefForm() *briefForm {
	f := &briefForm{
		timelineUnit: timelineUnitWeeks,
		channels:     map[string]bool{},
		errors:       map[int]string{},
	}
	f.product = newField("e.g. Specialty coffee subscription")
	f.goal = newField("e.g. Grow Instagram following by 20%")
	f.timeline = newField("4")
	f.timeline.SetValue("4")
	f.timeline.CharLimit = 4
	f.brandLink = newField("https://yourbrand.com")

	f.audience = textarea.New()
	f.audience.Placeholder = "Who is this campaign for?"
	f.audience.SetHeight(2)
	f.instructions = textarea.New()
	f.instructions.Placeholder = "Anything else the automation should know"
	f.instructions.SetHeight(2)

	f.product.Focus()
	return f
}

func newField(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	return ti
}

func (f *briefForm) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "shift+tab", "up", "down":
			// textarea owns up/down for cursor movement
			if (key.String() == "up" || key.String() == "down") && f.focusedIsTextarea() {
				break
			}
			if key.String() == "shift+tab" || key.String() == "up" {
				f.setFocus((f.focus + fieldCount - 1) % fieldCount)
			} else {
				f.setFocus((f.focus + 1) % fieldCount)
			}
			return textinput.Blink
		case "left", "right", " ", "enter":
			if cmd, handled := f.handleToggleKey(key.String()); handled {
				return cmd
			}
		}
	}
	return f.updateFocused(msg)
}

func (f *briefForm) focusedIsTextarea() bool {
	return f.focus == fieldAudience || f.focus == fieldInstructions
}

// handleToggleKey services the two non-text fields. Space flips the channel
// under the cursor or the timeline unit; left/right move between channels.
func (f *briefForm) handleToggleKey(key string) (tea.Cmd, bool) {
	switch f.focus {
	case fieldTimelineUnit:
		if key == " " || key == "left" || key == "right" || key == "enter" {
			if f.timelineUnit == timelineUnitWeeks {
				f.timelineUnit = timelineUnitDays
			} else {
				f.timelineUnit = timelineUnitWeeks
			}
			return nil, true
		}
	case fieldChannels:
		switch key {
		case "left":
			f.channelCursor = max(0, f.channelCursor-1)
			return nil, true
		case "right":
			if f.channelCursor < len(channelNames)-1 {
				f.channelCursor++
			}
			return nil, true
		case " ", "enter":
			name := channelNames[f.channelCursor]
			f.channels[name] = !f.channels[name]
			return nil, true
		}
	}
	return nil, false
}

func (f *briefForm) setFocus(target int) {
	f.blurAll()
	f.focus = target
	switch target {
	case fieldProduct:
		f.product.Focus()
	case fieldAudience:
		f.audience.Focus()
	case fieldGoal:
		f.goal.Focus()
	case fieldTimeline:
		f.timeline.Focus()
	case fieldBrandLink:
		f.brandLink.Focus()
	case fieldInstructions:
		f.instructions.Focus()
	}
}

func (f *briefForm) blurAll() {
	f.product.Blur()
	f.audience.Blur()
	f.goal.Blur()
	f.timeline.Blur()
	f.brandLink.Blur()
	f.instructions.Blur()
}

func (f *briefForm) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case fieldProduct:
		f.product, cmd = f.product.Update(msg)
	case fieldAudience:
		f.audience, cmd = f.audience.Update(msg)
	case fieldGoal:
		f.goal, cmd = f.goal.Update(msg)
	case fieldTimeline:
		f.timeline, cmd = f.timeline.Update(msg)
	case fieldBrandLink:
		f.brandLink, cmd = f.brandLink.Update(msg)
	case fieldInstructions:
		f.instructions, cmd = f.instructions.Update(msg)
	}
	return cmd
}

// validate fills f.errors and reports whether the brief is submittable.
func (f *briefForm) validate() bool {
	f.errors = map[int]string{}
	if strings.TrimSpace(f.product.Value()) == "" {
		f.errors[fieldProduct] = "Product or service is required"
	}
	if strings.TrimSpace(f.audience.Value()) == "" {
		f.errors[fieldAudience] = "Audience is required"
	}
	if strings.TrimSpace(f.goal.Value()) == "" {
		f.errors[fieldGoal] = "Goal is required"
	}
	if n, err := strconv.Atoi(strings.TrimSpace(f.timeline.Value())); err != nil || n <= 0 {
		f.errors[fieldTimeline] = "Timeline must be a positive number"
	}
	if !f.anyChannel() {
		f.errors[fieldChannels] = "Pick at least one channel"
	}
	link := strings.TrimSpace(f.brandLink.Value())
	if link == "" {
		f.errors[fieldBrandLink] = "Brand link is required"
	} else if parsed, err := url.Parse(link); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		f.errors[fieldBrandLink] = "Brand link must be a full URL"
	}
	return len(f.errors) == 0
}

func (f *briefForm) anyChannel() bool {
	for _, on := range f.channels {
		if on {
			return true
		}
	}
	return false
}

// payload flattens the brief into the webhook data map.
func (f *briefForm) payload() map[string]any {
	selected := []string{}
	for _, name := range channelNames {
		if f.channels[name] {
			selected = append(selected, name)
		}
	}
	return map[string]any{
		"productOrService":       strings.TrimSpace(f.product.Value()),
		"audience":               strings.TrimSpace(f.audience.Value()),
		"goal":                   strings.TrimSpace(f.goal.Value()),
		"timelineValue":          strings.TrimSpace(f.timeline.Value()),
		"timelineUnit":           f.timelineUnit,
		"channels":               selected,
		"brandLink":              strings.TrimSpace(f.brandLink.Value()),
		"additionalInstructions": strings.TrimSpace(f.instructions.Value()),
	}
}

func (f *briefForm) View(width int) string {
	var b strings.Builder
	b.WriteString(formLabelStyle.Render("Campaign Brief"))
	b.WriteString("\n\n")
	f.writeField(&b, fieldProduct, "Product / Service *", f.product.View())
	f.writeField(&b, fieldAudience, "Audience *", f.audience.View())
	f.writeField(&b, fieldGoal, "Goal *", f.goal.View())
	f.writeField(&b, fieldTimeline, "Timeline *", f.timeline.View())
	f.writeField(&b, fieldTimelineUnit, "Timeline Unit", f.renderUnit())
	f.writeField(&b, fieldChannels, "Channels *", f.renderChannels())
	f.writeField(&b, fieldBrandLink, "Brand Link *", f.brandLink.View())
	f.writeField(&b, fieldInstructions, "Additional Instructions", f.instructions.View())
	b.WriteString(formDimStyle.Render("Tab → next field    Space → toggle    Ctrl+S → submit    Esc → back"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Width(max(40, width)).
		Render(b.String())
}

func (f *briefForm) writeField(b *strings.Builder, id int, label, body string) {
	style := formLabelStyle
	if f.focus == id {
		style = formFocusStyle
	}
	b.WriteString(style.Render(label))
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	if msg, ok := f.errors[id]; ok {
		b.WriteString(formErrorStyle.Render("⚠ " + msg))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func (f *briefForm) renderUnit() string {
	days := fmt.Sprintf("( ) %s", timelineUnitDays)
	weeks := fmt.Sprintf("( ) %s", timelineUnitWeeks)
	if f.timelineUnit == timelineUnitDays {
		days = channelOnStyle.Render(fmt.Sprintf("(•) %s", timelineUnitDays))
	} else {
		weeks = channelOnStyle.Render(fmt.Sprintf("(•) %s", timelineUnitWeeks))
	}
	return days + "   " + weeks
}

func (f *briefForm) renderChannels() string {
	parts := make([]string, 0, len(channelNames))
	for i, name := range channelNames {
		mark := "[ ]"
		if f.channels[name] {
			mark = "[x]"
		}
		label := fmt.Sprintf("%s %s", mark, name)
		switch {
		case f.focus == fieldChannels && i == f.channelCursor:
			label = formFocusStyle.Render(label)
		case f.channels[name]:
			label = channelOnStyle.Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "  ")
}
