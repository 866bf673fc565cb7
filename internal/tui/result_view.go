// internal/tui/result_view.go
//
// Read-only viewer for resolved webhook output. The tree renderer in
// internal/render produces the panel bodies; this file arranges them into
// the scrolling viewport and hosts the feedback textarea.

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"campaigndeck/internal/node"
	"campaigndeck/internal/render"
	"campaigndeck/internal/result"
)

// oldProcessDuration is the manual baseline the performance block compares
// against: putting a strategy and calendar together by hand takes about a
// working day.
const oldProcessDuration = 24 * time.Hour

var (
	sectionTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#B48CF6"))
	calendarTitle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	dayHeaderStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	perfStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	mutedStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	dayPanelStyle     = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#444444")).
				Padding(0, 1)
)

type resultView struct {
	viewport     viewport.Model
	feedback     textarea.Model
	feedbackOpen bool

	payload  any
	sections *result.Sections
	resolved bool
	elapsed  time.Duration
	width    int
}

func newResultView(width, height int) *resultView {
	vp := viewport.New(width, height)
	ta := textarea.New()
	ta.Placeholder = "What should the automation change?"
	ta.SetHeight(3)
	ta.SetWidth(width - 4)
	return &resultView{viewport: vp, feedback: ta, width: width}
}

func (v *resultView) setSize(width, height int) {
	v.width = width
	v.viewport.Width = width
	v.viewport.Height = height
	v.feedback.SetWidth(width - 4)
	v.refresh()
}

// setPayload installs a new webhook payload, resolving it into sections and
// re-rendering the viewport from the top.
func (v *resultView) setPayload(payload any, elapsed time.Duration) {
	v.payload = payload
	v.elapsed = elapsed
	v.sections, v.resolved = result.Resolve(payload)
	v.refresh()
	v.viewport.GotoTop()
}

func (v *resultView) refresh() {
	v.viewport.SetContent(v.renderContent())
}

func (v *resultView) openFeedback() {
	v.feedbackOpen = true
	v.feedback.Reset()
	v.feedback.Focus()
}

func (v *resultView) closeFeedback() {
	v.feedbackOpen = false
	v.feedback.Blur()
}

func (v *resultView) feedbackText() string {
	return v.feedback.Value()
}

func (v *resultView) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if v.feedbackOpen {
		v.feedback, cmd = v.feedback.Update(msg)
		return cmd
	}
	v.viewport, cmd = v.viewport.Update(msg)
	return cmd
}

func (v *resultView) View() string {
	parts := []string{v.viewport.View()}
	if v.feedbackOpen {
		parts = append(parts,
			sectionTitleStyle.Render("Feedback"),
			v.feedback.View(),
			mutedStyle.Render("Ctrl+S → send    Esc → back"))
	} else {
		parts = append(parts, mutedStyle.Render("f → feedback    e → export PDF    Esc → back"))
	}
	return strings.Join(parts, "\n")
}

func (v *resultView) renderContent() string {
	if v.payload == nil {
		return mutedStyle.Render("No result yet. Submit a brief to see generated content here.")
	}
	if !v.resolved {
		// Unrecognized shape: show the payload verbatim rather than guess.
		return strings.Join([]string{
			sectionTitleStyle.Render("Raw Response"),
			node.MarshalIndent(v.payload),
		}, "\n")
	}
	blocks := []string{v.renderPerformance()}
	if len(v.sections.Deliverables) > 0 {
		blocks = append(blocks, v.renderDeliverables())
	} else {
		if v.sections.Strategy != nil {
			blocks = append(blocks, v.renderStrategy())
		}
		if len(v.sections.CampaignDays) > 0 {
			blocks = append(blocks, v.renderCalendar())
		}
	}
	if len(v.sections.Reasoning) > 0 {
		blocks = append(blocks, v.renderReasoning())
	}
	if len(v.sections.Tasks) > 0 {
		blocks = append(blocks, v.renderTasks())
	}
	return strings.Join(blocks, "\n\n")
}

// renderPerformance shows how long the automation took against the manual
// baseline.
func (v *resultView) renderPerformance() string {
	saved := oldProcessDuration - v.elapsed
	if saved < 0 {
		saved = 0
	}
	lines := []string{
		sectionTitleStyle.Render("Workflow Performance"),
		fmt.Sprintf("Generated in %s (old process: %s)", humanizeElapsed(v.elapsed), humanizeElapsed(oldProcessDuration)),
		perfStyle.Render(fmt.Sprintf("Time saved: %s", humanizeElapsed(saved))),
	}
	return strings.Join(lines, "\n")
}

func (v *resultView) renderStrategy() string {
	return strings.Join([]string{
		sectionTitleStyle.Render("Brand Strategy"),
		render.Tree(v.sections.Strategy, v.width),
	}, "\n")
}

func (v *resultView) renderCalendar() string {
	blocks := []string{calendarTitle.Render("Campaign Calendar")}
	for i, day := range v.sections.CampaignDays {
		title := day.Day
		if strings.TrimSpace(title) == "" {
			title = fmt.Sprintf("Day %d", i+1)
		}
		header := dayHeaderStyle.Render(title)
		if strings.TrimSpace(day.Platform) != "" {
			header += mutedStyle.Render(" · " + day.Platform)
		}
		lines := []string{header}
		appendDayLine(&lines, "Theme", day.Theme)
		appendDayLine(&lines, "Post Idea", day.PostIdea)
		appendDayLine(&lines, "Content Type", day.ContentType)
		appendDayLine(&lines, "CTA", day.CTA)
		blocks = append(blocks, dayPanelStyle.Width(max(20, v.width-4)).Render(strings.Join(lines, "\n")))
	}
	return strings.Join(blocks, "\n")
}

func appendDayLine(lines *[]string, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	*lines = append(*lines, fmt.Sprintf("%s: %s", label, value))
}

func (v *resultView) renderDeliverables() string {
	blocks := []string{sectionTitleStyle.Render("Deliverables")}
	for i, item := range v.sections.Deliverables {
		blocks = append(blocks,
			dayHeaderStyle.Render(fmt.Sprintf("Deliverable %d", i+1)),
			render.Tree(item, v.width))
	}
	return strings.Join(blocks, "\n")
}

func (v *resultView) renderReasoning() string {
	lines := []string{sectionTitleStyle.Render("Strategic Reasoning")}
	for i, reason := range v.sections.Reasoning {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, reason))
	}
	return strings.Join(lines, "\n")
}

func (v *resultView) renderTasks() string {
	lines := []string{sectionTitleStyle.Render("Task Breakdown")}
	for _, task := range v.sections.Tasks {
		lines = append(lines, fmt.Sprintf("%d. %s", task.Index, task.Detail))
	}
	return strings.Join(lines, "\n")
}

func humanizeElapsed(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
	}
}
