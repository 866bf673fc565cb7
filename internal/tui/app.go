// internal/tui/app.go
//
// This is the main TUI for campaigndeck.
// It uses bubbletea, which follows The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The flow is: User Input -> Message -> Update -> New Model -> View -> Screen

package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"campaigndeck/internal/automation"
	"campaigndeck/internal/config"
	"campaigndeck/internal/logbook"
	"campaigndeck/internal/report"
	"campaigndeck/internal/result"
	"campaigndeck/internal/webhook"
)

// appState represents which "screen" we're on
type appState int

const (
	stateMenu     appState = iota // Automation picker plus settings and exit
	stateSettings                 // Webhook URL override for the chosen automation
	stateBrief                    // Campaign brief form
	stateResult                   // Resolved result viewer
)

const (
	statusSubmittedRemote = "Submitted to webhook"
	statusSubmittedLocal  = "Submitted locally. Configure webhook for remote processing."
	statusNoWebhook       = "No webhook URL set."
)

// Submitter is the slice of the webhook client the app dispatches through.
// Tests swap it for a stub; the sequence source stays on the real client so
// stale-response ordering is exercised either way.
type Submitter interface {
	NextSeq() int64
	Latest() int64
	Submit(ctx context.Context, seq int64, url, slug string, data map[string]any) (*webhook.Response, error)
	Feedback(ctx context.Context, seq int64, url, slug string, original map[string]any, feedback string) (*webhook.Response, error)
}

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithSubmitter overrides the webhook client used for dispatch.
func WithSubmitter(s Submitter) AppOption {
	return func(a *App) {
		if s != nil {
			a.client = s
		}
	}
}

// WithClock fixes the TUI's notion of now, for tests and reproducible runs.
func WithClock(clock func() time.Time) AppOption {
	return func(a *App) {
		if clock != nil {
			a.now = clock
		}
	}
}

// WithSamplePayload short-circuits submission: instead of POSTing, the form
// resolves against the given payload. Drives demo mode and tests.
func WithSamplePayload(payload any) AppOption {
	return func(a *App) {
		a.sample = payload
	}
}

// resultMsg carries a webhook response (or failure) back into the Update
// loop, tagged with the sequence number reserved at dispatch.
type resultMsg struct {
	seq      int64
	payload  any
	err      error
	feedback bool
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	state   appState
	config  *config.Config
	client  Submitter
	logbook *logbook.Logbook
	now     func() time.Time
	sample  any

	menu      list.Model
	selected  automation.Automation
	form      *briefForm
	results   *resultView
	urlInput  textinput.Model
	spin      spinner.Model
	inFlight  bool
	dispatch  time.Time
	statusMsg string

	width  int
	height int
}

// menuItem implements list.Item for the automation picker.
type menuItem struct {
	title string
	desc  string
	slug  string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

// NewApp creates a new App instance rooted at projectDir.
func NewApp(projectDir string, opts ...AppOption) *App {
	cfg := config.NewConfig(projectDir)
	lb, err := logbook.New(filepath.Join(cfg.LogsDir(), "journey.log"))
	if err != nil {
		lb = nil
	}
	lb.Info("Session opened")

	items := []list.Item{}
	for _, auto := range automation.All() {
		items = append(items, menuItem{title: auto.Name, desc: auto.Description, slug: auto.Slug})
	}
	items = append(items,
		menuItem{title: "Webhook Settings", desc: "Configure automation webhook URLs"},
		menuItem{title: "Exit", desc: "Quit campaigndeck"},
	)
	menu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	menu.Title = "⬡ CAMPAIGNDECK"
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)

	urlInput := textinput.New()
	urlInput.Placeholder = "https://example.com/webhook/…"
	urlInput.CharLimit = 512

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	app := &App{
		state:    stateMenu,
		config:   cfg,
		client:   webhook.NewClient(),
		logbook:  lb,
		now:      func() time.Time { return time.Now().UTC() },
		menu:     menu,
		urlInput: urlInput,
		spin:     sp,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	return app
}

func (a *App) logInfo(format string, args ...any)  { a.logbook.Info(format, args...) }
func (a *App) logWarn(format string, args ...any)  { a.logbook.Warn(format, args...) }
func (a *App) logError(format string, args ...any) { a.logbook.Error(format, args...) }

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.menu.SetSize(max(0, msg.Width-6), max(0, msg.Height-12))
		if a.results != nil {
			a.results.setSize(max(20, msg.Width-8), max(6, msg.Height-14))
		}
		return a, nil

	case spinner.TickMsg:
		if !a.inFlight {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case resultMsg:
		return a.handleResult(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if a.state == stateMenu {
				return a, tea.Quit
			}
		case "esc":
			if a.state != stateMenu {
				return a.returnToMenu()
			}
		}
	}

	switch a.state {
	case stateMenu:
		return a.updateMenu(msg)
	case stateSettings:
		return a.updateSettings(msg)
	case stateBrief:
		return a.updateBrief(msg)
	case stateResult:
		return a.updateResult(msg)
	}
	return a, nil
}

// handleResult installs a webhook response, unless a newer request has been
// dispatched since — stale responses are dropped, never merged.
func (a *App) handleResult(msg resultMsg) (tea.Model, tea.Cmd) {
	if msg.seq < a.client.Latest() {
		a.logWarn("Dropped stale response (seq %d, latest %d)", msg.seq, a.client.Latest())
		return a, nil
	}
	a.inFlight = false
	if msg.err != nil {
		a.statusMsg = fmt.Sprintf("Submission failed: %v", msg.err)
		a.logError("Webhook call failed: %v", msg.err)
		return a, nil
	}
	elapsed := a.now().Sub(a.dispatch)
	if a.results == nil {
		a.results = newResultView(a.contentWidth(), a.contentHeight())
	}
	// An accepted submission with an empty body keeps whatever result is
	// already on screen.
	if msg.payload != nil || a.results.payload == nil {
		a.results.setPayload(msg.payload, elapsed)
	}
	a.state = stateResult
	if msg.feedback {
		a.statusMsg = "Sent"
	}
	a.logInfo("Result installed (seq %d)", msg.seq)
	return a, nil
}

func (a *App) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		item, ok := a.menu.SelectedItem().(menuItem)
		if !ok {
			return a, nil
		}
		switch {
		case item.slug != "":
			auto, ok := automation.BySlug(item.slug)
			if !ok {
				return a, nil
			}
			a.selected = auto
			a.form = newBriefForm()
			a.state = stateBrief
			a.statusMsg = ""
			a.logInfo("Menu · %s selected", auto.Name)
			return a, textinput.Blink
		case item.title == "Webhook Settings":
			return a.beginSettings()
		case item.title == "Exit":
			a.logInfo("Menu · Exit selected")
			return a, tea.Quit
		}
		return a, nil
	}
	var cmd tea.Cmd
	a.menu, cmd = a.menu.Update(msg)
	return a, cmd
}

func (a *App) beginSettings() (tea.Model, tea.Cmd) {
	if a.selected.Slug == "" {
		a.selected = automation.All()[0]
	}
	a.urlInput.SetValue(a.config.WebhookURL(a.selected.Slug, ""))
	a.urlInput.Focus()
	a.state = stateSettings
	a.statusMsg = ""
	return a, textinput.Blink
}

func (a *App) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			url := strings.TrimSpace(a.urlInput.Value())
			if err := a.config.SetWebhookURL(a.selected.Slug, url); err != nil {
				a.statusMsg = fmt.Sprintf("Could not save webhook URL: %v", err)
				a.logError("Webhook URL save failed: %v", err)
				return a, nil
			}
			if url == "" {
				a.statusMsg = "Webhook override cleared"
			} else {
				a.statusMsg = "Webhook URL saved"
			}
			a.logInfo("Webhook URL updated for %s", a.selected.Slug)
			return a.returnToMenu()
		case "tab":
			// Cycle which automation the override applies to.
			a.selected = nextAutomation(a.selected)
			a.urlInput.SetValue(a.config.WebhookURL(a.selected.Slug, ""))
			return a, nil
		}
	}
	var cmd tea.Cmd
	a.urlInput, cmd = a.urlInput.Update(msg)
	return a, cmd
}

func nextAutomation(current automation.Automation) automation.Automation {
	all := automation.All()
	for i, auto := range all {
		if auto.Slug == current.Slug {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

func (a *App) updateBrief(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.form == nil {
		return a.returnToMenu()
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+s" {
		return a.submitBrief()
	}
	return a, a.form.Update(msg)
}

// submitBrief validates the form and dispatches it. The sequence number is
// reserved here, synchronously, so a later submission always outranks this
// one no matter which response lands first.
func (a *App) submitBrief() (tea.Model, tea.Cmd) {
	if !a.form.validate() {
		a.statusMsg = "Fix the highlighted fields before submitting"
		return a, nil
	}
	data := a.form.payload()
	seq := a.client.NextSeq()
	a.dispatch = a.now()
	a.inFlight = true

	if a.sample != nil {
		sample := a.sample
		a.statusMsg = statusSubmittedLocal
		a.logInfo("Brief resolved against sample payload (seq %d)", seq)
		return a, func() tea.Msg {
			return resultMsg{seq: seq, payload: sample}
		}
	}

	url := a.config.WebhookURL(a.selected.Slug, a.selected.DefaultWebhookURL)
	if strings.TrimSpace(url) == "" {
		a.inFlight = false
		a.statusMsg = statusNoWebhook
		a.logWarn("Submission skipped: no webhook URL for %s", a.selected.Slug)
		return a, nil
	}
	if a.config.HasWebhookOverride(a.selected.Slug) {
		a.statusMsg = statusSubmittedRemote
	} else {
		a.statusMsg = statusSubmittedLocal
	}
	a.logInfo("Brief submitted to %s (seq %d)", a.selected.Slug, seq)

	client, slug := a.client, a.selected.Slug
	return a, tea.Batch(a.spin.Tick, func() tea.Msg {
		resp, err := client.Submit(context.Background(), seq, url, slug, data)
		if err != nil {
			return resultMsg{seq: seq, err: err}
		}
		return resultMsg{seq: resp.Seq, payload: resp.Payload}
	})
}

func (a *App) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.results == nil {
		return a.returnToMenu()
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "e":
			if !a.results.feedbackOpen {
				return a.exportReport()
			}
		case "f":
			if !a.results.feedbackOpen {
				a.results.openFeedback()
				return a, textinput.Blink
			}
		case "ctrl+s":
			if a.results.feedbackOpen {
				return a.sendFeedback()
			}
		}
	}
	return a, a.results.Update(msg)
}

func (a *App) exportReport() (tea.Model, tea.Cmd) {
	sections := a.results.sections
	if sections == nil {
		sections = &result.Sections{}
	}
	path, err := report.Save(a.config.ReportsDir(), sections, a.now())
	if err != nil {
		a.statusMsg = fmt.Sprintf("Cannot export: %v", err)
		a.logWarn("Export failed: %v", err)
		return a, nil
	}
	a.statusMsg = fmt.Sprintf("Exported %s", filepath.Base(path))
	a.logInfo("Report exported to %s", path)
	return a, nil
}

func (a *App) sendFeedback() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(a.results.feedbackText())
	if text == "" {
		a.statusMsg = "Feedback is empty"
		return a, nil
	}
	seq := a.client.NextSeq()
	a.dispatch = a.now()
	a.inFlight = true
	a.results.closeFeedback()

	if a.sample != nil {
		sample := a.sample
		a.statusMsg = "Sent"
		return a, func() tea.Msg {
			return resultMsg{seq: seq, payload: sample, feedback: true}
		}
	}

	url := a.config.WebhookURL(a.selected.Slug, a.selected.DefaultWebhookURL)
	if strings.TrimSpace(url) == "" {
		a.inFlight = false
		a.statusMsg = statusNoWebhook
		return a, nil
	}
	original := a.form.payload()
	client, slug := a.client, a.selected.Slug
	a.logInfo("Feedback submitted for %s (seq %d)", slug, seq)
	return a, tea.Batch(a.spin.Tick, func() tea.Msg {
		resp, err := client.Feedback(context.Background(), seq, url, slug, original, text)
		if err != nil {
			return resultMsg{seq: seq, err: err}
		}
		return resultMsg{seq: resp.Seq, payload: resp.Payload, feedback: true}
	})
}

// returnToMenu transitions back to the automation picker.
func (a *App) returnToMenu() (tea.Model, tea.Cmd) {
	a.state = stateMenu
	a.urlInput.Blur()
	return a, nil
}

func (a *App) contentWidth() int {
	if a.width <= 0 {
		return 92
	}
	return max(20, a.width-8)
}

func (a *App) contentHeight() int {
	if a.height <= 0 {
		return 24
	}
	return max(6, a.height-14)
}

// View renders the current state to a string.
func (a *App) View() string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#B48CF6")).
		MarginBottom(1).
		Render("⬡ CAMPAIGNDECK")

	var content string
	switch a.state {
	case stateMenu:
		content = a.menu.View()
	case stateSettings:
		content = a.renderSettings()
	case stateBrief:
		if a.form != nil {
			content = a.form.View(a.contentWidth())
		}
	case stateResult:
		if a.results != nil {
			content = a.results.View()
		}
	}

	sections := []string{header, content}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	footer := a.statusMsg
	if a.inFlight {
		footer = fmt.Sprintf("%s %s", a.spin.View(), footer)
	}
	sections = append(sections, lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginTop(1).
		Render(footer))
	return strings.Join(sections, "\n")
}

func (a *App) renderSettings() string {
	badge := "No webhook configured"
	badgeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801"))
	if a.config.HasWebhookOverride(a.selected.Slug) {
		badge = "Webhook set"
		badgeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	}
	lines := []string{
		fmt.Sprintf("Webhook for %s", a.selected.Name),
		badgeStyle.Render(badge),
		"",
		a.urlInput.View(),
		"",
		lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).
			Render("Enter → save    Tab → switch automation    Esc → cancel"),
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines := a.logbook.Tail(6)
	if len(lines) == 0 {
		return ""
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("LOG · %s", filepath.Base(a.logbook.Path())))
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(fmt.Sprintf("%s\n%s", head, body))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
