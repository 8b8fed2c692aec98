package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/duskthistle/swipereel/internal/models"
	"github.com/duskthistle/swipereel/internal/queue"
	"github.com/duskthistle/swipereel/internal/services"
	"github.com/duskthistle/swipereel/internal/tasks"
)

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	queue      *queue.ReviewQueue
	dispatcher *tasks.Dispatcher
	poller     *tasks.Poller
	service    services.Service

	width  int
	height int

	pickerOpen   bool
	uploaderOpen bool
	saving       bool
	creating     bool

	categories   []models.Category
	categoryList list.Model
	nameInput    textinput.Model

	pathInput    textinput.Model
	uploading    bool
	sent         int64
	total        int64
	progressChan chan uploadProgress
	uploadVid    *models.Video
	uploadErr    error

	status string
	err    error

	help help.Model
	keys keyMap
}

// ModelOpts contains the dependencies for a TUI model.
type ModelOpts struct {
	Queue      *queue.ReviewQueue
	Dispatcher *tasks.Dispatcher
	Poller     *tasks.Poller
	Service    services.Service
}

// NewModel creates a new TUI model with the provided dependencies. The
// poller is expected to be running already; the model only drains its
// report channel.
func NewModel(ctx context.Context, opts ModelOpts) *Model {
	categoryList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	categoryList.Title = "File under category"
	categoryList.SetShowHelp(false)

	nameInput := textinput.New()
	nameInput.Placeholder = "category name"
	nameInput.CharLimit = 64

	pathInput := textinput.New()
	pathInput.Placeholder = "/path/to/clip.mp4"

	return &Model{
		ctx:          ctx,
		queue:        opts.Queue,
		dispatcher:   opts.Dispatcher,
		poller:       opts.Poller,
		service:      opts.Service,
		categoryList: categoryList,
		nameInput:    nameInput,
		pathInput:    pathInput,
		help:         help.New(),
		keys:         newKeyMap(),
	}
}

// Init fetches categories and starts draining reconciliation reports.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.fetchCategories(), m.waitForReports(), textinput.Blink)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.categoryList.SetSize(msg.Width-4, msg.Height-10)
		return m, nil

	case tea.KeyMsg:
		switch m.intent().Kind {
		case queue.ShowUploader:
			return m.handleUploaderKeys(msg)
		case queue.ShowCategoryPicker:
			return m.handlePickerKeys(msg)
		case queue.ShowReviewCard:
			return m.handleCardKeys(msg)
		case queue.ShowExhausted:
			return m.handleExhaustedKeys(msg)
		}

	case categoriesFetchedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("could not load categories: %v", msg.err)
			return m, nil
		}
		m.categories = msg.categories
		m.categoryList.SetItems(categoryItems(msg.categories))
		return m, nil

	case categoryCreatedMsg:
		m.creating = false
		m.nameInput.Reset()
		m.nameInput.Blur()
		if msg.err != nil {
			m.status = fmt.Sprintf("create failed: %v", msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("created %q", msg.category.Name)
		return m, m.fetchCategories()

	case reportMsg:
		report := tasks.ReconcileReport(msg)
		if report.Changed() {
			m.status = fmt.Sprintf("sync: %d updated, %d confirmed", report.Applied, report.Confirmed)
		}
		return m, m.waitForReports()

	case pollerStoppedMsg:
		return m, nil

	case uploadProgressMsg:
		m.sent = msg.sent
		m.total = msg.total
		return m, m.waitForUpload()

	case uploadDoneMsg:
		m.uploading = false
		m.progressChan = nil
		m.pathInput.Reset()
		if msg.err != nil {
			m.status = fmt.Sprintf("upload failed: %v", msg.err)
			return m, nil
		}
		m.uploaderOpen = false
		m.status = fmt.Sprintf("queued %s", msg.video.Title)
		return m, nil

	case saveResultMsg:
		m.saving = false
		if msg.err != nil {
			m.status = fmt.Sprintf("save failed: %v", msg.err)
			return m, nil
		}
		m.pickerOpen = false
		m.status = "saved"
		return m, nil
	}

	return m.updateControls(msg)
}

// View renders the UI based on the derived view intent.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	intent := m.intent()
	switch intent.Kind {
	case queue.ShowUploader:
		return m.renderUploader()
	case queue.ShowExhausted:
		return m.renderExhausted()
	case queue.ShowCategoryPicker:
		return m.renderPicker(intent.Video)
	case queue.ShowReviewCard:
		return m.renderCard(intent.Video)
	default:
		return ""
	}
}

// intent derives the screen to show. An explicitly opened uploader takes
// precedence over the queue-derived selection.
func (m *Model) intent() queue.ViewIntent {
	if m.uploaderOpen || m.uploading {
		return queue.ViewIntent{Kind: queue.ShowUploader}
	}
	return queue.Select(m.queue, m.pickerOpen)
}

func (m *Model) handleCardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.discard):
		if err := m.dispatcher.SwipeLeft(m.ctx); err != nil {
			m.status = fmt.Sprintf("cannot discard: %v", err)
		} else {
			m.status = "discarded"
		}
		return m, nil
	case key.Matches(msg, m.keys.keep):
		if err := m.dispatcher.SwipeRight(); err != nil {
			m.status = fmt.Sprintf("cannot keep: %v", err)
			return m, nil
		}
		m.pickerOpen = true
		m.status = ""
		return m, m.fetchCategories()
	case key.Matches(msg, m.keys.upload):
		m.openUploader()
		return m, textinput.Blink
	}
	return m, nil
}

func (m *Model) handlePickerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.creating {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.creating = false
			m.nameInput.Reset()
			m.nameInput.Blur()
			return m, nil
		case "enter":
			name := strings.TrimSpace(m.nameInput.Value())
			if name == "" {
				return m, nil
			}
			return m, m.createCategory(name)
		}
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}

	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.dispatcher.CancelPicker()
		m.pickerOpen = false
		m.status = ""
		return m, nil
	case key.Matches(msg, m.keys.create):
		m.creating = true
		return m, m.nameInput.Focus()
	case key.Matches(msg, m.keys.enter):
		if m.saving {
			return m, nil
		}
		selected := m.categoryList.SelectedItem()
		if selected == nil {
			return m, nil
		}
		if item, ok := selected.(categoryItem); ok {
			m.saving = true
			m.status = "saving..."
			return m, m.confirmCategory(item.category.ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.categoryList, cmd = m.categoryList.Update(msg)
	return m, cmd
}

func (m *Model) handleUploaderKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.uploading {
			return m, nil
		}
		m.uploaderOpen = false
		m.pathInput.Blur()
		return m, nil
	case "enter":
		if m.uploading {
			return m, nil
		}
		path := strings.TrimSpace(m.pathInput.Value())
		if path == "" {
			return m, nil
		}
		return m, m.startUpload(path)
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m *Model) handleExhaustedKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.upload):
		m.openUploader()
		return m, textinput.Blink
	}
	return m, nil
}

func (m *Model) openUploader() {
	m.uploaderOpen = true
	m.status = ""
	m.pathInput.Focus()
}

// updateControls routes non-key messages to whichever control is active.
func (m *Model) updateControls(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.intent().Kind {
	case queue.ShowCategoryPicker:
		if m.creating {
			m.nameInput, cmd = m.nameInput.Update(msg)
		} else {
			m.categoryList, cmd = m.categoryList.Update(msg)
		}
	case queue.ShowUploader:
		m.pathInput, cmd = m.pathInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchCategories() tea.Cmd {
	return func() tea.Msg {
		categories, err := m.service.ListCategories(m.ctx)
		return categoriesFetchedMsg{categories: categories, err: err}
	}
}

func (m *Model) createCategory(name string) tea.Cmd {
	return func() tea.Msg {
		category, err := m.service.CreateCategory(m.ctx, name, "")
		return categoryCreatedMsg{category: category, err: err}
	}
}

func (m *Model) confirmCategory(categoryID string) tea.Cmd {
	return func() tea.Msg {
		return saveResultMsg{err: m.dispatcher.ConfirmCategory(m.ctx, categoryID)}
	}
}

func (m *Model) startUpload(path string) tea.Cmd {
	m.uploading = true
	m.sent = 0
	m.total = 0
	m.status = ""
	m.progressChan = make(chan uploadProgress, 50)
	ch := m.progressChan

	go func() {
		video, err := m.dispatcher.Upload(m.ctx, path, func(sent, total int64) {
			select {
			case ch <- uploadProgress{sent: sent, total: total}:
			default:
			}
		})
		m.uploadVid = video
		m.uploadErr = err
		close(ch)
	}()

	return m.waitForUpload()
}

func (m *Model) waitForUpload() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return uploadDoneMsg{video: m.uploadVid, err: m.uploadErr}
		}

		update, ok := <-m.progressChan
		if !ok {
			return uploadDoneMsg{video: m.uploadVid, err: m.uploadErr}
		}
		return uploadProgressMsg(update)
	}
}

func (m *Model) waitForReports() tea.Cmd {
	return func() tea.Msg {
		report, ok := <-m.poller.Reports()
		if !ok {
			return pollerStoppedMsg{}
		}
		return reportMsg(report)
	}
}

func (m *Model) renderCard(v models.Video) string {
	title := v.Title
	if title == "" {
		title = v.SourceURL
	}

	var b strings.Builder
	b.WriteString(styles.title.Render(title))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("State: %s\n", stateBadge(v.State)))
	if v.SourceURL != "" && v.SourceURL != title {
		b.WriteString(styles.faint.Render(v.SourceURL))
		b.WriteString("\n")
	}
	if v.HasSubtitles {
		b.WriteString(styles.faint.Render("subtitles available"))
		b.WriteString("\n")
	}
	if v.State == models.StateCompleted && v.PublishedURL != "" {
		b.WriteString(styles.ok.Render(fmt.Sprintf("published: %s", v.PublishedURL)))
		b.WriteString("\n")
	}

	card := styles.card.Render(b.String())
	position := styles.faint.Render(fmt.Sprintf("%d/%d", m.queue.Cursor()+1, m.queue.Len()))

	helpKeys := []key.Binding{m.keys.discard, m.keys.keep, m.keys.upload, m.keys.quit}
	return m.frame(fmt.Sprintf("%s\n%s", card, position), helpKeys)
}

func (m *Model) renderPicker(v models.Video) string {
	if m.creating {
		prompt := styles.title.Render("New category")
		helpKeys := []key.Binding{m.keys.enter, m.keys.back}
		return m.frame(fmt.Sprintf("%s\n%s", prompt, m.nameInput.View()), helpKeys)
	}

	header := styles.faint.Render(fmt.Sprintf("keeping: %s", v.Title))
	helpKeys := []key.Binding{m.keys.enter, m.keys.create, m.keys.back}
	return m.frame(fmt.Sprintf("%s\n%s", header, m.categoryList.View()), helpKeys)
}

func (m *Model) renderUploader() string {
	title := styles.title.Render("Upload a clip")

	body := m.pathInput.View()
	if m.uploading {
		body = m.renderProgress()
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.back, m.keys.quit}
	return m.frame(fmt.Sprintf("%s\n%s", title, body), helpKeys)
}

func (m *Model) renderProgress() string {
	if m.total <= 0 {
		return "uploading..."
	}
	percent := float64(m.sent) / float64(m.total) * 100
	return fmt.Sprintf("uploading %.1f%% (%s / %s)", percent, formatBytes(m.sent), formatBytes(m.total))
}

func (m *Model) renderExhausted() string {
	title := styles.title.Render("All caught up")
	body := "Every video in the queue has been reviewed."

	if kept, discarded := m.tally(); kept+discarded > 0 {
		body = fmt.Sprintf("%s\n%s", body, styles.faint.Render(
			fmt.Sprintf("%d kept, %d discarded this session", kept, discarded)))
	}

	helpKeys := []key.Binding{m.keys.upload, m.keys.quit}
	return m.frame(fmt.Sprintf("%s\n%s", title, body), helpKeys)
}

// tally counts decided videos currently held in the queue.
func (m *Model) tally() (kept, discarded int) {
	for _, v := range m.queue.Items() {
		switch v.State {
		case models.StateDiscarded:
			discarded++
		case models.StateAwaitingCategory, models.StateUploading, models.StateCompleted, models.StateFailed:
			kept++
		}
	}
	return kept, discarded
}

// frame appends the status line and contextual help under a screen body.
func (m *Model) frame(body string, helpKeys []key.Binding) string {
	status := ""
	if m.status != "" {
		status = styles.warn.Render(m.status)
	}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s\n%s", body, status, helpView)
}

func categoryItems(categories []models.Category) []list.Item {
	items := make([]list.Item, len(categories))
	for i, c := range categories {
		items[i] = categoryItem{category: c}
	}
	return items
}

func formatBytes(n int64) string {
	const mb = 1 << 20
	if n < mb {
		return fmt.Sprintf("%.0f KB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%.1f MB", float64(n)/mb)
}
