// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sirseerhq/sirseer-scout/internal/github"
	"github.com/sirseerhq/sirseer-scout/internal/search"
)

const (
	headerHeight = 2
	footerHeight = 1

	// pixelsPerRow converts terminal rows into the pixel units the
	// scroll threshold is expressed in.
	pixelsPerRow = 20

	wheelStep = 3
)

const appTitle = "GitHub User Search"

// focusRegion identifies which part of the screen receives keys.
type focusRegion int

const (
	focusSearch focusRegion = iota
	focusResults
)

type startSearchMsg struct{ term string }

type searchResultMsg struct {
	request search.SearchRequest
	page    *github.SearchPage
	err     error
}

type pageResultMsg struct {
	request search.PageRequest
	page    *github.SearchPage
	err     error
}

type profileResultMsg struct {
	request search.ProfileRequest
	profile *github.UserProfile
	err     error
}

type scrollCheckMsg struct{}

type openResultMsg struct{ err error }

// Options configures a Model. Zero values select the defaults.
type Options struct {
	Theme       *Theme
	Keys        *KeyMap
	Opener      URLOpener
	Logger      *slog.Logger
	InitialTerm string
}

// Model is the bubbletea model for the user browser. All search state
// lives in the controller; the model only holds presentation state.
type Model struct {
	ctx        context.Context
	controller *search.Controller
	client     github.Client
	theme      Theme
	keys       KeyMap
	opener     URLOpener
	logger     *slog.Logger

	input   textinput.Model
	results viewport.Model
	spinner spinner.Model
	help    help.Model

	focus    focusRegion
	selected int
	columns  int
	width    int
	height   int
	ready    bool

	pendingSearch      search.SearchRequest
	searching          bool
	loadingProfile     bool
	spinning           bool
	scrollCheckPending bool
	alert              string
	initialTerm        string
}

// NewModel creates a browser over controller. Network requests are
// bound to ctx.
func NewModel(ctx context.Context, controller *search.Controller, options Options) Model {
	theme := DefaultTheme
	if options.Theme != nil {
		theme = *options.Theme
	}
	keys := DefaultKeyMap
	if options.Keys != nil {
		keys = *options.Keys
	}
	opener := options.Opener
	if opener == nil {
		opener = OpenURL
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	input := textinput.New()
	input.Placeholder = "name or email"
	input.Prompt = "> "
	input.CharLimit = 256
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(theme.LinkForeground)

	helpModel := help.New()
	helpModel.Styles.ShortKey = lipgloss.NewStyle().Foreground(theme.NormalText)
	helpModel.Styles.ShortDesc = lipgloss.NewStyle().Foreground(theme.HelpText)

	return Model{
		ctx:         ctx,
		controller:  controller,
		client:      controller.Client(),
		theme:       theme,
		keys:        keys,
		opener:      opener,
		logger:      logger,
		input:       input,
		results:     viewport.New(0, 0),
		spinner:     spin,
		help:        helpModel,
		focus:       focusSearch,
		columns:     1,
		initialTerm: options.InitialTerm,
	}
}

// Init implements tea.Model. Starts the cursor blink and, when a term
// was given on the command line, the first search.
func (model Model) Init() tea.Cmd {
	if model.initialTerm == "" {
		return textinput.Blink
	}
	term := model.initialTerm
	return tea.Batch(textinput.Blink, func() tea.Msg {
		return startSearchMsg{term: term}
	})
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.layout()
		model.refreshResults()
		return model, model.reportScroll()

	case tea.KeyMsg:
		return model.handleKey(message)

	case tea.MouseMsg:
		return model, model.handleMouse(message)

	case startSearchMsg:
		model.input.SetValue(message.term)
		return model, model.startSearch(message.term)

	case searchResultMsg:
		if message.request != model.pendingSearch {
			// Superseded by a newer search; the controller drops it too.
			return model, nil
		}
		model.searching = false
		if err := model.controller.CompleteSearch(message.request, message.page, message.err); err != nil {
			model.showError(err)
		}
		model.selected = 0
		model.results.GotoTop()
		model.refreshResults()
		return model, model.reportScroll()

	case pageResultMsg:
		if err := model.controller.CompleteNextPage(message.request, message.page, message.err); err != nil {
			// The failed page is requested again only after the user
			// dismisses the alert and scrolls.
			model.showError(err)
			model.refreshResults()
			return model, nil
		}
		model.refreshResults()
		return model, model.reportScroll()

	case profileResultMsg:
		model.loadingProfile = false
		if err := model.controller.CompleteMoreInfo(message.request, message.profile, message.err); err != nil {
			model.showError(err)
		}
		return model, nil

	case scrollCheckMsg:
		model.scrollCheckPending = false
		return model, model.reportScroll()

	case openResultMsg:
		if message.err != nil {
			model.showError(message.err)
		}
		return model, nil

	case spinner.TickMsg:
		if !model.busy() {
			model.spinning = false
			return model, nil
		}
		var cmd tea.Cmd
		model.spinner, cmd = model.spinner.Update(message)
		model.refreshResults()
		return model, cmd
	}

	if model.focus == focusSearch {
		var cmd tea.Cmd
		model.input, cmd = model.input.Update(message)
		return model, cmd
	}
	return model, nil
}

func (model *Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(message, model.keys.ForceQuit) {
		return *model, tea.Quit
	}

	// The alert blocks everything until dismissed.
	if model.alert != "" {
		if key.Matches(message, model.keys.Select) || key.Matches(message, model.keys.Close) {
			model.alert = ""
		}
		return *model, nil
	}

	snapshot := model.controller.Snapshot()
	if snapshot.ModalOpen {
		return *model, model.handleModalKeys(message, snapshot.Profile)
	}

	if model.focus == focusSearch {
		switch {
		case key.Matches(message, model.keys.Submit):
			return *model, model.startSearch(model.input.Value())
		case key.Matches(message, model.keys.FocusToggle), key.Matches(message, model.keys.Close):
			model.focusResults()
			return *model, nil
		}
		var cmd tea.Cmd
		model.input, cmd = model.input.Update(message)
		return *model, cmd
	}

	switch {
	case key.Matches(message, model.keys.Quit):
		return *model, tea.Quit

	case key.Matches(message, model.keys.FocusSearch), key.Matches(message, model.keys.FocusToggle):
		model.focus = focusSearch
		model.refreshResults()
		return *model, model.input.Focus()

	case key.Matches(message, model.keys.Select):
		return *model, model.selectCurrent()

	case key.Matches(message, model.keys.Up):
		model.moveSelection(-model.columns)
	case key.Matches(message, model.keys.Down):
		model.moveSelection(model.columns)
	case key.Matches(message, model.keys.Left):
		model.moveSelection(-1)
	case key.Matches(message, model.keys.Right):
		model.moveSelection(1)
	case key.Matches(message, model.keys.PageUp):
		model.results.LineUp(model.results.Height)
	case key.Matches(message, model.keys.PageDown):
		model.results.LineDown(model.results.Height)
	case key.Matches(message, model.keys.Home):
		model.results.GotoTop()
		model.selected = 0
	case key.Matches(message, model.keys.End):
		model.results.GotoBottom()
		if n := len(snapshot.Users); n > 0 {
			model.selected = n - 1
		}
	default:
		return *model, nil
	}

	model.refreshResults()
	return *model, model.reportScroll()
}

func (model *Model) handleModalKeys(message tea.KeyMsg, profile github.UserProfile) tea.Cmd {
	switch {
	case key.Matches(message, model.keys.Close),
		key.Matches(message, model.keys.Select),
		key.Matches(message, model.keys.Quit):
		model.controller.CloseModal()

	case key.Matches(message, model.keys.OpenProfile):
		target := profile.HTMLURL
		if target == "" {
			target = "https://github.com/" + profile.Login
		}
		return model.open(target)

	case key.Matches(message, model.keys.OpenRepos):
		return model.open(profile.RepositoriesURL())

	case key.Matches(message, model.keys.OpenBlog):
		if target := blogURL(profile.Blog); target != "" {
			return model.open(target)
		}
	}
	return nil
}

// handleMouse scrolls the result grid with the wheel and opens the
// profile of a clicked card.
func (model *Model) handleMouse(message tea.MouseMsg) tea.Cmd {
	if model.alert != "" || model.controller.Snapshot().ModalOpen {
		return nil
	}

	switch message.Button {
	case tea.MouseButtonWheelUp:
		model.results.LineUp(wheelStep)
		return model.reportScroll()

	case tea.MouseButtonWheelDown:
		model.results.LineDown(wheelStep)
		return model.reportScroll()

	case tea.MouseButtonLeft:
		if message.Action != tea.MouseActionPress {
			return nil
		}
		index := model.cardAt(message.X, message.Y)
		if index < 0 {
			return nil
		}
		model.selected = index
		model.focusResults()
		return model.selectCurrent()
	}
	return nil
}

// cardAt maps a screen position to the index of the card under it, or
// -1 when the position is not on a card.
func (model Model) cardAt(x, y int) int {
	contentY := y - headerHeight
	if contentY < 0 || contentY >= model.results.Height || x < 0 {
		return -1
	}

	cell := CardWidth + cardGap
	column := x / cell
	if column >= model.columns || x%cell >= CardWidth {
		return -1
	}

	row := (contentY + model.results.YOffset) / CardHeight
	index := row*model.columns + column

	if index >= len(model.controller.Snapshot().Users) {
		return -1
	}
	return index
}

func (model *Model) startSearch(term string) tea.Cmd {
	request, err := model.controller.BeginSearch(term)
	if err != nil {
		return nil
	}

	model.pendingSearch = request
	model.searching = true
	model.focusResults()

	client, ctx := model.client, model.ctx
	return tea.Batch(func() tea.Msg {
		page, err := client.SearchUsers(ctx, request.Options())
		return searchResultMsg{request: request, page: page, err: err}
	}, model.startSpinner())
}

// reportScroll passes the viewport position to the controller and
// starts a page fetch when it asks for one. A throttled report
// schedules a trailing check so the last position is never lost.
// Nothing is reported while the error alert is up.
func (model *Model) reportScroll() tea.Cmd {
	if !model.ready || model.searching || model.alert != "" {
		return nil
	}
	if len(model.controller.Snapshot().Users) == 0 {
		return nil
	}

	position := search.ScrollPosition{
		Offset:         model.results.YOffset * pixelsPerRow,
		ViewportHeight: model.results.Height * pixelsPerRow,
		ContentHeight:  model.results.TotalLineCount() * pixelsPerRow,
	}

	fetch, wait := model.controller.OnScroll(position)
	if wait > 0 {
		if model.scrollCheckPending {
			return nil
		}
		model.scrollCheckPending = true
		return tea.Tick(wait, func(time.Time) tea.Msg { return scrollCheckMsg{} })
	}
	if !fetch {
		return nil
	}

	request, ok := model.controller.BeginNextPage()
	if !ok {
		return nil
	}
	model.refreshResults()

	client, ctx := model.client, model.ctx
	return tea.Batch(func() tea.Msg {
		page, err := client.SearchUsers(ctx, request.Options())
		return pageResultMsg{request: request, page: page, err: err}
	}, model.startSpinner())
}

func (model *Model) selectCurrent() tea.Cmd {
	if model.loadingProfile {
		return nil
	}
	users := model.controller.Snapshot().Users
	if model.selected < 0 || model.selected >= len(users) {
		return nil
	}

	request := model.controller.BeginMoreInfo(users[model.selected].Login)
	model.loadingProfile = true
	model.refreshResults()

	client, ctx := model.client, model.ctx
	return tea.Batch(func() tea.Msg {
		profile, err := client.GetUser(ctx, request.Login)
		return profileResultMsg{request: request, profile: profile, err: err}
	}, model.startSpinner())
}

func (model *Model) open(target string) tea.Cmd {
	opener := model.opener
	return func() tea.Msg {
		return openResultMsg{err: opener(target)}
	}
}

func (model *Model) startSpinner() tea.Cmd {
	if model.spinning {
		return nil
	}
	model.spinning = true
	return model.spinner.Tick
}

func (model Model) busy() bool {
	return model.searching || model.loadingProfile || model.controller.State().Fetching
}

func (model *Model) showError(err error) {
	model.alert = alertMessage(err)
	model.logger.Warn("request failed", "error", err)
}

func (model *Model) focusResults() {
	model.focus = focusResults
	model.input.Blur()
	model.refreshResults()
}

func (model *Model) moveSelection(delta int) {
	count := len(model.controller.Snapshot().Users)
	if count == 0 {
		return
	}
	selected := model.selected + delta
	if selected < 0 {
		selected = 0
	}
	if selected >= count {
		selected = count - 1
	}
	model.selected = selected
	model.ensureSelectedVisible()
}

// ensureSelectedVisible scrolls the viewport so the selected card's row
// is fully on screen.
func (model *Model) ensureSelectedVisible() {
	top := (model.selected / model.columns) * CardHeight
	bottom := top + CardHeight
	if top < model.results.YOffset {
		model.results.SetYOffset(top)
	} else if bottom > model.results.YOffset+model.results.Height {
		model.results.SetYOffset(bottom - model.results.Height)
	}
}

func (model *Model) layout() {
	model.columns = gridColumns(model.width)
	model.results.Width = model.width
	model.results.Height = model.height - headerHeight - footerHeight
	if model.results.Height < 1 {
		model.results.Height = 1
	}
	inputWidth := model.width - len(appTitle) - 6
	if inputWidth < 10 {
		inputWidth = 10
	}
	model.input.Width = inputWidth
	model.help.Width = model.width
}

// refreshResults re-renders the card grid and the list footer into the
// viewport.
func (model *Model) refreshResults() {
	snapshot := model.controller.Snapshot()

	cards := make([]string, len(snapshot.Users))
	for i, user := range snapshot.Users {
		selected := model.focus == focusResults && i == model.selected
		cards[i] = RenderCard(model.theme, user.AvatarURL, user.Login, selected)
	}

	content := renderGrid(cards, model.columns)
	if footer := model.listFooter(snapshot); footer != "" {
		if content != "" {
			content += "\n\n"
		}
		content += footer
	}
	model.results.SetContent(content)
}

func (model Model) listFooter(snapshot search.Snapshot) string {
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	switch {
	case snapshot.State.Fetching:
		return model.spinner.View() + faint.Render(" Loading more users...")
	case snapshot.State.EndOfResults:
		return faint.Render("End of results")
	case !model.searching && snapshot.State.Term != "" && len(snapshot.Users) == 0:
		return faint.Render("No users found")
	}
	return ""
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	snapshot := model.controller.Snapshot()
	title := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true).Render(appTitle)
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	var status string
	switch {
	case model.searching:
		status = model.spinner.View() + faint.Render(" Searching...")
	case model.loadingProfile:
		status = model.spinner.View() + faint.Render(" Loading profile...")
	case snapshot.State.Term != "":
		status = faint.Render(fmt.Sprintf("%d users found", snapshot.State.Results))
	default:
		status = faint.Render("Type a name or email and press Enter")
	}

	var helpView string
	switch {
	case snapshot.ModalOpen:
		helpView = model.help.View(modalHelp{keys: model.keys, hasBlog: snapshot.Profile.Blog != ""})
	case model.focus == focusSearch:
		helpView = model.help.View(searchHelp{keys: model.keys})
	default:
		helpView = model.help.View(model.keys)
	}

	view := strings.Join([]string{
		title + "  " + model.input.View(),
		status,
		model.results.View(),
		helpView,
	}, "\n")

	if snapshot.ModalOpen {
		view = centerOverlay(view, RenderModal(model.theme, snapshot.Profile, ModalWidth(model.width)), model.width, model.height)
	}
	if model.alert != "" {
		view = centerOverlay(view, RenderAlert(model.theme, model.alert, ModalWidth(model.width)), model.width, model.height)
	}
	return view
}
