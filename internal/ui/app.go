package ui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/movix/movix/internal/logging"
	"github.com/movix/movix/internal/otel"
	"github.com/movix/movix/internal/session"
	"github.com/movix/movix/internal/ui/movies"
	"github.com/movix/movix/internal/ui/searchbar"
)

const (
	recommendationTitle = "🎥 LLM Movie Recommendation"
	moviesTitle         = "🍿 Top Movies:"
	noMovies            = "No rated movies in this result."
)

// AppConfig holds the App's collaborators. Every field is optional.
type AppConfig struct {
	// LoadHistory fetches the search history once on startup and answers
	// with HistoryLoaded.
	LoadHistory func() tea.Cmd
	// Search runs one query request and answers with SearchCompleted
	// carrying the same ticket and query ID.
	Search func(t session.Ticket, queryID string) tea.Cmd

	Events    *otel.Logger
	Ring      *otel.RingBuffer
	ImageBase string
	Theme     string // glamour style name

	// NewQueryID defaults to uuid.NewString.
	NewQueryID func() string
}

type focusArea int

const (
	focusSearch focusArea = iota
	focusGrid
)

// App is the root Bubble Tea model. It owns all view state; the search
// bar and the grid get values and hand back intents.
type App struct {
	cfg AppConfig

	sess        session.Session
	query       string
	showHistory bool
	focus       focusArea
	searches    int // search requests issued

	search  searchbar.Model
	grid    movies.Grid
	loading loadingIndicator
	body    viewport.Model
	rec     string // recommendation rendered for the current width

	followHover bool
	showDebug   bool
	width       int
	height      int
	ready       bool
}

// NewApp creates an App wired to cfg.
func NewApp(cfg AppConfig) App {
	if cfg.NewQueryID == nil {
		cfg.NewQueryID = uuid.NewString
	}
	return App{
		cfg:     cfg,
		search:  searchbar.New(),
		grid:    movies.NewGrid(cfg.ImageBase),
		loading: newLoadingIndicator(),
		body:    viewport.New(0, 0),
	}
}

// Init requests the search history.
func (a App) Init() tea.Cmd {
	if a.cfg.LoadHistory == nil {
		return nil
	}
	a.cfg.Events.Info(otel.KindHistoryFetch, "ui", "")
	return a.cfg.LoadHistory()
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	start := time.Now()
	cmd := a.update(msg)
	a.refresh()
	if _, tick := msg.(spinner.TickMsg); !tick {
		a.cfg.Events.TraceMsg(msg, time.Since(start))
	}
	return a, cmd
}

func (a *App) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.search.SetWidth(msg.Width)
		a.grid.SetWidth(msg.Width)
		a.renderRecommendation()
		return nil

	case HistoryLoaded:
		a.historyLoaded(msg)
		return nil

	case SearchCompleted:
		return a.searchCompleted(msg)

	case spinner.TickMsg:
		return a.loading.update(msg, a.sess.Loading())
	}

	// Cursor blink and anything else the text input wants.
	var res searchbar.Result
	a.search, res = a.search.Update(msg, a.searchState())
	return res.Cmd
}

func (a *App) historyLoaded(msg HistoryLoaded) {
	if msg.Err != nil {
		logging.Error("history fetch failed", "error", msg.Err)
		a.cfg.Events.Error(otel.KindHistoryError, "ui", msg.Err)
		return
	}
	a.sess.SetHistory(msg.History)
	logging.Info("history loaded", "entries", len(msg.History))
	a.cfg.Events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindHistoryLoaded, Comp: "ui", Count: len(msg.History)})
}

func (a *App) searchCompleted(msg SearchCompleted) tea.Cmd {
	ev := otel.Event{
		Comp:    "ui",
		QueryID: msg.QueryID,
		Seq:     msg.Ticket.Seq,
		Query:   msg.Ticket.Query,
		Dur:     msg.Dur,
	}

	var current bool
	if msg.Err != nil {
		current = a.sess.Reject(msg.Ticket, msg.Err)
	} else {
		current = a.sess.Resolve(msg.Ticket, msg.Result)
	}
	if !current {
		logging.Debug("stale search response dropped", "seq", msg.Ticket.Seq, "latest", a.sess.Seq())
		ev.Level, ev.Kind = otel.LevelDebug, otel.KindSearchStale
		a.cfg.Events.Emit(ev)
		return nil
	}

	if msg.Err != nil {
		logging.Error("search failed", "query", msg.Ticket.Query, "qid", msg.QueryID, "error", msg.Err)
		ev.Level, ev.Kind, ev.Err = otel.LevelError, otel.KindSearchError, msg.Err.Error()
		a.cfg.Events.Emit(ev)
		return nil
	}

	a.grid.SetMovies(msg.Result.SimilarMovies)
	var cmd tea.Cmd
	if a.focus == focusGrid {
		cmd = a.focusInput()
	}
	a.renderRecommendation()
	a.body.GotoTop()

	logging.Info("search complete", "query", msg.Ticket.Query, "movies", a.grid.Len(), "dur", msg.Dur)
	ev.Level, ev.Kind, ev.Count = otel.LevelInfo, otel.KindSearchComplete, a.grid.Len()
	a.cfg.Events.Emit(ev)
	return cmd
}

// handleKeyMsg processes keyboard input.
func (a *App) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.Debug):
		a.showDebug = !a.showDebug
		return nil
	}

	if a.showDebug {
		if key.Matches(msg, keys.Escape) {
			a.showDebug = false
		}
		return nil
	}

	switch {
	case key.Matches(msg, keys.PageUp):
		a.body.SetYOffset(a.body.YOffset - max(a.body.Height, 1))
		a.followHover = false
		return nil
	case key.Matches(msg, keys.PageDown):
		a.body.SetYOffset(a.body.YOffset + max(a.body.Height, 1))
		a.followHover = false
		return nil
	}

	if a.focus == focusGrid {
		return a.handleGridKey(msg)
	}
	return a.handleSearchKey(msg)
}

func (a *App) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, keys.Tab) {
		if a.grid.Len() > 0 {
			a.focus = focusGrid
			a.search.Blur()
			a.grid.Hover(0)
			a.followHover = true
		}
		return nil
	}

	var res searchbar.Result
	a.search, res = a.search.Update(msg, a.searchState())
	a.query = res.Query

	switch res.Intent {
	case searchbar.IntentSearch:
		return tea.Batch(res.Cmd, a.startSearch(res.Query))
	case searchbar.IntentSelectHistory:
		a.showHistory = false
		return tea.Batch(res.Cmd, a.startSearch(res.Query))
	case searchbar.IntentToggleHistory:
		a.showHistory = !a.showHistory
	case searchbar.IntentFocus:
		a.showHistory = false
	}
	return res.Cmd
}

func (a *App) handleGridKey(msg tea.KeyMsg) tea.Cmd {
	cols := a.grid.Columns()

	switch {
	case key.Matches(msg, keys.QuitGrid):
		return tea.Quit

	case key.Matches(msg, keys.Search):
		return a.focusInput()

	case key.Matches(msg, a.search.KeyMap().Button):
		if a.sess.Loading() {
			return nil
		}
		return a.startSearch(a.query)

	case key.Matches(msg, keys.Left):
		a.followHover = a.grid.Move(-1)
	case key.Matches(msg, keys.Right):
		a.followHover = a.grid.Move(1)
	case key.Matches(msg, keys.Down):
		a.followHover = a.grid.Move(cols)
	case key.Matches(msg, keys.Up):
		if !a.grid.Move(-cols) {
			return a.focusInput()
		}
		a.followHover = true

	case key.Matches(msg, keys.Open):
		if m, open := a.grid.Toggle(); open {
			logging.Debug("card opened", "title", m.Title)
			a.cfg.Events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindCardOpen, Comp: "ui", Msg: m.Title})
		}
		a.followHover = true

	case key.Matches(msg, keys.AddToList):
		// Placeholder action: recorded, nothing else happens.
		if m, ok := a.grid.AddToList(); ok {
			logging.Debug("add to list", "id", m.ID, "title", m.Title)
			a.cfg.Events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindAddToList, Comp: "ui", Msg: m.Title})
		}
	}
	return nil
}

// focusInput moves focus to the text input, which always hides history.
func (a *App) focusInput() tea.Cmd {
	a.focus = focusSearch
	a.grid.Leave()
	a.showHistory = false
	a.followHover = false
	return a.search.Focus()
}

// startSearch begins a search for q exactly as typed.
func (a *App) startSearch(q string) tea.Cmd {
	t := a.sess.Begin(q)
	qid := a.cfg.NewQueryID()
	a.searches++

	logging.Info("search started", "query", q, "seq", t.Seq, "qid", qid)
	a.cfg.Events.Emit(otel.Event{
		Level:   otel.LevelInfo,
		Kind:    otel.KindSearchStart,
		Comp:    "ui",
		QueryID: qid,
		Seq:     t.Seq,
		Query:   q,
	})

	var cmd tea.Cmd
	if a.cfg.Search != nil {
		cmd = a.cfg.Search(t, qid)
	}
	return tea.Batch(cmd, a.loading.start())
}

func (a App) searchState() searchbar.State {
	return searchbar.State{
		Query:       a.query,
		History:     a.sess.History(),
		ShowHistory: a.showHistory,
		Loading:     a.sess.Loading(),
	}
}

func (a *App) renderRecommendation() {
	a.rec = ""
	if res := a.sess.Result(); res != nil {
		var err error
		a.rec, err = renderMarkdown(res.Recommendation, a.cfg.Theme, a.width-4)
		if err != nil {
			a.cfg.Events.Error(otel.KindRender, "ui", err)
		}
	}
}

// refresh sizes the scrolling body to what the fixed top leaves and keeps
// the hovered card on screen.
func (a *App) refresh() {
	if !a.ready {
		return
	}
	top := a.topView()
	a.body.Width = a.width
	a.body.Height = max(a.height-lipgloss.Height(top)-1, 1)

	content, gridStart := a.bodyContent()
	a.body.SetContent(content)

	if !a.followHover || a.grid.Hovered() < 0 {
		return
	}
	line := gridStart + a.grid.HoveredLine()
	switch {
	case line < a.body.YOffset:
		a.body.SetYOffset(line)
	case line >= a.body.YOffset+a.body.Height:
		a.body.SetYOffset(line - a.body.Height/2)
	}
}

// topView is the fixed part: header, search bar, button and spinner.
func (a App) topView() string {
	header := HeaderTitle.Render("Welcome to ") + Brand.Render("Movix") + "\n" +
		Tagline.Render("Your AI-Powered Movie Recommendation Website")

	button := Button.Render("Get Recommendations")
	if a.sess.Loading() {
		button = ButtonDisabled.Render("Loading...")
	}
	button += "  " + StatusBarText.Render("enter / ^s")

	parts := []string{header, "", a.search.View(a.searchState()), button}
	if l := a.loading.view(a.sess.Loading()); l != "" {
		parts = append(parts, l)
	}
	return strings.Join(parts, "\n")
}

// bodyContent renders the scrolling part and the line where the grid
// starts. The last good result stays visible while a new search runs.
func (a App) bodyContent() (string, int) {
	if a.sess.Result() == nil {
		return "", 0
	}
	var b strings.Builder
	b.WriteString(SectionTitle.Render(recommendationTitle))
	b.WriteString("\n")
	if a.rec != "" {
		b.WriteString(RecommendationBox.Width(max(a.width-2, 10)).Render(a.rec))
		b.WriteString("\n")
	}
	b.WriteString(SectionTitle.Render(moviesTitle))
	b.WriteString("\n")

	gridStart := lipgloss.Height(b.String()) - 1
	if a.grid.Len() == 0 {
		b.WriteString(EmptyStyle.Render(noMovies))
	} else {
		b.WriteString(a.grid.View())
	}
	return b.String(), gridStart
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}
	if a.showDebug {
		return debugOverlay(a.cfg.Ring, a.cfg.Events.Dropped(), a.width, a.height-1) + "\n" + debugStatusBar(a.width)
	}
	return a.topView() + "\n" + a.body.View() + "\n" + a.statusBar()
}

func (a App) statusBar() string {
	hint := func(k, text string) string {
		return StatusBarKey.Render(k) + StatusBarText.Render(":"+text)
	}
	var keysText []string
	if a.focus == focusGrid {
		keysText = []string{hint("←→↑↓", "move"), hint("enter", "details"), hint("a", "add"), hint("/", "search")}
	} else {
		keysText = []string{hint("enter", "search"), hint("^r", "history"), hint("tab", "movies")}
	}
	keysText = append(keysText, hint("pgup/pgdn", "scroll"), hint("^e", "debug"), hint("^c", "quit"))

	right := a.sess.Phase().String()
	if a.grid.Len() > 0 {
		right += " · " + movieCount(a.grid.Len())
	}
	left := strings.Join(keysText, "  ")
	gap := max(a.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return StatusBar.Width(a.width).Render(left + strings.Repeat(" ", gap) + right)
}

func movieCount(n int) string {
	if n == 1 {
		return "1 movie"
	}
	return strconv.Itoa(n) + " movies"
}

// Query returns the current query text (for testing).
func (a App) Query() string { return a.query }

// ShowHistory reports whether the history panel is visible.
func (a App) ShowHistory() bool { return a.showHistory }

// Loading reports whether the latest search is in flight.
func (a App) Loading() bool { return a.sess.Loading() }

// Session returns a copy of the search session (for testing).
func (a App) Session() session.Session { return a.sess }

// Searches returns the number of search requests issued.
func (a App) Searches() int { return a.searches }

// Grid returns the movie grid (for testing).
func (a App) Grid() movies.Grid { return a.grid }

// GridFocused reports whether keyboard focus is on the results grid.
func (a App) GridFocused() bool { return a.focus == focusGrid }
