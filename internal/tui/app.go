package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/urna/internal/voting"
	"github.com/jask/urna/internal/workflow"
)

// App is the terminal's presentation surface. It owns no workflow rules:
// every operator action becomes a workflow.Event and every backend call is
// a workflow.Effect run as a tea.Cmd.
type App struct {
	ctx     context.Context
	runner  *workflow.Runner
	session workflow.Session
	lang    string
	now     func() time.Time
	logger  *slog.Logger

	// key form
	keyInputs []textinput.Model
	keyFocus  int

	// voting section
	focus         focusArea
	officeCursor  int // 0 is the empty option
	typeahead     string
	code          textinput.Model
	suggestCursor int

	width  int
	height int
}

type focusArea int

const (
	focusOffices focusArea = iota
	focusCode
	focusSuggestions
	focusConfirm
)

// eventMsg carries a workflow event through the bubbletea loop.
type eventMsg struct {
	ev workflow.Event
}

const (
	inputCryptographyKey = iota
	inputPrivateKey
	inputElectionData
)

func New(ctx context.Context, runner *workflow.Runner, settings workflow.Settings, lang string) *App {
	logger := runner.Logger
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{
		ctx:     ctx,
		runner:  runner,
		session: workflow.NewSession(settings),
		lang:    lang,
		now:     time.Now,
		logger:  logger,
	}

	fields := []string{labelCryptographyKey, labelPrivateKey}
	if a.session.Settings.DatasetMode != workflow.DatasetNone {
		fields = append(fields, labelElectionData)
	}
	for i, f := range fields {
		inp := textinput.New()
		inp.Cursor.SetMode(cursor.CursorStatic)
		inp.Prompt = a.text(f) + ": "
		inp.Placeholder = "/caminho/arquivo.pem"
		if f == labelElectionData {
			inp.Placeholder = "/caminho/eleicao.json"
		}
		if i == 0 {
			inp.Focus()
		}
		a.keyInputs = append(a.keyInputs, inp)
	}

	a.code = textinput.New()
	a.code.Cursor.SetMode(cursor.CursorStatic)
	a.code.Prompt = a.text(labelCandidateCode) + ": "
	a.code.CharLimit = 8
	return a
}

func (a *App) Init() tea.Cmd {
	return a.dispatch(workflow.Started{})
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
	case tea.KeyMsg:
		if m.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.handleKey(m)
	case eventMsg:
		return a, a.dispatch(m.ev)
	}
	return a, nil
}

// dispatch reduces ev into the session and schedules the resulting effects.
func (a *App) dispatch(ev workflow.Event) tea.Cmd {
	if ev == nil {
		return nil
	}
	prev := a.session.Stage
	next, effects := workflow.Reduce(a.session, ev)
	a.session = next
	if prev != next.Stage {
		a.logger.Debug("stage changed", "from", prev.String(), "to", next.Stage.String())
	}
	a.sync(prev)

	cmds := make([]tea.Cmd, 0, len(effects))
	for _, eff := range effects {
		cmds = append(cmds, a.run(eff))
	}
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

func (a *App) run(eff workflow.Effect) tea.Cmd {
	ctx, runner := a.ctx, a.runner
	return func() tea.Msg {
		return eventMsg{ev: runner.Run(ctx, eff)}
	}
}

// sync lines the widgets up with the session after a transition.
func (a *App) sync(prev workflow.Stage) {
	s := a.session
	if a.code.Value() != s.Code {
		a.code.SetValue(s.Code)
		a.code.CursorEnd()
	}
	if a.officeCursor > len(s.Offices) {
		a.officeCursor = 0
	}
	if a.suggestCursor >= len(s.Suggestions) {
		a.suggestCursor = 0
	}

	switch s.Stage {
	case workflow.StageReady:
		if prev != workflow.StageReady {
			a.officeCursor = 0
			a.typeahead = ""
		}
		a.setFocus(focusOffices)
	case workflow.StageOfficeSelected:
		if prev != s.Stage {
			a.setFocus(focusCode)
		}
	case workflow.StageCandidateConfirming, workflow.StageVoteSubmitting:
		if prev != s.Stage {
			a.setFocus(focusConfirm)
		}
	}
}

func (a *App) setFocus(f focusArea) {
	a.focus = f
	if f == focusCode {
		a.code.Focus()
		return
	}
	a.code.Blur()
}

// officeOptions is the office list as shown: the empty option first.
func (a *App) officeOptions() []*voting.Office {
	out := make([]*voting.Office, 0, len(a.session.Offices)+1)
	out = append(out, nil)
	for i := range a.session.Offices {
		out = append(out, &a.session.Offices[i])
	}
	return out
}

func (a *App) text(id string) string {
	return lookup(a.lang, id)
}
