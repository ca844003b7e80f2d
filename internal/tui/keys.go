package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/urna/internal/voting"
	"github.com/jask/urna/internal/workflow"
)

func (a *App) handleKey(m tea.KeyMsg) tea.Cmd {
	aff := a.session.Affordances()
	switch {
	case aff.RetryKeyCheck:
		if m.String() == "r" {
			return a.dispatch(workflow.KeyCheckRetried{})
		}
		return nil
	case aff.KeyForm:
		return a.handleKeyFormKey(m, aff)
	case aff.VotingSection:
		if aff.Busy {
			return nil
		}
		return a.handleVotingKey(m)
	}
	return nil
}

func (a *App) handleKeyFormKey(m tea.KeyMsg, aff workflow.Affordances) tea.Cmd {
	if aff.Busy {
		return nil
	}
	switch m.String() {
	case "tab", "shift+tab", "down", "up":
		dir := 1
		if m.String() == "shift+tab" || m.String() == "up" {
			dir = -1
		}
		a.keyInputs[a.keyFocus].Blur()
		a.keyFocus = (a.keyFocus + dir + len(a.keyInputs)) % len(a.keyInputs)
		a.keyInputs[a.keyFocus].Focus()
		return nil
	case "enter":
		return a.submitKeysCmd()
	case "ctrl+o":
		if aff.DatasetUpload {
			return a.submitDatasetCmd()
		}
		return nil
	}
	var cmd tea.Cmd
	a.keyInputs[a.keyFocus], cmd = a.keyInputs[a.keyFocus].Update(m)
	return cmd
}

// submitKeysCmd loads the files off disk and hands them to the workflow,
// which decides whether anything is sent.
func (a *App) submitKeysCmd() tea.Cmd {
	cryptoPath := a.keyInputs[inputCryptographyKey].Value()
	privatePath := a.keyInputs[inputPrivateKey].Value()
	electionPath := a.electionPath()
	withDataset := a.session.Settings.DatasetMode != workflow.DatasetNone
	return func() tea.Msg {
		bundle, err := voting.ReadKeyBundle(cryptoPath, privatePath)
		ev := workflow.KeysSubmitted{Bundle: bundle, Err: err}
		if err == nil && withDataset {
			ds, derr := voting.ReadElectionDataset(electionPath)
			if derr != nil {
				ev.Err = derr
			} else {
				ev.Dataset = &ds
			}
		}
		return eventMsg{ev: ev}
	}
}

func (a *App) submitDatasetCmd() tea.Cmd {
	path := a.electionPath()
	return func() tea.Msg {
		ds, err := voting.ReadElectionDataset(path)
		return eventMsg{ev: workflow.DatasetSubmitted{Dataset: ds, Err: err}}
	}
}

func (a *App) electionPath() string {
	if len(a.keyInputs) > inputElectionData {
		return a.keyInputs[inputElectionData].Value()
	}
	return ""
}

func (a *App) handleVotingKey(m tea.KeyMsg) tea.Cmd {
	switch a.focus {
	case focusCode:
		return a.handleCodeKey(m)
	case focusSuggestions:
		return a.handleSuggestionKey(m)
	case focusConfirm:
		return a.handleConfirmKey(m)
	}
	return a.handleOfficeKey(m)
}

func (a *App) handleOfficeKey(m tea.KeyMsg) tea.Cmd {
	options := a.officeOptions()
	switch m.Type {
	case tea.KeyUp:
		if a.officeCursor > 0 {
			a.officeCursor--
		}
		a.typeahead = ""
		return nil
	case tea.KeyDown:
		if a.officeCursor < len(options)-1 {
			a.officeCursor++
		}
		a.typeahead = ""
		return nil
	case tea.KeyEsc:
		a.typeahead = ""
		return nil
	case tea.KeyBackspace:
		if r := []rune(a.typeahead); len(r) > 0 {
			a.typeahead = string(r[:len(r)-1])
		}
		return nil
	case tea.KeyTab:
		if a.session.Affordances().CandidateSearch {
			a.setFocus(focusCode)
		}
		return nil
	case tea.KeyEnter:
		a.typeahead = ""
		cmd := a.dispatch(workflow.OfficeSelected{Office: options[a.officeCursor]})
		if a.session.Stage == workflow.StageOfficeSelected {
			a.setFocus(focusCode)
		}
		return cmd
	case tea.KeyRunes:
		a.typeahead += string(m.Runes)
		if i := bestOfficeMatch(a.session.Offices, a.typeahead); i >= 0 {
			a.officeCursor = i + 1
		}
	}
	return nil
}

func (a *App) handleCodeKey(m tea.KeyMsg) tea.Cmd {
	switch m.Type {
	case tea.KeyEsc, tea.KeyShiftTab:
		a.setFocus(focusOffices)
		return nil
	case tea.KeyDown, tea.KeyTab:
		if len(a.session.Suggestions) > 0 {
			a.setFocus(focusSuggestions)
		}
		return nil
	case tea.KeyEnter:
		if len(a.session.Suggestions) == 1 {
			return a.confirmSuggestion(0)
		}
		return nil
	case tea.KeySpace:
		return nil
	case tea.KeyRunes:
		for _, r := range m.Runes {
			if r < '0' || r > '9' {
				return nil
			}
		}
	}
	before := a.code.Value()
	var cmd tea.Cmd
	a.code, cmd = a.code.Update(m)
	if after := a.code.Value(); after != before {
		return tea.Batch(cmd, a.dispatch(workflow.CandidateSearchRequested{Code: after}))
	}
	return cmd
}

func (a *App) handleSuggestionKey(m tea.KeyMsg) tea.Cmd {
	switch m.Type {
	case tea.KeyUp:
		if a.suggestCursor > 0 {
			a.suggestCursor--
			return nil
		}
		a.setFocus(focusCode)
	case tea.KeyDown:
		if a.suggestCursor < len(a.session.Suggestions)-1 {
			a.suggestCursor++
		}
	case tea.KeyEsc, tea.KeyTab, tea.KeyShiftTab:
		a.setFocus(focusCode)
	case tea.KeyEnter:
		return a.confirmSuggestion(a.suggestCursor)
	}
	return nil
}

func (a *App) confirmSuggestion(i int) tea.Cmd {
	if i < 0 || i >= len(a.session.Suggestions) {
		return nil
	}
	cmd := a.dispatch(workflow.CandidateConfirmed{CandidateID: a.session.Suggestions[i].ID})
	if a.session.Stage == workflow.StageCandidateConfirming {
		a.setFocus(focusConfirm)
	}
	return cmd
}

func (a *App) handleConfirmKey(m tea.KeyMsg) tea.Cmd {
	switch m.Type {
	case tea.KeyEnter:
		return a.dispatch(workflow.VoteSubmitted{At: a.now()})
	case tea.KeyEsc:
		if len(a.session.Suggestions) > 0 {
			a.setFocus(focusSuggestions)
		} else {
			a.setFocus(focusCode)
		}
	}
	return nil
}
