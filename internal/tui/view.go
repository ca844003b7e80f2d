package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/urna/internal/workflow"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("25")).Padding(0, 2)
	sectionStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	focusedStyle  = sectionStyle.BorderForeground(lipgloss.Color("39"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	blockedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	retryStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	confirmStyle  = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("42")).Padding(0, 2)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 2)
	receiptLayout = "02/01/2006 15:04:05"
)

func (a *App) View() string {
	aff := a.session.Affordances()
	parts := []string{titleStyle.Render(a.text(labelTitle))}

	switch {
	case aff.KeyForm:
		parts = append(parts, a.renderKeyForm(aff))
	case aff.VotingSection:
		parts = append(parts, a.renderOffices())
		if aff.CandidateSearch {
			parts = append(parts, a.renderSearch())
		}
		if aff.Confirmation {
			parts = append(parts, a.renderConfirmation(aff))
		}
		if a.session.Receipt != nil {
			parts = append(parts, a.renderReceipt())
		}
	}

	if n := a.renderNotice(); n != "" {
		parts = append(parts, n)
	}
	parts = append(parts, footerStyle.Render(a.help(aff)))
	return strings.Join(parts, "\n\n")
}

func (a *App) renderKeyForm(aff workflow.Affordances) string {
	lines := make([]string, 0, len(a.keyInputs)+1)
	for _, in := range a.keyInputs {
		lines = append(lines, in.View())
	}
	if aff.Busy {
		lines = append(lines, dimStyle.Render(a.text(labelUploading)))
	}
	return focusedStyle.Render(strings.Join(lines, "\n"))
}

func (a *App) renderOffices() string {
	lines := []string{a.text(labelOffice)}
	for i, o := range a.officeOptions() {
		name := a.text(labelEmptyOption)
		if o != nil {
			name = o.Name
		}
		prefix := "  "
		if i == a.officeCursor && a.focus == focusOffices {
			prefix = cursorStyle.Render("> ")
		}
		mark := " "
		if o != nil && a.session.Office != nil && a.session.Office.ID == o.ID {
			mark = "●"
		}
		lines = append(lines, fmt.Sprintf("%s%s %s", prefix, mark, name))
	}
	if a.typeahead != "" {
		lines = append(lines, dimStyle.Render("/"+a.typeahead))
	}
	return a.box(focusOffices, strings.Join(lines, "\n"))
}

func (a *App) renderSearch() string {
	lines := []string{a.code.View()}
	switch {
	case a.session.Stage == workflow.StageCandidateSearching && len(a.session.Suggestions) == 0:
		lines = append(lines, dimStyle.Render(a.text(labelSearching)))
	case a.session.Code != "" && len(a.session.Suggestions) == 0:
		lines = append(lines, dimStyle.Render(a.text(labelNoResults)))
	}
	for i, c := range a.session.Suggestions {
		prefix := "  "
		if i == a.suggestCursor && a.focus == focusSuggestions {
			prefix = cursorStyle.Render("> ")
		}
		lines = append(lines, fmt.Sprintf("%s%d  %s (%s)", prefix, c.ID, c.Name, c.Party))
	}
	if a.focus == focusSuggestions {
		return a.box(focusSuggestions, strings.Join(lines, "\n"))
	}
	return a.box(focusCode, strings.Join(lines, "\n"))
}

func (a *App) renderConfirmation(aff workflow.Affordances) string {
	c := a.session.Candidate
	if c == nil {
		return ""
	}
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(a.text(labelConfirmTitle)),
		"",
		fmt.Sprintf("%s: %d", a.text(labelNumber), c.ID),
		lipgloss.NewStyle().Bold(true).Render(c.Name),
		fmt.Sprintf("%s: %s", a.text(labelParty), c.Party),
	}
	if c.PhotoURL != "" {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("%s: %s", a.text(labelPhoto), c.PhotoURL)))
	}
	if aff.Busy {
		lines = append(lines, "", dimStyle.Render(a.text(labelSubmitting)))
	}
	return confirmStyle.Render(strings.Join(lines, "\n"))
}

func (a *App) renderReceipt() string {
	r := a.session.Receipt
	lines := []string{
		a.text(labelReceipt),
		fmt.Sprintf("#%d  %s", r.VoteID, r.OfficeName),
		r.RecordedAt.In(time.Local).Format(receiptLayout),
	}
	if r.Message != "" {
		lines = append(lines, r.Message)
	}
	return dimStyle.Render(strings.Join(lines, "\n"))
}

func (a *App) renderNotice() string {
	n := a.session.Notice
	if n.Message == "" {
		return ""
	}
	text := a.text(string(n.Message))
	switch n.Kind {
	case workflow.NoticeBlocked:
		return blockedStyle.Render(text)
	case workflow.NoticeRetry:
		return retryStyle.Render(text)
	}
	return infoStyle.Render(text)
}

func (a *App) help(aff workflow.Affordances) string {
	switch {
	case aff.RetryKeyCheck:
		return a.text(labelHelpRetry)
	case aff.KeyForm:
		if aff.DatasetUpload {
			return a.text(labelHelpKeys) + "  " + a.text(labelHelpDataset)
		}
		return a.text(labelHelpKeys)
	case !aff.VotingSection:
		return ""
	}
	switch a.focus {
	case focusCode:
		return a.text(labelHelpCode)
	case focusSuggestions:
		return a.text(labelHelpSuggestions)
	case focusConfirm:
		return a.text(labelHelpConfirm)
	}
	return a.text(labelHelpOffices)
}

func (a *App) box(area focusArea, body string) string {
	if a.focus == area {
		return focusedStyle.Render(body)
	}
	return sectionStyle.Render(body)
}
