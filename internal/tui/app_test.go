package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/goleak"

	"github.com/jask/urna/internal/voting"
	"github.com/jask/urna/internal/workflow"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeBackend struct {
	present    bool
	statusErr  []error // consumed one per KeysStatus call
	offices    []voting.Office
	candidates map[string][]voting.Candidate
	calls      []string
	votes      []voting.VoteRecord
	uploaded   []voting.KeyBundle
}

func (f *fakeBackend) KeysStatus(context.Context) (bool, error) {
	f.calls = append(f.calls, "keys-status")
	if len(f.statusErr) > 0 {
		err := f.statusErr[0]
		f.statusErr = f.statusErr[1:]
		if err != nil {
			return false, err
		}
	}
	return f.present, nil
}

func (f *fakeBackend) UploadKeys(_ context.Context, b voting.KeyBundle, _ *voting.ElectionDataset) (voting.Ack, error) {
	f.calls = append(f.calls, "upload-keys")
	f.uploaded = append(f.uploaded, b)
	return voting.Ack{Message: "ok"}, nil
}

func (f *fakeBackend) UploadElection(context.Context, voting.ElectionDataset) (voting.Ack, error) {
	f.calls = append(f.calls, "upload-eleicao")
	return voting.Ack{}, nil
}

func (f *fakeBackend) Offices(context.Context, int) ([]voting.Office, error) {
	f.calls = append(f.calls, "cargos")
	return f.offices, nil
}

func (f *fakeBackend) SearchCandidates(_ context.Context, office int, code string) ([]voting.Candidate, error) {
	f.calls = append(f.calls, "buscar-candidatos/"+code)
	return f.candidates[code], nil
}

func (f *fakeBackend) CastVote(_ context.Context, r voting.VoteRecord) (voting.Ack, error) {
	f.calls = append(f.calls, "votar")
	f.votes = append(f.votes, r)
	return voting.Ack{Message: "Voto registrado"}, nil
}

var (
	ana   = voting.Candidate{ID: 7, Name: "Ana", Party: "PXX", PhotoURL: "http://img/ana.png"}
	bruno = voting.Candidate{ID: 12, Name: "Bruno", Party: "PYY"}
)

func votingBackend() *fakeBackend {
	return &fakeBackend{
		present: true,
		offices: []voting.Office{{ID: 1, Name: "Prefeito"}},
		candidates: map[string][]voting.Candidate{
			"1":  {ana, bruno},
			"10": {ana},
		},
	}
}

func newFlowApp(t *testing.T, be *fakeBackend, mode workflow.DatasetMode) *App {
	t.Helper()
	settings := workflow.Settings{
		ElectionID:  1,
		DatasetMode: mode,
		Provenance:  voting.Provenance{LocationHash: "hash_localizacao", ChainHash: "hash_blockchain", QRCode: "qr_code"},
	}
	a := New(context.Background(), &workflow.Runner{Backend: be}, settings, "pt")
	a.now = func() time.Time { return time.UnixMilli(1_700_000_000_000) }
	return flowDrainCmd(t, a, a.Init())
}

func flowKey(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func flowApplyMsg(t *testing.T, a *App, msg tea.Msg) *App {
	t.Helper()
	next, cmd := a.Update(msg)
	got, ok := next.(*App)
	if !ok {
		t.Fatalf("Update returned %T, want *App", next)
	}
	return flowDrainCmd(t, got, cmd)
}

func flowPress(t *testing.T, a *App, key tea.KeyType) *App {
	t.Helper()
	return flowApplyMsg(t, a, tea.KeyMsg{Type: key})
}

func flowType(t *testing.T, a *App, input string) *App {
	t.Helper()
	for _, r := range input {
		a = flowApplyMsg(t, a, flowKey(string(r)))
	}
	return a
}

// flowDrainCmd runs cmd and every command it leads to, expanding batches.
func flowDrainCmd(t *testing.T, a *App, cmd tea.Cmd) *App {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 64 {
			t.Fatal("command chain exceeded max depth")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		if msg == nil {
			continue
		}
		next, nextCmd := a.Update(msg)
		got, ok := next.(*App)
		if !ok {
			t.Fatalf("command update returned %T, want *App", next)
		}
		a = got
		queue = append(queue, nextCmd)
	}
	return a
}

func writeKey(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func requireContains(t *testing.T, view, want string) {
	t.Helper()
	if !strings.Contains(view, want) {
		t.Fatalf("view missing %q:\n%s", want, view)
	}
}

func requireNotContains(t *testing.T, view, unwanted string) {
	t.Helper()
	if strings.Contains(view, unwanted) {
		t.Fatalf("view unexpectedly contains %q:\n%s", unwanted, view)
	}
}

func (f *fakeBackend) called(name string) bool {
	for _, c := range f.calls {
		if c == name {
			return true
		}
	}
	return false
}

func TestKeysPresentRendersOffices(t *testing.T) {
	be := votingBackend()
	a := newFlowApp(t, be, workflow.DatasetNone)

	if a.session.Stage != workflow.StageReady {
		t.Fatalf("stage = %s, want ready", a.session.Stage)
	}
	if strings.Join(be.calls, ",") != "keys-status,cargos" {
		t.Fatalf("calls = %v", be.calls)
	}
	view := a.View()
	empty := strings.Index(view, "— selecione —")
	office := strings.Index(view, "Prefeito")
	if empty < 0 || office < 0 || empty > office {
		t.Fatalf("expected empty option before Prefeito:\n%s", view)
	}
	requireNotContains(t, view, "Chave privada")
	requireNotContains(t, view, "Confirme seu voto")
}

func TestSearchConfirmAndVote(t *testing.T) {
	be := votingBackend()
	a := newFlowApp(t, be, workflow.DatasetNone)

	a = flowPress(t, a, tea.KeyDown)
	a = flowPress(t, a, tea.KeyEnter)
	if a.session.Stage != workflow.StageOfficeSelected || a.focus != focusCode {
		t.Fatalf("stage = %s focus = %d", a.session.Stage, a.focus)
	}

	a = flowType(t, a, "10")
	if !be.called("buscar-candidatos/10") {
		t.Fatalf("calls = %v", be.calls)
	}
	if len(a.session.Suggestions) != 1 || a.session.Suggestions[0].Name != "Ana" {
		t.Fatalf("suggestions = %#v", a.session.Suggestions)
	}
	requireNotContains(t, a.View(), "Confirme seu voto")

	a = flowPress(t, a, tea.KeyEnter)
	view := a.View()
	requireContains(t, view, "Confirme seu voto")
	requireContains(t, view, "Ana")
	requireContains(t, view, "PXX")
	requireContains(t, view, "http://img/ana.png")

	a = flowPress(t, a, tea.KeyEnter)
	if len(be.votes) != 1 {
		t.Fatalf("votes = %v", be.votes)
	}
	want := voting.VoteRecord{ID: 1_700_000_000_000, CandidateID: 7, LocationHash: "hash_localizacao", ChainHash: "hash_blockchain", QRCode: "qr_code"}
	if be.votes[0] != want {
		t.Fatalf("vote = %#v, want %#v", be.votes[0], want)
	}
	if a.session.Stage != workflow.StageReady || a.focus != focusOffices || a.officeCursor != 0 {
		t.Fatalf("not reset: stage %s focus %d cursor %d", a.session.Stage, a.focus, a.officeCursor)
	}
	view = a.View()
	requireContains(t, view, "Voto registrado com sucesso!")
	requireContains(t, view, "Comprovante")
	requireNotContains(t, view, "Confirme seu voto")
	if a.code.Value() != "" {
		t.Fatalf("code input not cleared: %q", a.code.Value())
	}
}

func TestSuggestionListSelection(t *testing.T) {
	be := votingBackend()
	a := newFlowApp(t, be, workflow.DatasetNone)
	a = flowPress(t, a, tea.KeyDown)
	a = flowPress(t, a, tea.KeyEnter)
	a = flowType(t, a, "1")
	if len(a.session.Suggestions) != 2 {
		t.Fatalf("suggestions = %#v", a.session.Suggestions)
	}

	// enter with several suggestions does nothing until one is chosen
	a = flowPress(t, a, tea.KeyEnter)
	if a.session.Candidate != nil {
		t.Fatalf("candidate pinned without a choice")
	}
	a = flowPress(t, a, tea.KeyDown)
	a = flowPress(t, a, tea.KeyDown)
	a = flowPress(t, a, tea.KeyEnter)
	if a.session.Candidate == nil || a.session.Candidate.ID != bruno.ID {
		t.Fatalf("candidate = %#v", a.session.Candidate)
	}
	if a.focus != focusConfirm {
		t.Fatalf("focus = %d", a.focus)
	}
}

func TestBackspaceClearsSearch(t *testing.T) {
	be := votingBackend()
	a := newFlowApp(t, be, workflow.DatasetNone)
	a = flowPress(t, a, tea.KeyDown)
	a = flowPress(t, a, tea.KeyEnter)
	a = flowType(t, a, "10")
	a = flowPress(t, a, tea.KeyEnter)
	if !a.session.Affordances().Confirmation {
		t.Fatalf("expected confirmation")
	}

	// back to the code field and erase it
	a = flowPress(t, a, tea.KeyEsc)
	a = flowPress(t, a, tea.KeyEsc)
	if a.focus != focusCode {
		t.Fatalf("focus = %d", a.focus)
	}
	calls := len(be.calls)
	a = flowPress(t, a, tea.KeyBackspace)
	a = flowPress(t, a, tea.KeyBackspace)
	if a.session.Code != "" || len(a.session.Suggestions) != 0 || a.session.Candidate != nil {
		t.Fatalf("search not cleared: %+v", a.session)
	}
	if len(be.calls) != calls+1 {
		t.Fatalf("expected one search for %q only, got %v", "1", be.calls[calls:])
	}
	requireNotContains(t, a.View(), "Confirme seu voto")
}

func TestSpaceDoesNotSearch(t *testing.T) {
	be := votingBackend()
	a := newFlowApp(t, be, workflow.DatasetNone)
	a = flowPress(t, a, tea.KeyDown)
	a = flowPress(t, a, tea.KeyEnter)
	if a.focus != focusCode {
		t.Fatalf("focus = %d", a.focus)
	}
	calls := len(be.calls)
	a = flowPress(t, a, tea.KeySpace)
	a = flowType(t, a, "1 ")
	if a.code.Value() != "1" || a.session.Code != "1" {
		t.Fatalf("code = %q session %q", a.code.Value(), a.session.Code)
	}
	if got := be.calls[calls:]; len(got) != 1 || got[0] != "buscar-candidatos/1" {
		t.Fatalf("calls = %v", got)
	}
}

func TestEmptyOfficeOptionCollapses(t *testing.T) {
	be := votingBackend()
	a := newFlowApp(t, be, workflow.DatasetNone)
	a = flowPress(t, a, tea.KeyDown)
	a = flowPress(t, a, tea.KeyEnter)
	a = flowType(t, a, "10")
	a = flowPress(t, a, tea.KeyEnter)

	a = flowPress(t, a, tea.KeyEsc) // confirm -> suggestions
	a = flowPress(t, a, tea.KeyEsc) // suggestions -> code
	a = flowPress(t, a, tea.KeyEsc) // code -> offices
	a = flowPress(t, a, tea.KeyUp)  // empty option
	a = flowPress(t, a, tea.KeyEnter)
	if a.session.Stage != workflow.StageReady || a.session.Office != nil {
		t.Fatalf("stage = %s office = %v", a.session.Stage, a.session.Office)
	}
	aff := a.session.Affordances()
	if aff.CandidateSearch || aff.Confirmation {
		t.Fatalf("affordances = %+v", aff)
	}
	view := a.View()
	requireNotContains(t, view, "Confirme seu voto")
	requireNotContains(t, view, "Número do candidato")
}

func TestOfficeTypeahead(t *testing.T) {
	be := votingBackend()
	be.offices = []voting.Office{{ID: 1, Name: "Prefeito"}, {ID: 2, Name: "Vereador"}, {ID: 3, Name: "Governador"}}
	a := newFlowApp(t, be, workflow.DatasetNone)

	a = flowType(t, a, "ve")
	if a.officeCursor != 2 {
		t.Fatalf("cursor = %d, want Vereador", a.officeCursor)
	}
	a = flowPress(t, a, tea.KeyEnter)
	if a.session.Office == nil || a.session.Office.ID != 2 {
		t.Fatalf("office = %v", a.session.Office)
	}
}

func TestKeyFormRequiresBothFiles(t *testing.T) {
	be := &fakeBackend{present: false}
	a := newFlowApp(t, be, workflow.DatasetNone)
	if a.session.Stage != workflow.StageAwaitingKeys {
		t.Fatalf("stage = %s", a.session.Stage)
	}
	view := a.View()
	requireContains(t, view, "Chave de criptografia")
	requireContains(t, view, "Chave privada")
	requireNotContains(t, view, "Cargo")

	dir := t.TempDir()
	a = flowType(t, a, writeKey(t, dir, "crypto.pem", "CRYPTO"))
	a = flowPress(t, a, tea.KeyEnter)

	if be.called("upload-keys") {
		t.Fatalf("upload sent with a missing file: %v", be.calls)
	}
	if a.session.Notice.Kind != workflow.NoticeBlocked {
		t.Fatalf("notice = %#v", a.session.Notice)
	}
	requireContains(t, a.View(), "Por favor, selecione ambos os arquivos de chave.")
}

func TestKeyUploadOpensVoting(t *testing.T) {
	be := &fakeBackend{present: false, offices: []voting.Office{{ID: 1, Name: "Prefeito"}}}
	a := newFlowApp(t, be, workflow.DatasetNone)

	dir := t.TempDir()
	a = flowType(t, a, writeKey(t, dir, "crypto.pem", "CRYPTO"))
	a = flowPress(t, a, tea.KeyTab)
	a = flowType(t, a, writeKey(t, dir, "private.pem", "PRIVATE"))
	a = flowPress(t, a, tea.KeyEnter)

	if len(be.uploaded) != 1 || string(be.uploaded[0].PrivateKey.Data) != "PRIVATE" {
		t.Fatalf("uploaded = %#v", be.uploaded)
	}
	if a.session.Stage != workflow.StageReady || !be.called("cargos") {
		t.Fatalf("stage = %s calls = %v", a.session.Stage, be.calls)
	}
	view := a.View()
	requireContains(t, view, "Chaves enviadas com sucesso!")
	requireContains(t, view, "Prefeito")
	requireNotContains(t, view, "Chave privada")
}

func TestSeparateModeShowsDatasetUpload(t *testing.T) {
	be := &fakeBackend{present: false}
	a := newFlowApp(t, be, workflow.DatasetSeparate)
	if len(a.keyInputs) != 3 {
		t.Fatalf("inputs = %d", len(a.keyInputs))
	}
	requireContains(t, a.View(), "ctrl+o")

	dir := t.TempDir()
	a = flowPress(t, a, tea.KeyTab)
	a = flowPress(t, a, tea.KeyTab)
	a = flowType(t, a, writeKey(t, dir, "eleicao.json", "{}"))
	a = flowApplyMsg(t, a, tea.KeyMsg{Type: tea.KeyCtrlO})
	if !be.called("upload-eleicao") || !a.session.DatasetUploaded {
		t.Fatalf("calls = %v", be.calls)
	}
	if a.session.Stage != workflow.StageAwaitingKeys {
		t.Fatalf("stage = %s", a.session.Stage)
	}
}

func TestKeyCheckRetry(t *testing.T) {
	be := votingBackend()
	be.statusErr = []error{errors.New("connection refused")}
	a := newFlowApp(t, be, workflow.DatasetNone)
	if !a.session.Affordances().RetryKeyCheck {
		t.Fatalf("expected retry affordance")
	}
	requireContains(t, a.View(), "r: verificar novamente")

	a = flowApplyMsg(t, a, flowKey("r"))
	if a.session.Stage != workflow.StageReady {
		t.Fatalf("stage = %s", a.session.Stage)
	}
	requireContains(t, a.View(), "Prefeito")
}

func TestEnglishCatalog(t *testing.T) {
	be := votingBackend()
	a := New(context.Background(), &workflow.Runner{Backend: be}, workflow.Settings{ElectionID: 1}, "en")
	a = flowDrainCmd(t, a, a.Init())
	requireContains(t, a.View(), "— select —")
	if got := lookup("xx", labelOffice); got != "Cargo" {
		t.Fatalf("unknown language should fall back to pt, got %q", got)
	}
	if got := lookup("en", "no-such-label"); got != "no-such-label" {
		t.Fatalf("got %q", got)
	}
}

func TestBestOfficeMatch(t *testing.T) {
	offices := []voting.Office{
		{ID: 1, Name: "Prefeito"},
		{ID: 2, Name: "Vice-Prefeito"},
		{ID: 3, Name: "Vereador"},
		{ID: 4, Name: "Governador"},
	}
	tests := []struct {
		query string
		want  int
	}{
		{"", -1},
		{"pre", 0},
		{"PREF", 0},
		{"vice", 1},
		{"ver", 2},
		{"nador", 3},
		{"vereadr", 2},
		{"xyz", -1},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := bestOfficeMatch(offices, tt.query); got != tt.want {
				t.Fatalf("bestOfficeMatch(%q) = %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}
