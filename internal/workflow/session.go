// Package workflow holds the voting-terminal state machine. Reduce is pure:
// it takes the current Session and an Event and returns the next Session
// plus the backend Effects to run. Runner executes effects and turns their
// outcomes back into Events.
package workflow

import "github.com/jask/urna/internal/voting"

// Stage is the current step of a voting session.
type Stage int

const (
	StageCheckingKeys Stage = iota
	StageAwaitingKeys
	StageReady
	StageOfficeSelected
	StageCandidateSearching
	StageCandidateConfirming
	StageVoteSubmitting
)

func (s Stage) String() string {
	switch s {
	case StageCheckingKeys:
		return "checking-keys"
	case StageAwaitingKeys:
		return "awaiting-keys"
	case StageReady:
		return "ready"
	case StageOfficeSelected:
		return "office-selected"
	case StageCandidateSearching:
		return "candidate-searching"
	case StageCandidateConfirming:
		return "candidate-confirming"
	case StageVoteSubmitting:
		return "vote-submitting"
	}
	return "unknown"
}

// DatasetMode says how election data reaches the backend.
type DatasetMode string

const (
	DatasetNone     DatasetMode = "none"
	DatasetBundled  DatasetMode = "bundled"
	DatasetSeparate DatasetMode = "separate"
)

// Settings are fixed for the lifetime of a terminal session.
type Settings struct {
	ElectionID  int
	DatasetMode DatasetMode
	Provenance  voting.Provenance
}

// Session is the whole controller state. It is treated as a value: Reduce
// never mutates the Session it is given.
type Session struct {
	Settings Settings
	Stage    Stage

	// KeysPresent is the result of the latest key check or upload.
	KeysPresent bool
	// CheckFailed is set when the latest key check could not complete.
	CheckFailed     bool
	Uploading       bool
	DatasetUploaded bool

	Offices     []voting.Office
	Office      *voting.Office
	Code        string
	Suggestions []voting.Candidate
	Candidate   *voting.Candidate

	// SearchGeneration identifies the latest candidate search issued.
	SearchGeneration uint64

	Notice  Notice
	Receipt *voting.Receipt
}

// NewSession returns a session waiting for its first key check.
func NewSession(s Settings) Session {
	if s.DatasetMode == "" {
		s.DatasetMode = DatasetNone
	}
	return Session{Settings: s, Stage: StageCheckingKeys}
}

// Affordances is what the presentation surface may show.
type Affordances struct {
	KeyForm         bool
	DatasetUpload   bool
	RetryKeyCheck   bool
	VotingSection   bool
	CandidateSearch bool
	Confirmation    bool
	Busy            bool
}

func (s Session) Affordances() Affordances {
	a := Affordances{
		KeyForm:       s.Stage == StageAwaitingKeys,
		RetryKeyCheck: s.Stage == StageCheckingKeys && s.CheckFailed,
		VotingSection: s.KeysPresent,
		Busy:          s.Uploading || s.Stage == StageVoteSubmitting,
	}
	a.DatasetUpload = a.KeyForm && s.Settings.DatasetMode == DatasetSeparate
	if !a.VotingSection {
		return a
	}
	switch s.Stage {
	case StageOfficeSelected, StageCandidateSearching:
		a.CandidateSearch = true
	case StageCandidateConfirming, StageVoteSubmitting:
		a.CandidateSearch = true
		a.Confirmation = true
	}
	return a
}

func (s Session) clearSelection() Session {
	s.Office = nil
	s.clearSearch()
	return s
}

func (s *Session) clearSearch() {
	s.Code = ""
	s.Suggestions = nil
	s.Candidate = nil
}

func (s Session) votingOpen() bool {
	return s.KeysPresent && s.Stage >= StageReady
}
