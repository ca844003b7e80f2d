package workflow

import (
	"time"

	"github.com/jask/urna/internal/voting"
)

// Event is either an operator intent or the outcome of an Effect.
type Event interface{ event() }

// Started begins a session and checks the backend for keys.
type Started struct{}

// KeyCheckRetried re-runs a key check that could not complete.
type KeyCheckRetried struct{}

// KeysChecked is the result of CheckKeys.
type KeysChecked struct {
	Present bool
	Err     error
}

// KeysSubmitted carries key material loaded locally. Err is the loader's
// error, if any.
type KeysSubmitted struct {
	Bundle  voting.KeyBundle
	Dataset *voting.ElectionDataset
	Err     error
}

// KeysUploaded is the result of UploadKeys.
type KeysUploaded struct {
	Ack voting.Ack
	Err error
}

// DatasetSubmitted carries an election file for a separate upload.
type DatasetSubmitted struct {
	Dataset voting.ElectionDataset
	Err     error
}

// DatasetUploaded is the result of UploadDataset.
type DatasetUploaded struct {
	Ack voting.Ack
	Err error
}

// OfficesLoaded is the result of FetchOffices.
type OfficesLoaded struct {
	Offices []voting.Office
	Err     error
}

// OfficeSelected picks an office. A nil Office is the empty option.
type OfficeSelected struct {
	Office *voting.Office
}

// CandidateSearchRequested is sent on every change of the code field.
type CandidateSearchRequested struct {
	Code string
}

// CandidatesFound answers the SearchCandidates of the same Generation.
type CandidatesFound struct {
	Generation uint64
	Candidates []voting.Candidate
	Err        error
}

// CandidateConfirmed pins one of the current suggestions.
type CandidateConfirmed struct {
	CandidateID int
}

// VoteSubmitted is the operator confirming the vote at time At.
type VoteSubmitted struct {
	At time.Time
}

// VoteRecorded is the result of CastVote.
type VoteRecorded struct {
	Record voting.VoteRecord
	Ack    voting.Ack
	Err    error
}

func (Started) event()                  {}
func (KeyCheckRetried) event()          {}
func (KeysChecked) event()              {}
func (KeysSubmitted) event()            {}
func (KeysUploaded) event()             {}
func (DatasetSubmitted) event()         {}
func (DatasetUploaded) event()          {}
func (OfficesLoaded) event()            {}
func (OfficeSelected) event()           {}
func (CandidateSearchRequested) event() {}
func (CandidatesFound) event()          {}
func (CandidateConfirmed) event()       {}
func (VoteSubmitted) event()            {}
func (VoteRecorded) event()             {}

// Effect is a backend call requested by Reduce.
type Effect interface{ effect() }

// CheckKeys asks whether the backend holds election keys.
type CheckKeys struct{}

// UploadKeys sends the key pair, with the dataset in bundled mode.
type UploadKeys struct {
	Bundle  voting.KeyBundle
	Dataset *voting.ElectionDataset
}

// UploadDataset sends the election file on its own.
type UploadDataset struct {
	Dataset voting.ElectionDataset
}

// FetchOffices lists the offices of an election.
type FetchOffices struct {
	ElectionID int
}

// SearchCandidates looks up candidates by code. Generation tags the reply.
type SearchCandidates struct {
	OfficeID   int
	Code       string
	Generation uint64
}

// CastVote submits one vote record.
type CastVote struct {
	Record voting.VoteRecord
}

func (CheckKeys) effect()        {}
func (UploadKeys) effect()       {}
func (UploadDataset) effect()    {}
func (FetchOffices) effect()     {}
func (SearchCandidates) effect() {}
func (CastVote) effect()         {}
