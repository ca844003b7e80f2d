package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jask/urna/internal/voting"
)

// Backend is the remote service the terminal talks to.
type Backend interface {
	KeysStatus(ctx context.Context) (bool, error)
	UploadKeys(ctx context.Context, bundle voting.KeyBundle, dataset *voting.ElectionDataset) (voting.Ack, error)
	UploadElection(ctx context.Context, dataset voting.ElectionDataset) (voting.Ack, error)
	Offices(ctx context.Context, electionID int) ([]voting.Office, error)
	SearchCandidates(ctx context.Context, officeID int, code string) ([]voting.Candidate, error)
	CastVote(ctx context.Context, record voting.VoteRecord) (voting.Ack, error)
}

// Journal records effect outcomes. Candidate searches and ballot contents
// are never passed to it.
type Journal interface {
	Record(ctx context.Context, kind, detail string, err error) error
}

// Journal entry kinds.
const (
	KindKeysStatus     = "keys_status"
	KindUploadKeys     = "upload_keys"
	KindUploadElection = "upload_election"
	KindOffices        = "offices"
	KindVote           = "vote"
)

// Runner executes Effects against a Backend.
type Runner struct {
	Backend Backend
	Journal Journal
	Logger  *slog.Logger
}

// Run performs eff and returns the Event describing its outcome.
func (r *Runner) Run(ctx context.Context, eff Effect) Event {
	switch e := eff.(type) {
	case CheckKeys:
		present, err := r.Backend.KeysStatus(ctx)
		r.record(ctx, KindKeysStatus, fmt.Sprintf("present=%t", present), err)
		return KeysChecked{Present: present, Err: err}
	case UploadKeys:
		ack, err := r.Backend.UploadKeys(ctx, e.Bundle, e.Dataset)
		r.record(ctx, KindUploadKeys, e.Bundle.Fingerprint(), err)
		return KeysUploaded{Ack: ack, Err: err}
	case UploadDataset:
		ack, err := r.Backend.UploadElection(ctx, e.Dataset)
		r.record(ctx, KindUploadElection, e.Dataset.File.Name, err)
		return DatasetUploaded{Ack: ack, Err: err}
	case FetchOffices:
		offices, err := r.Backend.Offices(ctx, e.ElectionID)
		r.record(ctx, KindOffices, fmt.Sprintf("election=%d count=%d", e.ElectionID, len(offices)), err)
		return OfficesLoaded{Offices: offices, Err: err}
	case SearchCandidates:
		found, err := r.Backend.SearchCandidates(ctx, e.OfficeID, e.Code)
		if err != nil {
			r.logger().Warn("candidate search failed", "office", e.OfficeID, "generation", e.Generation, "err", err)
		}
		return CandidatesFound{Generation: e.Generation, Candidates: found, Err: err}
	case CastVote:
		ack, err := r.Backend.CastVote(ctx, e.Record)
		r.record(ctx, KindVote, "", err)
		return VoteRecorded{Record: e.Record, Ack: ack, Err: err}
	}
	return nil
}

func (r *Runner) record(ctx context.Context, kind, detail string, err error) {
	log := r.logger()
	if err != nil {
		log.Warn("backend call failed", "kind", kind, "err", err)
	} else {
		log.Debug("backend call ok", "kind", kind, "detail", detail)
	}
	if r.Journal == nil {
		return
	}
	if jerr := r.Journal.Record(ctx, kind, detail, err); jerr != nil {
		log.Error("audit journal write failed", "kind", kind, "err", jerr)
	}
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}
