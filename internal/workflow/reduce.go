package workflow

import (
	"time"

	"github.com/jask/urna/internal/voting"
)

// Reduce applies ev to s. Responses that no longer match the session (a
// stale search generation, an upload that is not in flight) leave s as is.
func Reduce(s Session, ev Event) (Session, []Effect) {
	switch ev := ev.(type) {
	case Started:
		next := NewSession(s.Settings)
		next.Notice = info(MsgCheckingKeys)
		return next, []Effect{CheckKeys{}}
	case KeyCheckRetried:
		if s.Stage != StageCheckingKeys || !s.CheckFailed {
			return s, nil
		}
		s.CheckFailed = false
		s.Notice = info(MsgCheckingKeys)
		return s, []Effect{CheckKeys{}}
	case KeysChecked:
		return keysChecked(s, ev)
	case KeysSubmitted:
		return keysSubmitted(s, ev)
	case KeysUploaded:
		return keysUploaded(s, ev)
	case DatasetSubmitted:
		return datasetSubmitted(s, ev)
	case DatasetUploaded:
		if s.Stage != StageAwaitingKeys {
			return s, nil
		}
		if ev.Err != nil {
			s.Notice = failure(MsgDatasetFailed, MsgDatasetMissing, ev.Err)
			return s, nil
		}
		s.DatasetUploaded = true
		s.Notice = info(MsgDatasetUploaded)
		return s, nil
	case OfficesLoaded:
		if !s.KeysPresent {
			return s, nil
		}
		if ev.Err != nil {
			s.Offices = nil
			s.Notice = failure(MsgOfficesFailed, MsgOfficesFailed, ev.Err)
			return s, nil
		}
		s.Offices = ev.Offices
		return s, nil
	case OfficeSelected:
		return officeSelected(s, ev)
	case CandidateSearchRequested:
		return searchRequested(s, ev)
	case CandidatesFound:
		if ev.Generation != s.SearchGeneration || s.Stage != StageCandidateSearching {
			return s, nil
		}
		if ev.Err != nil {
			s.Suggestions = nil
			s.Notice = failure(MsgSearchFailed, MsgSearchFailed, ev.Err)
			return s, nil
		}
		s.Suggestions = ev.Candidates
		return s, nil
	case CandidateConfirmed:
		return candidateConfirmed(s, ev)
	case VoteSubmitted:
		return voteSubmitted(s, ev)
	case VoteRecorded:
		return voteRecorded(s, ev)
	}
	return s, nil
}

func keysChecked(s Session, ev KeysChecked) (Session, []Effect) {
	if s.Stage != StageCheckingKeys {
		return s, nil
	}
	if ev.Err != nil {
		s.CheckFailed = true
		s.Notice = failure(MsgKeyCheckFailed, MsgKeyCheckFailed, ev.Err)
		return s, nil
	}
	s.CheckFailed = false
	s.KeysPresent = ev.Present
	if !ev.Present {
		s.Stage = StageAwaitingKeys
		s.Notice = info(MsgKeysRequired)
		return s, nil
	}
	s.Stage = StageReady
	s.Notice = Notice{}
	return s, []Effect{FetchOffices{ElectionID: s.Settings.ElectionID}}
}

func keysSubmitted(s Session, ev KeysSubmitted) (Session, []Effect) {
	if s.Stage != StageAwaitingKeys || s.Uploading {
		return s, nil
	}
	err := ev.Err
	if err == nil {
		err = ev.Bundle.Validate()
	}
	if err == nil && s.Settings.DatasetMode != DatasetNone {
		if ev.Dataset == nil {
			err = &voting.ValidationError{Field: "election_data", Err: voting.ErrMissingFile}
		} else {
			err = ev.Dataset.Validate()
		}
	}
	if err != nil {
		s.Notice = failure(MsgKeysUploadFailed, MsgKeysMissingFile, err)
		return s, nil
	}

	up := UploadKeys{Bundle: ev.Bundle}
	if s.Settings.DatasetMode == DatasetBundled {
		ds := *ev.Dataset
		up.Dataset = &ds
	}
	s.Uploading = true
	s.Notice = Notice{}
	return s, []Effect{up}
}

func keysUploaded(s Session, ev KeysUploaded) (Session, []Effect) {
	if !s.Uploading || s.Stage != StageAwaitingKeys {
		return s, nil
	}
	s.Uploading = false
	if ev.Err != nil {
		s.Notice = failure(MsgKeysUploadFailed, MsgKeysMissingFile, ev.Err)
		return s, nil
	}
	s.KeysPresent = true
	s.Stage = StageReady
	s.Notice = info(MsgKeysUploaded)
	return s, []Effect{FetchOffices{ElectionID: s.Settings.ElectionID}}
}

func datasetSubmitted(s Session, ev DatasetSubmitted) (Session, []Effect) {
	if s.Stage != StageAwaitingKeys || s.Settings.DatasetMode != DatasetSeparate {
		return s, nil
	}
	err := ev.Err
	if err == nil {
		err = ev.Dataset.Validate()
	}
	if err != nil {
		s.Notice = failure(MsgDatasetFailed, MsgDatasetMissing, err)
		return s, nil
	}
	return s, []Effect{UploadDataset{Dataset: ev.Dataset}}
}

func officeSelected(s Session, ev OfficeSelected) (Session, []Effect) {
	if !s.votingOpen() || s.Stage == StageVoteSubmitting {
		return s, nil
	}
	s = s.clearSelection()
	s.Receipt = nil
	s.Notice = Notice{}
	if ev.Office == nil {
		s.Stage = StageReady
		return s, nil
	}
	o := *ev.Office
	s.Office = &o
	s.Stage = StageOfficeSelected
	return s, nil
}

func searchRequested(s Session, ev CandidateSearchRequested) (Session, []Effect) {
	if s.Office == nil {
		return s, nil
	}
	switch s.Stage {
	case StageOfficeSelected, StageCandidateSearching, StageCandidateConfirming:
	default:
		return s, nil
	}
	if err := voting.ValidateCode(ev.Code); err != nil {
		s.Notice = failure(MsgSearchFailed, MsgCodeNotNumeric, err)
		return s, nil
	}
	s.clearSearch()
	s.Notice = Notice{}
	if ev.Code == "" {
		s.Stage = StageOfficeSelected
		return s, nil
	}
	s.Code = ev.Code
	s.SearchGeneration++
	s.Stage = StageCandidateSearching
	return s, []Effect{SearchCandidates{
		OfficeID:   s.Office.ID,
		Code:       ev.Code,
		Generation: s.SearchGeneration,
	}}
}

func candidateConfirmed(s Session, ev CandidateConfirmed) (Session, []Effect) {
	if s.Stage != StageCandidateSearching && s.Stage != StageCandidateConfirming {
		return s, nil
	}
	for _, c := range s.Suggestions {
		if c.ID == ev.CandidateID {
			s.Candidate = &c
			s.Stage = StageCandidateConfirming
			return s, nil
		}
	}
	return s, nil
}

func voteSubmitted(s Session, ev VoteSubmitted) (Session, []Effect) {
	if s.Stage != StageCandidateConfirming {
		return s, nil
	}
	rec, err := voting.NewVoteRecord(s.Office, s.Candidate, ev.At, s.Settings.Provenance)
	if err != nil {
		s.Notice = failure(MsgVoteFailed, MsgVoteFailed, err)
		return s, nil
	}
	s.Stage = StageVoteSubmitting
	s.Notice = Notice{}
	return s, []Effect{CastVote{Record: rec}}
}

func voteRecorded(s Session, ev VoteRecorded) (Session, []Effect) {
	if s.Stage != StageVoteSubmitting {
		return s, nil
	}
	if ev.Err != nil {
		s.Stage = StageCandidateConfirming
		s.Notice = failure(MsgVoteFailed, MsgVoteFailed, ev.Err)
		return s, nil
	}
	receipt := voting.Receipt{
		VoteID:     ev.Record.ID,
		RecordedAt: time.UnixMilli(ev.Record.ID),
		Message:    ev.Ack.Message,
	}
	if s.Office != nil {
		receipt.OfficeName = s.Office.Name
	}
	s = s.clearSelection()
	s.Stage = StageReady
	s.Receipt = &receipt
	s.Notice = info(MsgVoteRecorded)
	return s, nil
}
