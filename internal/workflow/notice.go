package workflow

import "github.com/jask/urna/internal/voting"

// NoticeKind says how the surface should present a Notice.
type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticeInfo
	// NoticeBlocked is a local validation failure; nothing was sent.
	NoticeBlocked
	// NoticeRetry is a transport or backend failure; the action can be repeated.
	NoticeRetry
)

// MessageID names a user-facing message. The surface localizes it.
type MessageID string

const (
	MsgCheckingKeys     MessageID = "checking_keys"
	MsgKeyCheckFailed   MessageID = "key_check_failed"
	MsgKeysRequired     MessageID = "keys_required"
	MsgKeysMissingFile  MessageID = "keys_missing_file"
	MsgKeysUploaded     MessageID = "keys_uploaded"
	MsgKeysUploadFailed MessageID = "keys_upload_failed"
	MsgDatasetMissing   MessageID = "dataset_missing"
	MsgDatasetUploaded  MessageID = "dataset_uploaded"
	MsgDatasetFailed    MessageID = "dataset_failed"
	MsgOfficesFailed    MessageID = "offices_failed"
	MsgSearchFailed     MessageID = "search_failed"
	MsgCodeNotNumeric   MessageID = "code_not_numeric"
	MsgVoteRecorded     MessageID = "vote_recorded"
	MsgVoteFailed       MessageID = "vote_failed"
)

// Notice is the latest user-visible message.
type Notice struct {
	Kind    NoticeKind
	Message MessageID
	Err     error
}

func info(id MessageID) Notice { return Notice{Kind: NoticeInfo, Message: id} }

// failure classifies err: local validation blocks the action, everything
// else is a retryable notice.
func failure(id, validationID MessageID, err error) Notice {
	if voting.IsValidation(err) {
		return Notice{Kind: NoticeBlocked, Message: validationID, Err: err}
	}
	return Notice{Kind: NoticeRetry, Message: id, Err: err}
}
