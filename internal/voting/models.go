package voting

import (
	"encoding/hex"
	"time"

	"golang.org/x/crypto/sha3"
)

// KeyBlob is a named binary file as it will be uploaded.
type KeyBlob struct {
	Name string
	Data []byte
}

// Present reports whether the blob carries any content.
func (b KeyBlob) Present() bool { return len(b.Data) > 0 }

// KeyBundle is the key material the backend needs before voting can begin.
type KeyBundle struct {
	CryptographyKey KeyBlob
	PrivateKey      KeyBlob
}

// Validate reports the first missing part of the bundle.
func (k KeyBundle) Validate() error {
	if !k.CryptographyKey.Present() {
		return &ValidationError{Field: "cryptography_key", Err: ErrMissingFile}
	}
	if !k.PrivateKey.Present() {
		return &ValidationError{Field: "private_key", Err: ErrMissingFile}
	}
	return nil
}

// Fingerprint is the hex SHA3-256 of both keys, used in the audit journal
// instead of the key material itself.
func (k KeyBundle) Fingerprint() string {
	h := sha3.New256()
	h.Write(k.CryptographyKey.Data)
	h.Write([]byte{0})
	h.Write(k.PrivateKey.Data)
	return hex.EncodeToString(h.Sum(nil))
}

// ElectionDataset is the election configuration file.
type ElectionDataset struct {
	File KeyBlob
}

func (d ElectionDataset) Validate() error {
	if !d.File.Present() {
		return &ValidationError{Field: "election_data", Err: ErrMissingFile}
	}
	return nil
}

// Office is an elected position ("cargo").
type Office struct {
	ID   int
	Name string
}

// Candidate is a person running for an office.
type Candidate struct {
	ID       int
	Name     string
	Party    string
	PhotoURL string
}

// ValidateCode checks a (possibly partial) candidate code. An empty code is
// valid and means no search.
func ValidateCode(code string) error {
	for _, r := range code {
		if r < '0' || r > '9' {
			return &ValidationError{Field: "code", Err: ErrNotNumeric}
		}
	}
	return nil
}

// Provenance holds the location, chain and QR values attached to a vote.
// They are supplied from outside the controller and copied verbatim.
type Provenance struct {
	LocationHash string
	ChainHash    string
	QRCode       string
}

// VoteRecord is the payload submitted to record one vote.
type VoteRecord struct {
	ID           int64
	CandidateID  int
	LocationHash string
	ChainHash    string
	QRCode       string
}

// NewVoteRecord builds the record for the confirmed selection at time at.
func NewVoteRecord(office *Office, candidate *Candidate, at time.Time, p Provenance) (VoteRecord, error) {
	if office == nil {
		return VoteRecord{}, &ValidationError{Field: "office", Err: ErrNoSelection}
	}
	if candidate == nil {
		return VoteRecord{}, &ValidationError{Field: "candidate", Err: ErrNoSelection}
	}
	return VoteRecord{
		ID:           at.UnixMilli(),
		CandidateID:  candidate.ID,
		LocationHash: p.LocationHash,
		ChainHash:    p.ChainHash,
		QRCode:       p.QRCode,
	}, nil
}

// Ack is the backend's acknowledgement. Message may be empty.
type Ack struct {
	Message string
}

// Receipt is what the terminal shows after a vote has been recorded.
type Receipt struct {
	VoteID     int64
	OfficeName string
	RecordedAt time.Time
	Message    string
}
