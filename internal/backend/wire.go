package backend

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jask/urna/internal/voting"
)

// Wire payloads as the backend sends and expects them.

type keysStatusWire struct {
	KeysExist *bool `json:"keys_exist"`
}

type ackWire struct {
	Message string `json:"message"`
}

type officeWire struct {
	ID   int    `json:"id"`
	Nome string `json:"nome"`
}

type candidateWire struct {
	ID      int    `json:"id"`
	Nome    string `json:"nome"`
	Partido struct {
		Sigla string `json:"sigla"`
	} `json:"partido"`
	Foto string `json:"foto"`
}

type candidateRefWire struct {
	ID int `json:"id"`
}

type voteWire struct {
	ID              int64            `json:"id"`
	Candidato       candidateRefWire `json:"candidato"`
	HashLocalizacao string           `json:"hash_localizacao"`
	HashBlockchain  string           `json:"hash_blockchain"`
	QRCode          string           `json:"qr_code"`
}

func (o officeWire) toDomain() (voting.Office, error) {
	name := strings.TrimSpace(o.Nome)
	if o.ID <= 0 || name == "" {
		return voting.Office{}, fmt.Errorf("invalid office %+v", o)
	}
	return voting.Office{ID: o.ID, Name: name}, nil
}

func (c candidateWire) toDomain() (voting.Candidate, error) {
	name := strings.TrimSpace(c.Nome)
	if c.ID <= 0 || name == "" {
		return voting.Candidate{}, fmt.Errorf("invalid candidate id=%d nome=%q", c.ID, c.Nome)
	}
	return voting.Candidate{
		ID:       c.ID,
		Name:     name,
		Party:    strings.TrimSpace(c.Partido.Sigla),
		PhotoURL: strings.TrimSpace(c.Foto),
	}, nil
}

func voteToWire(r voting.VoteRecord) voteWire {
	return voteWire{
		ID:              r.ID,
		Candidato:       candidateRefWire{ID: r.CandidateID},
		HashLocalizacao: r.LocationHash,
		HashBlockchain:  r.ChainHash,
		QRCode:          r.QRCode,
	}
}

func decodeOffices(data []byte) ([]voting.Office, error) {
	var raw []officeWire
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make([]voting.Office, 0, len(raw))
	for _, w := range raw {
		o, err := w.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func decodeCandidates(data []byte) ([]voting.Candidate, error) {
	var raw []candidateWire
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make([]voting.Candidate, 0, len(raw))
	for _, w := range raw {
		c, err := w.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func decodeKeysStatus(data []byte) (bool, error) {
	var raw keysStatusWire
	if err := json.Unmarshal(data, &raw); err != nil {
		return false, err
	}
	if raw.KeysExist == nil {
		return false, fmt.Errorf("keys_exist missing")
	}
	return *raw.KeysExist, nil
}

// decodeAck is lenient: the ack body is implementation defined.
func decodeAck(data []byte) voting.Ack {
	var raw ackWire
	if err := json.Unmarshal(data, &raw); err != nil {
		return voting.Ack{}
	}
	return voting.Ack{Message: strings.TrimSpace(raw.Message)}
}
