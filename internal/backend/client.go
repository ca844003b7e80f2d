// Package backend is the HTTP client for the voting backend.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jask/urna/internal/voting"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20
)

// Client talks to the backend rooted at a single base URL.
type Client struct {
	base    *url.URL
	timeout time.Duration
	http    *http.Client
}

// NewClient validates baseURL. A non-positive timeout uses the default.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, ErrNoBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("backend: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend: unsupported scheme %q", u.Scheme)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{base: u, timeout: timeout, http: &http.Client{}}, nil
}

// KeysStatus reports whether the backend already holds the key bundle.
func (c *Client) KeysStatus(ctx context.Context) (bool, error) {
	const op = "keys-status"
	body, err := c.do(ctx, op, http.MethodGet, c.endpoint("keys-status"), "", nil)
	if err != nil {
		return false, err
	}
	present, err := decodeKeysStatus(body)
	if err != nil {
		return false, &DecodeError{Op: op, Err: err}
	}
	return present, nil
}

// UploadKeys sends both keys, and the election file when dataset is not nil,
// as one multipart form.
func (c *Client) UploadKeys(ctx context.Context, bundle voting.KeyBundle, dataset *voting.ElectionDataset) (voting.Ack, error) {
	if err := bundle.Validate(); err != nil {
		return voting.Ack{}, err
	}
	parts := []formFile{
		{field: "cryptography_key", blob: bundle.CryptographyKey},
		{field: "private_key", blob: bundle.PrivateKey},
	}
	if dataset != nil {
		if err := dataset.Validate(); err != nil {
			return voting.Ack{}, err
		}
		parts = append(parts, formFile{field: "election_data", blob: dataset.File})
	}
	return c.postFiles(ctx, "upload-keys", c.endpoint("upload-keys"), parts)
}

// UploadElection sends the election file on its own.
func (c *Client) UploadElection(ctx context.Context, dataset voting.ElectionDataset) (voting.Ack, error) {
	if err := dataset.Validate(); err != nil {
		return voting.Ack{}, err
	}
	return c.postFiles(ctx, "upload-eleicao", c.endpoint("upload-eleicao"), []formFile{{field: "file", blob: dataset.File}})
}

// Offices lists the offices of an election in backend order.
func (c *Client) Offices(ctx context.Context, electionID int) ([]voting.Office, error) {
	const op = "cargos"
	body, err := c.do(ctx, op, http.MethodGet, c.endpoint("cargos", strconv.Itoa(electionID)), "", nil)
	if err != nil {
		return nil, err
	}
	offices, err := decodeOffices(body)
	if err != nil {
		return nil, &DecodeError{Op: op, Err: err}
	}
	return offices, nil
}

// SearchCandidates looks up candidates of an office by a (possibly partial)
// numeric code.
func (c *Client) SearchCandidates(ctx context.Context, officeID int, code string) ([]voting.Candidate, error) {
	const op = "buscar-candidatos"
	if code == "" {
		return nil, &voting.ValidationError{Field: "code", Err: voting.ErrNotNumeric}
	}
	if err := voting.ValidateCode(code); err != nil {
		return nil, err
	}
	body, err := c.do(ctx, op, http.MethodGet, c.endpoint("buscar-candidatos", strconv.Itoa(officeID), code), "", nil)
	if err != nil {
		return nil, err
	}
	found, err := decodeCandidates(body)
	if err != nil {
		return nil, &DecodeError{Op: op, Err: err}
	}
	return found, nil
}

// CastVote posts the vote record as JSON.
func (c *Client) CastVote(ctx context.Context, record voting.VoteRecord) (voting.Ack, error) {
	const op = "votar"
	payload, err := json.Marshal(voteToWire(record))
	if err != nil {
		return voting.Ack{}, fmt.Errorf("backend %s: encode: %w", op, err)
	}
	body, err := c.do(ctx, op, http.MethodPost, c.endpoint("votar"), "application/json", bytes.NewReader(payload))
	if err != nil {
		return voting.Ack{}, err
	}
	return decodeAck(body), nil
}

type formFile struct {
	field string
	blob  voting.KeyBlob
}

func (c *Client) postFiles(ctx context.Context, op, endpoint string, files []formFile) (voting.Ack, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		name := f.blob.Name
		if name == "" {
			name = f.field
		}
		part, err := w.CreateFormFile(f.field, name)
		if err != nil {
			return voting.Ack{}, fmt.Errorf("backend %s: form: %w", op, err)
		}
		if _, err := part.Write(f.blob.Data); err != nil {
			return voting.Ack{}, fmt.Errorf("backend %s: form: %w", op, err)
		}
	}
	if err := w.Close(); err != nil {
		return voting.Ack{}, fmt.Errorf("backend %s: form: %w", op, err)
	}
	body, err := c.do(ctx, op, http.MethodPost, endpoint, w.FormDataContentType(), &buf)
	if err != nil {
		return voting.Ack{}, err
	}
	return decodeAck(body), nil
}

func (c *Client) endpoint(segments ...string) string {
	return c.base.JoinPath(segments...).String()
}

func (c *Client) do(ctx context.Context, op, method, endpoint, contentType string, body io.Reader) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	return data, nil
}
