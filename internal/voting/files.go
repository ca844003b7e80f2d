package voting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadBlob loads the file at path. An empty path or unreadable file is a
// ValidationError for field.
func ReadBlob(field, path string) (KeyBlob, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return KeyBlob{}, &ValidationError{Field: field, Err: ErrMissingFile}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return KeyBlob{}, &ValidationError{Field: field, Err: fmt.Errorf("read %s: %w", filepath.Base(path), err)}
	}
	if len(data) == 0 {
		return KeyBlob{}, &ValidationError{Field: field, Err: ErrMissingFile}
	}
	return KeyBlob{Name: filepath.Base(path), Data: data}, nil
}

// ReadKeyBundle loads both key files.
func ReadKeyBundle(cryptographyKeyPath, privateKeyPath string) (KeyBundle, error) {
	ck, err := ReadBlob("cryptography_key", cryptographyKeyPath)
	if err != nil {
		return KeyBundle{}, err
	}
	pk, err := ReadBlob("private_key", privateKeyPath)
	if err != nil {
		return KeyBundle{}, err
	}
	return KeyBundle{CryptographyKey: ck, PrivateKey: pk}, nil
}

// ReadElectionDataset loads the election configuration file.
func ReadElectionDataset(path string) (ElectionDataset, error) {
	f, err := ReadBlob("election_data", path)
	if err != nil {
		return ElectionDataset{}, err
	}
	return ElectionDataset{File: f}, nil
}
