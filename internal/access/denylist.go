package access

import (
	"fmt"

	"github.com/feral-file/ff-ip-registry/internal/adapter"
	"github.com/feral-file/ff-ip-registry/internal/domain"
)

// Denylist defines the interface for denied account lookups
//
//go:generate mockgen -source=denylist.go -destination=../mocks/denylist.go -package=mocks -mock_names=Denylist=MockDenylist
type Denylist interface {
	// IsDenied checks if an account is denied
	IsDenied(account domain.Address) bool
}

// DenylistData represents the structure of the denylist.json file
type DenylistData struct {
	Accounts []string `json:"accounts"`
}

// denylist is the internal implementation of the Denylist interface
type denylist struct {
	// Fast lookup map keyed by checksummed address
	accounts map[domain.Address]bool
}

// DenylistLoader loads a denylist from a JSON file
type DenylistLoader struct {
	fs   adapter.FileSystem
	json adapter.JSON
}

// NewDenylistLoader creates a new denylist loader
func NewDenylistLoader(fs adapter.FileSystem, jsonAdapter adapter.JSON) *DenylistLoader {
	return &DenylistLoader{fs: fs, json: jsonAdapter}
}

// Load reads and parses the denylist at filePath
func (l *DenylistLoader) Load(filePath string) (Denylist, error) {
	data, err := l.fs.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read denylist file: %w", err)
	}

	var denylistData DenylistData
	if err := l.json.Unmarshal(data, &denylistData); err != nil {
		return nil, fmt.Errorf("failed to parse denylist JSON: %w", err)
	}

	return NewDenylist(denylistData.Accounts)
}

// NewDenylist builds a denylist from raw account strings
func NewDenylist(accounts []string) (Denylist, error) {
	dl := &denylist{accounts: make(map[domain.Address]bool, len(accounts))}
	for _, raw := range accounts {
		account, err := domain.ParseAddress(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid denylist entry: %w", err)
		}
		dl.accounts[account] = true
	}
	return dl, nil
}

// IsDenied checks if an account is denied
func (d *denylist) IsDenied(account domain.Address) bool {
	if d == nil {
		return false
	}
	normalized, err := domain.ParseAddress(string(account))
	if err != nil {
		return false
	}
	return d.accounts[normalized]
}
