// Package auth obtains the Claude OAuth access token. The macOS Keychain is
// consulted first, then the credentials file; any failure at either step
// yields "not found" rather than an error, per the collaborator contract.
package auth

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// keychainService is the Keychain item Claude Code stores its OAuth
// credentials under.
const keychainService = "Claude Code-credentials"

// credentialsFile mirrors ~/.claude/.credentials.json.
type credentialsFile struct {
	ClaudeAiOauth struct {
		AccessToken string `json:"accessToken"`
	} `json:"claudeAiOauth"`
}

// Source resolves the access token from the platform secure store with a
// filesystem fallback. The zero value uses the real lookups.
type Source struct {
	// keychain and path are overridable for tests.
	keychain func() (string, bool)
	path     string
}

// NewSource returns a Source using the default lookup chain.
func NewSource() *Source {
	return &Source{}
}

// Credential returns the access token, or false when no source yields one.
func (s *Source) Credential() (string, bool) {
	lookup := s.keychain
	if lookup == nil {
		lookup = keychainToken
	}
	if token, ok := lookup(); ok {
		return token, true
	}

	path := s.path
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false
		}
		path = filepath.Join(home, ".claude", ".credentials.json")
	}
	return fileToken(path)
}

// keychainToken reads the credentials JSON from the macOS Keychain.
func keychainToken() (string, bool) {
	if runtime.GOOS != "darwin" {
		return "", false
	}
	out, err := exec.Command("security", "find-generic-password",
		"-s", keychainService, "-w").Output()
	if err != nil {
		return "", false
	}
	return parseCredentials(out)
}

// fileToken reads the credentials file fallback.
func fileToken(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return parseCredentials(data)
}

// parseCredentials extracts the access token from the credentials JSON.
// Raw non-JSON keychain values are accepted as bare tokens.
func parseCredentials(data []byte) (string, bool) {
	var cf credentialsFile
	if err := json.Unmarshal(data, &cf); err == nil && cf.ClaudeAiOauth.AccessToken != "" {
		return cf.ClaudeAiOauth.AccessToken, true
	}

	raw := strings.TrimSpace(string(data))
	if raw != "" && !strings.HasPrefix(raw, "{") {
		return raw, true
	}
	return "", false
}
