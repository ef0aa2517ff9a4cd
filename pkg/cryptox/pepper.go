package cryptox

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const pepperBytes = 32

// LoadOrCreatePepper reads the pepper stored at path, generating and
// persisting a fresh one when the file does not exist yet. The file is
// written 0600 and its directory created 0750.
func LoadOrCreatePepper(path string) (string, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", fmt.Errorf("create pepper dir: %w", err)
	}

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		p := strings.TrimSpace(string(b))
		if p == "" {
			return "", fmt.Errorf("pepper file %s is empty", path)
		}
		return p, nil
	case !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("read pepper: %w", err)
	}

	p, err := RandomString(pepperBytes)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(p), 0o600); err != nil {
		return "", fmt.Errorf("write pepper: %w", err)
	}
	return p, nil
}
