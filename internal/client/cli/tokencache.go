package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// saveToken writes the access token to path with owner-only permissions so a
// later CLI invocation can reuse it without logging in again.
func saveToken(path, token string) error {
	if err := os.WriteFile(path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	return nil
}

// loadToken reads a previously cached token. A missing file returns an empty
// token and no error.
func loadToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("loading token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// clearToken drops the cached token. A missing file is not an error.
func clearToken(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clearing token: %w", err)
	}
	return nil
}
