// Package keyring stores the hub access token in the OS keyring so it
// does not have to live in the plaintext config file.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	service = "doorsched"
	user    = "hub-token"
)

var (
	// ErrNotFound is returned when no token is stored in the keyring.
	ErrNotFound = errors.New("hub token not found in keyring")
	// ErrUnavailable is returned when the OS keyring cannot be reached.
	ErrUnavailable = errors.New("OS keyring is not available")
)

// GetToken retrieves the hub access token from the OS keyring.
func GetToken() (string, error) {
	token, err := keyring.Get(service, user)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return token, nil
}

// SetToken stores the hub access token in the OS keyring.
func SetToken(token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if err := keyring.Set(service, user, token); err != nil {
		return fmt.Errorf("failed to store token in keyring: %w", err)
	}
	return nil
}

// DeleteToken removes the hub access token from the OS keyring.
func DeleteToken() error {
	if err := keyring.Delete(service, user); err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete token from keyring: %w", err)
	}
	return nil
}
