package fsys

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

var (
	ErrNotFound      = errors.New("file not found")
	ErrAlreadyExists = errors.New("file exists")
	ErrIsADirectory  = errors.New("file is a directory")
	ErrNoPermission  = errors.New("no permissions")
)

// classify maps an I/O failure onto the error taxonomy. The original error
// stays in the chain. Errors outside the taxonomy are returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, syscall.EISDIR):
		return fmt.Errorf("%w: %w", ErrIsADirectory, err)
	case errors.Is(err, fs.ErrExist):
		return fmt.Errorf("%w: %w", ErrAlreadyExists, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %w", ErrNoPermission, err)
	}
	return err
}
