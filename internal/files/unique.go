package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UniquePath returns path if nothing exists there. Otherwise it tries
// name_1 to name_9 and finally a UUID suffix; changed reports whether the
// name was altered.
func UniquePath(path string) (unique string, changed bool, err error) {
	if strings.TrimSpace(path) == "" {
		return "", false, fmt.Errorf("path is empty")
	}
	free, err := missing(path)
	if err != nil || free {
		return path, false, err
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 1; i <= 9; i++ {
		candidate := fmt.Sprintf("%s_%d%s", base, i, ext)
		free, err := missing(candidate)
		if err != nil {
			return "", false, err
		}
		if free {
			return candidate, true, nil
		}
	}

	suffix := uuid.NewString()[:8]
	if u, err := uuid.NewV7(); err == nil {
		suffix = u.String()
	}
	return fmt.Sprintf("%s_%s%s", base, suffix, ext), true, nil
}

func missing(path string) (bool, error) {
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, os.ErrNotExist):
		return true, nil
	}
	return false, err
}
