package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrLinkedPath marks a path that passes through a symlink or, on Windows,
// a reparse point. Session files and exported settings are never written
// through one.
var ErrLinkedPath = errors.New("path goes through a link")

// RejectSymlinkPath checks path and every existing ancestor. Components that
// do not exist yet end the walk.
func RejectSymlinkPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("path is empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	for _, p := range ancestors(abs) {
		info, err := os.Lstat(p)
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to inspect %s: %w", p, err)
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("%w: %s (symlink at %s)", ErrLinkedPath, path, p)
		}
		link, err := isReparsePoint(p)
		if err != nil {
			return fmt.Errorf("failed to inspect %s: %w", p, err)
		}
		if link {
			return fmt.Errorf("%w: %s (reparse point at %s)", ErrLinkedPath, path, p)
		}
	}
	return nil
}

// ancestors lists abs and its parents from the root down, root excluded.
func ancestors(abs string) []string {
	var out []string
	for p := filepath.Clean(abs); ; {
		parent := filepath.Dir(p)
		if parent == p {
			break
		}
		out = append(out, p)
		p = parent
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
