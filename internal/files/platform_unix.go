//go:build !windows

package files

import "os"

func replaceFile(src, dst string) error {
	return os.Rename(src, dst)
}

// isReparsePoint is Windows-only; Lstat already catches symlinks here.
func isReparsePoint(string) (bool, error) {
	return false, nil
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
