package utils

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// FileCheck is what CheckFile learned about a path.
type FileCheck struct {
	Exists  bool
	Regular bool
	Size    int64
	Err     error
}

// CheckFile stats path and, for a regular file, reads up to probe bytes so a
// permission problem shows up before the file is needed. Err holds the first
// failure.
func CheckFile(path string, probe int) FileCheck {
	var result FileCheck
	info, err := os.Stat(path)
	if err != nil {
		result.Err = err
		return result
	}
	result.Exists = true
	result.Size = info.Size()
	if !info.Mode().IsRegular() {
		return result
	}
	result.Regular = true

	file, err := os.Open(path)
	if err != nil {
		result.Err = err
		return result
	}
	defer file.Close()
	if probe > 0 && info.Size() > 0 {
		buf := make([]byte, min(info.Size(), int64(probe)))
		if _, err := io.ReadFull(file, buf); err != nil {
			result.Err = err
		}
	}
	return result
}

// CreateExclusive creates an empty file at path, making parent directories
// as needed. It reports false without error when the file already exists.
func CreateExclusive(path string) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, err
	}
	return true, file.Close()
}

// WritableDir creates dir if needed and checks a file can be written in it.
func WritableDir(dir string) bool {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warnf("Cannot create directory %s: %v", dir, err)
		return false
	}
	probe, err := os.CreateTemp(dir, ".wordtree-*")
	if err != nil {
		log.Warnf("Cannot write to directory %s: %v", dir, err)
		return false
	}
	probe.Close()
	os.Remove(probe.Name())
	return true
}

// ExecutableDir returns the directory of the running binary.
func ExecutableDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(execPath), nil
}

// SaveTOMLFile encodes data and writes it to path, creating parent
// directories. Nothing is written if encoding fails.
func SaveTOMLFile(data any, path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(data); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Errorf("Failed to create directory for %s: %v", path, err)
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
