package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const defaultMaxPathLength = 4096

// FilePathValidator sanitizes paths handed to the viewer on the command line
// or in the config file.
type FilePathValidator struct {
	// AllowedBaseDirs restricts paths to these directories. Empty allows any.
	AllowedBaseDirs []string
	// AllowHomeExpansion permits a leading "~/".
	AllowHomeExpansion bool
	MaxPathLength      int
}

// NewFilePathValidator confines paths to reel's own state directories and
// the temp dir. Used for the database, config and log files.
func NewFilePathValidator() *FilePathValidator {
	homeDir, _ := os.UserHomeDir()
	return &FilePathValidator{
		AllowedBaseDirs: []string{
			filepath.Join(homeDir, ".reel"),
			filepath.Join(homeDir, ".config", "reel"),
			os.TempDir(),
		},
		AllowHomeExpansion: true,
		MaxPathLength:      defaultMaxPathLength,
	}
}

// NewDeckPathValidator accepts deck files anywhere, relative paths included.
func NewDeckPathValidator() *FilePathValidator {
	return &FilePathValidator{
		AllowHomeExpansion: true,
		MaxPathLength:      defaultMaxPathLength,
	}
}

// ValidateAndSanitize returns path cleaned and made absolute, or an error if
// it is empty, too long, contains control characters, or climbs out of its
// directory with "..".
func (v *FilePathValidator) ValidateAndSanitize(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	if len(path) > v.MaxPathLength {
		return "", fmt.Errorf("path too long (max %d characters)", v.MaxPathLength)
	}
	if err := validateCharacters(path); err != nil {
		return "", err
	}
	if hasTraversal(path) {
		return "", fmt.Errorf("directory traversal not allowed")
	}

	normalized, err := v.normalizePath(path)
	if err != nil {
		return "", fmt.Errorf("path normalization failed: %w", err)
	}

	if err := v.validateBaseDirs(normalized); err != nil {
		return "", err
	}
	return normalized, nil
}

func validateCharacters(path string) error {
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("path contains null bytes")
	}
	for _, char := range path {
		if char < 32 && char != '\t' {
			return fmt.Errorf("path contains control characters")
		}
	}
	return nil
}

func hasTraversal(path string) bool {
	for _, component := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if component == ".." {
			return true
		}
	}
	return false
}

func (v *FilePathValidator) normalizePath(path string) (string, error) {
	switch {
	case v.AllowHomeExpansion && strings.HasPrefix(path, "~/"):
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	case strings.HasPrefix(path, "~"):
		return "", fmt.Errorf("tilde expansion not allowed or invalid tilde usage")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot make path absolute: %w", err)
	}
	return filepath.Clean(abs), nil
}

func (v *FilePathValidator) validateBaseDirs(path string) error {
	if len(v.AllowedBaseDirs) == 0 {
		return nil
	}

	for _, baseDir := range v.AllowedBaseDirs {
		absBaseDir, err := filepath.Abs(baseDir)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(absBaseDir, path)
		if err != nil {
			continue
		}
		if rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return nil
		}
	}

	return fmt.Errorf("path not within allowed directories: %v", v.AllowedBaseDirs)
}

// ValidateFile sanitizes path and rejects it if it names a directory.
func (v *FilePathValidator) ValidateFile(path string) (string, error) {
	validated, err := v.ValidateAndSanitize(path)
	if err != nil {
		return "", err
	}

	if info, err := os.Stat(validated); err == nil && info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a file: %s", validated)
	}
	return validated, nil
}

// ValidateExistingFile is ValidateFile for paths that must already exist,
// such as a deck about to be played.
func (v *FilePathValidator) ValidateExistingFile(path string) (string, error) {
	validated, err := v.ValidateFile(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(validated); err != nil {
		return "", fmt.Errorf("checking file: %w", err)
	}
	return validated, nil
}

// ValidateDirectory sanitizes path and, when create is set, makes the
// directory if it is missing.
func (v *FilePathValidator) ValidateDirectory(path string, create bool) (string, error) {
	validated, err := v.ValidateAndSanitize(path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(validated)
	switch {
	case os.IsNotExist(err):
		if create {
			if mkErr := os.MkdirAll(validated, 0o755); mkErr != nil {
				return "", fmt.Errorf("failed to create directory: %w", mkErr)
			}
		}
	case err != nil:
		return "", fmt.Errorf("checking directory: %w", err)
	case !info.IsDir():
		return "", fmt.Errorf("path exists but is not a directory: %s", validated)
	}
	return validated, nil
}
