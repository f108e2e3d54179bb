package validation

import (
	"os"
	"path/filepath"
)

// PathHandler resolves the files reel reads and writes.
type PathHandler struct {
	state *FilePathValidator
	decks *FilePathValidator
}

func NewSecurePathHandler() *PathHandler {
	return &PathHandler{
		state: NewFilePathValidator(),
		decks: NewDeckPathValidator(),
	}
}

// NewPermissivePathHandler lets state files live anywhere. Used when the
// user points --db or --config somewhere explicit.
func NewPermissivePathHandler() *PathHandler {
	return &PathHandler{
		state: NewDeckPathValidator(),
		decks: NewDeckPathValidator(),
	}
}

func stateFile(userPath string, elem ...string) (string, error) {
	if userPath != "" {
		return userPath, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{homeDir}, elem...)...), nil
}

// DBPath validates the deck database path, defaulting to ~/.reel/decks.db.
// The parent directory is created so bbolt can open the file.
func (ph *PathHandler) DBPath(userPath string) (string, error) {
	p, err := stateFile(userPath, ".reel", "decks.db")
	if err != nil {
		return "", err
	}
	p, err = ph.state.ValidateFile(p)
	if err != nil {
		return "", err
	}
	if _, err := ph.state.ValidateDirectory(filepath.Dir(p), true); err != nil {
		return "", err
	}
	return p, nil
}

// ConfigPath validates the config path, defaulting to ~/.config/reel/config.toml.
func (ph *PathHandler) ConfigPath(userPath string) (string, error) {
	p, err := stateFile(userPath, ".config", "reel", "config.toml")
	if err != nil {
		return "", err
	}
	return ph.state.ValidateFile(p)
}

// LogPath validates the log file path, defaulting to ~/.reel/reel.log.
func (ph *PathHandler) LogPath(userPath string) (string, error) {
	p, err := stateFile(userPath, ".reel", "reel.log")
	if err != nil {
		return "", err
	}
	return ph.state.ValidateFile(p)
}

// DeckPath validates a deck file given on the command line. It must exist.
func (ph *PathHandler) DeckPath(userPath string) (string, error) {
	return ph.decks.ValidateExistingFile(userPath)
}
