package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// PathResolver finds dictionary files given on the command line
type PathResolver struct {
	executableDir string
	workingDir    string
	dataDir       string
}

// NewPathResolver creates a resolver rooted at the running executable and the working directory
func NewPathResolver() (*PathResolver, error) {
	execDir, err := ExecutableDir()
	if err != nil {
		return nil, err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executableDir: execDir,
		workingDir:    cwd,
		dataDir:       getDataDir(homeDir),
	}
	log.Debugf("PathResolver initialized: execDir=%s, cwd=%s, dataDir=%s",
		pr.executableDir, pr.workingDir, pr.dataDir)
	return pr, nil
}

// getDataDir returns the platform data directory for dictionaries
func getDataDir(homeDir string) string {
	switch runtime.GOOS {
	case "linux":
		if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
			return filepath.Join(dataHome, "approxdict")
		}
		return filepath.Join(homeDir, ".local", "share", "approxdict")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "approxdict")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "approxdict")
	default:
		return filepath.Join(homeDir, ".approxdict")
	}
}

// Candidates lists where a relative path is looked up, in order:
// the working directory, the executable directory, then its data/ and the
// user data directory.
func (pr *PathResolver) Candidates(userPath string) []string {
	if filepath.IsAbs(userPath) {
		return []string{userPath}
	}
	return []string{
		filepath.Join(pr.workingDir, userPath),
		filepath.Join(pr.executableDir, userPath),
		filepath.Join(pr.executableDir, "data", userPath),
		filepath.Join(pr.dataDir, userPath),
	}
}

// Resolve returns the first candidate for userPath that is a regular file
func (pr *PathResolver) Resolve(userPath string) (string, error) {
	candidates := pr.Candidates(userPath)
	for _, path := range candidates {
		if FileExists(path) {
			log.Debugf("Resolved %s to %s", userPath, path)
			return path, nil
		}
		log.Debugf("Candidate not found: %s", path)
	}
	return "", fmt.Errorf("%s: %w", userPath, os.ErrNotExist)
}

// DataDir returns the user data directory
func (pr *PathResolver) DataDir() string {
	return pr.dataDir
}
