package logs

import (
	"os"
	"path/filepath"
	"runtime"
)

const appDirName = "mcp-fusion"

// Dir returns the standard per-OS log directory for this application,
// following the teacher's GetLogDir layout (XDG-ish on Linux, Library/Logs
// on macOS, LOCALAPPDATA on Windows) renamed to this module's app id.
func Dir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		return windowsDir()
	case "darwin":
		return macDir()
	default:
		return linuxDir()
	}
}

func windowsDir() (string, error) {
	if v := os.Getenv("LOCALAPPDATA"); v != "" {
		return filepath.Join(v, appDirName, "logs"), nil
	}
	return defaultDir()
}

func macDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultDir()
	}
	return filepath.Join(home, "Library", "Logs", appDirName), nil
}

func linuxDir() (string, error) {
	if os.Getuid() == 0 {
		return filepath.Join("/var/log", appDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultDir()
	}
	return filepath.Join(home, ".local", "var", "log", appDirName), nil
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, "."+appDirName, "logs"), nil
}

// FilePath resolves a log filename against dir (or the OS default
// directory when dir is empty), creating the directory if needed.
func FilePath(dir, filename string) (string, error) {
	if dir == "" {
		d, err := Dir()
		if err != nil {
			return "", err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, filename), nil
}
