package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DataDirEnv overrides the default data directory
const DataDirEnv = "TROPHY_DATA_DIR"

type Paths struct {
	HomeDir      string
	DataDir      string
	LogFile      string
	DatabaseFile string
	ConfigFile   string
	CatalogDir   string
}

var defaultPaths *Paths

func ensureDefaultPaths() {
	if defaultPaths == nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			panic(err)
		}

		dataDir := os.Getenv(DataDirEnv)
		if dataDir == "" {
			dataDir = filepath.Join(homeDir, ".local", "share", "trophy")
		}

		paths := PathsIn(dataDir)
		paths.HomeDir = homeDir
		defaultPaths = &paths

		err = os.MkdirAll(defaultPaths.DataDir, 0755)
		if err != nil {
			panic(err)
		}
	}
}

// PathsIn lays out the data files under dataDir. The directory is not created.
func PathsIn(dataDir string) Paths {
	return Paths{
		DataDir:      dataDir,
		LogFile:      filepath.Join(dataDir, "trophy.log"),
		DatabaseFile: filepath.Join(dataDir, "trophy.db"),
		ConfigFile:   filepath.Join(dataDir, "config.yaml"),
		CatalogDir:   filepath.Join(dataDir, "catalog"),
	}
}

func HomeDir() string {
	ensureDefaultPaths()
	return defaultPaths.HomeDir
}

func DataDir() string {
	ensureDefaultPaths()
	return defaultPaths.DataDir
}

// HideHomeDirPath shortens paths under the home directory to ~/...
func HideHomeDirPath(path string) string {
	return hideDir(path, HomeDir())
}

func hideDir(path, homeDir string) string {
	homeDir = strings.TrimSuffix(homeDir, string(filepath.Separator))
	if homeDir == "" {
		return path
	}

	if path == homeDir {
		return "~"
	}
	if strings.HasPrefix(path, homeDir+string(filepath.Separator)) {
		return fmt.Sprintf("~%s", path[len(homeDir):])
	}

	return path
}
