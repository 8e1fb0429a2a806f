package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvFile is the dotenv file picked up from the working tree.
const EnvFile = ".env"

// FindEnvFile looks upwards from startDir for a .env file and returns its
// absolute path. It stops at the first directory holding a .git entry.
func FindEnvFile(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, EnvFile) {
			return filepath.Join(dir, EnvFile), nil
		}
		if hasFile(dir, ".git") {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%s not found", EnvFile)
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
