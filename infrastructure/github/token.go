package github

import (
	"os"
	"os/exec"
	"strings"

	logger "github.com/sirupsen/logrus"
)

const (
	tokenEnvVar   = "GITHUB_TOKEN"
	tokenFileName = ".token"
)

// ResolveToken picks a GitHub API token from the first non-empty source:
// explicit values (CLI flag, config file), the GITHUB_TOKEN environment
// variable, a .token file in the current directory, then the gh CLI.
// Returns "" when no token is available.
func ResolveToken(explicit ...string) string {
	for _, token := range explicit {
		if token != "" {
			return token
		}
	}

	if token := os.Getenv(tokenEnvVar); token != "" {
		logger.Debugf("Using token from %s", tokenEnvVar)
		return token
	}

	if data, err := os.ReadFile(tokenFileName); err == nil {
		if token := strings.TrimSpace(string(data)); token != "" {
			logger.Debugf("Using token from %s file", tokenFileName)
			return token
		}
	}

	if out, err := exec.Command("gh", "auth", "token").Output(); err == nil {
		if token := strings.TrimSpace(string(out)); token != "" {
			logger.Debug("Using token from gh CLI")
			return token
		}
	}

	return ""
}
