package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_PrintsVersion(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("version")
	require.NoError(t, err)
	assert.Contains(t, out, "askdocs version "+version)
}

func TestStatusCmd_Registered(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Use == "status" {
			found = true
		}
	}
	assert.True(t, found, "status command should be registered")
}
