package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetCreateCmd_Exists verifies getCreateCmd returns a valid command.
func TestGetCreateCmd_Exists(t *testing.T) {
	cmd := getCreateCmd()
	require.NotNil(t, cmd, "Create command should exist")
	assert.Equal(t, "create", cmd.Use)
	assert.NotNil(t, cmd.RunE, "RunE should be set")
}

// TestGetCreateCmd_Descriptions verifies short and long descriptions.
func TestGetCreateCmd_Descriptions(t *testing.T) {
	cmd := getCreateCmd()

	assert.Contains(t, cmd.Short, "schema")
	assert.Contains(t, cmd.Long, "PostgreSQL")
	assert.Contains(t, cmd.Long, "GORM AutoMigrate")
	assert.Contains(t, cmd.Long, "region_families")
	assert.Contains(t, cmd.Long, "antismash_runs")
}

// TestGetCreateCmd_ForceFlag verifies --force flag exists.
func TestGetCreateCmd_ForceFlag(t *testing.T) {
	cmd := getCreateCmd()

	forceFlag := cmd.Flags().Lookup("force")
	require.NotNil(t, forceFlag, "--force flag should exist")
	assert.Equal(t, "f", forceFlag.Shorthand)
	assert.Equal(t, "false", forceFlag.DefValue)
	assert.Contains(t, forceFlag.Usage, "drop")
}

// TestGetCreateCmd_HelpText verifies help text content.
func TestGetCreateCmd_HelpText(t *testing.T) {
	cmd := getCreateCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	assert.Contains(t, helpText, "--force")
	assert.Contains(t, helpText, "Examples:")
	assert.Contains(t, helpText, "bgcatlas create --force")
}
