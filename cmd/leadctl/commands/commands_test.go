package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	cmd := Root()

	require.NotNil(t, cmd)
	assert.Equal(t, "leadctl", cmd.Use)

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	assert.True(t, names["wizard"])
	assert.True(t, names["token"])
	assert.True(t, names["leads"])
}

func TestWizard_Flags(t *testing.T) {
	cmd := Wizard()

	assert.Equal(t, "wizard", cmd.Use)
	server := cmd.Flags().Lookup("server")
	require.NotNil(t, server, "server flag should exist")
	assert.Equal(t, "s", server.Shorthand)

	dryRun := cmd.Flags().Lookup("dry-run")
	require.NotNil(t, dryRun)
	assert.Equal(t, "false", dryRun.DefValue)
}

func TestLeadsList_Flags(t *testing.T) {
	cmd := Leads()
	list, _, err := cmd.Find([]string{"list"})
	require.NoError(t, err)
	assert.Equal(t, "list", list.Name())

	limit := list.Flags().Lookup("limit")
	require.NotNil(t, limit)
	assert.Equal(t, "50", limit.DefValue)
	assert.NotNil(t, list.Flags().Lookup("interest"))
}

func TestToken_Execute(t *testing.T) {
	cmd := Root()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"token", "--secret", "test-secret", "--ttl", "10m"})

	require.NoError(t, cmd.Execute())
	token := strings.TrimSpace(out.String())
	assert.Len(t, strings.Split(token, "."), 3)
}

func TestToken_RequiresSecret(t *testing.T) {
	t.Setenv("ADMIN_JWT_SECRET", "")
	cmd := Root()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"token"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin secret is required")
}
