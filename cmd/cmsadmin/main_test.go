package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "cmsadmin dev\n", out.String())
}

func TestDisplayAddr(t *testing.T) {
	assert.Equal(t, "http://localhost:8080", displayAddr(":8080"))
	assert.Equal(t, "http://0.0.0.0:9000", displayAddr("0.0.0.0:9000"))
}
