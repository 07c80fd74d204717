package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionPrintsStampedVersion(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })
	Version = "2.0.0-rc1"

	var out bytes.Buffer
	versionCmd.SetOut(&out)
	t.Cleanup(func() { versionCmd.SetOut(nil) })
	require.NoError(t, versionCmd.RunE(versionCmd, nil))
	assert.Equal(t, "eegsubmit v2.0.0-rc1\nmodule: "+modulePath+"\n", out.String())
}
