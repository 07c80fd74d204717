// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildVersionFromEnv(t *testing.T) {
	t.Setenv("EEGSUBMIT_VERSION", "1.2.3")
	assert.Equal(t, "1.2.3", buildVersion())
}

func TestBuildVersionFallback(t *testing.T) {
	t.Setenv("EEGSUBMIT_VERSION", "")
	assert.NotEmpty(t, buildVersion())
}
