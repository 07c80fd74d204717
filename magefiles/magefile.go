// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for the eegsubmit project using Mage.
//
// Usage:
//
//	mage build             Compile eegsubmit binary to bin/
//	mage test:all          Run all tests (unit + integration)
//	mage test:unit         Run only unit tests (exclude integration)
//	mage test:integration  Run only integration tests (builds first)
//	mage test:cover        Run unit tests with a coverage profile
//	mage fmt               Check gofmt formatting
//	mage lint              Run gofmt check and golangci-lint
//	mage clean             Remove build artifacts
//	mage install           Install eegsubmit to GOPATH/bin
package main
