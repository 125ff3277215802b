// ============================================================================
// hcmd - embeddable console command interpreter
// ============================================================================
//
// Package:     version
// Description: Build metadata reported by the CLI and the remote console
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version is the release version; Commit and Date are set at build time
// with -ldflags "-X github.com/msto63/hcmd/pkg/core/version.Commit=..."
var (
	Version = "0.1.0"
	Commit  = "none"
	Date    = "unknown"
)

// Protocol is the version of the remote console message protocol
const Protocol = "1"

// Info bundles build metadata
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Protocol  string `json:"protocol"`
}

// Get returns the build metadata of the running binary
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Protocol:  Protocol,
	}
}

// String renders the metadata on one line
func (i Info) String() string {
	return fmt.Sprintf("hcmd %s (commit %s, built %s, %s)", i.Version, i.Commit, i.Date, i.GoVersion)
}
