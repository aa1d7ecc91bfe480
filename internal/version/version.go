// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version carries build metadata injected via ldflags.
package version

import "fmt"

// Info holds the values main stamps in at build time.
type Info struct {
	Version   string // git tag, "dev" for local builds
	GitCommit string // short commit hash
	BuildTime string // RFC3339 build timestamp
}

// String formats the info the way the -version flag prints it.
func (i Info) String() string {
	v := i.Version
	if v == "" {
		v = "dev"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", v, i.GitCommit, i.BuildTime)
}
