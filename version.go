package avyna

import (
	_ "embed"
)

// Version is the release of the client, embedded from the VERSION file.
//
//go:embed VERSION
var Version string
