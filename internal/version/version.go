package version

import (
	"runtime"
	"time"
)

// Set at build time via -ldflags; dev builds fall back to these.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = time.Now().Format(time.RFC3339)
	GoVersion = runtime.Version()
)
