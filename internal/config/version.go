package config

// Build information, set with -ldflags "-X github.com/trebuchet-org/stgdeploy/internal/config.Version=..."
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
