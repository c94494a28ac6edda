package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/vidra-player/vidra/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/vidra-player/vidra/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/vidra-player/vidra/internal/version.Date={{.Date}}
)
