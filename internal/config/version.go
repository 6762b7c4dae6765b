package config

// Version is the kingraphd binary version.
// Set at build time via: -ldflags "-X github.com/kinviz/kingraph/internal/config.Version=<tag>"
// Defaults to "dev" when built without ldflags.
var Version = "dev"
