package cli

// Version is the release version, overridden at build time with
// -ldflags "-X github.com/Fepozopo/rscope/pkg/cli.Version=...".
var Version = "0.1.0"
