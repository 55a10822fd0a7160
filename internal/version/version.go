package version

// Version is the connector version. It is overridden at build time with
// -ldflags "-X github.com/namsor/namsor-connector/internal/version.Version=...".
var Version = "0.1.0-dev"
