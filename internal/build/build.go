package build

// Version of filevis. Set with -ldflags "-X github.com/merridan/filevis/internal/build.Version=..." on release.
var Version = "0.0.0"
