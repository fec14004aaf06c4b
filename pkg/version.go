package bgcatlas

var (
	// Version of the application.
	Version = "v0.1.0"
	// Build timestamp, set by the linker.
	Build = "n/a"
)
