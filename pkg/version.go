package gnplet

var (
	// Version of gnplet.
	Version = "v0.1.0"
	// Build timestamp, set during compilation.
	Build = "n/a"
)
