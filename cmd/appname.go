package cmd

// appName defines the application name, defaulting to "pwdigest"
var appName = "pwdigest"

// SetAppName sets the application name globally within the cmd package.
// It is used in the root command usage and in version output.
func SetAppName(name string) {
	appName = name
}
