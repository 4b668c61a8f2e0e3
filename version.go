package custodia

// version is overridden with the git tag by release build flags.
var version = "development"

// Version returns the version of the running software.
func Version() string {
	return version
}
