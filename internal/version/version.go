// Package version provides build information for wl-ignore-mail.
package version

// Version is overridden at build time using ldflags.
var Version = "development"

// Commit is the git commit hash, overridden at build time using ldflags.
var Commit = "unknown"

// String returns the version including the commit hash when known.
func String() string {
	if Commit != "unknown" {
		return Version + "+" + Commit
	}
	return Version
}

// UserAgent is the default User-Agent sent to the forum.
func UserAgent() string {
	return "wl-ignore-mail/" + String()
}
