// Package buildinfo carries the version stamped in with -ldflags "-X".
package buildinfo

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short is the release version, else the commit, else "dev".
func Short() string {
	switch {
	case Version != "" && Version != "dev":
		return Version
	case Commit != "" && Commit != "unknown":
		return Commit
	}
	return "dev"
}

// Line is the one-line banner logged at start-up.
func Line() string {
	return "ozean " + Short() + " (commit " + Commit + ", built " + Date + ")"
}
