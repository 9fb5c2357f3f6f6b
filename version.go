package claimform

// Version is the release of the library and CLI, overridable at link time.
var Version = "0.1.0"
