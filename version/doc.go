// Package version reports build information: the binary's own version and
// the version of amalfi it links. The latter is stamped on every span and
// metric as the instrumentation scope version.
package version
