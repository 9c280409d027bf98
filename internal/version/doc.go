// Package version reports fwver's own version. Release builds stamp it with
// -ldflags; otherwise runtime/debug.BuildInfo fills in the module version and
// VCS metadata recorded by the go tool.
package version
