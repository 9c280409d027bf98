// Package apperr defines shared error sentinels for the fwver application.
// It is a leaf package with no internal imports, so low-level packages such
// as describe and define can use the sentinels without import cycles.
package apperr
