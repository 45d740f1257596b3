// Package parsers dispatches file bytes to the format parser registered
// for their MIME type.
//
// Format parsers live in subpackages and are registered at startup.
package parsers
