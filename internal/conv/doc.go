// Package conv provides checked integer casts and unsafe reinterpretation
// between byte slices and typed element slices for persistence paths.
package conv
