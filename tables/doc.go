// Package tables classifies blocks as tabular data.
//
// Detection is text-shape driven rather than geometric: it looks at pipe
// characters, separator rows, and whitespace-run column splits, backed by a
// configurable keyword/status-glyph heuristic for single-line tables that
// carry no visible delimiter at all. See DetectTables.
package tables
