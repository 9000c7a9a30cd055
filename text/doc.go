// Package text provides low-level text-direction analysis shared by the
// ingestion adapter and the line-grouping stage.
//
// # Text Direction
//
// The package supports bidirectional text with the [Direction] type:
//
//   - LTR - left-to-right (Latin, CJK, etc.)
//   - RTL - right-to-left (Arabic, Hebrew, etc.)
//   - Neutral - direction-neutral characters (numbers, punctuation)
//
// [DetectDirection] analyzes a string's runes and reports its dominant
// direction; [GetCharDirection] reports a single rune's inherent direction.
package text
