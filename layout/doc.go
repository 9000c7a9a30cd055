// Package layout implements the structural-reconstruction stages of the
// core pipeline: global statistics, line grouping and inline analysis,
// vertical-text recombination, list detection, header detection, block
// gathering with image re-interleaving, and code-block detection.
//
// Each stage is a plain function over a *model.ParseResult, matching the
// "pipeline is data" design: [DefaultPipeline] returns an ordered list of
// these functions and [Run] runs them in sequence.
package layout
