package layout

import "pdfmd/model"

// Stage is one structural-reconstruction step over the shared ParseResult.
// Per spec.md §9, the pipeline is data: an ordered slice of stages, not a
// hand-written call chain, so stages are trivially reorderable and testable
// in isolation.
type Stage func(*model.ParseResult)

// DefaultPipeline returns stages 2 through 8 in spec.md order. Stage 9
// (table detection) and stage 10 (markdown emission) live in their own
// packages and are appended by the caller, since they need configuration
// (keyword lists, image mode) that doesn't belong on a bare ParseResult.
func DefaultPipeline() []Stage {
	return []Stage{
		ComputeGlobals,
		GroupLines,
		RecombineVertical,
		DetectLists,
		DetectHeaders,
		GatherBlocks,
		DetectCode,
	}
}

// Run executes every stage in order.
func Run(result *model.ParseResult, stages []Stage) {
	for _, stage := range stages {
		stage(result)
	}
}
