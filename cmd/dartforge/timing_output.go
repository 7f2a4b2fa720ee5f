package main

import (
	"fmt"
	"io"
	"time"

	"dartforge/internal/pipeline"
)

func printStageTimings(out io.Writer, timings pipeline.Timings) {
	if out == nil {
		return
	}
	var printErr error
	if timings.Has(pipeline.StagePlan) {
		_, printErr = fmt.Fprintf(out, "planned %.1f ms\n", toMillis(timings.Duration(pipeline.StagePlan)))
		if printErr != nil {
			panic(printErr)
		}
	}
	if timings.Has(pipeline.StageRender) {
		_, printErr = fmt.Fprintf(out, "rendered %.1f ms\n", toMillis(timings.Duration(pipeline.StageRender)))
		if printErr != nil {
			panic(printErr)
		}
	}
	if timings.Has(pipeline.StageWrite) {
		_, printErr = fmt.Fprintf(out, "wrote %.1f ms\n", toMillis(timings.Duration(pipeline.StageWrite)))
		if printErr != nil {
			panic(printErr)
		}
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
