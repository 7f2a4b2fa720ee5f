package ui

import (
	"testing"

	"dartforge/internal/pipeline"
)

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		stage  pipeline.Stage
		status pipeline.Status
		want   string
	}{
		{pipeline.StageRender, pipeline.StatusQueued, "queued"},
		{pipeline.StageRender, pipeline.StatusWorking, "rendering"},
		{pipeline.StageWrite, pipeline.StatusWorking, "writing"},
		{pipeline.StagePlan, pipeline.StatusWorking, "planning"},
		{pipeline.StageWrite, pipeline.StatusDone, "done"},
		{pipeline.StageWrite, pipeline.StatusCached, "cached"},
		{pipeline.StageRender, pipeline.StatusError, "error"},
	}
	for _, tt := range tests {
		if got := statusLabel(tt.stage, tt.status); got != tt.want {
			t.Fatalf("statusLabel(%s, %s) = %q, want %q", tt.stage, tt.status, got, tt.want)
		}
	}
}

func TestEntryComplete(t *testing.T) {
	for _, status := range []string{"done", "cached", "error"} {
		if !entryComplete(status) {
			t.Fatalf("%q not complete", status)
		}
	}
	for _, status := range []string{"queued", "rendering", "writing"} {
		if entryComplete(status) {
			t.Fatalf("%q complete", status)
		}
	}
}

func TestProgressFromStage(t *testing.T) {
	if progressFromStage(pipeline.StageRender) >= progressFromStage(pipeline.StageWrite) {
		t.Fatal("write stage must sit further along than render")
	}
	if progressFromStage(pipeline.StagePlan) != 0 {
		t.Fatal("plan stage contributes per-entry progress")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("loops/for-classic", 40); got != "loops/for-classic" {
		t.Fatalf("short name truncated: %q", got)
	}
	got := truncate("compose/very-long-entry-name-for-testing", 12)
	if len(got) > 12 {
		t.Fatalf("truncate overflowed: %q", got)
	}
	if got == "compose/very-long-entry-name-for-testing" {
		t.Fatal("long name not truncated")
	}
}
