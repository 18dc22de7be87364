package legend

import (
	"testing"

	"siteview/internal/render"
)

func TestEntriesFollowPalette(t *testing.T) {
	entries := Entries()
	if len(entries) != 7 {
		t.Fatalf("expected 7 entries, got %d", len(entries))
	}
	if entries[0].Code != "CP" || entries[0].Color != "#ff6b6b" || entries[0].Description != "Concrete Pouring" {
		t.Fatalf("unexpected first entry %+v", entries[0])
	}
	if entries[6].Code != "SCD" || entries[6].Color != "#d4a373" {
		t.Fatalf("unexpected last entry %+v", entries[6])
	}
}

func TestRenderRebuildsEachCall(t *testing.T) {
	rec := render.NewRecorder()
	Render(rec)
	Render(rec)

	if n := len(rec.Filter(render.OpClear)); n != 1 {
		t.Fatalf("expected a single clear after redraw, got %d", n)
	}
	if n := len(rec.Filter(render.OpShape)); n != 7 {
		t.Fatalf("expected 7 swatches, got %d", n)
	}
	texts := rec.Texts()
	if len(texts) != 7 || texts[1] != "Inspection & Verification" {
		t.Fatalf("unexpected descriptions %v", texts)
	}
}
