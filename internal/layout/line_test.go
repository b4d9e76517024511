package layout

import (
	"testing"
)

func frag(text string, page int, size float64, bold bool, x0, x1, y float64) Fragment {
	return Fragment{
		Text:     text,
		Page:     page,
		FontSize: size,
		Bold:     bold,
		FontName: "Helvetica",
		X0:       x0,
		Y0:       y,
		X1:       x1,
		Y1:       y + size,
	}
}

func TestBuildLines_MergesBaselineBand(t *testing.T) {
	frags := []Fragment{
		frag("Hello", 1, 12, false, 10, 40, 700),
		frag("World", 1, 12, false, 46, 76, 700.5), // within baseline tolerance
	}
	lines := BuildLines(frags)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Text != "Hello World" {
		t.Errorf("expected %q, got %q", "Hello World", lines[0].Text)
	}
	if lines[0].Page != 1 {
		t.Errorf("expected page 1, got %d", lines[0].Page)
	}
}

func TestBuildLines_NoSpaceForTightFragments(t *testing.T) {
	// Per-glyph extraction: adjacent characters must not grow spaces.
	frags := []Fragment{
		frag("H", 1, 12, false, 10, 17, 700),
		frag("i", 1, 12, false, 17, 20, 700),
	}
	lines := BuildLines(frags)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Text != "Hi" {
		t.Errorf("expected %q, got %q", "Hi", lines[0].Text)
	}
}

func TestBuildLines_SplitsOnVerticalGap(t *testing.T) {
	frags := []Fragment{
		frag("First row", 1, 12, false, 10, 70, 700),
		frag("Second row", 1, 12, false, 10, 75, 680),
	}
	lines := BuildLines(frags)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Text != "First row" || lines[1].Text != "Second row" {
		t.Errorf("unexpected line texts: %q, %q", lines[0].Text, lines[1].Text)
	}
	if lines[0].Y <= lines[1].Y {
		t.Errorf("expected top-to-bottom order, got Y %f then %f", lines[0].Y, lines[1].Y)
	}
}

func TestBuildLines_DropsWhitespaceFragments(t *testing.T) {
	frags := []Fragment{
		frag("  ", 1, 12, false, 10, 15, 700),
		frag("\t", 1, 12, false, 16, 20, 700),
	}
	if lines := BuildLines(frags); len(lines) != 0 {
		t.Fatalf("expected 0 lines, got %d", len(lines))
	}
}

func TestBuildLines_EmptyPageYieldsNoLines(t *testing.T) {
	// Page 2 contributes nothing; pages 1 and 3 still come out in order.
	frags := []Fragment{
		frag("page one", 1, 12, false, 10, 60, 700),
		frag("page three", 3, 12, false, 10, 70, 700),
	}
	lines := BuildLines(frags)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Page != 1 || lines[1].Page != 3 {
		t.Errorf("expected pages 1,3 got %d,%d", lines[0].Page, lines[1].Page)
	}
}

func TestBuildLines_PagesMonotonic(t *testing.T) {
	frags := []Fragment{
		frag("late", 2, 12, false, 10, 40, 700),
		frag("early", 1, 12, false, 10, 40, 700),
	}
	lines := BuildLines(frags)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for i := 1; i < len(lines); i++ {
		if lines[i].Page < lines[i-1].Page {
			t.Errorf("page order not monotonic: %d after %d", lines[i].Page, lines[i-1].Page)
		}
	}
}

func TestBuildLines_DominantFontAndBoldness(t *testing.T) {
	// A long bold run at 14pt dominates a short regular 12pt tail.
	frags := []Fragment{
		frag("Quarterly Figures", 1, 14, true, 10, 140, 700),
		frag("(draft)", 1, 12, false, 146, 190, 700),
	}
	lines := BuildLines(frags)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].FontSize != 14 {
		t.Errorf("expected dominant size 14, got %f", lines[0].FontSize)
	}
	if !lines[0].Bold {
		t.Error("expected dominant boldness true")
	}
}

func TestBuildLines_UnsortedFragmentsWithinBand(t *testing.T) {
	frags := []Fragment{
		frag("World", 1, 12, false, 46, 76, 700),
		frag("Hello", 1, 12, false, 10, 40, 700),
	}
	lines := BuildLines(frags)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Text != "Hello World" {
		t.Errorf("expected left-to-right merge, got %q", lines[0].Text)
	}
}
