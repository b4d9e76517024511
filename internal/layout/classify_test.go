package layout

import "testing"

// profileFor builds a profile straight from the given lines.
func profileFor(lines []Line) FontProfile {
	return BuildProfile(lines)
}

func TestClassify_TierMatchIsHeading(t *testing.T) {
	heading := line("Financial Overview", 2, 18, true, 720)
	body := line("The quarter closed with revenue broadly in line with guidance.", 2, 11, false, 690)
	p := profileFor([]Line{heading, body, line("More body text follows to weight the body size properly here.", 2, 11, false, 674)})

	c := NewClassifier()
	cand, ok := c.Classify(heading, nil, &body, p)
	if !ok {
		t.Fatal("expected tier-matched line to classify as heading")
	}
	if cand.Level != LevelH1 {
		t.Errorf("expected H1, got %s", cand.Level)
	}
	if cand.Text != "Financial Overview" {
		t.Errorf("unexpected heading text %q", cand.Text)
	}
}

func TestClassify_BodyTextRejected(t *testing.T) {
	heading := line("Financial Overview", 2, 18, true, 720)
	body := line("The quarter closed with revenue broadly in line with guidance.", 2, 11, false, 690)
	p := profileFor([]Line{heading, body})

	c := NewClassifier()
	if _, ok := c.Classify(body, &heading, nil, p); ok {
		t.Error("expected body prose to be rejected")
	}
}

func TestClassify_SentencePunctuationRejected(t *testing.T) {
	// Even a tier-sized line reads as prose when it ends like a sentence.
	ln := line("This entire line is set large but ends with a period.", 1, 18, true, 720)
	p := FontProfile{BodySize: 11, Tiers: []float64{18}, DistinctSizes: 2}

	c := NewClassifier()
	if _, ok := c.Classify(ln, nil, nil, p); ok {
		t.Error("expected sentence-terminal line to be rejected")
	}
}

func TestClassify_BoldFifteenPercentLarger(t *testing.T) {
	// 13pt bold over an 11pt body: no tier match needed.
	ln := line("Methodology Notes", 1, 13, true, 700)
	p := FontProfile{BodySize: 11, Tiers: []float64{24, 18, 14}, DistinctSizes: 5}

	c := NewClassifier()
	cand, ok := c.Classify(ln, nil, nil, p)
	if !ok {
		t.Fatal("expected bold line 15%+ above body size to classify")
	}
	if cand.Level != LevelH3 {
		t.Errorf("expected H3 for size below every tier, got %s", cand.Level)
	}
}

func TestClassify_NumberingDepthOverridesFontTier(t *testing.T) {
	p := FontProfile{BodySize: 11, Tiers: []float64{16}, DistinctSizes: 3}
	c := NewClassifier()

	// 16pt would be tier H1, but "2.3" numbering pins it to H2.
	ln := line("2.3 Sampling Strategy", 4, 16, true, 700)
	cand, ok := c.Classify(ln, nil, nil, p)
	if !ok {
		t.Fatal("expected numbered heading to classify")
	}
	if cand.Level != LevelH2 {
		t.Errorf("expected H2 from numbering depth, got %s", cand.Level)
	}
	if !cand.Numbered {
		t.Error("expected candidate to be flagged as numbered")
	}
}

func TestClassify_NumberingDepthCappedAtH3(t *testing.T) {
	p := FontProfile{BodySize: 11, Tiers: []float64{16}, DistinctSizes: 3}
	c := NewClassifier()

	ln := line("1.2.3.4 Very Deep Section", 4, 16, true, 700)
	cand, ok := c.Classify(ln, nil, nil, p)
	if !ok {
		t.Fatal("expected numbered heading to classify")
	}
	if cand.Level != LevelH3 {
		t.Errorf("expected H3 cap, got %s", cand.Level)
	}
}

func TestClassify_DegenerateFallbackUsesBoldAndNumbering(t *testing.T) {
	// Flat formatting: single font size, nothing to tier against.
	p := FontProfile{BodySize: 12, DistinctSizes: 1}
	c := NewClassifier()

	bold := line("Appendix Material", 3, 12, true, 720)
	cand, ok := c.Classify(bold, nil, nil, p)
	if !ok {
		t.Fatal("expected isolated bold line to classify in degenerate layout")
	}
	if cand.Level != LevelH1 {
		t.Errorf("expected H1 fallback level, got %s", cand.Level)
	}

	plain := line("just some words on a page", 3, 12, false, 700)
	if _, ok := c.Classify(plain, nil, nil, p); ok {
		t.Error("expected plain line to be rejected in degenerate layout")
	}
}

func TestClassify_IsolationByGap(t *testing.T) {
	p := FontProfile{BodySize: 11, Tiers: []float64{14}, DistinctSizes: 2}
	c := NewClassifier()

	prevTight := line("body text directly above without any breathing room", 2, 11, false, 712)
	nextTight := line("body text directly below without any breathing room", 2, 11, false, 688)
	// Long enough to miss the brevity point, so isolation has to carry
	// the line over the threshold.
	ln := line("Overview of the Consolidated Financial Statements and the Accompanying Notes to Shareholders", 2, 14, false, 700)

	if _, ok := c.Classify(ln, &prevTight, &nextTight, p); ok {
		t.Error("expected unisolated unbold tier line at this length to miss the score threshold")
	}

	prevFar := line("body text with a generous gap above the heading line", 2, 11, false, 760)
	if _, ok := c.Classify(ln, &prevFar, &nextTight, p); !ok {
		t.Error("expected isolated tier line to classify")
	}
}

func TestClassify_NewPageCountsAsIsolated(t *testing.T) {
	p := FontProfile{BodySize: 11, Tiers: []float64{18}, DistinctSizes: 2}
	c := NewClassifier()

	prevOtherPage := line("last line of the previous page", 1, 11, false, 80)
	ln := line("Results", 2, 18, false, 760)

	cand, ok := c.Classify(ln, &prevOtherPage, nil, p)
	if !ok {
		t.Fatal("expected page-opening tier line to classify")
	}
	if cand.Level != LevelH1 {
		t.Errorf("expected H1, got %s", cand.Level)
	}
}

func TestPickTitle_LargestFirstHeadingOnPageOne(t *testing.T) {
	cands := []Candidate{
		{Line: line("Company Report", 1, 24, true, 720), Text: "Company Report", Level: LevelH1},
		{Line: line("Financials", 2, 18, true, 720), Text: "Financials", Level: LevelH2},
	}
	title, body := PickTitle(cands)
	if title != "Company Report" {
		t.Fatalf("expected title %q, got %q", "Company Report", title)
	}
	if len(body) != 1 || body[0].Text != "Financials" {
		t.Fatalf("expected title excluded from body, got %v", body)
	}
}

func TestPickTitle_NumberedHeadingIsNotATitle(t *testing.T) {
	cands := []Candidate{
		{Line: line("1. Intro", 1, 16, false, 720), Text: "1. Intro", Level: LevelH1, Numbered: true},
	}
	title, body := PickTitle(cands)
	if title != "" {
		t.Errorf("expected no title, got %q", title)
	}
	if len(body) != 1 {
		t.Errorf("expected candidate kept in body, got %v", body)
	}
}

func TestPickTitle_BiggerHeadingLaterOnPageOne(t *testing.T) {
	cands := []Candidate{
		{Line: line("Preface", 1, 14, true, 760), Text: "Preface", Level: LevelH3},
		{Line: line("The Actual Title", 1, 24, true, 600), Text: "The Actual Title", Level: LevelH1},
	}
	title, body := PickTitle(cands)
	if title != "" {
		t.Errorf("expected no inferred title, got %q", title)
	}
	if len(body) != 2 {
		t.Errorf("expected all candidates kept, got %d", len(body))
	}
}

func TestCleanHeadingText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Budget   Overview ", "Budget Overview"},
		{"Chapter 4. The Long Road", "The Long Road"},
		{"Introduction 12", "Introduction"},
		{"ab", ""}, // below minimum length
	}
	for _, tt := range tests {
		if got := CleanHeadingText(tt.in); got != tt.want {
			t.Errorf("CleanHeadingText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanTitleText(t *testing.T) {
	if got := CleanTitleText("annual_report.pdf"); got != "annual_report" {
		t.Errorf("expected extension stripped, got %q", got)
	}
	if got := CleanTitleText("  Spaced   Out  "); got != "Spaced Out" {
		t.Errorf("expected whitespace collapsed, got %q", got)
	}
}

func TestNumberingDepth(t *testing.T) {
	tests := []struct {
		in    string
		depth int
		ok    bool
	}{
		{"1. Intro", 1, true},
		{"1.1 Background", 2, true},
		{"2.3.4 Edge Cases", 3, true},
		{"Chapter 7 Conclusions", 1, true},
		{"IV. Appendices", 1, true},
		{"Plain Heading", 0, false},
		{"1999 was a good year", 0, false},
	}
	for _, tt := range tests {
		depth, ok := numberingDepth(tt.in)
		if ok != tt.ok || depth != tt.depth {
			t.Errorf("numberingDepth(%q) = (%d,%v), want (%d,%v)", tt.in, depth, ok, tt.depth, tt.ok)
		}
	}
}
