package layout

import (
	"regexp"
	"strings"
)

// Level is a classified heading rank.
type Level int

const (
	LevelNone Level = iota
	LevelTitle
	LevelH1
	LevelH2
	LevelH3
)

// String returns the wire spelling of the level ("H1".."H3", "title").
func (l Level) String() string {
	switch l {
	case LevelTitle:
		return "title"
	case LevelH1:
		return "H1"
	case LevelH2:
		return "H2"
	case LevelH3:
		return "H3"
	default:
		return "none"
	}
}

// Depth returns the 1-based outline depth of a heading level, 0 otherwise.
func (l Level) Depth() int {
	switch l {
	case LevelH1:
		return 1
	case LevelH2:
		return 2
	case LevelH3:
		return 3
	default:
		return 0
	}
}

// LevelForDepth maps a 1-based depth to a heading level, capped at H3.
func LevelForDepth(d int) Level {
	switch {
	case d <= 1:
		return LevelH1
	case d == 2:
		return LevelH2
	default:
		return LevelH3
	}
}

// Candidate is a line accepted as a heading, with its tentative level.
// The level is final only after the assembler reconciles the sequence.
type Candidate struct {
	Line     Line
	Text     string // cleaned heading text
	Level    Level
	Numbered bool
	Score    float64
}

var (
	multiNumberRe   = regexp.MustCompile(`^(\d+(?:\.\d+)+)\.?\s+\S`)
	singleNumberRe  = regexp.MustCompile(`^\d+[.)]\s+\S`)
	chapterNumberRe = regexp.MustCompile(`(?i)^(chapter|section|part|appendix)\s+[0-9ivxlc]+\b`)
	romanNumberRe   = regexp.MustCompile(`^[IVXLCDM]+[.)]\s+\S`)
)

// numberingDepth detects a numbering prefix ("2.", "3.1.4", "Chapter 7",
// "IV.") and returns the outline depth it implies. A bare leading number
// without a dot or parenthesis ("1999 was...") does not count.
func numberingDepth(text string) (int, bool) {
	if m := multiNumberRe.FindStringSubmatch(text); m != nil {
		return strings.Count(m[1], ".") + 1, true
	}
	if singleNumberRe.MatchString(text) || chapterNumberRe.MatchString(text) || romanNumberRe.MatchString(text) {
		return 1, true
	}
	return 0, false
}

// Classifier scores lines against the font profile and local context.
// The zero value is not usable; construct with NewClassifier.
type Classifier struct {
	// BoldSizeRatio is the minimum size relative to body text for a bold
	// line to qualify without a tier match.
	BoldSizeRatio float64

	// IsolationRatio is the minimum baseline gap, as a multiple of the
	// line's font size, for the line to count as visually isolated.
	IsolationRatio float64

	// AcceptScore is the minimum combined score to accept a line.
	AcceptScore float64
}

// NewClassifier returns a classifier with the tuned default thresholds.
func NewClassifier() *Classifier {
	return &Classifier{
		BoldSizeRatio:  1.15,
		IsolationRatio: 1.8,
		AcceptScore:    0.6,
	}
}

// Classify decides whether a line is a heading. It is a pure function of
// the line, its document neighbors (nil at document edges) and the font
// profile. Scoring is internal to the decision: any returned candidate is
// accepted.
func (c *Classifier) Classify(line Line, prev, next *Line, p FontProfile) (Candidate, bool) {
	text := CleanHeadingText(line.Text)
	if text == "" {
		return Candidate{}, false
	}
	runes := []rune(text)
	if strings.ContainsRune(".,;:", runes[len(runes)-1]) {
		// Sentence-terminal punctuation marks body prose, not a heading.
		return Candidate{}, false
	}

	numDepth, numbered := numberingDepth(line.Text)
	tierDepth, hasTiers := p.TierDepth(line.FontSize)
	onTier := p.MatchesTier(line.FontSize)
	boldLarge := line.Bold && p.BodySize > 0 && line.FontSize >= p.BodySize*c.BoldSizeRatio

	score := 0.0
	if onTier {
		score += 0.5
	}
	if boldLarge {
		score += 0.4
	}
	if numbered {
		score += 0.3
	}
	if c.isolated(line, prev, next) {
		score += 0.25
	}
	if line.Bold {
		score += 0.1
	}
	if line.Chars <= 80 {
		score += 0.1
	}

	// Flat formatting: no tiers to match, so boldness and numbering have
	// to carry the decision on their own.
	if !hasTiers && (line.Bold || numbered) {
		score += 0.3
	}

	if score < c.AcceptScore {
		return Candidate{}, false
	}

	var level Level
	switch {
	case numbered:
		level = LevelForDepth(numDepth)
	case hasTiers:
		level = LevelForDepth(tierDepth)
	default:
		level = LevelH1
	}

	return Candidate{
		Line:     line,
		Text:     text,
		Level:    level,
		Numbered: numbered,
		Score:    score,
	}, true
}

// isolated reports whether a line sits apart from surrounding text: it
// opens a new page, or the baseline gap to a neighbor is meaningfully
// larger than normal line spacing.
func (c *Classifier) isolated(line Line, prev, next *Line) bool {
	if prev == nil || prev.Page != line.Page {
		return true
	}
	gap := c.IsolationRatio * line.FontSize
	if prev.Y-line.Y >= gap {
		return true
	}
	if next != nil && next.Page == line.Page && line.Y-next.Y >= gap {
		return true
	}
	return false
}

// ClassifyLines runs the classifier over the whole line sequence in
// document order.
func (c *Classifier) ClassifyLines(lines []Line, p FontProfile) []Candidate {
	var cands []Candidate
	for i := range lines {
		var prev, next *Line
		if i > 0 {
			prev = &lines[i-1]
		}
		if i < len(lines)-1 {
			next = &lines[i+1]
		}
		if cand, ok := c.Classify(lines[i], prev, next, p); ok {
			cands = append(cands, cand)
		}
	}
	return cands
}

// PickTitle finds the document title among the candidates: the largest
// heading-like line on page 1, provided it appears before any other
// heading and is not itself a numbered section. The title is removed from
// the body candidates.
func PickTitle(cands []Candidate) (string, []Candidate) {
	if len(cands) == 0 || cands[0].Line.Page != 1 || cands[0].Numbered {
		return "", cands
	}
	first := cands[0]
	for _, c := range cands[1:] {
		if c.Line.Page != 1 {
			break
		}
		if c.Line.FontSize > first.Line.FontSize {
			// A bigger heading appears later on page 1: the first line
			// was not the most prominent one, so no title is inferred.
			return "", cands
		}
	}
	return CleanTitleText(first.Text), cands[1:]
}
