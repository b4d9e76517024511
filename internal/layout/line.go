package layout

import (
	"math"
	"sort"
	"strings"
)

const (
	// baselineTolerance is the maximum Y distance (points) between
	// fragments considered part of the same line.
	baselineTolerance = 2.5

	// wordGapRatio is the horizontal gap, as a fraction of font size,
	// above which a space is inserted between merged fragments.
	wordGapRatio = 0.3
)

// BuildLines groups raw fragments into lines, one per visually distinct
// text row, ordered by (page, top-to-bottom). Whitespace-only fragments
// are dropped. Pages with no extractable text simply contribute no lines.
func BuildLines(frags []Fragment) []Line {
	byPage := make(map[int][]Fragment)
	var pages []int
	for _, f := range frags {
		if strings.TrimSpace(f.Text) == "" {
			continue
		}
		if _, seen := byPage[f.Page]; !seen {
			pages = append(pages, f.Page)
		}
		byPage[f.Page] = append(byPage[f.Page], f)
	}
	sort.Ints(pages)

	var lines []Line
	for _, p := range pages {
		lines = append(lines, buildPageLines(byPage[p])...)
	}
	return lines
}

// buildPageLines bands one page's fragments by baseline, then merges each
// band left-to-right into a Line.
func buildPageLines(frags []Fragment) []Line {
	sort.SliceStable(frags, func(i, j int) bool {
		if frags[i].Y0 != frags[j].Y0 {
			return frags[i].Y0 > frags[j].Y0 // top of page first
		}
		return frags[i].X0 < frags[j].X0
	})

	var lines []Line
	var band []Fragment
	bandY := 0.0

	flush := func() {
		if len(band) == 0 {
			return
		}
		if ln, ok := mergeBand(band); ok {
			lines = append(lines, ln)
		}
		band = band[:0]
	}

	for _, f := range frags {
		if len(band) == 0 || math.Abs(f.Y0-bandY) > baselineTolerance {
			flush()
			bandY = f.Y0
		}
		band = append(band, f)
	}
	flush()

	return lines
}

// mergeBand concatenates a baseline band into a single Line, inserting a
// space wherever the horizontal gap between fragments suggests a word
// boundary. Returns ok=false if the band holds no printable text.
func mergeBand(band []Fragment) (Line, bool) {
	sort.SliceStable(band, func(i, j int) bool { return band[i].X0 < band[j].X0 })

	var sb strings.Builder
	sizeWeight := make(map[float64]int)
	boldChars, totalChars := 0, 0
	prevX1 := math.Inf(-1)

	for _, f := range band {
		if sb.Len() > 0 {
			gap := f.X0 - prevX1
			if gap > wordGapRatio*f.FontSize && !strings.HasSuffix(sb.String(), " ") && !strings.HasPrefix(f.Text, " ") {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(f.Text)
		if f.X1 > prevX1 {
			prevX1 = f.X1
		}

		n := len([]rune(strings.TrimSpace(f.Text)))
		sizeWeight[roundSize(f.FontSize)] += n
		if f.Bold {
			boldChars += n
		}
		totalChars += n
	}

	text := strings.Join(strings.Fields(sb.String()), " ")
	if text == "" {
		return Line{}, false
	}

	return Line{
		Text:     text,
		Page:     band[0].Page,
		FontSize: dominantSize(sizeWeight),
		Bold:     boldChars*2 > totalChars,
		Y:        band[0].Y0,
		X0:       band[0].X0,
		Chars:    len([]rune(text)),
	}, true
}

// dominantSize returns the size with the highest character weight,
// preferring the larger size on ties.
func dominantSize(weights map[float64]int) float64 {
	best, bestN := 0.0, -1
	for size, n := range weights {
		if n > bestN || (n == bestN && size > best) {
			best, bestN = size, n
		}
	}
	return best
}

// roundSize buckets a font size to 0.1pt to absorb float jitter.
func roundSize(s float64) float64 {
	return math.Round(s*10) / 10
}
