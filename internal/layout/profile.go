package layout

import "sort"

// tierJitter guards the body size against near-identical sizes being
// promoted to a heading tier.
const tierJitter = 0.5

// maxTiers caps the number of heading tiers mapped to levels (H1..H3).
const maxTiers = 3

// FontProfile is the document-wide font statistic: the body text size and
// the ranked sizes above it. Built once per document and then read-only.
type FontProfile struct {
	// BodySize is the char-weighted modal font size. Zero if the
	// document has no lines.
	BodySize float64

	// Tiers holds up to three distinct sizes larger than BodySize,
	// descending. Tiers[0] maps to H1, Tiers[1] to H2, Tiers[2] to H3.
	Tiers []float64

	// DistinctSizes is the number of distinct font sizes observed.
	DistinctSizes int
}

// BuildProfile tallies font sizes across all lines, weighted by character
// count so long body paragraphs dominate over short headings.
func BuildProfile(lines []Line) FontProfile {
	weights := make(map[float64]int)
	for _, ln := range lines {
		weights[roundSize(ln.FontSize)] += ln.Chars
	}
	if len(weights) == 0 {
		return FontProfile{}
	}

	body, bodyN := 0.0, -1
	for size, n := range weights {
		// Prefer the smaller size on ties: headings are the larger ones.
		if n > bodyN || (n == bodyN && size < body) {
			body, bodyN = size, n
		}
	}

	var larger []float64
	for size := range weights {
		if size > body+tierJitter {
			larger = append(larger, size)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(larger)))
	if len(larger) > maxTiers {
		larger = larger[:maxTiers]
	}

	return FontProfile{
		BodySize:      body,
		Tiers:         larger,
		DistinctSizes: len(weights),
	}
}

// TierDepth returns the 1-based heading depth for a font size: 1 plus the
// number of tiers strictly larger, capped at the deepest tier. The second
// return is false when the profile has no tiers at all.
func (p FontProfile) TierDepth(size float64) (int, bool) {
	if len(p.Tiers) == 0 {
		return 0, false
	}
	size = roundSize(size)
	depth := 1
	for _, t := range p.Tiers {
		if t > size+tierJitter/2 {
			depth++
		}
	}
	if depth > len(p.Tiers) {
		depth = len(p.Tiers)
	}
	if depth > maxTiers {
		depth = maxTiers
	}
	return depth, true
}

// MatchesTier reports whether a size lands exactly on one of the profiled
// heading tiers.
func (p FontProfile) MatchesTier(size float64) bool {
	size = roundSize(size)
	for _, t := range p.Tiers {
		if t == size {
			return true
		}
	}
	return false
}

// Degenerate reports whether the document formatting is too flat for
// font-based level discrimination (fewer than two distinct sizes).
func (p FontProfile) Degenerate() bool {
	return p.DistinctSizes < 2
}
