package catalog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"shopdesk/models"
)

// similarityCutoff is the minimum normalized similarity for a token to be
// considered a model-name candidate.
const similarityCutoff = 0.7

// Year hints outside this range are treated as ordinary tokens.
const (
	minModelYear = 1980
	maxModelYear = 2050
)

// MatchOutcome classifies a matcher result.
type MatchOutcome int

const (
	// MatchNone means no token resembled any catalog model name.
	MatchNone MatchOutcome = iota
	// MatchExact means a single catalog entry was identified.
	MatchExact
	// MatchAmbiguous means several entries fit equally well and the caller
	// must ask the customer to disambiguate.
	MatchAmbiguous
)

// MatchResult carries the outcome of resolving free text against the catalog.
type MatchResult struct {
	Outcome    MatchOutcome
	Vehicle    *models.VehicleRecord  // set when Outcome == MatchExact
	Candidates []models.VehicleRecord // set when Outcome == MatchAmbiguous
}

var wordPattern = regexp.MustCompile(`\w+`)

// extractKeywords tokenizes text into lowercase words and pulls out at most
// one plausible model-year hint.
func extractKeywords(text string) (words []string, year int) {
	words = wordPattern.FindAllString(lower(text), -1)
	for _, w := range words {
		n, err := strconv.Atoi(w)
		if err == nil && n >= minModelYear && n <= maxModelYear {
			year = n
			break
		}
	}
	return words, year
}

// closestModel returns the best-scoring model name for a token, or "" when
// nothing clears the cutoff. Model names are scanned in sorted order, so ties
// resolve deterministically.
func (c *Catalog) closestModel(token string) string {
	best := ""
	bestScore := similarityCutoff
	for _, name := range c.modelNames {
		score := similarity(token, name)
		if score > bestScore {
			best = name
			bestScore = score
		}
	}
	return best
}

// similarity is 1 - levenshtein/maxlen, in [0, 1].
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}

// Match resolves free text to a catalog entry, an ambiguity set, or nothing.
//
// Each token is fuzzy-matched against the distinct model names; the first
// token in input order that yields a candidate selects the model. With a year
// hint, an exact-year subset wins (one entry = exact, several = ambiguous,
// none = fall through). Without a usable year the most recent entry for the
// model is returned.
func (c *Catalog) Match(text string) MatchResult {
	words, year := extractKeywords(text)

	selected := ""
	for _, w := range words {
		if m := c.closestModel(w); m != "" {
			selected = m
			break
		}
	}
	if selected == "" {
		return MatchResult{Outcome: MatchNone}
	}

	var candidates []models.VehicleRecord
	for _, v := range c.vehicles {
		if lower(v.Model) == selected {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return MatchResult{Outcome: MatchNone}
	}

	if year != 0 {
		var exact []models.VehicleRecord
		for _, v := range candidates {
			if v.Year == year {
				exact = append(exact, v)
			}
		}
		if len(exact) == 1 {
			return MatchResult{Outcome: MatchExact, Vehicle: &exact[0]}
		}
		if len(exact) > 1 {
			return MatchResult{Outcome: MatchAmbiguous, Candidates: exact}
		}
		// No entry for that year: fall back to the most recent one.
	}

	mostRecent := candidates[0]
	for _, v := range candidates[1:] {
		if v.Year > mostRecent.Year {
			mostRecent = v
		}
	}
	return MatchResult{Outcome: MatchExact, Vehicle: &mostRecent}
}

func lower(s string) string { return strings.ToLower(s) }
