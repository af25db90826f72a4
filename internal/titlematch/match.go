package titlematch

// DefaultThreshold is the fuzzy acceptance score used when no threshold is
// configured.
const DefaultThreshold = 85

// Options tune candidate matching.
type Options struct {
	// Threshold is the minimum fuzzy similarity score in (0, 100] required to
	// accept a non-exact candidate. Zero or negative selects DefaultThreshold.
	Threshold int
	// Year is the query's release year; zero means unknown and disables year
	// checking entirely.
	Year int
	// CandidateYears parallels the candidate slice. A zero entry means the
	// candidate has no recorded year and is treated as a wildcard that still
	// allows an exact-title match.
	CandidateYears []int
}

// FindBestMatch scans candidates in input order and returns the first
// acceptable one, un-normalized, together with whether a match was found.
//
// Each candidate is tried exact-first: equal normalized titles match, subject
// to year disambiguation when both a query year and candidate years were
// supplied. Otherwise the candidate is accepted when its fuzzy similarity
// score meets the threshold. The scan is deliberately first-acceptable rather
// than global-best; callers that need exact matches to win over earlier fuzzy
// candidates must order the candidate list accordingly.
func FindBestMatch(title string, candidates []string, opts Options) (string, bool) {
	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	normTitle := Normalize(title)
	for idx, candidate := range candidates {
		normCandidate := Normalize(candidate)
		if normTitle == normCandidate {
			if opts.Year != 0 && opts.CandidateYears != nil {
				candidateYear := 0
				if idx < len(opts.CandidateYears) {
					candidateYear = opts.CandidateYears[idx]
				}
				if candidateYear == opts.Year {
					return candidate, true
				}
				// A candidate without a recorded year still matches.
				if candidateYear == 0 {
					return candidate, true
				}
				continue
			}
			return candidate, true
		}
		if Similarity(normTitle, normCandidate) >= threshold {
			return candidate, true
		}
	}
	return "", false
}
