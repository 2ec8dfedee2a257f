package autocomplete

import "strings"

// Search returns the candidates matching query, in candidate order. A zero
// limit uses opts.DefaultLimit. The result is a fresh slice.
func Search(candidates []Candidate, query string, limit int, opts Options) []Candidate {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if opts.EmptySearchMode != EmptySearchAll {
			return nil
		}
		return truncate(append([]Candidate{}, candidates...), limit)
	}

	q := strings.ToLower(query)
	out := make([]Candidate, 0, 16)
	for _, candidate := range candidates {
		if !candidate.matches(q) {
			continue
		}
		out = append(out, candidate)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// SearchOptions is Search mapped to the handler's wire shape.
func SearchOptions(candidates []Candidate, query string, limit int, opts Options) []Option {
	results := Search(candidates, query, limit, opts)
	if len(results) == 0 {
		return nil
	}

	out := make([]Option, 0, len(results))
	for _, candidate := range results {
		out = append(out, candidate.Option())
	}
	return out
}

// Values extracts candidate values.
func Values(candidates []Candidate) []string {
	out := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		out = append(out, candidate.Value)
	}
	return out
}

func truncate(in []Candidate, limit int) []Candidate {
	if limit > 0 && len(in) > limit {
		return in[:limit]
	}
	return in
}
