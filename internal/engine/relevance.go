package engine

// ApplyRelevanceFilter keeps hits in the top relevance band against the
// query. When filtering would leave nothing — or the best hit scores
// zero despite extracted role tokens — the unfiltered set is returned:
// a thin answer beats an empty one. Both route variants share this
// behavior.
func ApplyRelevanceFilter(queryText string, hits []JobResult, roleTokens []string) []JobResult {
	if len(hits) == 0 {
		return hits
	}
	queryTokens := Tokens(queryText)

	scores := make([]int, len(hits))
	maxScore := 0
	for i, h := range hits {
		scores[i] = relevanceScore(h, queryTokens, roleTokens)
		if scores[i] > maxScore {
			maxScore = scores[i]
		}
	}

	if maxScore == 0 {
		return hits
	}

	var kept []JobResult
	for i, h := range hits {
		if scores[i] >= maxScore-1 {
			kept = append(kept, h)
		}
	}
	if len(kept) == 0 {
		return hits
	}
	return kept
}

// relevanceScore counts query-token substring hits across the hit's text
// fields, minus a role-token penalty for hits unrelated to the searched
// role.
func relevanceScore(h JobResult, queryTokens, roleTokens []string) int {
	haystack := h.Title + " " + h.Company + " " + h.Snippet + " " + h.Location
	score := 0
	for _, tok := range queryTokens {
		if containsFold(haystack, tok) {
			score++
		}
	}

	if len(roleTokens) > 0 {
		roleText := h.Title + " " + h.Snippet + " " + h.Company
		matched := 0
		for _, tok := range roleTokens {
			if containsFold(roleText, tok) {
				matched++
			}
		}
		want := min(2, len(roleTokens))
		switch {
		case matched == 0:
			score -= cfg.Weights.PenaltyNoRole
		case matched < want:
			score -= cfg.Weights.PenaltyFewRole
		}
	}
	if score < 0 {
		score = 0
	}
	return score
}
