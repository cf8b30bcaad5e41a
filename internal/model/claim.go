package model

// Claim represents a single factual assertion extracted from post text
type Claim struct {
	Text        string `json:"claimText"`   // The claim text itself
	Type        string `json:"type"`        // Nature of the claim (e.g., "statistic", "event", "attribution")
	Specificity string `json:"specificity"` // How concrete the claim is (e.g., "specific", "general")
}

// SearchQuery is a single evidence-gathering query derived from a claim.
// Rationale is kept for logging only; nothing downstream consumes it.
type SearchQuery struct {
	Query     string `json:"query"`
	Rationale string `json:"rationale"`
}
