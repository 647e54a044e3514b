package ports

// Token is one word occurrence in the analyzed document. Start/End are
// half-open rune offsets into the original text; tokens never overlap
// and are ordered by Start.
type Token struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// LemmaCount is a per-lemma frequency row in an analysis result.
// Heat is the bounded 1–5 intensity tier derived from Frequency.
type LemmaCount struct {
	Lemma     string `json:"lemma"`
	Frequency int    `json:"frequency"`
	Heat      int    `json:"heat"`
}

// Highlight marks one occurrence of a repeated lemma. Start/End are the
// occurrence's rune span; Heat is the lemma's heat, shared by every
// occurrence of that lemma.
type Highlight struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Heat  int    `json:"heat"`
	Lemma string `json:"lemma"`
}

// Stats summarizes one analysis pass.
type Stats struct {
	WordCount          int     `json:"wordCount"`
	RepeatedTokenCount int     `json:"repeatedTokenCount"`
	DurationMs         float64 `json:"durationMs"`
}

// Result is the complete outcome of one analysis. Highlights and
// LemmaFrequencies cover the same lemma set: only lemmas occurring at
// least twice appear in either.
type Result struct {
	Highlights       []Highlight  `json:"highlights"`
	LemmaFrequencies []LemmaCount `json:"lemmaFrequencies"`
	Stats            Stats        `json:"stats"`
}
