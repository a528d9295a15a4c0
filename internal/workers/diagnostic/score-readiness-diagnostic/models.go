// internal/workers/diagnostic/score-readiness-diagnostic/models.go
package scorereadinessdiagnostic

type Input struct {
	Answers map[string]int `json:"answers"`
}

type Output struct {
	Scores          Scores           `json:"scores"`
	Recommendations []Recommendation `json:"recommendations"`
	ExitReady       bool             `json:"exitReady"`
}

type Scores struct {
	Sections map[string]SectionScore `json:"sections"`
	Overall  Score                   `json:"overall"`
}

type Score struct {
	Raw        int    `json:"raw"`
	Percentage int    `json:"percentage"`
	Band       string `json:"band"`
}

type SectionScore struct {
	Score
	Title string `json:"title"`
}

type Recommendation struct {
	Type     string `json:"type"`
	Priority string `json:"priority"`
	Text     string `json:"text"`
}
