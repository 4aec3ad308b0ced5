package models

type Band string

const (
	BandBeginner     Band = "Beginner"
	BandIntermediate Band = "Intermediate"
	BandAdvanced     Band = "Advanced"
)

type Report struct {
	TotalScore     float64            `json:"total_score"`
	OverallPercent float64            `json:"overall_percent"`
	Band           Band               `json:"band"`
	PerSkill       map[string]float64 `json:"per_skill"`
	Strengths      []string           `json:"strengths"`
	Gaps           []string           `json:"gaps"`
	Drills         []string           `json:"drills"`
	Answers        []AnswerRecord     `json:"answers"`
	Scores         []ScoreRecord      `json:"scores"`
}
