package services

import (
	"strings"

	"excelinterviewer/mock-interviewer/internal/catalog"
	"excelinterviewer/mock-interviewer/internal/models"
)

const (
	advancedPercent     = 85.0
	intermediatePercent = 65.0
	strengthPercent     = 75.0
	gapPercent          = 55.0
)

type skillTotal struct {
	score float64
	max   float64
}

// GenerateReport aggregates the session's final scores by skill. It works on
// whatever has been answered so far, so a report mid-interview reflects
// partial data.
func GenerateReport(session *models.Session, cat catalog.Catalog) *models.Report {
	var skills []string
	totals := make(map[string]*skillTotal)

	for _, rec := range session.Scores {
		q, ok := cat.ByID(rec.QuestionID)
		if !ok {
			continue
		}
		t, seen := totals[q.Skill]
		if !seen {
			t = &skillTotal{}
			totals[q.Skill] = t
			skills = append(skills, q.Skill)
		}
		t.score += rec.FinalScore
		t.max += q.MaxScore
	}

	var total, possible float64
	report := &models.Report{
		PerSkill:  make(map[string]float64, len(skills)),
		Strengths: []string{},
		Gaps:      []string{},
		Drills:    []string{},
		Answers:   append([]models.AnswerRecord{}, session.Answers...),
		Scores:    append([]models.ScoreRecord{}, session.Scores...),
	}

	for _, skill := range skills {
		t := totals[skill]
		total += t.score
		possible += t.max

		pct := 0.0
		if t.max > 0 {
			pct = t.score / t.max * 100
		}
		report.PerSkill[skill] = round(pct, 1)

		if pct >= strengthPercent {
			report.Strengths = append(report.Strengths, skill)
		}
		if pct < gapPercent {
			report.Gaps = append(report.Gaps, skill)
		}
	}

	if possible == 0 {
		possible = 1
	}
	percent := total / possible * 100

	report.TotalScore = round(total, 2)
	report.OverallPercent = round(percent, 1)
	report.Band = bandFor(percent)
	if len(report.Gaps) > 0 {
		report.Drills = append(report.Drills, "Practice more on: "+strings.Join(report.Gaps, ", "))
	}

	return report
}

func bandFor(percent float64) models.Band {
	switch {
	case percent >= advancedPercent:
		return models.BandAdvanced
	case percent >= intermediatePercent:
		return models.BandIntermediate
	default:
		return models.BandBeginner
	}
}
