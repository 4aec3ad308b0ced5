package services

import (
	"excelinterviewer/mock-interviewer/internal/catalog"
	"excelinterviewer/mock-interviewer/internal/models"
)

const (
	hardThreshold = 4.0
	easyThreshold = 2.0
)

// SelectNext picks the next question id for the session. The target tier is
// Hard after two final scores of at least 4, Easy after a final score of at
// most 2, Medium otherwise. The first unasked question of that tier in the
// session's snapshot order wins; failing that, the first unasked question of
// any tier. It reports false once maxQuestions have been asked or nothing is
// left.
func SelectNext(session *models.Session, cat catalog.Catalog, maxQuestions int) (string, bool) {
	if len(session.Asked) >= maxQuestions {
		return "", false
	}

	asked := make(map[string]bool, len(session.Asked))
	for _, id := range session.Asked {
		asked[id] = true
	}

	target := targetDifficulty(session.Scores)

	fallback := ""
	for _, id := range session.QuestionIDs {
		if asked[id] {
			continue
		}
		q, ok := cat.ByID(id)
		if !ok {
			continue
		}
		if q.Difficulty == target {
			return id, true
		}
		if fallback == "" {
			fallback = id
		}
	}

	if fallback == "" {
		return "", false
	}
	return fallback, true
}

func targetDifficulty(scores []models.ScoreRecord) models.Difficulty {
	n := len(scores)
	if n >= 2 && scores[n-1].FinalScore >= hardThreshold && scores[n-2].FinalScore >= hardThreshold {
		return models.DifficultyHard
	}
	if n >= 1 && scores[n-1].FinalScore <= easyThreshold {
		return models.DifficultyEasy
	}
	return models.DifficultyMedium
}
