package engine

import "github.com/alexanderramin/studyflow/internal/domain"

// ContentScores computes the attribute-matching score for every
// enrolled subject, each in [0,1]. Difficulty and credit weight are
// normalized against the maxima observed across the student's own
// subjects, so the hardest or highest-stakes subject scores 1.0 on
// that axis and the rest scale proportionally.
//
// The score is positive whenever difficulty > 0 or credit_weight > 0,
// which is what guarantees a usable signal on cold start: it depends
// only on static attributes, never on peers or a trained model.
func ContentScores(records []domain.SubjectRecord) map[string]float64 {
	var maxDifficulty, maxCredit float64
	for _, r := range records {
		if r.Difficulty > maxDifficulty {
			maxDifficulty = r.Difficulty
		}
		if r.CreditWeight > maxCredit {
			maxCredit = r.CreditWeight
		}
	}

	scores := make(map[string]float64, len(records))
	for _, r := range records {
		var difficultyTerm, creditTerm float64
		if maxDifficulty > 0 {
			difficultyTerm = r.Difficulty / maxDifficulty
		}
		if maxCredit > 0 {
			creditTerm = r.CreditWeight / maxCredit
		}
		scores[r.SubjectID] = 0.5*difficultyTerm + 0.5*creditTerm
	}
	return scores
}
