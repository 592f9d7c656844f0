package domain

// PeerOutcome is one historical (peer, subject) tuple: how the peer
// stood in the subject and how many effective daily hours they invested
// that correlated with improvement. The contextual fields (difficulty,
// exam proximity, stress) make the corpus double as the training set
// for the predictive model.
type PeerOutcome struct {
	PeerID      string
	SubjectID   string
	Score       float64 // 0–100
	Confidence  float64 // 0–1
	HoursPerDay float64 // realized daily investment, >= 0
	Improved    bool

	Difficulty float64
	DaysToExam int
	Stress     StressLevel
}

// PeerCorpus is an immutable collection of historical peer outcomes.
// It is read-only with respect to the engine; rebuilding produces a
// new corpus and old references stay valid for in-flight plans.
type PeerCorpus struct {
	Outcomes []PeerOutcome
}

// Empty reports whether the corpus holds no outcomes.
func (c *PeerCorpus) Empty() bool {
	return c == nil || len(c.Outcomes) == 0
}

// PeerIDs returns the distinct peer identifiers in insertion order.
func (c *PeerCorpus) PeerIDs() []string {
	if c == nil {
		return nil
	}
	seen := make(map[string]bool, len(c.Outcomes))
	var ids []string
	for _, o := range c.Outcomes {
		if !seen[o.PeerID] {
			seen[o.PeerID] = true
			ids = append(ids, o.PeerID)
		}
	}
	return ids
}

// OutcomesFor returns all outcomes recorded for the given subject.
func (c *PeerCorpus) OutcomesFor(subjectID string) []PeerOutcome {
	if c == nil {
		return nil
	}
	var out []PeerOutcome
	for _, o := range c.Outcomes {
		if o.SubjectID == subjectID {
			out = append(out, o)
		}
	}
	return out
}
