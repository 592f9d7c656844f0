package engine

import (
	"math"
	"sort"

	"github.com/alexanderramin/studyflow/internal/domain"
)

// CosineSimilarity is the dot product over the product of Euclidean
// norms. Undefined (zero-norm) inputs score 0.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// peerSimilarity pairs a peer with its similarity to the target student.
type peerSimilarity struct {
	PeerID     string
	Similarity float64
}

// CollaborativeScores computes the peer-similarity-weighted score for
// every enrolled subject, each in [0,1]. Peers are represented as
// vectors over subjects shared with the target student (score and
// confidence per shared subject); the top-K most similar peers vote
// with their realized outcome hours, normalized by maxHours. Ties at
// the K boundary are all kept even when that overflows K.
//
// Cold start is explicit: an empty corpus, or a subject no selected
// peer has improved in, scores exactly 0.
func CollaborativeScores(
	records []domain.SubjectRecord,
	corpus *domain.PeerCorpus,
	topK int,
	maxHours float64,
) map[string]float64 {
	scores := make(map[string]float64, len(records))
	for _, r := range records {
		scores[r.SubjectID] = 0
	}
	if corpus.Empty() || topK <= 0 || maxHours <= 0 {
		return scores
	}

	targetBySubject := make(map[string]domain.SubjectRecord, len(records))
	for _, r := range records {
		targetBySubject[r.SubjectID] = r
	}

	peerOutcomes := groupByPeer(corpus)
	neighbors := rankPeers(targetBySubject, peerOutcomes, topK)

	for subjectID := range scores {
		var weighted, simSum float64
		for _, n := range neighbors {
			outcome, ok := peerOutcomes[n.PeerID][subjectID]
			if !ok || !outcome.Improved || n.Similarity <= 0 {
				continue
			}
			weighted += n.Similarity * clamp01(outcome.HoursPerDay/maxHours)
			simSum += n.Similarity
		}
		if simSum > 0 {
			scores[subjectID] = weighted / simSum
		}
	}
	return scores
}

// rankPeers sorts peers by cosine similarity over shared subjects and
// keeps the top-K window, extending it through any tie at the boundary.
func rankPeers(
	target map[string]domain.SubjectRecord,
	peerOutcomes map[string]map[string]domain.PeerOutcome,
	topK int,
) []peerSimilarity {
	sims := make([]peerSimilarity, 0, len(peerOutcomes))
	for peerID, outcomes := range peerOutcomes {
		sim := similarityToPeer(target, outcomes)
		sims = append(sims, peerSimilarity{PeerID: peerID, Similarity: sim})
	}

	sort.SliceStable(sims, func(i, j int) bool {
		if sims[i].Similarity != sims[j].Similarity {
			return sims[i].Similarity > sims[j].Similarity
		}
		return sims[i].PeerID < sims[j].PeerID
	})

	if len(sims) <= topK {
		return sims
	}
	cut := topK
	for cut < len(sims) && sims[cut].Similarity == sims[topK-1].Similarity {
		cut++
	}
	return sims[:cut]
}

// similarityToPeer builds both vectors over the subjects the target and
// the peer share, then compares them. No shared subjects means zero
// similarity.
func similarityToPeer(
	target map[string]domain.SubjectRecord,
	outcomes map[string]domain.PeerOutcome,
) float64 {
	shared := make([]string, 0, len(outcomes))
	for subjectID := range outcomes {
		if _, ok := target[subjectID]; ok {
			shared = append(shared, subjectID)
		}
	}
	if len(shared) == 0 {
		return 0
	}
	sort.Strings(shared)

	targetVec := make([]float64, 0, len(shared)*2)
	peerVec := make([]float64, 0, len(shared)*2)
	for _, subjectID := range shared {
		t := target[subjectID]
		p := outcomes[subjectID]
		targetVec = append(targetVec, t.Score/100, t.Confidence)
		peerVec = append(peerVec, p.Score/100, p.Confidence)
	}
	return CosineSimilarity(targetVec, peerVec)
}

// groupByPeer indexes corpus outcomes as peer -> subject -> outcome.
// Later duplicates for the same (peer, subject) pair win.
func groupByPeer(corpus *domain.PeerCorpus) map[string]map[string]domain.PeerOutcome {
	byPeer := make(map[string]map[string]domain.PeerOutcome)
	for _, o := range corpus.Outcomes {
		if byPeer[o.PeerID] == nil {
			byPeer[o.PeerID] = make(map[string]domain.PeerOutcome)
		}
		byPeer[o.PeerID][o.SubjectID] = o
	}
	return byPeer
}
