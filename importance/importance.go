package importance

import "github.com/dalzilio-faulttree/faulttree/bdd"

// Factors holds the standard PRA importance measures for one basic
// event with respect to a top event function.
type Factors struct {
	Birnbaum        float64
	FussellVesely   float64
	Criticality     float64
	RiskReduction   float64 // RRW = P(top) / P(top | e=0)
	RiskAchievement float64 // RAW = P(top | e=1) / P(top)
}

// Importance computes Factors for every level named in levelName, by
// re-running Probability with that level's probability pinned to 0 and
// to 1 in turn. probs maps a BDD level to its basic event's probability;
// levelName maps the same level to the event's identifier, which keys
// the returned map.
func Importance(b *bdd.BDD, f bdd.Function, probs map[int]float64, levelName map[int]string) (map[string]Factors, error) {
	topProb, err := Probability(b, f, probs)
	if err != nil {
		return nil, err
	}

	results := make(map[string]Factors, len(levelName))
	for lvl, name := range levelName {
		p := probs[lvl]

		pOff, err := probabilityAt(b, f, probs, lvl, 0)
		if err != nil {
			return nil, err
		}
		pOn, err := probabilityAt(b, f, probs, lvl, 1)
		if err != nil {
			return nil, err
		}

		birnbaum := pOn - pOff
		fv := 0.0
		if topProb > 0 {
			fv = (topProb - pOff) / topProb
		}
		raw := 0.0
		if topProb > 0 {
			raw = pOn / topProb
		}
		rrw := 0.0
		if pOff > 0 {
			rrw = topProb / pOff
		}
		crit := 0.0
		if p > 0 {
			crit = fv * topProb / p
		}

		results[name] = Factors{
			Birnbaum:        birnbaum,
			FussellVesely:   fv,
			Criticality:     crit,
			RiskReduction:   rrw,
			RiskAchievement: raw,
		}
	}
	return results, nil
}

// probabilityAt recomputes P(f) with level's probability pinned to
// value, leaving every other level's probability untouched.
func probabilityAt(b *bdd.BDD, f bdd.Function, probs map[int]float64, level int, value float64) (float64, error) {
	pinned := make(map[int]float64, len(probs))
	for k, v := range probs {
		pinned[k] = v
	}
	pinned[level] = value
	return Probability(b, f, pinned)
}
