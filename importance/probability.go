// Package importance computes the top event's probability from a BDD
// and the standard PRA importance measures for each basic event.
package importance

import (
	"github.com/pkg/errors"

	"github.com/dalzilio-faulttree/faulttree/bdd"
)

// ErrMissingProbability is wrapped when a level the BDD depends on has
// no entry in the caller's probability map.
var ErrMissingProbability = errors.New("importance: missing variable probability")

// PropagateProbability computes P(f) and, as a side effect of the
// post-order recursion, every intermediate vertex's probability too
// (returned keyed by the vertex id bdd.Function.ID carries, as the
// probability of the uncomplemented vertex, so callers
// reusing the same arena across several top-level functions can skip
// recomputing shared subgraphs). probs maps a BDD level to that
// variable's probability of being true.
//
// The recursion is P(node) = p_v*P(high) + (1-p_v)*P(low); complement
// edges need no special case here because bdd.BDD.Children already
// folds a node's own complement bit into the (low, high) cofactors it
// returns, so P(low) and P(high) are already the right sign.
func PropagateProbability(b *bdd.BDD, f bdd.Function, probs map[int]float64) (map[int]float64, error) {
	memo := map[bdd.Function]float64{}
	if _, err := propagate(b, f, probs, memo); err != nil {
		return nil, err
	}
	byID := make(map[int]float64, len(memo))
	for fn, p := range memo {
		if fn.Complement {
			p = 1 - p
		}
		byID[fn.ID] = p
	}
	return byID, nil
}

// Probability is a convenience wrapper returning only P(f).
func Probability(b *bdd.BDD, f bdd.Function, probs map[int]float64) (float64, error) {
	memo := map[bdd.Function]float64{}
	return propagate(b, f, probs, memo)
}

func propagate(b *bdd.BDD, f bdd.Function, probs map[int]float64, memo map[bdd.Function]float64) (float64, error) {
	if p, ok := memo[f]; ok {
		return p, nil
	}
	if b.IsTerminal(f) {
		if b.Value(f) {
			return 1, nil
		}
		return 0, nil
	}
	lvl, low, high := b.Children(f)
	p, ok := probs[lvl]
	if !ok {
		return 0, errors.Wrapf(ErrMissingProbability, "level %d", lvl)
	}
	pLow, err := propagate(b, low, probs, memo)
	if err != nil {
		return 0, err
	}
	pHigh, err := propagate(b, high, probs, memo)
	if err != nil {
		return 0, err
	}
	result := p*pHigh + (1-p)*pLow
	memo[f] = result
	return result, nil
}
