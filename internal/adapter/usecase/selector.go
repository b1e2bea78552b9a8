package usecase

import (
	"math"
	"sync"

	"popup-ads/internal/core/domain"
)

const (
	// DefaultUnlimitedCapacity stands in for the remaining displays of an
	// unlimited campaign so it competes with capped ones.
	DefaultUnlimitedCapacity int64 = 1000
	// DefaultTargetingBoost multiplies the weight of campaigns with at
	// least one targeting dimension.
	DefaultTargetingBoost int64 = 5

	// MaxWeight caps a single campaign's weight so the sum over any
	// realistic catalogue stays within int64.
	MaxWeight int64 = 1 << 40
)

// Source is the random source used by the selector. *rand.Rand satisfies it.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// SelectorConfig holds the weighting constants.
type SelectorConfig struct {
	UnlimitedCapacity int64
	TargetingBoost    int64
}

// DefaultSelectorConfig returns the stock weighting constants.
func DefaultSelectorConfig() SelectorConfig {
	return SelectorConfig{
		UnlimitedCapacity: DefaultUnlimitedCapacity,
		TargetingBoost:    DefaultTargetingBoost,
	}
}

// Selection is the outcome of a weighted draw.
type Selection struct {
	Campaign    domain.Campaign
	Weight      int64
	TotalWeight int64
}

// Fallback reports whether the draw fell back to the first candidate
// because every weight was zero.
func (s Selection) Fallback() bool {
	return s.TotalWeight == 0
}

// WeightedSelector draws one campaign with probability proportional to
// its remaining displays, boosted for targeted campaigns. The source is
// shared between sessions and guarded by mu.
type WeightedSelector struct {
	cfg SelectorConfig

	mu  sync.Mutex
	src Source
}

// NewWeightedSelector returns a selector drawing from src.
func NewWeightedSelector(cfg SelectorConfig, src Source) *WeightedSelector {
	return &WeightedSelector{cfg: cfg, src: src}
}

// Weight returns the selection weight of c, at most MaxWeight.
func (s *WeightedSelector) Weight(c domain.Campaign) int64 {
	boost := int64(1)
	if c.Targeting.HasTargeting() {
		boost = s.cfg.TargetingBoost
	}
	remaining := c.Remaining(s.cfg.UnlimitedCapacity)
	if boost <= 0 || remaining <= 0 {
		return 0
	}
	if remaining > MaxWeight/boost {
		return MaxWeight
	}
	return remaining * boost
}

// Select picks one of candidates. It returns false only when candidates
// is empty. Candidates are walked in the given order.
func (s *WeightedSelector) Select(candidates []domain.Campaign) (Selection, bool) {
	if len(candidates) == 0 {
		return Selection{}, false
	}

	weights := make([]int64, len(candidates))
	var total int64
	for i, c := range candidates {
		weights[i] = s.Weight(c)
		if total > math.MaxInt64-weights[i] {
			weights = weights[:i]
			break
		}
		total += weights[i]
	}
	if total <= 0 {
		return Selection{Campaign: candidates[0]}, true
	}

	s.mu.Lock()
	draw := s.src.Float64() * float64(total)
	s.mu.Unlock()

	chosen := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		chosen = i
		draw -= float64(w)
		if draw <= 0 {
			break
		}
	}
	// chosen stays on the last positive weight if rounding left draw above zero.
	return Selection{
		Campaign:    candidates[chosen],
		Weight:      weights[chosen],
		TotalWeight: total,
	}, true
}
