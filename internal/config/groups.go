package config

// Overflow policies for field sizes that exceed the combined group capacity.
const (
	// OverflowAlternate spreads overflow between groups three and four
	// until their caps are hit, then the remainder group absorbs the rest.
	OverflowAlternate = "alternate"
	// OverflowFill sends all overflow straight to the remainder group.
	OverflowFill = "fill"
)

// GroupsConfig controls the skill-group draw for new tournaments.
type GroupsConfig struct {
	// Shares are the fraction of the ranked field placed in groups one
	// through four; the remainder lands in group five.
	Shares [4]float64
	// Caps bound groups one through four regardless of share.
	Caps [4]int
	// OverflowPolicy selects where over-cap golfers land.
	OverflowPolicy string
	// ExcludeApiIDs are provider golfer IDs never placed in a group.
	ExcludeApiIDs []int
}

func loadGroups() GroupsConfig {
	policy := envOrDefault(envGroupOverflow, defaultOverflowPolicy)
	if policy != OverflowAlternate && policy != OverflowFill {
		policy = defaultOverflowPolicy
	}

	return GroupsConfig{
		Shares:         [4]float64{0.10, 0.175, 0.225, 0.25},
		Caps:           [4]int{10, 16, 22, 30},
		OverflowPolicy: policy,
		ExcludeApiIDs:  intListEnv(envGroupExcludeIDs),
	}
}
