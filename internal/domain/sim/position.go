package sim

import (
	"fmt"

	"github.com/futsalverse/futsal-manager/internal/domain/sheet"
	"github.com/futsalverse/futsal-manager/internal/platform/rng"
)

// Default chance tables, in whole percent. Each table must sum to exactly
// 100 or the generator refuses to build.
const (
	ScorerAttackerPercent   = 72
	ScorerDefenderPercent   = 26
	ScorerGoalkeeperPercent = 2

	AssistChancePercent     = 60
	AssistAttackerPercent   = 56
	AssistDefenderPercent   = 40
	AssistGoalkeeperPercent = 4
)

// ErrInvalidPercentTable marks a misconfigured chance table. This is a
// programming error, not user input: fail loudly.
type ErrInvalidPercentTable struct {
	Name string
	Sum  int
}

func (e ErrInvalidPercentTable) Error() string {
	return fmt.Sprintf("percent table %q sums to %d, want 100", e.Name, e.Sum)
}

// PercentTable distributes a roll across the three position categories.
type PercentTable struct {
	Attacker   int
	Defender   int
	Goalkeeper int
}

func (t PercentTable) validate(name string) error {
	if sum := t.Attacker + t.Defender + t.Goalkeeper; sum != 100 {
		return ErrInvalidPercentTable{Name: name, Sum: sum}
	}
	return nil
}

// PositionGenerator rolls which lineup slot scores or assists a goal.
type PositionGenerator struct {
	scorerTable  PercentTable
	assistTable  PercentTable
	assistChance int
	rng          *rng.Rand
}

// NewPositionGenerator validates the tables up front and returns a generator
// bound to the given randomness source.
func NewPositionGenerator(r *rng.Rand, scorer, assist PercentTable, assistChance int) (*PositionGenerator, error) {
	if err := scorer.validate("scorer"); err != nil {
		return nil, err
	}
	if err := assist.validate("assist"); err != nil {
		return nil, err
	}
	if assistChance < 0 || assistChance > 100 {
		return nil, fmt.Errorf("assist chance %d%% outside [0, 100]", assistChance)
	}

	return &PositionGenerator{
		scorerTable:  scorer,
		assistTable:  assist,
		assistChance: assistChance,
		rng:          r,
	}, nil
}

// NewDefaultPositionGenerator builds the generator with the stock tables.
func NewDefaultPositionGenerator(r *rng.Rand) (*PositionGenerator, error) {
	return NewPositionGenerator(
		r,
		PercentTable{Attacker: ScorerAttackerPercent, Defender: ScorerDefenderPercent, Goalkeeper: ScorerGoalkeeperPercent},
		PercentTable{Attacker: AssistAttackerPercent, Defender: AssistDefenderPercent, Goalkeeper: AssistGoalkeeperPercent},
		AssistChancePercent,
	)
}

// ScorerSlot rolls the slot credited with a goal.
func (g *PositionGenerator) ScorerSlot() sheet.Slot {
	return g.rollSlot(g.scorerTable)
}

// AssistSlot first rolls whether the goal was assisted at all, then draws a
// slot different from the scorer. The second return is false for unassisted
// goals.
func (g *PositionGenerator) AssistSlot(scorer sheet.Slot) (sheet.Slot, bool) {
	if g.rng.Percent() > g.assistChance {
		return "", false
	}

	slot := scorer
	for slot == scorer {
		slot = g.rollSlot(g.assistTable)
	}
	return slot, true
}

func (g *PositionGenerator) rollSlot(table PercentTable) sheet.Slot {
	roll := g.rng.Percent()
	side := g.rng.Coin()

	switch {
	case roll < table.Attacker:
		return sheet.AllSlots[side]
	case roll < table.Attacker+table.Defender:
		// slots 2 and 3 are the defenders
		return sheet.AllSlots[2+side]
	default:
		return sheet.SlotGoalkeeper
	}
}
