package sheet

import (
	"fmt"
	"time"

	"github.com/futsalverse/futsal-manager/internal/domain/player"
)

// Slot is one of the five futsal positions a sheet assigns players to.
type Slot string

const (
	SlotRightAttacker Slot = "right_attacker"
	SlotLeftAttacker  Slot = "left_attacker"
	SlotRightDefender Slot = "right_defender"
	SlotLeftDefender  Slot = "left_defender"
	SlotGoalkeeper    Slot = "goalkeeper"
)

// AllSlots keeps the canonical slot order: attackers, defenders, goalkeeper.
// Position rolls index into this array, so the order is load-bearing.
var AllSlots = [5]Slot{
	SlotRightAttacker,
	SlotLeftAttacker,
	SlotRightDefender,
	SlotLeftDefender,
	SlotGoalkeeper,
}

// Category maps a slot to the broad position it plays.
func (s Slot) Category() player.Position {
	switch s {
	case SlotRightAttacker, SlotLeftAttacker:
		return player.PositionAttacker
	case SlotRightDefender, SlotLeftDefender:
		return player.PositionDefender
	default:
		return player.PositionGoalkeeper
	}
}

// PlayerSlots is the shared five-slot assignment shape. The mutable Sheet
// embeds it by value and the immutable match-time lineup is a plain copy of
// it, so historical matches never see later sheet edits.
type PlayerSlots struct {
	RightAttacker string
	LeftAttacker  string
	RightDefender string
	LeftDefender  string
	Goalkeeper    string
}

// Get returns the player ID occupying a slot, empty when unassigned.
func (ps PlayerSlots) Get(slot Slot) string {
	switch slot {
	case SlotRightAttacker:
		return ps.RightAttacker
	case SlotLeftAttacker:
		return ps.LeftAttacker
	case SlotRightDefender:
		return ps.RightDefender
	case SlotLeftDefender:
		return ps.LeftDefender
	case SlotGoalkeeper:
		return ps.Goalkeeper
	default:
		return ""
	}
}

func (ps *PlayerSlots) Set(slot Slot, playerID string) {
	switch slot {
	case SlotRightAttacker:
		ps.RightAttacker = playerID
	case SlotLeftAttacker:
		ps.LeftAttacker = playerID
	case SlotRightDefender:
		ps.RightDefender = playerID
	case SlotLeftDefender:
		ps.LeftDefender = playerID
	case SlotGoalkeeper:
		ps.Goalkeeper = playerID
	}
}

// Filled reports whether every slot holds a player, i.e. the selection is
// match-ready.
func (ps PlayerSlots) Filled() bool {
	for _, slot := range AllSlots {
		if ps.Get(slot) == "" {
			return false
		}
	}
	return true
}

// PlayerIDs returns the occupied slots' player IDs in canonical slot order.
func (ps PlayerSlots) PlayerIDs() []string {
	out := make([]string, 0, len(AllSlots))
	for _, slot := range AllSlots {
		if id := ps.Get(slot); id != "" {
			out = append(out, id)
		}
	}
	return out
}

// Validate rejects the same player occupying two slots.
func (ps PlayerSlots) Validate() error {
	seen := make(map[string]Slot, len(AllSlots))
	for _, slot := range AllSlots {
		id := ps.Get(slot)
		if id == "" {
			continue
		}
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("player %s occupies both %s and %s", id, prev, slot)
		}
		seen[id] = slot
	}
	return nil
}

// Sheet is the user-edited, persistent slot selection for a team.
type Sheet struct {
	ID        string
	TeamID    string
	Name      string
	Slots     PlayerSlots
	UpdatedAt time.Time
}

func (s Sheet) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("sheet id is required")
	}
	if s.TeamID == "" {
		return fmt.Errorf("sheet team id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("sheet name is required")
	}
	return s.Slots.Validate()
}
