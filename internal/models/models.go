package models

import (
	"slices"
	"strings"
)

// RoomID identifies a room within a world.
type RoomID string

// Reward identifies an item granted for solving a riddle.
type Reward string

// Riddle is a prompt and the answer that solves it.
type Riddle struct {
	Prompt string `yaml:"prompt"`
	Answer string `yaml:"answer"` // stored normalized, see NormalizeAnswer
}

// Room is a single node of the world graph.
type Room struct {
	ID          RoomID   `yaml:"id"`
	Description string   `yaml:"description"`
	Riddle      *Riddle  `yaml:"riddle,omitempty"`
	Reward      Reward   `yaml:"reward,omitempty"`
	Next        []RoomID `yaml:"next"`
}

// Terminal reports whether the room has no way out.
func (r Room) Terminal() bool {
	return len(r.Next) == 0
}

func (r Room) clone() Room {
	c := r
	if r.Riddle != nil {
		riddle := *r.Riddle
		c.Riddle = &riddle
	}
	c.Next = slices.Clone(r.Next)
	return c
}

// NormalizeAnswer trims surrounding whitespace and lower-cases an answer.
func NormalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// WorldDefinition is the on-disk shape of a world.
type WorldDefinition struct {
	Title        string `yaml:"title"`
	Intro        string `yaml:"intro"`
	Start        RoomID `yaml:"start"`
	MasterReward Reward `yaml:"master_reward"`
	Rooms        []Room `yaml:"rooms"`
}

// Inventory is the set of rewards a player has collected, in the order they
// were collected.
type Inventory struct {
	items []Reward
}

// Add puts a reward in the inventory. It returns false if the reward was
// already there.
func (inv *Inventory) Add(r Reward) bool {
	if inv.Has(r) {
		return false
	}
	inv.items = append(inv.items, r)
	return true
}

// Has reports whether the reward has been collected.
func (inv *Inventory) Has(r Reward) bool {
	return slices.Contains(inv.items, r)
}

// Items returns the collected rewards in collection order.
func (inv *Inventory) Items() []Reward {
	return slices.Clone(inv.items)
}

func (inv *Inventory) Len() int {
	return len(inv.items)
}

func (inv *Inventory) String() string {
	if len(inv.items) == 0 {
		return "(empty)"
	}
	names := make([]string, len(inv.items))
	for i, item := range inv.items {
		names[i] = string(item)
	}
	return strings.Join(names, ", ")
}
