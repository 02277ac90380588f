package engine

import "github.com/tatianab/treasure-hunt/internal/models"

// RiddleOutcome says how a room's riddle went.
type RiddleOutcome int

const (
	NoRiddle RiddleOutcome = iota
	RiddleSolved
	RiddleFailed
)

func (o RiddleOutcome) String() string {
	switch o {
	case NoRiddle:
		return "NO_RIDDLE"
	case RiddleSolved:
		return "RIDDLE_SOLVED"
	case RiddleFailed:
		return "RIDDLE_FAILED"
	}
	return "UNKNOWN"
}

// Move says where the player went after a visit.
type Move int

const (
	Stayed Move = iota
	Moved
	Ended
)

func (m Move) String() string {
	switch m {
	case Stayed:
		return "STAYED"
	case Moved:
		return "MOVED"
	case Ended:
		return "ENDED"
	}
	return "UNKNOWN"
}

// Outcome is the result of reaching the terminal room.
type Outcome int

const (
	Undecided Outcome = iota
	Win
	Lose
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "WIN"
	case Lose:
		return "LOSE"
	}
	return "UNDECIDED"
}

// Result describes one visit.
type Result struct {
	Riddle    RiddleOutcome
	Reward    models.Reward // set when the riddle was solved
	NewReward bool          // false when Reward was already held

	Move    Move
	Room    models.RoomID // destination for Moved, the current room otherwise
	Outcome Outcome       // set when Move is Ended
}
