package models

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidWorld is wrapped by every world validation failure.
var ErrInvalidWorld = errors.New("invalid world")

// World is a validated, read-only room graph.
type World struct {
	title        string
	intro        string
	start        RoomID
	terminal     RoomID
	masterReward Reward
	order        []RoomID
	rooms        map[RoomID]Room
}

// NewWorld validates def and builds a World from it. All problems found are
// reported together.
func NewWorld(def WorldDefinition) (*World, error) {
	w := &World{
		title:        def.Title,
		intro:        def.Intro,
		start:        def.Start,
		masterReward: def.MasterReward,
		rooms:        make(map[RoomID]Room, len(def.Rooms)),
	}

	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidWorld, fmt.Sprintf(format, args...)))
	}

	if len(def.Rooms) == 0 {
		invalid("no rooms")
		return nil, errors.Join(errs...)
	}

	for _, r := range def.Rooms {
		if r.ID == "" {
			invalid("room with empty id")
			continue
		}
		if _, dup := w.rooms[r.ID]; dup {
			invalid("duplicate room %q", r.ID)
			continue
		}
		room := r.clone()
		if room.Riddle != nil {
			room.Riddle.Answer = NormalizeAnswer(room.Riddle.Answer)
		}
		w.rooms[room.ID] = room
		w.order = append(w.order, room.ID)
	}

	var terminals []RoomID
	granted := false
	for _, id := range w.order {
		room := w.rooms[id]
		for _, next := range room.Next {
			if _, ok := w.rooms[next]; !ok {
				invalid("room %q leads to unknown room %q", id, next)
			}
		}
		if (room.Riddle != nil) != (room.Reward != "") {
			invalid("room %q must have both a riddle and a reward, or neither", id)
		}
		if room.Riddle != nil && room.Riddle.Answer == "" {
			invalid("room %q has a riddle with no answer", id)
		}
		if room.Terminal() {
			terminals = append(terminals, id)
			if room.Riddle != nil {
				invalid("terminal room %q must not have a riddle", id)
			}
		} else if room.Riddle == nil {
			invalid("room %q has no riddle", id)
		}
		if room.Reward != "" && room.Reward == def.MasterReward {
			granted = true
		}
	}

	switch len(terminals) {
	case 0:
		invalid("no terminal room")
	case 1:
		w.terminal = terminals[0]
	default:
		invalid("more than one terminal room: %v", terminals)
	}

	if def.MasterReward == "" {
		invalid("no master reward")
	} else if !granted {
		invalid("master reward %q is not granted by any room", def.MasterReward)
	}

	if _, ok := w.rooms[def.Start]; !ok {
		invalid("unknown start room %q", def.Start)
	} else {
		seen := w.reachable()
		for _, id := range w.order {
			if !seen[id] {
				invalid("room %q is not reachable from %q", id, def.Start)
			}
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return w, nil
}

func (w *World) reachable() map[RoomID]bool {
	seen := map[RoomID]bool{w.start: true}
	queue := []RoomID{w.start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, next := range w.rooms[id].Next {
			if _, ok := w.rooms[next]; ok && !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return seen
}

func (w *World) Title() string        { return w.title }
func (w *World) Intro() string        { return w.intro }
func (w *World) Start() RoomID        { return w.start }
func (w *World) Terminal() RoomID     { return w.terminal }
func (w *World) MasterReward() Reward { return w.masterReward }

// Room looks up a room by id. The returned Room is a copy.
func (w *World) Room(id RoomID) (Room, bool) {
	r, ok := w.rooms[id]
	if !ok {
		return Room{}, false
	}
	return r.clone(), true
}

// Rooms returns every room in definition order.
func (w *World) Rooms() []Room {
	rooms := make([]Room, 0, len(w.order))
	for _, id := range w.order {
		rooms = append(rooms, w.rooms[id].clone())
	}
	return rooms
}

// Definition returns a WorldDefinition equivalent to w.
func (w *World) Definition() WorldDefinition {
	return WorldDefinition{
		Title:        w.title,
		Intro:        w.intro,
		Start:        w.start,
		MasterReward: w.masterReward,
		Rooms:        w.Rooms(),
	}
}

// Session is the mutable state of one play-through.
type Session struct {
	ID        string
	World     *World
	Inventory Inventory

	current RoomID
	ended   bool
	won     bool
}

// NewSession starts a play-through of w at its start room.
func NewSession(w *World) *Session {
	return &Session{
		ID:      uuid.NewString(),
		World:   w,
		current: w.start,
	}
}

// Current returns the room the player occupies.
func (s *Session) Current() RoomID {
	return s.current
}

// MoveTo places the player in another room.
func (s *Session) MoveTo(id RoomID) {
	s.current = id
}

// End marks the session finished.
func (s *Session) End(won bool) {
	s.ended = true
	s.won = won
}

func (s *Session) Ended() bool {
	return s.ended
}

// Won reports whether an ended session was won.
func (s *Session) Won() bool {
	return s.ended && s.won
}
