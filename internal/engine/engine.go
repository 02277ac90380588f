package engine

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tatianab/treasure-hunt/internal/models"
	"go.uber.org/zap"
)

var (
	// ErrUnknownRoom is returned when asked to visit a room the world does not have.
	ErrUnknownRoom = errors.New("unknown room")
	// ErrSessionEnded is returned when visiting after the terminal room was reached.
	ErrSessionEnded = errors.New("session has ended")
	// ErrTurnLimit is returned by PlayTurns when the session outlasts its turns.
	ErrTurnLimit = errors.New("turn limit reached")
)

// Input supplies the player's responses.
type Input interface {
	// Answer returns the player's free-form answer to the room's riddle.
	Answer(ctx context.Context, room models.Room) (string, error)
	// Choose returns the player's raw pick from the room's 1-indexed exits.
	Choose(ctx context.Context, room models.Room) (string, error)
}

// Output is told what happens during a visit.
type Output interface {
	Enter(s *models.Session, room models.Room)
	Riddle(s *models.Session, room models.Room, outcome RiddleOutcome)
	Report(s *models.Session, room models.Room, res Result)
}

// Discard is an Output that shows nothing.
var Discard Output = discard{}

type discard struct{}

func (discard) Enter(*models.Session, models.Room)                 {}
func (discard) Riddle(*models.Session, models.Room, RiddleOutcome) {}
func (discard) Report(*models.Session, models.Room, Result)        {}

// Tee returns an Output that passes every event to each of outs in order.
func Tee(outs ...Output) Output {
	return tee(outs)
}

type tee []Output

func (t tee) Enter(s *models.Session, room models.Room) {
	for _, o := range t {
		o.Enter(s, room)
	}
}

func (t tee) Riddle(s *models.Session, room models.Room, outcome RiddleOutcome) {
	for _, o := range t {
		o.Riddle(s, room, outcome)
	}
}

func (t tee) Report(s *models.Session, room models.Room, res Result) {
	for _, o := range t {
		o.Report(s, room, res)
	}
}

type Engine struct {
	world  *models.World
	logger *zap.Logger
}

func NewEngine(world *models.World, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		world:  world,
		logger: logger,
	}
}

func (e *Engine) World() *models.World {
	return e.world
}

// NewSession starts a fresh play-through at the world's start room.
func (e *Engine) NewSession() *models.Session {
	s := models.NewSession(e.world)
	e.logger.Debug("session started", zap.String("session", s.ID), zap.String("room", string(s.Current())))
	return s
}

// Visit plays one turn in room id: the riddle, if any, then either the
// final outcome or the choice of the next room.
func (e *Engine) Visit(ctx context.Context, s *models.Session, id models.RoomID, in Input, out Output) (Result, error) {
	if s.Ended() {
		return Result{}, ErrSessionEnded
	}
	room, ok := e.world.Room(id)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownRoom, id)
	}
	if out == nil {
		out = Discard
	}

	s.MoveTo(id)
	out.Enter(s, room)

	res := Result{Riddle: NoRiddle}
	if room.Riddle != nil {
		answer, err := in.Answer(ctx, room)
		if err != nil {
			return Result{}, fmt.Errorf("failed to read answer in %s: %w", id, err)
		}
		res.Riddle, res.NewReward = e.SolveRiddle(s, room, answer)
		if res.Riddle == RiddleSolved {
			res.Reward = room.Reward
		}
		out.Riddle(s, room, res.Riddle)
	}

	if room.Terminal() {
		res.Move = Ended
		res.Room = id
		res.Outcome = e.Finish(s)
		out.Report(s, room, res)
		return res, nil
	}

	choice, err := in.Choose(ctx, room)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read choice in %s: %w", id, err)
	}
	res.Move, res.Room = e.Navigate(s, room, choice)
	out.Report(s, room, res)
	return res, nil
}

// SolveRiddle checks answer against the room's riddle and grants the reward
// on a match. The second return value reports whether the reward was new.
func (e *Engine) SolveRiddle(s *models.Session, room models.Room, answer string) (RiddleOutcome, bool) {
	if room.Riddle == nil {
		return NoRiddle, false
	}
	if models.NormalizeAnswer(answer) != room.Riddle.Answer {
		e.logger.Debug("riddle failed", zap.String("session", s.ID), zap.String("room", string(room.ID)))
		return RiddleFailed, false
	}
	added := s.Inventory.Add(room.Reward)
	e.logger.Debug("riddle solved",
		zap.String("session", s.ID),
		zap.String("room", string(room.ID)),
		zap.String("reward", string(room.Reward)),
		zap.Bool("new", added),
	)
	return RiddleSolved, added
}

// Navigate resolves a raw menu choice. A valid choice moves the session;
// anything else leaves it where it is.
func (e *Engine) Navigate(s *models.Session, room models.Room, choice string) (Move, models.RoomID) {
	n, ok := parseChoice(choice, len(room.Next))
	if !ok {
		e.logger.Debug("invalid choice",
			zap.String("session", s.ID),
			zap.String("room", string(room.ID)),
			zap.String("choice", choice),
		)
		s.MoveTo(room.ID)
		return Stayed, room.ID
	}
	target := room.Next[n-1]
	s.MoveTo(target)
	e.logger.Debug("moved",
		zap.String("session", s.ID),
		zap.String("room", string(room.ID)),
		zap.String("target", string(target)),
	)
	return Moved, target
}

// parseChoice accepts only plain digits naming an exit, 1-indexed. The
// choice is taken as typed, so surrounding spaces make it invalid.
func parseChoice(choice string, exits int) (int, bool) {
	if choice == "" || strings.ContainsFunc(choice, func(r rune) bool { return r < '0' || r > '9' }) {
		return 0, false
	}
	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > exits {
		return 0, false
	}
	return n, true
}

// Finish ends the session at the terminal room.
func (e *Engine) Finish(s *models.Session) Outcome {
	outcome := Lose
	if s.Inventory.Has(e.world.MasterReward()) {
		outcome = Win
	}
	s.End(outcome == Win)
	e.logger.Info("session ended",
		zap.String("session", s.ID),
		zap.Stringer("outcome", outcome),
		zap.Int("rewards", s.Inventory.Len()),
	)
	return outcome
}

// Play visits rooms until the session ends.
func (e *Engine) Play(ctx context.Context, s *models.Session, in Input, out Output) (Outcome, error) {
	return e.PlayTurns(ctx, s, in, out, 0)
}

// PlayTurns is Play with at most maxTurns visits. Zero means no limit.
func (e *Engine) PlayTurns(ctx context.Context, s *models.Session, in Input, out Output, maxTurns int) (Outcome, error) {
	for turn := 1; ; turn++ {
		if maxTurns > 0 && turn > maxTurns {
			return Undecided, fmt.Errorf("%w after %d turns", ErrTurnLimit, maxTurns)
		}
		if err := ctx.Err(); err != nil {
			return Undecided, err
		}
		res, err := e.Visit(ctx, s, s.Current(), in, out)
		if err != nil {
			return Undecided, err
		}
		if res.Move == Ended {
			return res.Outcome, nil
		}
	}
}
