package engine_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tatianab/treasure-hunt/internal/engine"
	"github.com/tatianab/treasure-hunt/internal/models"
	"github.com/tatianab/treasure-hunt/internal/player"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// recorder is an engine.Output that remembers what it was shown.
type recorder struct {
	events []string
}

func (r *recorder) Enter(_ *models.Session, room models.Room) {
	r.events = append(r.events, "enter "+string(room.ID))
}

func (r *recorder) Riddle(_ *models.Session, room models.Room, outcome engine.RiddleOutcome) {
	r.events = append(r.events, fmt.Sprintf("%s %s", outcome, room.ID))
}

func (r *recorder) Report(_ *models.Session, _ models.Room, res engine.Result) {
	r.events = append(r.events, fmt.Sprintf("%s %s %s", res.Move, res.Room, res.Outcome))
}

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	return engine.NewEngine(models.DefaultWorld(), zap.NewNop())
}

func TestAnswerMatchingIgnoresCaseAndSpace(t *testing.T) {
	for _, answer := range []string{"candle", "Candle", " candle ", "CANDLE", "\tcandle\n"} {
		t.Run(answer, func(t *testing.T) {
			eng := newEngine(t)
			s := eng.NewSession()

			res, err := eng.Visit(context.Background(), s, "Hall", player.NewScripted(answer, "1"), nil)
			require.NoError(t, err)
			assert.Equal(t, engine.RiddleSolved, res.Riddle)
			assert.Equal(t, models.Reward("Golden Key"), res.Reward)
			assert.True(t, res.NewReward)
			assert.True(t, s.Inventory.Has("Golden Key"))
		})
	}
}

func TestWrongAnswerGrantsNothing(t *testing.T) {
	eng := newEngine(t)
	s := eng.NewSession()

	res, err := eng.Visit(context.Background(), s, "Hall", player.NewScripted("wax", "1"), nil)
	require.NoError(t, err)
	assert.Equal(t, engine.RiddleFailed, res.Riddle)
	assert.Empty(t, res.Reward)
	assert.Zero(t, s.Inventory.Len())
	assert.Equal(t, engine.Moved, res.Move)
}

func TestFailedRoomCanBeSolvedOnReturn(t *testing.T) {
	eng := newEngine(t)
	s := eng.NewSession()
	in := player.NewScripted(
		"wax", "1",      // Hall, fail, go to Kitchen
		"keyboard", "1", // Kitchen, back to Hall
		"candle", "2",   // Hall again, solve
	)

	for range 3 {
		_, err := eng.Visit(context.Background(), s, s.Current(), in, nil)
		require.NoError(t, err)
	}
	assert.Equal(t, []models.Reward{"Silver Key", "Golden Key"}, s.Inventory.Items())
	assert.Equal(t, models.RoomID("Library"), s.Current())
}

func TestRewardCollectionIsIdempotent(t *testing.T) {
	eng := newEngine(t)
	s := eng.NewSession()
	in := player.NewScripted(
		"candle", "1",
		"keyboard", "1",
		"candle", "1",
	)

	var results []engine.Result
	for range 3 {
		res, err := eng.Visit(context.Background(), s, s.Current(), in, nil)
		require.NoError(t, err)
		results = append(results, res)
	}

	assert.True(t, results[0].NewReward)
	assert.Equal(t, engine.RiddleSolved, results[2].Riddle)
	assert.False(t, results[2].NewReward)
	assert.Equal(t, []models.Reward{"Golden Key", "Silver Key"}, s.Inventory.Items())
}

func TestInvalidChoiceStaysPut(t *testing.T) {
	for _, choice := range []string{"9", "0", "abc", "", "-1", "+2", "1.5", "3", " 2", "2 ", "\t1"} {
		t.Run(choice, func(t *testing.T) {
			eng := newEngine(t)
			s := eng.NewSession()

			res, err := eng.Visit(context.Background(), s, "Hall", player.NewScripted("candle", choice), nil)
			require.NoError(t, err)
			assert.Equal(t, engine.Stayed, res.Move)
			assert.Equal(t, models.RoomID("Hall"), res.Room)
			assert.Equal(t, models.RoomID("Hall"), s.Current())
			assert.False(t, s.Ended())
		})
	}
}

func TestValidChoiceMoves(t *testing.T) {
	eng := newEngine(t)
	s := eng.NewSession()

	res, err := eng.Visit(context.Background(), s, "Hall", player.NewScripted("wax", "2"), nil)
	require.NoError(t, err)
	assert.Equal(t, engine.Moved, res.Move)
	assert.Equal(t, models.RoomID("Library"), res.Room)
	assert.Equal(t, models.RoomID("Library"), s.Current())

	res, err = eng.Visit(context.Background(), s, s.Current(), player.NewScripted("footsteps", "02"), nil)
	require.NoError(t, err)
	assert.Equal(t, models.RoomID("Study"), res.Room)
}

func TestWinWithMasterKey(t *testing.T) {
	eng := newEngine(t)
	s := eng.NewSession()
	rec := &recorder{}
	in := player.NewScripted(
		"candle", "1",
		"keyboard", "2",
		"clock", "2",
		"m", "1",
	)

	outcome, err := eng.Play(context.Background(), s, in, rec)
	require.NoError(t, err)
	assert.Equal(t, engine.Win, outcome)
	assert.True(t, s.Ended())
	assert.True(t, s.Won())
	assert.Equal(t, models.RoomID("Treasure Room"), s.Current())
	assert.Zero(t, in.Remaining())

	want := []string{
		"enter Hall", "RIDDLE_SOLVED Hall", "MOVED Kitchen UNDECIDED",
		"enter Kitchen", "RIDDLE_SOLVED Kitchen", "MOVED Dining Room UNDECIDED",
		"enter Dining Room", "RIDDLE_SOLVED Dining Room", "MOVED Secret Room UNDECIDED",
		"enter Secret Room", "RIDDLE_SOLVED Secret Room", "MOVED Treasure Room UNDECIDED",
		"enter Treasure Room", "ENDED Treasure Room WIN",
	}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestLoseWithoutMasterKey(t *testing.T) {
	eng := newEngine(t)
	s := eng.NewSession()
	in := player.NewScripted(
		"candle", "2",
		"footsteps", "2",
		"echo", "2",
		"n", "1",
	)

	outcome, err := eng.Play(context.Background(), s, in, nil)
	require.NoError(t, err)
	assert.Equal(t, engine.Lose, outcome)
	assert.False(t, s.Won())
	assert.Equal(t, []models.Reward{"Golden Key", "Magic Map", "Secret Diary"}, s.Inventory.Items())
}

func TestTerminalVisitAsksNothing(t *testing.T) {
	eng := newEngine(t)
	s := eng.NewSession()
	in := player.NewScripted("unused")

	res, err := eng.Visit(context.Background(), s, "Treasure Room", in, nil)
	require.NoError(t, err)
	assert.Equal(t, engine.NoRiddle, res.Riddle)
	assert.Equal(t, engine.Ended, res.Move)
	assert.Equal(t, engine.Lose, res.Outcome)
	assert.Equal(t, 1, in.Remaining())
}

func TestVisitAfterEndFails(t *testing.T) {
	eng := newEngine(t)
	s := eng.NewSession()

	_, err := eng.Visit(context.Background(), s, "Treasure Room", player.NewScripted(), nil)
	require.NoError(t, err)

	_, err = eng.Visit(context.Background(), s, "Hall", player.NewScripted("candle", "1"), nil)
	assert.ErrorIs(t, err, engine.ErrSessionEnded)
}

func TestVisitUnknownRoom(t *testing.T) {
	eng := newEngine(t)
	s := eng.NewSession()

	_, err := eng.Visit(context.Background(), s, "Attic", player.NewScripted(), nil)
	assert.ErrorIs(t, err, engine.ErrUnknownRoom)
	assert.Equal(t, models.RoomID("Hall"), s.Current())
}

func TestInputErrorsPropagate(t *testing.T) {
	eng := newEngine(t)

	s := eng.NewSession()
	_, err := eng.Visit(context.Background(), s, "Hall", player.NewScripted(), nil)
	assert.ErrorIs(t, err, io.EOF)

	s = eng.NewSession()
	_, err = eng.Visit(context.Background(), s, "Hall", player.NewScripted("candle"), nil)
	assert.ErrorIs(t, err, io.EOF)
	assert.True(t, s.Inventory.Has("Golden Key"))

	s = eng.NewSession()
	_, err = eng.Play(context.Background(), s, player.NewScripted("candle", "1"), nil)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, models.RoomID("Kitchen"), s.Current())
}

func TestPlayStopsOnCancel(t *testing.T) {
	eng := newEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome, err := eng.Play(ctx, eng.NewSession(), player.NewScripted("candle", "1"), nil)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, engine.Undecided, outcome)
}

func TestPlayTurnsLimit(t *testing.T) {
	eng := newEngine(t)
	s := eng.NewSession()
	in := player.NewScripted("candle", "1", "keyboard", "1", "candle", "1")

	outcome, err := eng.PlayTurns(context.Background(), s, in, nil, 3)
	assert.ErrorIs(t, err, engine.ErrTurnLimit)
	assert.Equal(t, engine.Undecided, outcome)
	assert.Equal(t, models.RoomID("Kitchen"), s.Current())
	assert.False(t, s.Ended())
}

func TestStepFunctions(t *testing.T) {
	eng := newEngine(t)
	s := eng.NewSession()
	hall, _ := eng.World().Room("Hall")
	treasure, _ := eng.World().Room("Treasure Room")

	outcome, added := eng.SolveRiddle(s, treasure, "anything")
	assert.Equal(t, engine.NoRiddle, outcome)
	assert.False(t, added)

	outcome, added = eng.SolveRiddle(s, hall, "CANDLE")
	assert.Equal(t, engine.RiddleSolved, outcome)
	assert.True(t, added)

	move, target := eng.Navigate(s, hall, "1")
	assert.Equal(t, engine.Moved, move)
	assert.Equal(t, models.RoomID("Kitchen"), target)

	assert.Equal(t, engine.Lose, eng.Finish(s))
	assert.True(t, s.Ended())
}

func TestEngineLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	eng := engine.NewEngine(models.DefaultWorld(), zap.New(core))
	s := eng.NewSession()

	_, err := eng.Visit(context.Background(), s, "Hall", player.NewScripted("candle", "abc"), nil)
	require.NoError(t, err)

	solved := logs.FilterMessage("riddle solved").All()
	require.Len(t, solved, 1)
	assert.Equal(t, "Golden Key", solved[0].ContextMap()["reward"])
	assert.Equal(t, s.ID, solved[0].ContextMap()["session"])
	assert.Equal(t, 1, logs.FilterMessage("invalid choice").Len())
}

func TestTeeFansOut(t *testing.T) {
	eng := newEngine(t)
	a, b := &recorder{}, &recorder{}

	_, err := eng.Visit(context.Background(), eng.NewSession(), "Hall", player.NewScripted("wax", "x"), engine.Tee(a, engine.Discard, b))
	require.NoError(t, err)

	want := []string{"enter Hall", "RIDDLE_FAILED Hall", "STAYED Hall UNDECIDED"}
	assert.Equal(t, want, a.events)
	assert.Equal(t, want, b.events)
}

func TestResultStrings(t *testing.T) {
	assert.Equal(t, "RIDDLE_FAILED", engine.RiddleFailed.String())
	assert.Equal(t, "STAYED", engine.Stayed.String())
	assert.Equal(t, "WIN", engine.Win.String())
	assert.Equal(t, "UNDECIDED", engine.Outcome(0).String())
}
