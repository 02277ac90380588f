// Package console plays the treasure hunt on a line-based terminal.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/treasure-hunt/internal/engine"
	"github.com/tatianab/treasure-hunt/internal/models"
)

// Console reads player input line by line and prints the game as it goes.
// It is both the engine.Input and the engine.Output of a line-based game.
type Console struct {
	in    *bufio.Reader
	out   io.Writer
	pace  time.Duration
	sleep func(time.Duration)

	// pending carries a line still being read when the last read was
	// cancelled. The next read collects it instead of starting another.
	pending chan line

	title  lipgloss.Style
	room   lipgloss.Style
	prompt lipgloss.Style
	good   lipgloss.Style
	bad    lipgloss.Style
}

const (
	answerPrompt = "Your answer: "
	choicePrompt = "Enter number: "
)

var (
	_ engine.Input  = (*Console)(nil)
	_ engine.Output = (*Console)(nil)
)

// New returns a Console reading from r and writing to w. pace is the pause
// between rooms; the intro waits twice as long. Zero disables pauses.
func New(r io.Reader, w io.Writer, pace time.Duration) *Console {
	re := lipgloss.NewRenderer(w)
	return &Console{
		in:     bufio.NewReader(r),
		out:    w,
		pace:   pace,
		sleep:  time.Sleep,
		title:  re.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFA500")),
		room:   re.NewStyle().Bold(true),
		prompt: re.NewStyle().Italic(true),
		good:   re.NewStyle().Foreground(lipgloss.Color("#5FAF5F")),
		bad:    re.NewStyle().Foreground(lipgloss.Color("#D75F5F")),
	}
}

// Intro greets the player before the first room.
func (c *Console) Intro(ctx context.Context, w *models.World) error {
	fmt.Fprintln(c.out, c.title.Render("🗝 Welcome to "+w.Title()+"!"))
	if intro := strings.TrimSpace(w.Intro()); intro != "" {
		fmt.Fprintln(c.out, intro)
	}
	fmt.Fprintln(c.out)

	if c.pace <= 0 {
		return nil
	}
	t := time.NewTimer(2 * c.pace)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (c *Console) Enter(_ *models.Session, room models.Room) {
	fmt.Fprintf(c.out, "\n📍 You are in %s\n", c.room.Render(string(room.ID)))
	if room.Description != "" {
		fmt.Fprintln(c.out, room.Description)
	}
}

func (c *Console) Answer(ctx context.Context, room models.Room) (string, error) {
	c.askRiddle(room)
	return c.readLine(ctx, answerPrompt)
}

func (c *Console) askRiddle(room models.Room) {
	fmt.Fprintln(c.out, "🔍 Riddle:", room.Riddle.Prompt)
}

func (c *Console) Riddle(s *models.Session, room models.Room, outcome engine.RiddleOutcome) {
	switch outcome {
	case engine.RiddleSolved:
		fmt.Fprintln(c.out, c.good.Render(fmt.Sprintf("🎉 Correct! You found the %s!", room.Reward)))
	case engine.RiddleFailed:
		fmt.Fprintln(c.out, c.bad.Render("❌ Wrong! No key this time. Try another room or think carefully."))
	}
	c.inventory(s)
}

func (c *Console) Choose(ctx context.Context, room models.Room) (string, error) {
	c.menu(room)
	return c.readLine(ctx, choicePrompt)
}

func (c *Console) menu(room models.Room) {
	fmt.Fprintln(c.out, "\nWhere to go next?")
	for i, next := range room.Next {
		fmt.Fprintf(c.out, "%d. %s\n", i+1, next)
	}
}

func (c *Console) Report(s *models.Session, room models.Room, res engine.Result) {
	switch res.Move {
	case engine.Stayed:
		fmt.Fprintln(c.out, c.bad.Render("Invalid choice, staying here."))
	case engine.Ended:
		if room.Riddle == nil {
			c.inventory(s)
		}
		fmt.Fprintf(c.out, "\n🏆 You reached the %s!\n", strings.ToLower(string(room.ID)))
		master := s.World.MasterReward()
		if res.Outcome == engine.Win {
			fmt.Fprintln(c.out, c.good.Render(fmt.Sprintf("🎖 You unlocked the treasure with the %s! YOU WIN!", master)))
		} else {
			fmt.Fprintln(c.out, c.bad.Render(fmt.Sprintf("❌ You need the %s to open the treasure. Keep hunting!", master)))
		}
		return
	}
	if c.pace > 0 {
		c.sleep(c.pace)
	}
}

func (c *Console) inventory(s *models.Session) {
	fmt.Fprintln(c.out, "👜 Inventory:", s.Inventory.String())
}

type line struct {
	text string
	err  error
}

// readLine prompts and waits for the next input line without its line
// ending. Lines of any length are accepted. Cancelling ctx abandons the
// wait; the line being read is kept for the next call.
func (c *Console) readLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(c.out, c.prompt.Render(prompt))

	if c.pending == nil {
		c.pending = make(chan line, 1)
		go func(ch chan<- line) {
			text, err := c.in.ReadString('\n')
			if err == io.EOF && text != "" {
				err = nil
			}
			ch <- line{text: strings.TrimRight(text, "\r\n"), err: err}
		}(c.pending)
	}

	select {
	case <-ctx.Done():
		fmt.Fprintln(c.out)
		return "", ctx.Err()
	case l := <-c.pending:
		c.pending = nil
		return l.text, l.err
	}
}

// Narrate wraps a non-human player so its side of the game is printed too:
// each riddle and menu is shown and the player's reply is echoed after the
// prompt, as if typed.
func (c *Console) Narrate(in engine.Input) engine.Input {
	return narrator{c: c, in: in}
}

type narrator struct {
	c  *Console
	in engine.Input
}

func (n narrator) Answer(ctx context.Context, room models.Room) (string, error) {
	n.c.askRiddle(room)
	answer, err := n.in.Answer(ctx, room)
	if err != nil {
		return "", err
	}
	n.c.echo(answerPrompt, answer)
	return answer, nil
}

func (n narrator) Choose(ctx context.Context, room models.Room) (string, error) {
	n.c.menu(room)
	choice, err := n.in.Choose(ctx, room)
	if err != nil {
		return "", err
	}
	n.c.echo(choicePrompt, choice)
	return choice, nil
}

func (c *Console) echo(prompt, reply string) {
	fmt.Fprintln(c.out, c.prompt.Render(prompt)+reply)
}
