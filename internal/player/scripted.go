// Package player provides non-human players for the treasure hunt.
package player

import (
	"context"
	"io"

	"github.com/tatianab/treasure-hunt/internal/engine"
	"github.com/tatianab/treasure-hunt/internal/models"
)

// Scripted answers every prompt with the next line of a fixed script and
// returns io.EOF once the script runs out.
type Scripted struct {
	lines []string
	next  int
}

var _ engine.Input = (*Scripted)(nil)

func NewScripted(lines ...string) *Scripted {
	return &Scripted{lines: lines}
}

func (p *Scripted) Answer(ctx context.Context, _ models.Room) (string, error) {
	return p.read(ctx)
}

func (p *Scripted) Choose(ctx context.Context, _ models.Room) (string, error) {
	return p.read(ctx)
}

// Remaining reports how many lines have not been used yet.
func (p *Scripted) Remaining() int {
	return len(p.lines) - p.next
}

func (p *Scripted) read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if p.next >= len(p.lines) {
		return "", io.EOF
	}
	line := p.lines[p.next]
	p.next++
	return line, nil
}
