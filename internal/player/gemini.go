package player

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/treasure-hunt/internal/engine"
	"github.com/tatianab/treasure-hunt/internal/models"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

//go:embed prompts/answer_riddle.txt
var answerRiddlePrompt string

//go:embed prompts/choose_room.txt
var chooseRoomPrompt string

var (
	answerTmpl = template.Must(template.New("answer_riddle").Parse(answerRiddlePrompt))
	chooseTmpl = template.Must(template.New("choose_room").Funcs(template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}).Parse(chooseRoomPrompt))
)

// generator is the part of *genai.GenerativeModel the player needs.
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Gemini is a player driven by a Gemini model. It watches the game through
// the engine.Output methods so its prompts can mention what it has collected.
type Gemini struct {
	client *genai.Client
	model  generator
	logger *zap.Logger

	session *models.Session
	visited []models.RoomID
}

var (
	_ engine.Input  = (*Gemini)(nil)
	_ engine.Output = (*Gemini)(nil)
)

func NewGemini(ctx context.Context, apiKey, modelName string, logger *zap.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gemini{
		client: client,
		model:  client.GenerativeModel(modelName),
		logger: logger,
	}, nil
}

func (g *Gemini) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

func (g *Gemini) Enter(s *models.Session, room models.Room) {
	g.session = s
	g.visited = append(g.visited, room.ID)
}

func (g *Gemini) Riddle(*models.Session, models.Room, engine.RiddleOutcome) {}

func (g *Gemini) Report(*models.Session, models.Room, engine.Result) {}

func (g *Gemini) Answer(ctx context.Context, room models.Room) (string, error) {
	var buf bytes.Buffer
	err := answerTmpl.Execute(&buf, struct {
		Room        models.RoomID
		Description string
		Inventory   string
		Prompt      string
	}{
		Room:        room.ID,
		Description: room.Description,
		Inventory:   g.inventory(),
		Prompt:      room.Riddle.Prompt,
	})
	if err != nil {
		return "", err
	}

	text, err := g.generate(ctx, buf.String())
	if err != nil {
		return "", err
	}
	answer := strings.Trim(strings.TrimSpace(text), ".!\"'")
	g.logger.Debug("player answered", zap.String("room", string(room.ID)), zap.String("answer", answer))
	return answer, nil
}

func (g *Gemini) Choose(ctx context.Context, room models.Room) (string, error) {
	goal := "master reward"
	if g.session != nil {
		goal = string(g.session.World.MasterReward())
	}

	visited := make([]string, len(g.visited))
	for i, id := range g.visited {
		visited[i] = string(id)
	}

	var buf bytes.Buffer
	err := chooseTmpl.Execute(&buf, struct {
		Goal      string
		Room      models.RoomID
		Inventory string
		Visited   string
		Options   []models.RoomID
	}{
		Goal:      goal,
		Room:      room.ID,
		Inventory: g.inventory(),
		Visited:   strings.Join(visited, " -> "),
		Options:   room.Next,
	})
	if err != nil {
		return "", err
	}

	text, err := g.generate(ctx, buf.String())
	if err != nil {
		return "", err
	}
	choice := firstNumber(text)
	g.logger.Debug("player chose", zap.String("room", string(room.ID)), zap.String("raw", text), zap.String("choice", choice))
	return choice, nil
}

func (g *Gemini) inventory() string {
	if g.session == nil {
		return "(empty)"
	}
	return g.session.Inventory.String()
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned from Gemini")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type from Gemini")
	}
	return string(text), nil
}

// firstNumber pulls the first run of digits out of a model reply. Replies
// without digits are returned trimmed so the engine treats them as invalid.
func firstNumber(s string) string {
	start := strings.IndexFunc(s, isDigit)
	if start < 0 {
		return strings.TrimSpace(s)
	}
	end := start
	for end < len(s) && isDigit(rune(s[end])) {
		end++
	}
	return s[start:end]
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
