package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"tangutlex/internal/app"
	"tangutlex/internal/lexicon"
	"tangutlex/internal/render"

	"github.com/fatih/color"
)

type sessionState int

const (
	stateAwaitingDirection sessionState = iota
	stateAwaitingQuery
	stateDisplaying
	stateExiting
)

func (s sessionState) String() string {
	switch s {
	case stateAwaitingDirection:
		return "awaiting_direction"
	case stateAwaitingQuery:
		return "awaiting_query"
	case stateDisplaying:
		return "displaying"
	case stateExiting:
		return "exiting"
	default:
		return "unknown"
	}
}

type menuChoice struct {
	key   string
	title string
	desc  string
}

var menuChoices = []menuChoice{
	{key: "1", title: "Tangut to English", desc: "Look up Tangut characters"},
	{key: "2", title: "English to Tangut", desc: "Look up English words"},
	{key: "3", title: "Exit", desc: "Leave the translator"},
	{key: "4", title: "Clear screen", desc: "Clear the display"},
}

const clearScreen = "\033[H\033[2J"

// session is the line-mode menu loop. It reads one line per prompt and
// stops at end of input.
type session struct {
	app   *app.App
	in    *bufio.Scanner
	out   io.Writer
	style render.Style

	state  sessionState
	dir    lexicon.Direction
	result app.Result
}

func newSession(a *app.App, in io.Reader, out io.Writer, style render.Style) *session {
	return &session{
		app:   a,
		in:    bufio.NewScanner(in),
		out:   out,
		style: style,
		state: stateAwaitingDirection,
	}
}

func newColorStyle(enabled bool) render.Style {
	heading := color.New(color.FgCyan, color.Bold)
	glyph := color.New(color.FgHiWhite, color.Bold)
	marker := color.New(color.FgRed, color.Bold)
	muted := color.New(color.FgHiBlack)
	if !enabled {
		for _, c := range []*color.Color{heading, glyph, marker, muted} {
			c.DisableColor()
		}
	}
	return render.Style{
		Heading: sprint(heading),
		Glyph:   sprint(glyph),
		Marker:  sprint(marker),
		Muted:   sprint(muted),
	}
}

func sprint(c *color.Color) func(string) string {
	return func(s string) string { return c.Sprint(s) }
}

func (s *session) Run(ctx context.Context) error {
	s.printBanner()
	for s.state != stateExiting {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.step(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) step(ctx context.Context) error {
	switch s.state {
	case stateAwaitingDirection:
		s.printMenu()
		line, ok := s.readLine("Enter your choice (1-4): ")
		if !ok {
			s.state = stateExiting
			return s.in.Err()
		}
		s.choose(line)
	case stateAwaitingQuery:
		prompt := "Enter Tangut characters: "
		if s.dir == lexicon.EnglishToScript {
			prompt = "Enter English words: "
		}
		line, ok := s.readLine(prompt)
		if !ok {
			s.state = stateExiting
			return s.in.Err()
		}
		if strings.TrimSpace(line) == "" {
			fmt.Fprintln(s.out, s.style.Muted("Empty query, back to the menu."))
			s.state = stateAwaitingDirection
			return nil
		}
		result, err := s.app.Translate(ctx, s.dir, line)
		if err != nil {
			return err
		}
		s.result = result
		s.state = stateDisplaying
	case stateDisplaying:
		fmt.Fprintln(s.out)
		fmt.Fprint(s.out, s.result.Render(s.style))
		fmt.Fprintln(s.out)
		s.state = stateAwaitingDirection
	}
	return nil
}

func (s *session) choose(line string) {
	switch strings.TrimSpace(line) {
	case "1":
		s.dir = lexicon.ScriptToEnglish
		s.state = stateAwaitingQuery
	case "2":
		s.dir = lexicon.EnglishToScript
		s.state = stateAwaitingQuery
	case "3":
		fmt.Fprintln(s.out, "Exiting translator...")
		s.state = stateExiting
	case "4":
		fmt.Fprint(s.out, clearScreen)
		s.printBanner()
	default:
		fmt.Fprintln(s.out, s.style.Marker("Invalid choice. Please enter 1, 2, 3 or 4."))
	}
}

func (s *session) readLine(prompt string) (string, bool) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		fmt.Fprintln(s.out)
		return "", false
	}
	return s.in.Text(), true
}

func (s *session) printBanner() {
	fmt.Fprintln(s.out, s.style.Heading("Tangut Raw Translator"))
	fmt.Fprintln(s.out, s.style.Muted("Word-by-word dictionary lookup. Meanings are not combined grammatically;"))
	fmt.Fprintln(s.out, s.style.Muted("phonetics are scholarly reconstructions and may be missing."))
	fmt.Fprintln(s.out)
}

func (s *session) printMenu() {
	fmt.Fprintln(s.out, "Choose translation direction:")
	for _, c := range menuChoices {
		fmt.Fprintf(s.out, "%s. %s\n", c.key, c.title)
	}
}
