package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tangutlex/internal/app"
	"tangutlex/internal/core/config"
	"tangutlex/internal/lexicon"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	c := lexicon.NewCollection([]lexicon.Entry{
		{Character: "𗳄", Phonetic: "mə", Gloss: []string{"sky", "heaven"}, Reference: "1"},
		{Character: "𗗙", Phonetic: "zjɨ", Gloss: []string{"river"}, Reference: "2"},
	}, lexicon.Options{})
	return app.NewWithCollection(config.DefaultConfig(), c, lexicon.Summary{Records: 2, Total: 2})
}

func runSession(t *testing.T, input string) (*session, string) {
	t.Helper()
	var out bytes.Buffer
	s := newSession(newTestApp(t), strings.NewReader(input), &out, newColorStyle(false))
	require.NoError(t, s.Run(context.Background()))
	return s, out.String()
}

func TestSession_BothDirections(t *testing.T) {
	s, out := runSession(t, "1\n𗳄𘀀\n2\nriver mountain\n3\n")

	assert.Equal(t, stateExiting, s.state)
	assert.Contains(t, out, "Tangut Raw Translator")
	assert.Contains(t, out, "'𗳄' (mə): sky, heaven [LFW 1]")
	assert.Contains(t, out, "'𘀀': UNKNOWN CHARACTER")
	assert.Contains(t, out, "Combined Pronunciation: mə <?>")
	assert.Contains(t, out, "'river': 1 match(es)")
	assert.Contains(t, out, "'𗗙' (zjɨ) [from: 'river'] [LFW 2]")
	assert.Contains(t, out, "'mountain': UNKNOWN WORD")
	assert.Contains(t, out, "Exiting translator...")
}

func TestSession_MenuIsReentrant(t *testing.T) {
	_, out := runSession(t, "2\nsky\n2\nheaven\n3\n")

	assert.Equal(t, 3, strings.Count(out, "Choose translation direction:"))
	assert.Contains(t, out, "'sky': 1 match(es)")
	assert.Contains(t, out, "'heaven': 1 match(es)")
}

func TestSession_InvalidChoiceAndClear(t *testing.T) {
	_, out := runSession(t, "9\n4\n3\n")

	assert.Contains(t, out, "Invalid choice. Please enter 1, 2, 3 or 4.")
	assert.Contains(t, out, clearScreen)
	assert.Equal(t, 2, strings.Count(out, "Tangut Raw Translator"))
}

func TestSession_EmptyQueryReturnsToMenu(t *testing.T) {
	_, out := runSession(t, "1\n   \n3\n")

	assert.Contains(t, out, "Empty query, back to the menu.")
	assert.NotContains(t, out, "Word-by-Word Translation")
}

func TestSession_EndOfInputExits(t *testing.T) {
	s, out := runSession(t, "1\n")

	assert.Equal(t, stateExiting, s.state)
	assert.Contains(t, out, "Enter Tangut characters: ")
	assert.NotContains(t, out, "Exiting translator...")
}

func TestSession_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	s := newSession(newTestApp(t), strings.NewReader("3\n"), &out, newColorStyle(false))
	assert.ErrorIs(t, s.Run(ctx), context.Canceled)
}

func TestSessionState_String(t *testing.T) {
	assert.Equal(t, "awaiting_direction", stateAwaitingDirection.String())
	assert.Equal(t, "exiting", stateExiting.String())
	assert.Equal(t, "unknown", sessionState(42).String())
}
