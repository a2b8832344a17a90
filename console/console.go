// Package console runs a game in the terminal.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"memory-match/facts"
	"memory-match/game"
)

const clearScreen = "\033[H\033[2J"

// DefaultPeek is how long a mismatched pair stays visible.
const DefaultPeek = 1500 * time.Millisecond

// Result is the outcome of a console game.
type Result struct {
	Completed bool
	Score     int
	Moves     int
	Duration  time.Duration
}

// Console reads "row col" picks from in and renders the board to out.
type Console struct {
	svc     *game.Service
	themeID string
	in      *bufio.Scanner
	out     io.Writer

	// Peek is how long a mismatch stays face-up before HideCards.
	Peek time.Duration
	// Sleep waits for Peek; tests replace it.
	Sleep func(time.Duration)
	// Clear redraws on a cleared screen.
	Clear bool
}

// New returns a console bound to svc. themeID selects fact cards shown after a match.
func New(svc *game.Service, themeID string, in io.Reader, out io.Writer) *Console {
	return &Console{
		svc:     svc,
		themeID: themeID,
		in:      bufio.NewScanner(in),
		out:     out,
		Peek:    DefaultPeek,
		Sleep:   time.Sleep,
	}
}

// Run plays until the board is complete, the player quits, input ends or ctx is done.
func (c *Console) Run(ctx context.Context) (Result, error) {
	status := "Pick your first card!"
	for !c.svc.Complete() {
		if err := ctx.Err(); err != nil {
			return c.result(), err
		}
		c.display(status)

		pos, quit, err := c.readPick()
		if err != nil {
			return c.result(), err
		}
		if quit {
			return c.result(), nil
		}

		first, _ := c.svc.PendingPick()
		switch c.svc.PickCard(pos.Row, pos.Col) {
		case game.Invalid:
			status = "Invalid position or card already face-up!"
		case game.FirstPick:
			status = "Now find its pair!"
		case game.Match:
			status = "Nice! You found a pair!"
			if card, ok := c.svc.Board().Get(pos.Row, pos.Col); ok {
				if f, ok := facts.Lookup(c.themeID, card.MatchID); ok {
					status += fmt.Sprintf("\n  %s: %s", f.Name, f.Text)
					if f.Extra != "" {
						status += " (" + f.Extra + ")"
					}
				}
			}
		case game.NoMatch:
			c.display("Not this time...")
			c.Sleep(c.Peek)
			c.svc.HideCards(first, pos)
			status = "Try again!"
		}
	}

	c.display("Congratulations! You cleared the board!")
	fmt.Fprintf(c.out, "Total moves: %d  Final score: %d  Time: %s\n",
		c.svc.Moves(), c.svc.Score(), c.svc.ElapsedTime().Round(time.Second))
	return c.result(), nil
}

func (c *Console) result() Result {
	return Result{
		Completed: c.svc.Complete(),
		Score:     c.svc.Score(),
		Moves:     c.svc.Moves(),
		Duration:  c.svc.ElapsedTime(),
	}
}

// readPick prompts until it gets two integers or "q". EOF counts as quitting.
func (c *Console) readPick() (game.Position, bool, error) {
	for {
		fmt.Fprint(c.out, "\nEnter a position (row col) or 'q' to quit: ")
		if !c.in.Scan() {
			return game.Position{}, true, c.in.Err()
		}
		pos, quit, ok := parsePick(c.in.Text())
		if ok {
			return pos, quit, nil
		}
		fmt.Fprintln(c.out, "Invalid input! Type two numbers separated by a space (e.g. 0 1).")
	}
}

func parsePick(line string) (pos game.Position, quit, ok bool) {
	line = strings.TrimSpace(line)
	if strings.EqualFold(line, "q") {
		return pos, true, true
	}
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return pos, false, false
	}
	r, err1 := strconv.Atoi(fields[0])
	col, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil {
		return pos, false, false
	}
	return game.Position{Row: r, Col: col}, false, true
}

func (c *Console) display(status string) {
	if c.Clear {
		fmt.Fprint(c.out, clearScreen)
	}
	fmt.Fprintln(c.out, "=== MEMORY MATCH ===")
	fmt.Fprintf(c.out, "Moves: %d  Score: %d  Combo: %d\n\n", c.svc.Moves(), c.svc.Score(), c.svc.ComboStreak())
	fmt.Fprintln(c.out, Render(c.svc.Board()))
	fmt.Fprintf(c.out, "\nStatus: %s\n", status)
}

// Render draws the board with row and column headers. Face-down cards show as "?".
func Render(b *game.Board) string {
	cards := b.Cards()
	width := len(strconv.Itoa(b.Cols() - 1))
	for _, row := range cards {
		for _, card := range row {
			if n := utf8.RuneCountInString(card.Display); card.IsRevealed() && n > width {
				width = n
			}
		}
	}
	cell := func(s string) string {
		return s + strings.Repeat(" ", max(0, width-utf8.RuneCountInString(s)))
	}

	var sb strings.Builder
	sb.WriteString("    ")
	for col := 0; col < b.Cols(); col++ {
		if col > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(cell(strconv.Itoa(col)))
	}
	for r, row := range cards {
		fmt.Fprintf(&sb, "\n%d | ", r)
		for col, card := range row {
			if col > 0 {
				sb.WriteByte(' ')
			}
			if card.IsRevealed() {
				sb.WriteString(cell(card.Display))
			} else {
				sb.WriteString(cell("?"))
			}
		}
	}
	return sb.String()
}
