// Package terminal plays a hot-seat game on a line-oriented terminal.
package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iamasit07/connectfour/internal/domain"
	"github.com/iamasit07/connectfour/internal/service/game"
)

// ErrInputClosed is returned when input ends before the game does.
var ErrInputClosed = errors.New("input closed before the game finished")

type Game struct {
	in          *bufio.Scanner
	out         io.Writer
	opts        domain.Options
	emptyMarker int
}

func New(in io.Reader, out io.Writer, opts domain.Options, emptyMarker int) *Game {
	return &Game{
		in:          bufio.NewScanner(in),
		out:         out,
		opts:        opts,
		emptyMarker: emptyMarker,
	}
}

// Play asks for both names and runs the turn loop until someone wins or the
// board fills up.
func (g *Game) Play() error {
	p1, err := g.askName("Enter a name for Player 1: ")
	if err != nil {
		return err
	}
	p2, err := g.askName("Enter a name for Player 2: ")
	if err != nil {
		return err
	}

	session, err := domain.NewSession(p1, p2, g.opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(g.out, "Hello %s and %s, welcome to ConnectFour!\n", p1, p2)

	for {
		outcome, err := g.turn(session)
		if err != nil {
			return err
		}
		fmt.Fprintln(g.out)

		if outcome.Result == domain.ResultWin {
			fmt.Fprint(g.out, session.Board().Render(g.emptyMarker))
			fmt.Fprintf(g.out, "Congrats %s, you won!\n", outcome.Player.Name)
			return nil
		}
		if outcome.BoardFull {
			fmt.Fprint(g.out, session.Board().Render(g.emptyMarker))
			fmt.Fprintln(g.out, "The board is full, it's a draw!")
			return nil
		}
	}
}

func (g *Game) askName(prompt string) (string, error) {
	for {
		fmt.Fprint(g.out, prompt)
		line, err := g.readLine()
		if err != nil {
			return "", err
		}
		if name := game.NormalizeName(line); name != "" {
			return name, nil
		}
		fmt.Fprintln(g.out, "A name can't be empty")
	}
}

// turn prompts the current player until one of their moves is accepted.
func (g *Game) turn(session *domain.Session) (domain.TurnOutcome, error) {
	player := session.CurrentPlayer()
	board := session.Board()

	fmt.Fprint(g.out, board.Render(g.emptyMarker))
	fmt.Fprintf(g.out, "%s, it's your turn\n", player.Name)

	for {
		fmt.Fprintf(g.out, "Choose a column between 0 and %d: ", board.Columns()-1)
		line, err := g.readLine()
		if err != nil {
			return domain.TurnOutcome{}, err
		}

		column, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintf(g.out, "Sorry, that choice wasn't valid\n %q is not a number\n", strings.TrimSpace(line))
			continue
		}

		outcome, err := session.SubmitMove(column)
		if errors.Is(err, domain.ErrInvalidColumn) || errors.Is(err, domain.ErrColumnFull) {
			fmt.Fprintf(g.out, "Sorry, that choice wasn't valid\n %v\n", err)
			continue
		}
		return outcome, err
	}
}

func (g *Game) readLine() (string, error) {
	if !g.in.Scan() {
		if err := g.in.Err(); err != nil {
			return "", err
		}
		return "", ErrInputClosed
	}
	return g.in.Text(), nil
}
