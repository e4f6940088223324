package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const helpText = "Commands: <row> <col> | x | o | restart | stats | help | quit"

type gameManager interface {
	State() entity.Snapshot
	ChooseSymbol(ctx context.Context, mark entity.Mark) (entity.Snapshot, error)
	MakeTurn(ctx context.Context, row, col int) (entity.Snapshot, error)
	Restart(ctx context.Context) (entity.Snapshot, error)
	Stats(ctx context.Context) (*entity.Stats, error)
}

// Terminal is a line-based front end: one command per line, the board is redrawn after every change.
type Terminal struct {
	logger  *slog.Logger
	manager gameManager

	in  io.Reader
	out *termenv.Output
}

func New(logger *slog.Logger, manager gameManager, in io.Reader, out *termenv.Output) *Terminal {
	return &Terminal{
		logger:  logger.With("component", "cli"),
		manager: manager,
		in:      in,
		out:     out,
	}
}

// Run - reads commands until quit, end of input or ctx cancellation.
func (that *Terminal) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines, readErr := that.readLines(ctx)

	that.println(helpText)
	that.render(that.manager.State())

	for {
		that.print("> ")

		select {
		case <-ctx.Done():
			that.println("")
			return nil
		case err := <-readErr:
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			return nil
		case line := <-lines:
			quit, err := that.handle(ctx, strings.Fields(strings.ToLower(line)))
			if err != nil {
				log.Error("command failed", "error", err)
				return err
			}

			if quit {
				that.println("Bye!")
				return nil
			}
		}
	}
}

// readLines - scans input in the background so a blocked read does not hold up cancellation.
// readErr receives the scanner error, or nil, after the last line has been taken.
func (that *Terminal) readLines(ctx context.Context) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(that.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}

		readErr <- scanner.Err()
	}()

	return lines, readErr
}

func (that *Terminal) handle(ctx context.Context, args []string) (bool, error) {
	var (
		snapshot entity.Snapshot
		err      error
	)

	switch {
	case len(args) == 0:
		return false, nil
	case args[0] == "quit" || args[0] == "exit":
		return true, nil
	case args[0] == "help":
		that.println(helpText)
		return false, nil
	case args[0] == "stats":
		return false, that.printStats(ctx)
	case args[0] == "restart":
		snapshot, err = that.manager.Restart(ctx)
	case len(args) == 1 && (args[0] == "x" || args[0] == "o"):
		snapshot, err = that.manager.ChooseSymbol(ctx, entity.Mark(strings.ToUpper(args[0])))
	case len(args) == 2:
		row, rowErr := strconv.Atoi(args[0])
		col, colErr := strconv.Atoi(args[1])
		if rowErr != nil || colErr != nil {
			that.warn("row and col must be numbers from 0 to 2")
			return false, nil
		}
		snapshot, err = that.manager.MakeTurn(ctx, row, col)
	default:
		that.warn("unknown command, " + helpText)
		return false, nil
	}

	if errors.Is(err, apperror.ErrInvalidMove) || errors.Is(err, apperror.ErrInvalidSymbol) {
		that.warn(err.Error())
		return false, nil
	}

	if err != nil {
		return false, err
	}

	that.render(snapshot)

	return false, nil
}

func (that *Terminal) render(snapshot entity.Snapshot) {
	var sb strings.Builder

	sb.WriteString("\n   0   1   2\n")
	for row := range entity.BoardSize {
		if row > 0 {
			sb.WriteString("  ---+---+---\n")
		}

		sb.WriteString(strconv.Itoa(row) + " ")
		for col := range entity.BoardSize {
			if col > 0 {
				sb.WriteString("|")
			}
			sb.WriteString(" " + that.cell(snapshot, entity.Move{Row: row, Col: col}) + " ")
		}
		sb.WriteString("\n")
	}

	that.print(sb.String())

	if snapshot.LastAIMove != nil {
		that.println("AI played " + snapshot.LastAIMove.String())
	}

	that.println(that.out.String(snapshot.StatusText()).Bold().String())
}

func (that *Terminal) cell(snapshot entity.Snapshot, move entity.Move) string {
	mark := snapshot.Board.At(move)

	var color termenv.Color
	switch mark {
	case entity.PlayerX:
		color = that.out.Color("1")
	case entity.PlayerO:
		color = that.out.Color("4")
	default:
		return " "
	}

	style := that.out.String(string(mark)).Foreground(color)
	if snapshot.LastAIMove != nil && *snapshot.LastAIMove == move {
		style = style.Underline()
	}

	return style.String()
}

func (that *Terminal) printStats(ctx context.Context) error {
	stats, err := that.manager.Stats(ctx)
	if err != nil {
		return err
	}

	that.println(fmt.Sprintf("You won %d | AI won %d | Draws %d", stats.HumanWins, stats.AIWins, stats.Draws))

	return nil
}

func (that *Terminal) warn(message string) {
	that.println(that.out.String(message).Foreground(that.out.Color("3")).String())
}

func (that *Terminal) print(text string) {
	_, _ = that.out.WriteString(text)
}

func (that *Terminal) println(text string) {
	that.print(text + "\n")
}
