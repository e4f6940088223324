package tictactoe

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

// Settings - the symbol-assignment policy. With ChooseSymbol the human picks a mark after every
// restart, otherwise the human always plays HumanMark.
type Settings struct {
	ChooseSymbol bool
	HumanMark    entity.Mark
}

// GameController drives one human-versus-AI game. X always moves first; whenever the AI is to
// move the controller replies before returning, so callers only ever observe the human's turn
// or a finished game.
type GameController struct {
	settings Settings

	state      entity.GameState
	phase      entity.Phase
	winner     entity.Mark
	lastAIMove *entity.Move
}

func NewGameController(settings Settings) (*GameController, error) {
	if !settings.ChooseSymbol && !settings.HumanMark.IsPlayer() {
		return nil, fmt.Errorf("%w: %w: %q", apperror.ErrInvalidSymbol, apperror.ErrUnknownSymbol, settings.HumanMark)
	}

	controller := &GameController{settings: settings}
	controller.Restart()

	return controller, nil
}

// ChooseSymbol - assigns humanMark to the human and the other mark to the AI.
func (that *GameController) ChooseSymbol(humanMark entity.Mark) error {
	if that.phase != entity.PhaseAwaitingSymbol {
		return fmt.Errorf("%w: %w: %s", apperror.ErrInvalidSymbol, apperror.ErrWrongPhase, that.phase)
	}

	if !humanMark.IsPlayer() {
		return fmt.Errorf("%w: %w: %q", apperror.ErrInvalidSymbol, apperror.ErrUnknownSymbol, humanMark)
	}

	that.state.Board = entity.Board{}
	that.assignMarks(humanMark)

	return nil
}

// PlayerMove - places the human's mark and, if the game goes on, the AI's reply.
func (that *GameController) PlayerMove(row, col int) error {
	move := entity.Move{Row: row, Col: col}

	if err := that.validateMove(move); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidMove, err)
	}

	that.state.Board.Place(move, that.state.HumanMark)
	that.lastAIMove = nil

	if that.updateGameStatus() {
		return nil
	}

	that.makeAITurn()

	return nil
}

// Restart - clears the board. Never fails.
func (that *GameController) Restart() {
	that.state = entity.GameState{
		ID:   uuid.NewString(),
		Turn: entity.PlayerX,
	}
	that.winner = entity.EmptyCell
	that.lastAIMove = nil

	if that.settings.ChooseSymbol {
		that.phase = entity.PhaseAwaitingSymbol
		return
	}

	that.assignMarks(that.settings.HumanMark)
}

func (that *GameController) CurrentState() entity.Snapshot {
	snapshot := entity.Snapshot{
		GameState: that.state,
		Phase:     that.phase,
		Winner:    that.winner,
	}

	if that.lastAIMove != nil {
		lastAIMove := *that.lastAIMove
		snapshot.LastAIMove = &lastAIMove
	}

	return snapshot
}

// Restore - continues a game from a snapshot previously returned by CurrentState.
// The controller is left unchanged if the snapshot is not consistent with its settings.
func (that *GameController) Restore(snapshot entity.Snapshot) error {
	if err := that.validateSnapshot(&snapshot); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrCorruptedState, err)
	}

	that.state = snapshot.GameState
	that.phase = snapshot.Phase
	that.winner = snapshot.Winner
	that.lastAIMove = nil

	if snapshot.LastAIMove != nil {
		lastAIMove := *snapshot.LastAIMove
		that.lastAIMove = &lastAIMove
	}

	return nil
}

func (that *GameController) assignMarks(humanMark entity.Mark) {
	that.state.HumanMark = humanMark
	that.state.AIMark = humanMark.Opponent()
	that.state.Turn = entity.PlayerX
	that.phase = entity.PhaseInProgress

	if that.state.IsAITurn() {
		that.makeAITurn()
	}
}

// validateMove - checks if the human's move is valid.
func (that *GameController) validateMove(move entity.Move) error {
	switch {
	case that.phase.IsTerminal():
		return apperror.ErrGameFinished
	case that.phase != entity.PhaseInProgress:
		return fmt.Errorf("%w: %s", apperror.ErrWrongPhase, that.phase)
	case !move.InBounds():
		return fmt.Errorf("%w: %s", apperror.ErrCellOutOfRange, move)
	case !that.state.IsHumanTurn():
		return apperror.ErrNotYourTurn
	case !that.state.Board.IsEmpty(move):
		return fmt.Errorf("%w: %s", apperror.ErrCellOccupied, move)
	}

	return nil
}

func (that *GameController) makeAITurn() {
	move, ok := SelectMove(&that.state.Board, that.state.AIMark, that.state.HumanMark)
	if !ok {
		return
	}

	that.state.Board.Place(move, that.state.AIMark)
	that.lastAIMove = &move
	that.updateGameStatus()
}

// updateGameStatus - applies the outcome of the last placement and reports whether the game is over.
func (that *GameController) updateGameStatus() bool {
	switch outcome := Evaluate(&that.state.Board); outcome.Status {
	case entity.OutcomeWon:
		that.phase = entity.PhaseWon
		that.winner = outcome.Winner
		that.state.Turn = entity.EmptyCell
		return true
	case entity.OutcomeDraw:
		that.phase = entity.PhaseDraw
		that.state.Turn = entity.EmptyCell
		return true
	default:
		that.state.Turn = that.state.Turn.Opponent()
		return false
	}
}

func (that *GameController) validateSnapshot(snapshot *entity.Snapshot) error {
	board := &snapshot.Board

	for _, row := range board {
		for _, cell := range row {
			if cell != entity.EmptyCell && !cell.IsPlayer() {
				return fmt.Errorf("unknown mark %q on the board", cell)
			}
		}
	}

	if diff := board.Count(entity.PlayerX) - board.Count(entity.PlayerO); diff != 0 && diff != 1 {
		return fmt.Errorf("mark counts differ by %d", diff)
	}

	if snapshot.Phase == entity.PhaseAwaitingSymbol {
		if !that.settings.ChooseSymbol {
			return fmt.Errorf("phase %s without symbol choice", snapshot.Phase)
		}
		if board.Count(entity.EmptyCell) != entity.BoardSize*entity.BoardSize {
			return fmt.Errorf("board is not empty in phase %s", snapshot.Phase)
		}
		return nil
	}

	if !snapshot.HumanMark.IsPlayer() || snapshot.AIMark != snapshot.HumanMark.Opponent() {
		return fmt.Errorf("invalid marks human=%q ai=%q", snapshot.HumanMark, snapshot.AIMark)
	}

	if !that.settings.ChooseSymbol && snapshot.HumanMark != that.settings.HumanMark {
		return fmt.Errorf("human mark %q does not match configured %q", snapshot.HumanMark, that.settings.HumanMark)
	}

	outcome := Evaluate(board)

	switch snapshot.Phase {
	case entity.PhaseInProgress:
		if outcome.IsTerminal() || snapshot.Turn != board.NextTurn() || snapshot.Turn != snapshot.HumanMark {
			return fmt.Errorf("in-progress game is not awaiting the human, turn %q", snapshot.Turn)
		}
	case entity.PhaseWon:
		if outcome.Status != entity.OutcomeWon || outcome.Winner != snapshot.Winner {
			return fmt.Errorf("recorded winner %q does not match the board", snapshot.Winner)
		}
	case entity.PhaseDraw:
		if outcome.Status != entity.OutcomeDraw {
			return errors.New("recorded draw does not match the board")
		}
	default:
		return fmt.Errorf("unknown phase %q", snapshot.Phase)
	}

	return nil
}
