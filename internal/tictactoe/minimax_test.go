package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

func TestLegalMoves(t *testing.T) {
	t.Run("Row-major order", func(t *testing.T) {
		// Given: a board with scattered empty cells
		board := entity.Board{
			{x, e, o},
			{e, x, e},
			{o, e, e},
		}

		// When: listing legal moves
		moves := LegalMoves(&board)

		// Then: the moves go row by row, left to right
		assert.Equal(t, []entity.Move{
			{Row: 0, Col: 1},
			{Row: 1, Col: 0},
			{Row: 1, Col: 2},
			{Row: 2, Col: 1},
			{Row: 2, Col: 2},
		}, moves)
	})

	t.Run("Empty board lists all nine cells", func(t *testing.T) {
		board := entity.Board{}

		moves := LegalMoves(&board)

		require.Len(t, moves, 9)
		assert.Equal(t, entity.Move{Row: 0, Col: 0}, moves[0])
		assert.Equal(t, entity.Move{Row: 2, Col: 2}, moves[8])
	})

	t.Run("Full board has no moves", func(t *testing.T) {
		board := entity.Board{
			{o, x, o},
			{o, x, x},
			{x, o, x},
		}

		assert.Empty(t, LegalMoves(&board))
	})
}

func TestScore_Terminal(t *testing.T) {
	t.Run("Win for the perspective", func(t *testing.T) {
		board := entity.Board{
			{x, x, x},
			{o, o, e},
			{e, e, e},
		}

		assert.Equal(t, ScoreWin, Score(&board, x, false))
		assert.Equal(t, ScoreLoss, Score(&board, o, true))
	})

	t.Run("Draw", func(t *testing.T) {
		board := entity.Board{
			{o, x, o},
			{o, x, x},
			{x, o, x},
		}

		assert.Equal(t, ScoreDraw, Score(&board, x, true))
		assert.Equal(t, ScoreDraw, Score(&board, o, false))
	})
}

func TestScore(t *testing.T) {
	t.Run("Empty board is a draw under optimal play", func(t *testing.T) {
		board := entity.Board{}

		assert.Equal(t, ScoreDraw, Score(&board, x, true))
	})

	t.Run("Side to move completes its own line", func(t *testing.T) {
		// Given: X to move with two in a row
		board := entity.Board{
			{x, x, e},
			{o, o, e},
			{e, e, e},
		}

		assert.Equal(t, ScoreWin, Score(&board, x, true))
	})

	t.Run("Unanswerable double threat", func(t *testing.T) {
		// Given: O to move, X threatens both (0,2) and (2,0)
		board := entity.Board{
			{x, x, e},
			{x, o, e},
			{e, o, e},
		}

		assert.Equal(t, ScoreLoss, Score(&board, o, true))
		assert.Equal(t, ScoreWin, Score(&board, x, false))
	})

	t.Run("Board is restored after the search", func(t *testing.T) {
		board := entity.Board{
			{x, e, e},
			{e, o, e},
			{e, e, e},
		}
		before := board

		Score(&board, x, true)

		assert.Equal(t, before, board)
	})
}

func TestScore_ZeroSumForEveryReachableBoard(t *testing.T) {
	walkReachable(t, func(board *entity.Board) {
		xToMove := board.NextTurn() == entity.PlayerX

		scoreX := Score(board, entity.PlayerX, xToMove)
		scoreO := Score(board, entity.PlayerO, !xToMove)

		require.Equal(t, scoreX, -scoreO, "board %v", *board)
		require.Contains(t, []int{ScoreLoss, ScoreDraw, ScoreWin}, scoreX)
	})
}
