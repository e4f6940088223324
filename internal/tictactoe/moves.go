package tictactoe

import (
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

// LegalMoves - returns every empty cell in row-major order.
// SelectMove relies on this order to break ties between equally scored moves.
func LegalMoves(board *entity.Board) []entity.Move {
	moves := make([]entity.Move, 0, entity.BoardSize*entity.BoardSize)
	for row := range entity.BoardSize {
		for col := range entity.BoardSize {
			if board[row][col] == entity.EmptyCell {
				moves = append(moves, entity.Move{Row: row, Col: col})
			}
		}
	}
	return moves
}
