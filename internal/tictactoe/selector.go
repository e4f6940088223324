package tictactoe

import (
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

// SelectMove - picks the best move for aiMark. Among equally scored moves the first one in
// LegalMoves order wins. ok is false when the board has no empty cell.
func SelectMove(board *entity.Board, aiMark, humanMark entity.Mark) (move entity.Move, ok bool) {
	bestScore := ScoreLoss - 1

	for _, candidate := range LegalMoves(board) {
		// after the AI's own move it is the human's turn
		candidateScore := scoreAfter(board, candidate, aiMark, aiMark, humanMark, false)
		if candidateScore > bestScore {
			bestScore = candidateScore
			move = candidate
			ok = true
		}
	}

	return move, ok
}
