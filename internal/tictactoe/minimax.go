package tictactoe

import (
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	ScoreLoss = -1
	ScoreDraw = 0
	ScoreWin  = 1
)

// Score - values the board from perspective's point of view under optimal play by both sides:
// ScoreWin, ScoreDraw or ScoreLoss. perspectiveTurn tells whether perspective is the side to move.
//
// The board is searched in place and is restored to its original contents before Score returns.
func Score(board *entity.Board, perspective entity.Mark, perspectiveTurn bool) int {
	return score(board, perspective, perspective.Opponent(), perspectiveTurn)
}

func score(board *entity.Board, me, opponent entity.Mark, myTurn bool) int {
	switch outcome := Evaluate(board); outcome.Status {
	case entity.OutcomeWon:
		if outcome.Winner == me {
			return ScoreWin
		}
		return ScoreLoss
	case entity.OutcomeDraw:
		return ScoreDraw
	case entity.OutcomeOngoing:
	}

	toMove := opponent
	best := ScoreWin
	if myTurn {
		toMove = me
		best = ScoreLoss
	}

	for _, move := range LegalMoves(board) {
		childScore := scoreAfter(board, move, toMove, me, opponent, !myTurn)
		if myTurn {
			best = max(best, childScore)
		} else {
			best = min(best, childScore)
		}
	}

	return best
}

// scoreAfter - scores the board with mark hypothetically placed on move.
// The placement is undone on every exit path.
func scoreAfter(board *entity.Board, move entity.Move, mark, me, opponent entity.Mark, myTurn bool) int {
	undo := board.Place(move, mark)
	defer undo()

	return score(board, me, opponent, myTurn)
}
