package entity

import (
	"fmt"
)

// Mark is the content of a board cell.
type Mark string

const (
	EmptyCell Mark = ""
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
)

const BoardSize = 3

// Opponent - returns the other player's mark. EmptyCell has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Move) InBounds() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

func (that Move) String() string {
	return fmt.Sprintf("(%d, %d)", that.Row, that.Col)
}

// Board is addressed as Board[row][col].
type Board [BoardSize][BoardSize]Mark

// Place - puts mark on an empty cell and returns the function that empties it again.
// The caller must check that the cell is empty and in bounds.
func (that *Board) Place(move Move, mark Mark) (undo func()) {
	that[move.Row][move.Col] = mark
	return func() {
		that[move.Row][move.Col] = EmptyCell
	}
}

func (that *Board) At(move Move) Mark {
	return that[move.Row][move.Col]
}

func (that *Board) IsEmpty(move Move) bool {
	return that[move.Row][move.Col] == EmptyCell
}

func (that *Board) Count(mark Mark) int {
	count := 0
	for _, row := range that {
		for _, cell := range row {
			if cell == mark {
				count++
			}
		}
	}
	return count
}

func (that *Board) HasEmptyCell() bool {
	return that.Count(EmptyCell) > 0
}

// NextTurn - X always opens, so X moves whenever the counts are equal.
func (that *Board) NextTurn() Mark {
	if that.Count(PlayerX) == that.Count(PlayerO) {
		return PlayerX
	}
	return PlayerO
}
