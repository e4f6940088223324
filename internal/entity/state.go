package entity

type OutcomeStatus string

const (
	OutcomeOngoing OutcomeStatus = "ongoing"
	OutcomeWon     OutcomeStatus = "won"
	OutcomeDraw    OutcomeStatus = "draw"
)

// Outcome - Winner is set only when Status is OutcomeWon.
type Outcome struct {
	Status OutcomeStatus `json:"status"`
	Winner Mark          `json:"winner,omitempty"`
}

func Ongoing() Outcome {
	return Outcome{Status: OutcomeOngoing}
}

func Won(mark Mark) Outcome {
	return Outcome{Status: OutcomeWon, Winner: mark}
}

func Draw() Outcome {
	return Outcome{Status: OutcomeDraw}
}

func (that Outcome) IsTerminal() bool {
	return that.Status != OutcomeOngoing
}

type Phase string

const (
	PhaseAwaitingSymbol Phase = "awaiting_symbol"
	PhaseInProgress     Phase = "in_progress"
	PhaseWon            Phase = "won"
	PhaseDraw           Phase = "draw"
)

func (that Phase) IsTerminal() bool {
	return that == PhaseWon || that == PhaseDraw
}

// GameState is the board together with the symbol assignment and the side to move.
// HumanMark and AIMark are empty while the symbol choice is pending.
type GameState struct {
	ID        string `json:"id"`
	Board     Board  `json:"board"`
	HumanMark Mark   `json:"human_mark"`
	AIMark    Mark   `json:"ai_mark"`
	Turn      Mark   `json:"turn"`
}

func (that *GameState) IsHumanTurn() bool {
	return that.HumanMark != EmptyCell && that.Turn == that.HumanMark
}

func (that *GameState) IsAITurn() bool {
	return that.AIMark != EmptyCell && that.Turn == that.AIMark
}

// Snapshot is the read-only view handed to a presentation layer.
type Snapshot struct {
	GameState
	Phase      Phase `json:"phase"`
	Winner     Mark  `json:"winner,omitempty"`
	LastAIMove *Move `json:"last_ai_move,omitempty"`
}

func (that Snapshot) IsFinished() bool {
	return that.Phase.IsTerminal()
}

// HumanWon / AIWon are meaningful only on a finished snapshot.
func (that Snapshot) HumanWon() bool {
	return that.Phase == PhaseWon && that.Winner == that.HumanMark
}

func (that Snapshot) AIWon() bool {
	return that.Phase == PhaseWon && that.Winner == that.AIMark
}

// StatusText - the one-line status a front end shows under the board.
func (that Snapshot) StatusText() string {
	switch that.Phase {
	case PhaseAwaitingSymbol:
		return "Choose X or O"
	case PhaseWon:
		return string(that.Winner) + " wins!"
	case PhaseDraw:
		return "It's a draw"
	default:
		return "You: " + string(that.HumanMark) + " | AI: " + string(that.AIMark)
	}
}

// Stats is the running tally of finished games.
type Stats struct {
	HumanWins int64 `json:"human_wins"`
	AIWins    int64 `json:"ai_wins"`
	Draws     int64 `json:"draws"`
}
