package redis

// GamePhase is the current stage of a room's state machine.
type GamePhase string

const (
	PhaseLobby       GamePhase = "lobby"
	PhaseReady       GamePhase = "ready"
	PhaseCollect     GamePhase = "collect"
	PhaseVote        GamePhase = "vote"
	PhaseReveal      GamePhase = "reveal"
	PhaseLeaderboard GamePhase = "leaderboard"
	PhaseEnded       GamePhase = "ended"
)

// PowerUpKind identifies the one-time special ability a player holds.
type PowerUpKind string

const (
	PowerUpNone PowerUpKind = "none"
	PowerUpSwap PowerUpKind = "swap"
	PowerUpSpy  PowerUpKind = "spy"
)

// PowerUpState is the closed set of power-up situations a player can be
// in: no power-up, an unused power-up of some kind, or a consumed one.
// A "used" state without a kind cannot be constructed through Assign/Use.
type PowerUpState struct {
	Kind PowerUpKind `json:"kind"`
	Used bool        `json:"used"`
}

func (p *PowerUpState) Assign(kind PowerUpKind) {
	p.Kind = kind
	p.Used = false
}

// Use consumes the power-up. Returns false if there is nothing to use
// or it was already consumed.
func (p *PowerUpState) Use() bool {
	if p.Kind == PowerUpNone || p.Used {
		return false
	}
	p.Used = true
	return true
}

func (p *PowerUpState) Available() bool {
	return p.Kind != PowerUpNone && !p.Used
}

// ReactionType is one of the fixed reactions players can send to an
// answer during the reveal phase.
type ReactionType string

const (
	ReactionMindBlown      ReactionType = "mind_blown"
	ReactionHilarious      ReactionType = "hilarious"
	ReactionAlmostBelieved ReactionType = "almost_believed"
	ReactionFire           ReactionType = "fire"
)

func (r ReactionType) Valid() bool {
	switch r {
	case ReactionMindBlown, ReactionHilarious, ReactionAlmostBelieved, ReactionFire:
		return true
	}
	return false
}

type Reaction struct {
	PlayerId   string       `json:"playerId"`
	PlayerName string       `json:"playerName"`
	Reaction   ReactionType `json:"reaction"`
}

// Player is one participant of a room, human or bot. Disconnecting only
// clears Connected; the record stays until an explicit leave.
type Player struct {
	Id        string       `json:"id"`
	Name      string       `json:"name"`
	IsHost    bool         `json:"isHost"`
	Avatar    string       `json:"avatar"`
	Score     int          `json:"score"`
	Connected bool         `json:"connected"`
	Ready     bool         `json:"ready"`
	Submitted bool         `json:"submitted"`
	PowerUp   PowerUpState `json:"powerUp"`
}

// Sentinel owner ids for answers that belong to no player.
const (
	AnswerOwnerAI      = "AI"
	AnswerOwnerCorrect = "CORRECT"
)

// Answer is one candidate response shown during voting.
type Answer struct {
	Id         string     `json:"id"`
	PlayerId   string     `json:"playerId"`
	PlayerName string     `json:"playerName"`
	Text       string     `json:"text"`
	IsCorrect  bool       `json:"isCorrect"`
	IsAI       bool       `json:"isAI"`
	VotedBy    []string   `json:"votedBy"`
	Reactions  []Reaction `json:"reactions,omitempty"`
}

type Vote struct {
	PlayerId string `json:"playerId"`
	AnswerId string `json:"answerId"`
}

// Prompt is the question/correct-answer pair active during a round.
type Prompt struct {
	Id            string `json:"id"`
	DeckId        string `json:"deckId"`
	QuestionText  string `json:"questionText"`
	CorrectAnswer string `json:"correctAnswer"`
	FamilySafe    bool   `json:"familySafe"`
}

// GameSettings are fixed per room, host-editable while in the lobby.
// Phase times are seconds; 0 disables the auto-advance timer.
type GameSettings struct {
	CollectTime   int `json:"collectTime"`
	VoteTime      int `json:"voteTime"`
	RevealTime    int `json:"revealTime"`
	PointsCorrect int `json:"pointsCorrect"`
	PointsPerFool int `json:"pointsPerFool"`
	PointsFoolAll int `json:"pointsFoolAll"`
	PointsTimeout int `json:"pointsTimeout"`
}

// GameRoom is the aggregate state of one game session, stored in Redis
// as a single JSON value. Answers and Votes only hold the current round
// and are recreated when a new round starts.
type GameRoom struct {
	Id            string       `json:"id"`
	Code          string       `json:"code"`
	Players       []Player     `json:"players"`
	State         GamePhase    `json:"state"`
	CurrentRound  int          `json:"currentRound"`
	TotalRounds   int          `json:"totalRounds"`
	DeckId        string       `json:"deckId"`
	FamilySafe    bool         `json:"familySafe"`
	CurrentPrompt *Prompt      `json:"currentPrompt,omitempty"`
	Answers       []Answer     `json:"answers"`
	Votes         []Vote       `json:"votes"`
	RoundEndTime  int64        `json:"roundEndTime,omitempty"` // unix millis, 0 = untimed
	UsedPromptIds []string     `json:"usedPromptIds,omitempty"`
	Settings      GameSettings `json:"settings"`
}

// FindPlayer returns a pointer into Players, or nil.
func (r *GameRoom) FindPlayer(playerId string) *Player {
	for i := range r.Players {
		if r.Players[i].Id == playerId {
			return &r.Players[i]
		}
	}
	return nil
}

func (r *GameRoom) FindPlayerByName(name string) *Player {
	for i := range r.Players {
		if r.Players[i].Name == name {
			return &r.Players[i]
		}
	}
	return nil
}

// FindAnswer returns a pointer into Answers, or nil.
func (r *GameRoom) FindAnswer(answerId string) *Answer {
	for i := range r.Answers {
		if r.Answers[i].Id == answerId {
			return &r.Answers[i]
		}
	}
	return nil
}

// FindAnswerByPlayer returns the player's own answer this round, or nil.
func (r *GameRoom) FindAnswerByPlayer(playerId string) *Answer {
	for i := range r.Answers {
		if r.Answers[i].PlayerId == playerId {
			return &r.Answers[i]
		}
	}
	return nil
}

// FindVote returns the player's vote this round, or nil.
func (r *GameRoom) FindVote(playerId string) *Vote {
	for i := range r.Votes {
		if r.Votes[i].PlayerId == playerId {
			return &r.Votes[i]
		}
	}
	return nil
}

// RoundResult is a per-player outcome for the just-finished round. It is
// broadcast once and not persisted; Player.Score holds the cumulative
// authoritative value.
type RoundResult struct {
	PlayerId      string   `json:"playerId"`
	PlayerName    string   `json:"playerName"`
	Points        int      `json:"points"`
	Reason        string   `json:"reason"` // correct | fooled_others | fooled_all | timeout
	FooledPlayers []string `json:"fooledPlayers,omitempty"`
}

const (
	ReasonCorrect      = "correct"
	ReasonFooledOthers = "fooled_others"
	ReasonFooledAll    = "fooled_all"
	ReasonTimeout      = "timeout"
)
