package game_constants

import "time"

// Room codes are drawn from an alphabet without easily-confused
// characters (no I/O/0/1).
const RoomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
const RoomCodeLength = 4
const MaxRoomCodeAttempts = 10

// Abandoned rooms are reclaimed by the store after this TTL.
const RoomTTL = 4 * time.Hour

const MinPlayersToStart = 2
const MaxGameRounds = 10

// Answer set shown during voting always has at least this many
// non-correct entries, padded with generated bluffs. Padding gives up
// after a bounded number of generation attempts and advances with
// whatever partial set exists.
const MinBluffAnswers = 4
const MaxPaddingAttempts = 20

// Prompts recently used by a room are not repeated; the selection
// retries a bounded number of times before accepting a repeat.
const UsedPromptHistory = 10
const MaxPromptRetries = 5

// Grace delay between the final "ended" broadcast and room teardown.
const EndGameGraceDelay = 5 * time.Second

// Default room settings. A phase time of 0 means the phase has no
// auto-advance timer and requires full submission or host action.
const (
	DefaultTotalRounds = 3
	DefaultCollectTime = 0
	DefaultVoteTime    = 0
	DefaultRevealTime  = 0

	DefaultPointsCorrect = 2
	DefaultPointsPerFool = 1
	DefaultPointsFoolAll = 2
	DefaultPointsTimeout = -1
)
