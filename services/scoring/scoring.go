package scoring

import (
	redis_models "Bloop/models/redis"
)

// CalculateRoundResults computes each player's delta for the round just
// played, from the final answers and votes. Pure function, no state is
// touched. The two scoring effects (voting outcome, fooling outcome)
// are independent and sum into one delta; only one reason string is
// surfaced, the fooling reasons taking display precedence.
func CalculateRoundResults(room *redis_models.GameRoom) []redis_models.RoundResult {
	results := make([]redis_models.RoundResult, 0, len(room.Players))

	for _, player := range room.Players {
		points := 0
		reason := redis_models.ReasonTimeout

		playerVote := room.FindVote(player.Id)
		playerAnswer := room.FindAnswerByPlayer(player.Id)

		if playerVote != nil {
			votedAnswer := room.FindAnswer(playerVote.AnswerId)
			if votedAnswer != nil && votedAnswer.IsCorrect {
				points += room.Settings.PointsCorrect
				reason = redis_models.ReasonCorrect
			}
		} else {
			points = room.Settings.PointsTimeout
			reason = redis_models.ReasonTimeout
		}

		var fooledPlayers []string
		if playerAnswer != nil && !playerAnswer.IsCorrect {
			fooledCount := len(playerAnswer.VotedBy)
			if fooledCount > 0 {
				fooledPlayers = append(fooledPlayers, playerAnswer.VotedBy...)
				points += fooledCount * room.Settings.PointsPerFool
				reason = redis_models.ReasonFooledOthers

				totalVoters := len(room.Votes)
				if fooledCount == totalVoters && totalVoters > 0 {
					points += room.Settings.PointsFoolAll
					reason = redis_models.ReasonFooledAll
				}
			}
		}

		results = append(results, redis_models.RoundResult{
			PlayerId:      player.Id,
			PlayerName:    player.Name,
			Points:        points,
			Reason:        reason,
			FooledPlayers: fooledPlayers,
		})
	}

	return results
}

// ApplyResults adds each result's delta to the player's score, flooring
// at zero. Scores never go negative even when a round's net delta is.
func ApplyResults(room *redis_models.GameRoom, results []redis_models.RoundResult) {
	for i := range room.Players {
		for _, result := range results {
			if result.PlayerId != room.Players[i].Id {
				continue
			}
			score := room.Players[i].Score + result.Points
			if score < 0 {
				score = 0
			}
			room.Players[i].Score = score
			break
		}
	}
}
