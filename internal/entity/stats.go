package entity

import "sort"

type GameStats struct {
	TotalGames  int `json:"totalGames"`
	Player1Wins int `json:"player1Wins"`
	Player2Wins int `json:"player2Wins"`
	Draws       int `json:"draws"`
}

type LeaderboardEntry struct {
	PlayerNickname string `json:"playerNickname"`
	Wins           int    `json:"wins"`
	Games          int    `json:"games"`
}

// ComputeStats aggregates outcomes over completed games only.
func ComputeStats(games []*Game) GameStats {
	var stats GameStats

	for _, game := range games {
		if !game.IsCompleted() {
			continue
		}

		stats.TotalGames++

		if game.Winner == nil {
			continue
		}

		switch *game.Winner {
		case WinnerPlayer1:
			stats.Player1Wins++
		case WinnerPlayer2:
			stats.Player2Wins++
		case WinnerDraw:
			stats.Draws++
		}
	}

	return stats
}

// ComputeLeaderboard ranks players with at least one win by wins desc, then games asc.
func ComputeLeaderboard(games []*Game, limit int) []LeaderboardEntry {
	byNickname := make(map[string]*LeaderboardEntry)

	record := func(nickname string, won bool) {
		entry, ok := byNickname[nickname]
		if !ok {
			entry = &LeaderboardEntry{PlayerNickname: nickname}
			byNickname[nickname] = entry
		}

		entry.Games++
		if won {
			entry.Wins++
		}
	}

	for _, game := range games {
		if !game.IsCompleted() {
			continue
		}

		winner := ""
		if game.Winner != nil {
			winner = *game.Winner
		}

		record(game.Player1Nickname, winner == WinnerPlayer1)
		if game.Player2Nickname != nil {
			record(*game.Player2Nickname, winner == WinnerPlayer2)
		}
	}

	entries := make([]LeaderboardEntry, 0, len(byNickname))
	for _, entry := range byNickname {
		if entry.Wins > 0 {
			entries = append(entries, *entry)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Wins != entries[j].Wins {
			return entries[i].Wins > entries[j].Wins
		}
		if entries[i].Games != entries[j].Games {
			return entries[i].Games < entries[j].Games
		}
		return entries[i].PlayerNickname < entries[j].PlayerNickname
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return entries
}
