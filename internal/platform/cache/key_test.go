package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyStrings(t *testing.T) {
	assert.Equal(t, "roster-2025-06-01", RosterKey{Date: "2025-06-01"}.CacheKey())
	assert.Equal(t, CategoryRoster, RosterKey{}.Category())

	assert.Equal(t, "transactions-2025-06-01-2025-06-30",
		TransactionsKey{Start: "2025-06-01", End: "2025-06-30"}.CacheKey())
	assert.Equal(t, "player-transactions-669373-2025-06-01-2025-06-30",
		TransactionsKey{Start: "2025-06-01", End: "2025-06-30", PlayerID: 669373}.CacheKey())
	assert.Equal(t, CategoryTransactions, TransactionsKey{}.Category())

	assert.Equal(t, "player-history-669373-2025-06-01-2025-06-30",
		PlayerHistoryKey{PlayerID: 669373, Start: "2025-06-01", End: "2025-06-30"}.CacheKey())
	assert.Equal(t, CategoryPlayerHistory, PlayerHistoryKey{}.Category())
}
