package core

import "github.com/vovakirdan/tui-platformer/internal/config"

// Ledger holds the score, coin count and remaining lives of a session.
// All operations are total: none can fail or drive lives below zero.
type Ledger struct {
	Points int
	Coins  int
	Lives  int

	rules config.PlatformerScoring
}

// NewLedger creates a ledger at its starting values.
func NewLedger(rules config.PlatformerScoring) *Ledger {
	l := &Ledger{rules: rules}
	l.Reset()
	return l
}

// Reset restores (0 points, 0 coins, starting lives).
func (l *Ledger) Reset() {
	l.Points = 0
	l.Coins = 0
	l.Lives = l.rules.StartingLives
}

// AddScore adds points and grants a life for every multiple of
// LifeEveryPoints crossed.
func (l *Ledger) AddScore(points int) {
	before := l.Points
	l.Points += points
	l.Lives += crossed(before, l.Points, l.rules.LifeEveryPoints)
}

// AddCoin is the pickup path for a touched coin.
func (l *Ledger) AddCoin() {
	l.collect(l.rules.CoinPoints)
}

// AwardBlockCoin is the pickup path for a coin knocked out of a block.
func (l *Ledger) AwardBlockCoin() {
	l.collect(l.rules.BlockCoinPoints)
}

func (l *Ledger) collect(points int) {
	l.AddScore(points)
	before := l.Coins
	l.Coins++
	l.Lives += crossed(before, l.Coins, l.rules.LifeEveryCoins)
}

// LoseLife removes one life and reports whether the session is over.
func (l *Ledger) LoseLife() (gameOver bool) {
	if l.Lives > 0 {
		l.Lives--
	}
	return l.Lives == 0
}

// GainLife adds one life.
func (l *Ledger) GainLife() {
	l.Lives++
}

// crossed counts the multiples of every in (before, after].
func crossed(before, after, every int) int {
	if every <= 0 || after <= before {
		return 0
	}
	return after/every - before/every
}
