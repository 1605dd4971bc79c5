// Package dice rolls tabletop dice from an injected random source.
package dice

import "github.com/louisbranch/personnel.dynamics/internal/random"

// D6 rolls a single six-sided die.
func D6(src random.Source) int {
	return rollDie(src, 6)
}

// TwoD6 rolls two six-sided dice and returns their sum.
func TwoD6(src random.Source) int {
	return rollDie(src, 6) + rollDie(src, 6)
}

// OneIn reports whether a 1-in-n chance succeeds. n <= 1 always succeeds.
func OneIn(src random.Source, n int) bool {
	if n <= 1 {
		return true
	}
	return src.IntN(n) == 0
}

// rollDie rolls a single die with the provided number of sides.
func rollDie(src random.Source, sides int) int {
	return src.IntN(sides) + 1
}
