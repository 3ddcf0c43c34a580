package game

import "math"

// LevelForXP derives the display level from accumulated XP: level 1 at 0,
// level 2 at 100, level 3 at 400, level n at 100*(n-1)^2.
func LevelForXP(xp int64) int {
	if xp <= 0 {
		return 1
	}
	return 1 + int(math.Sqrt(float64(xp)/100))
}
