package services

// CalculatePointsEarned computes the points a task is still worth after the
// given clue penalties. Never negative.
func CalculatePointsEarned(pointsPossible int, cluePenalties []int) int {
	earned := pointsPossible
	for _, penalty := range cluePenalties {
		earned -= penalty
	}
	if earned < 0 {
		return 0
	}
	return earned
}
