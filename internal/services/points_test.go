package services

import "testing"

func TestCalculatePointsEarned(t *testing.T) {
	cases := []struct {
		name      string
		possible  int
		penalties []int
		want      int
	}{
		{"no penalties", 100, nil, 100},
		{"two clues", 100, []int{10, 20}, 70},
		{"all clues", 100, []int{10, 20, 30}, 40},
		{"clamped at zero", 50, []int{30, 30}, 0},
		{"exact zero", 60, []int{10, 20, 30}, 0},
		{"zero possible", 0, []int{10}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculatePointsEarned(tc.possible, tc.penalties)
			if got != tc.want {
				t.Fatalf("CalculatePointsEarned(%d, %v) = %d, want %d", tc.possible, tc.penalties, got, tc.want)
			}
		})
	}
}
