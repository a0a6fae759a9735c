package t2048

import "fmt"

var defaultMilestones = []int{2048, 4096, 8192, 16384, 32768, 65536, 131072}

// DefaultMilestones returns the tile values that raise a popup, ascending.
func DefaultMilestones() []int {
	out := make([]int, len(defaultMilestones))
	copy(out, defaultMilestones)
	return out
}

// NextMilestone returns the first milestone, in ascending order, that
// maxTile has reached and that is not yet in achieved. At most one
// milestone is reported per call.
func NextMilestone(milestones []int, achieved map[int]bool, maxTile int) (int, bool) {
	for _, m := range milestones {
		if maxTile >= m && !achieved[m] {
			return m, true
		}
	}
	return 0, false
}

// MilestoneMessage returns the popup headline for a milestone.
func MilestoneMessage(m int) string {
	return fmt.Sprintf("You reached %d!", m)
}
