package backup

import "github.com/appclacks/datto-monitor/pkg/backup/aggregates"

const alertThreshold = 3

func isRelevantWindow(window aggregates.TimeWindow) bool {
	switch window {
	case aggregates.Between0dAnd1d, aggregates.Between1dAnd2d, aggregates.Between2dAnd3d:
		return true
	}
	return false
}

// Evaluate returns the entries of the three most recent windows, in the
// history order, and whether exactly three of them are not "Perfect".
func Evaluate(history []aggregates.BackupWindowStatus) ([]aggregates.BackupWindowStatus, bool) {
	relevant := []aggregates.BackupWindowStatus{}
	failures := 0
	for _, entry := range history {
		if !isRelevantWindow(entry.TimeWindow) {
			continue
		}
		relevant = append(relevant, entry)
		if entry.Status != aggregates.StatusPerfect {
			failures++
		}
	}
	return relevant, failures == alertThreshold
}
