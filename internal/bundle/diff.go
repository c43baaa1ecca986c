package bundle

// DiffResult describes the change between two discovery passes.
type DiffResult struct {
	New        []Application `json:"new"`
	RemovedIDs []string      `json:"removed_ids"`
}

// Diff computes the set difference between the current scan and the
// previously known application ids.
func Diff(current []Application, previousIDs []string) DiffResult {
	currentIDs := make(map[string]bool, len(current))
	for _, app := range current {
		currentIDs[app.ID] = true
	}
	previous := make(map[string]bool, len(previousIDs))
	for _, id := range previousIDs {
		previous[id] = true
	}

	var result DiffResult
	for _, app := range current {
		if !previous[app.ID] {
			result.New = append(result.New, app)
		}
	}
	for _, id := range previousIDs {
		if !currentIDs[id] {
			result.RemovedIDs = append(result.RemovedIDs, id)
		}
	}
	return result
}
