package pipeline

// MergePolicy decides which value survives a key collision across chunks.
const (
	MergeLastWriteWins  = "last"
	MergeFirstWriteWins = "first"
)

// mergeChunks folds parsed chunk objects into one flat map, in source order.
// Under "last" a later chunk's value replaces an earlier one; under "first"
// the earliest value sticks. No conflict reporting either way.
func mergeChunks(objects []map[string]any, policy string) map[string]any {
	merged := make(map[string]any)
	for _, obj := range objects {
		for k, v := range obj {
			if policy == MergeFirstWriteWins {
				if _, seen := merged[k]; seen {
					continue
				}
			}
			merged[k] = v
		}
	}
	return merged
}
