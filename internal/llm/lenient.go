package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/propdoc/propdoc/internal/common"
)

// ExtractJSONObject recovers a single JSON object from a model completion.
// Models wrap output in code fences or chatty framing often enough that a
// strict unmarshal of the raw completion throws away usable chunks.
func ExtractJSONObject(raw string) (map[string]any, error) {
	s := strings.TrimSpace(raw)

	// strip markdown code fences
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}

	// take the outermost object if there is framing text around it
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: no object delimiters", common.ErrOracleParse)
	}
	s = s[start : end+1]

	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrOracleParse, err)
	}
	return m, nil
}
