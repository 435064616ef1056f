package analysis

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/tenderworks/tenderd/internal/common"
)

// parseStructured decodes a JSON object out of free-form model output. The
// reply may be fenced or wrapped in prose; the first balanced-looking object
// between the outermost braces is attempted. Decoding happens over a copy of
// the caller's defaults, so optional fields absent from the reply keep their
// default values and every consumer sees a fully-shaped record. On any
// failure the defaults are returned unchanged with ok=false; the condition
// is logged as recoverable, never raised.
func parseStructured[T any](raw string, defaults T) (T, bool) {
	logger := common.Logger()
	record := defaults
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		if idx := strings.Index(cleaned, "\n"); idx >= 0 {
			cleaned = cleaned[idx+1:]
		}
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	}
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		logger.Warn("analysis: no JSON object in model reply", "length", len(raw))
		return defaults, false
	}
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &record); err != nil {
		logger.Warn("analysis: structured output parse failed", "error", err)
		return defaults, false
	}
	return record, true
}

var intPattern = regexp.MustCompile(`\d+`)

// firstInt returns the first integer token in the text, or fallback when the
// text contains no digits.
func firstInt(text string, fallback int) int {
	match := intPattern.FindString(text)
	if match == "" {
		return fallback
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return fallback
	}
	return n
}

// clamp01 confines a score to [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// clampPercent confines a score to [0,100].
func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func clampInt(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
