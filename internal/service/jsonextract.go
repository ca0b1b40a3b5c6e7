package service

import (
	"encoding/json"
	"regexp"
)

// extractStrategy is one way of locating a JSON payload inside free-form
// model output. Strategies are tried in order; the first one whose captured
// text decodes successfully wins.
type extractStrategy struct {
	name  string
	re    *regexp.Regexp
	group int
}

// Strategies for responses expected to carry a JSON array (recipe lists).
var arrayStrategies = []extractStrategy{
	{name: "fenced-json", re: regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```"), group: 1},
	{name: "fenced-any", re: regexp.MustCompile("(?s)```\\s*(.*?)\\s*```"), group: 1},
	{name: "bare-array", re: regexp.MustCompile(`(?s)\[\s*\{.*\}\s*\]`), group: 0},
}

// Strategies for responses expected to carry a JSON object or array
// (analysis and substitution stages).
var valueStrategies = []extractStrategy{
	{name: "fenced-json", re: regexp.MustCompile("(?s)```json\\s*(\\{.*?\\}|\\[.*?\\])\\s*```"), group: 1},
	{name: "fenced-any", re: regexp.MustCompile("(?s)```\\s*(\\{.*?\\}|\\[.*?\\])\\s*```"), group: 1},
	{name: "bare-object", re: regexp.MustCompile(`(?s)(\{.*\})`), group: 1},
	{name: "bare-array", re: regexp.MustCompile(`(?s)(\[.*\])`), group: 1},
}

// decodeFirstJSON runs the strategies against text and decodes the first
// candidate that parses into v. If no strategy matches, the raw text itself
// is tried as a last resort. Returns false when nothing decodes.
func decodeFirstJSON(text string, strategies []extractStrategy, v interface{}) bool {
	for _, s := range strategies {
		m := s.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		candidate := m[s.group]
		if json.Unmarshal([]byte(candidate), v) == nil {
			return true
		}
	}
	return json.Unmarshal([]byte(text), v) == nil
}
