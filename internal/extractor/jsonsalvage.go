package extractor

import "strings"

// SalvageJSONObject returns the first well-formed-looking JSON object in s,
// tolerating models that wrap their JSON in prose or code fences. It spans
// from the first '{' to the last '}', which is what the upstream providers
// need in practice; the caller's json.Unmarshal is the real arbiter.
func SalvageJSONObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return s[start : end+1], true
}
