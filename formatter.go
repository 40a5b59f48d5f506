package termspider

import (
	"fmt"
	"strings"
)

// DebugSeparator closes every debug block.
const DebugSeparator = "-------------------------------------------------------------"

// FormatDebugBlock formats the records of one term on one page for review.
// Records are expected to share the term and URL of the first record.
func FormatDebugBlock(records []MatchRecord) string {
	if len(records) == 0 {
		return ""
	}

	var lines []string
	for _, r := range records {
		if !r.Direct {
			lines = append(lines, fmt.Sprintf("DEBUG: No direct text match for '%s' in %s", r.Term, r.URL))
			continue
		}
		lines = append(lines, fmt.Sprintf("MATCH:  for '%s' in %s", r.Term, r.URL))
		lines = append(lines, fmt.Sprintf("       Snippet: %s...", r.Snippet))
	}
	lines = append(lines, DebugSeparator)
	return strings.Join(lines, "\n")
}

// FormatEntries turns the records of one term into output entries, one per
// page: the bare URL, or the page's debug block when debug is true.
func FormatEntries(records []MatchRecord, debug bool) []string {
	var entries []string
	for _, group := range GroupByPage(records) {
		if debug {
			entries = append(entries, FormatDebugBlock(group))
		} else {
			entries = append(entries, group[0].URL)
		}
	}
	return entries
}

// GroupByPage splits records into runs of consecutive records with the same URL.
func GroupByPage(records []MatchRecord) [][]MatchRecord {
	var groups [][]MatchRecord
	start := 0
	for i := 1; i <= len(records); i++ {
		if i == len(records) || records[i].URL != records[start].URL {
			groups = append(groups, records[start:i])
			start = i
		}
	}
	return groups
}
