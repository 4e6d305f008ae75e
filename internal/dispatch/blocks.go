package dispatch

import (
	"regexp"
	"strings"
)

// blockStartRe matches a line opening with a date, the usual start of a
// new dispatch entry.
var blockStartRe = regexp.MustCompile(`^\d{1,2}[/／]\d{1,2}`)

// blockKeywords qualify a date line as a block start even while a block is
// already open without a commander yet.
var blockKeywords = []string{"派車", "用車", "觀測", "佈纜", "佈覽", "線巡", "搶修", "預保"}

// SplitBlocks splits a message into independent dispatch blocks. A new
// block starts at a leading-date line when the line also carries a
// dispatch keyword, no block is open, or the open block already has a
// commander label. A closed block is kept only if it contains a commander
// or driver label. The final block is additionally kept when it merely
// starts with a bare date line; this looser trailing rule is kept for
// compatibility with the message corpus the heuristics were tuned on.
func SplitBlocks(content string) []string {
	var blocks []string
	var current []string

	for _, line := range strings.Split(content, "\n") {
		stripped := strings.TrimSpace(line)

		startsWithDate := blockStartRe.MatchString(stripped)
		hasKeyword := false
		for _, kw := range blockKeywords {
			if strings.Contains(stripped, kw) {
				hasKeyword = true
				break
			}
		}

		joined := strings.Join(current, "\n")
		if startsWithDate && (hasKeyword || len(current) == 0 || strings.Contains(joined, "車長")) {
			if len(current) > 0 && (strings.Contains(joined, "車長") || strings.Contains(joined, "駕駛")) {
				blocks = append(blocks, joined)
			}
			current = []string{line}
		} else if stripped != "" {
			// Lines before any block opens are discarded.
			if len(current) > 0 {
				current = append(current, line)
			}
		}
	}

	if len(current) > 0 {
		joined := strings.Join(current, "\n")
		if strings.Contains(joined, "車長") || strings.Contains(joined, "駕駛") ||
			blockStartRe.MatchString(strings.TrimSpace(current[0])) {
			blocks = append(blocks, joined)
		}
	}

	return blocks
}
