package dispatch

import "strings"

// highConfidenceKeywords alone mark a message as dispatch-relevant.
var highConfidenceKeywords = []string{"派車", "待搶用車", "抗滑", "人員載運"}

// cancellationContextKeywords qualify a 取消 (cancellation) mention.
var cancellationContextKeywords = []string{"派車", "線巡", "觀測", "佈纜", "佈覽"}

// IsDispatchMessage is a coarse, recall-favoring gate deciding whether a
// message is worth parsing at all. False positives are expected and
// absorbed downstream by empty extraction results.
func IsDispatchMessage(content string) bool {
	if strings.Contains(content, "車長") && strings.Contains(content, "駕駛") {
		return true
	}
	if strings.Contains(content, "副隊") && strings.Contains(content, "人員載運") {
		return true
	}
	for _, kw := range highConfidenceKeywords {
		if strings.Contains(content, kw) {
			return true
		}
	}
	if strings.Contains(content, "取消") {
		for _, kw := range cancellationContextKeywords {
			if strings.Contains(content, kw) {
				return true
			}
		}
	}
	return false
}
