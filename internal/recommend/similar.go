package recommend

import (
	"strings"
	"unicode/utf8"
)

// ResolveSimilarityQuery detects a "like X" construct in the text. When one
// of the triggers is present, the trigger and all stop words are stripped
// and the trimmed remainder becomes the search query. Residuals of one
// character or less resolve to nothing, too short to search on.
//
// Latin triggers match whole words only, so "dislike" does not trip "like".
// Persian triggers match as substrings.
func ResolveSimilarityQuery(text string, triggers, stopWords []string) (string, bool) {
	lower := strings.ToLower(text)
	fields := strings.Fields(lower)
	triggered := false
	for _, trig := range triggers {
		lt := strings.ToLower(trig)
		if isASCII(lt) {
			for _, f := range fields {
				if f == lt {
					triggered = true
					break
				}
			}
		} else if strings.Contains(lower, lt) {
			triggered = true
		}
		if triggered {
			break
		}
	}
	if !triggered {
		return "", false
	}

	drop := make(map[string]struct{}, len(triggers)+len(stopWords))
	for _, t := range triggers {
		drop[strings.ToLower(t)] = struct{}{}
	}
	for _, s := range stopWords {
		drop[strings.ToLower(s)] = struct{}{}
	}

	var kept []string
	for _, word := range strings.Fields(text) {
		if _, ok := drop[strings.ToLower(word)]; ok {
			continue
		}
		kept = append(kept, word)
	}
	query := strings.TrimSpace(strings.Join(kept, " "))
	if len([]rune(query)) <= 1 {
		return "", false
	}
	return query, true
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
