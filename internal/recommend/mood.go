package recommend

import "strings"

// ResolveGenre scans text for the first matching keyword from the ordered
// table. First match wins; a miss returns ok=false, which callers treat as
// the trending fallback branch.
func ResolveGenre(text string, table []GenreKeyword) (int64, bool) {
	t := strings.ToLower(text)
	for _, kw := range table {
		if strings.Contains(t, strings.ToLower(kw.Keyword)) {
			return kw.GenreID, true
		}
	}
	return 0, false
}
