package recommend

import "testing"

func TestResolveSimilarityQuery(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		query string
		ok    bool
	}{
		{"persian like", "یه سریال شبیه بریکینگ بد معرفی کن", "بریکینگ بد", true},
		{"persian mesle", "مثل فرندز", "فرندز", true},
		// "The" is a stop word, so the article drops out of the residual.
		{"english like", "recommend something like The Wire please", "Wire", true},
		{"no trigger", "یه سریال بریکینگ بد معرفی کن", "", false},
		{"latin trigger inside a word", "I dislike slow dramas", "", false},
		{"latin trigger case insensitive", "LIKE Dark", "Dark", true},
		{"trigger but empty residual", "یه سریال شبیه معرفی کن", "", false},
		{"single char residual", "شبیه x", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			query, ok := ResolveSimilarityQuery(tc.text, DefaultSimilarityTriggers, DefaultStopWords)
			if ok != tc.ok || query != tc.query {
				t.Fatalf("ResolveSimilarityQuery(%q) = (%q, %v), expected (%q, %v)", tc.text, query, ok, tc.query, tc.ok)
			}
		})
	}
}

func TestResolveSimilarityQueryKeepsOriginalCase(t *testing.T) {
	query, ok := ResolveSimilarityQuery("like Breaking Bad", DefaultSimilarityTriggers, DefaultStopWords)
	if !ok || query != "Breaking Bad" {
		t.Fatalf("expected original casing preserved, got %q ok=%v", query, ok)
	}
}
