package services

import (
	"regexp"
	"strings"
	"time"
)

// sizePivot splits "large" from "small" files: 1 MiB.
const sizePivot int64 = 1 << 20

// ParsedQuery is the result of translating a free-text prompt into filters.
type ParsedQuery struct {
	Filters        SearchFilters `json:"filters"`
	OriginalPrompt string        `json:"originalPrompt"`
}

var (
	// jpeg and docx before their prefixes so the longer keyword wins.
	typeKeywordRe = regexp.MustCompile(`\b(docx|pdf|doc|txt|jpeg|jpg|png)\b`)
	largeSizeRe   = regexp.MustCompile(`\b(large|big)\b`)
	smallSizeRe   = regexp.MustCompile(`\b(small|tiny)\b`)
)

// dateRules is the ordered keyword list; the first keyword found in the
// prompt wins.
var dateRules = []struct {
	keyword string
	rng     func(now time.Time) DateRange
}{
	{"today", func(now time.Time) DateRange {
		from := startOfDay(now)
		return DateRange{From: &from}
	}},
	{"yesterday", func(now time.Time) DateRange {
		to := startOfDay(now)
		from := to.AddDate(0, 0, -1)
		return DateRange{From: &from, To: &to}
	}},
	{"last week", func(now time.Time) DateRange {
		from := now.AddDate(0, 0, -7)
		return DateRange{From: &from}
	}},
	{"last month", func(now time.Time) DateRange {
		from := now.AddDate(0, -1, 0)
		return DateRange{From: &from}
	}},
	{"this month", func(now time.Time) DateRange {
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return DateRange{From: &from}
	}},
}

// smartStopWords are dropped before picking a name term. The list extends the
// classic verbs/articles with the connective prepositions prompts tend to
// carry ("files from last week").
var smartStopWords = map[string]struct{}{
	"find": {}, "search": {}, "show": {}, "me": {}, "get": {}, "the": {},
	"files": {}, "documents": {}, "with": {}, "containing": {}, "about": {},
	"from": {}, "in": {}, "on": {}, "of": {}, "my": {}, "a": {}, "all": {},
}

// ParseSmartQuery translates a free-text prompt into structured search
// filters by scanning for a fixed set of keywords. It is a pure function: an
// ordered rule list, no state, no NLP.
//
// Rules, in order:
//  1. extension keyword -> Type
//  2. date keyword -> DateCreated (dateRules order, first hit wins)
//  3. large/big -> Size.Min = 1 MiB, else small/tiny -> Size.Max = 1 MiB
//  4. longest remaining non-keyword token longer than 3 chars -> Name
//     (ties broken by first occurrence)
func ParseSmartQuery(prompt string) ParsedQuery {
	lower := strings.ToLower(prompt)

	var filters SearchFilters
	consumed := make(map[string]struct{})

	if m := typeKeywordRe.FindString(lower); m != "" {
		t := m
		filters.Type = &t
		consumed[m] = struct{}{}
	}

	now := time.Now()
	for _, rule := range dateRules {
		if strings.Contains(lower, rule.keyword) {
			rng := rule.rng(now)
			filters.DateCreated = &rng
			for _, w := range strings.Fields(rule.keyword) {
				consumed[w] = struct{}{}
			}
			break
		}
	}

	if m := largeSizeRe.FindString(lower); m != "" {
		min := sizePivot
		filters.Size = &SizeRange{Min: &min}
		consumed[m] = struct{}{}
	} else if m := smallSizeRe.FindString(lower); m != "" {
		max := sizePivot
		filters.Size = &SizeRange{Max: &max}
		consumed[m] = struct{}{}
	}

	best := ""
	for _, tok := range strings.Fields(lower) {
		tok = strings.Trim(tok, `.,!?:;"'()`)
		if tok == "" {
			continue
		}
		if _, ok := smartStopWords[tok]; ok {
			continue
		}
		if _, ok := consumed[tok]; ok {
			continue
		}
		if len(tok) > len(best) {
			best = tok
		}
	}
	if len(best) > 3 {
		name := best
		filters.Name = &name
	}

	return ParsedQuery{Filters: filters, OriginalPrompt: prompt}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
