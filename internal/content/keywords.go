package content

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// DefaultKeywordLimit is the number of keywords kept per page.
const DefaultKeywordLimit = 10

// minKeywordLength drops tokens such as "a", "of" and "my" that slip past
// the stop word list.
const minKeywordLength = 3

// Keywords returns up to limit of the most frequent meaningful words in
// text. Words are case-folded; stop words and words shorter than three
// characters are ignored. Ties are broken alphabetically so the result is
// deterministic.
func Keywords(text string, limit int) []string {
	if limit <= 0 {
		limit = DefaultKeywordLimit
	}

	fold := cases.Fold()
	counts := make(map[string]int)
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, tok := range tokens {
		w := fold.String(tok)
		if len([]rune(w)) < minKeywordLength {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		if isNumeric(w) {
			continue
		}
		counts[w]++
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})

	if len(words) > limit {
		words = words[:limit]
	}
	return words
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// stopWords is the English stop word list (folded).
var stopWords = func() map[string]struct{} {
	list := strings.Fields(`
a about above after again against all am an and any are aren't as at be
because been before being below between both but by can can't cannot could
couldn't did didn't do does doesn't doing don't down during each few for from
further had hadn't has hasn't have haven't having he he'd he'll he's her here
here's hers herself him himself his how how's i i'd i'll i'm i've if in into
is isn't it it's its itself just let's me more most mustn't my myself no nor
not now of off on once only or other ought our ours ourselves out over own
same shan't she she'd she'll she's should shouldn't so some such than that
that's the their theirs them themselves then there there's these they they'd
they'll they're they've this those through to too under until up very was
wasn't we we'd we'll we're we've were weren't what what's when when's where
where's which while who who's whom why why's will with won't would wouldn't
you you'd you'll you're you've your yours yourself yourselves
aren couldn didn doesn don hadn hasn haven isn mustn shan shouldn wasn weren
won wouldn also get got like one see use used using via www http https com
`)
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}()
