package translation

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/sumitmahankale/ShabdSetu/internal/langdetect"
	"github.com/sumitmahankale/ShabdSetu/internal/language"
)

const (
	DictionaryProviderName = "dictionary"

	glossMinWords = 3
	glossMinShare = 0.7
)

// DictionaryProvider answers from the built-in phrasebook. It never fails;
// unknown phrases are reported as a miss.
type DictionaryProvider struct {
	englishToMarathi   phraseTable
	marathiToEnglish   phraseTable
	romanizedToEnglish phraseTable
}

func NewDictionaryProvider() *DictionaryProvider {
	inverted := make([]phrasePair, 0, len(englishMarathi))
	for _, pair := range englishMarathi {
		inverted = append(inverted, phrasePair{from: pair.to, to: pair.from})
	}
	return &DictionaryProvider{
		englishToMarathi:   newPhraseTable(englishMarathi),
		marathiToEnglish:   newPhraseTable(inverted),
		romanizedToEnglish: newPhraseTable(romanizedMarathiEnglish),
	}
}

func (p *DictionaryProvider) Name() string {
	return DictionaryProviderName
}

func (p *DictionaryProvider) Offline() bool {
	return true
}

// Size reports how many distinct normalized phrases are known across all
// directions.
func (p *DictionaryProvider) Size() int {
	return len(p.englishToMarathi.exact) + len(p.marathiToEnglish.exact) + len(p.romanizedToEnglish.exact)
}

func (p *DictionaryProvider) Translate(_ context.Context, req ProviderRequest) (Outcome, error) {
	key := normalizePhrase(req.Text)
	if key == "" {
		return Outcome{}, nil
	}

	var (
		text string
		ok   bool
	)
	switch {
	case req.Source == language.EN && req.Target == language.MR:
		text, ok = p.englishToMarathi.lookup(key)
	case req.Source == language.MR && req.Target == language.EN:
		if langdetect.ContainsDevanagari(key) {
			text, ok = p.marathiToEnglish.lookup(key)
		} else {
			text, ok = p.romanizedToEnglish.lookup(key)
			if !ok {
				text, ok = p.romanizedToEnglish.gloss(key)
			}
		}
	}
	if !ok {
		return Outcome{}, nil
	}
	return Outcome{Text: text, Hit: true}, nil
}

type phraseTable struct {
	exact map[string]string
	// multiWord holds keys of two or more words, longest first.
	multiWord []string
}

func newPhraseTable(pairs []phrasePair) phraseTable {
	table := phraseTable{exact: make(map[string]string, len(pairs))}
	for _, pair := range pairs {
		key := normalizePhrase(pair.from)
		if key == "" {
			continue
		}
		if _, exists := table.exact[key]; exists {
			continue
		}
		table.exact[key] = pair.to
		if wordCount(key) >= 2 {
			table.multiWord = append(table.multiWord, key)
		}
	}
	sort.Slice(table.multiWord, func(i, j int) bool {
		a, b := table.multiWord[i], table.multiWord[j]
		if wa, wb := wordCount(a), wordCount(b); wa != wb {
			return wa > wb
		}
		if la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b); la != lb {
			return la > lb
		}
		return a < b
	})
	return table
}

// lookup tries an exact match, then the longest known multi-word phrase that
// appears on word boundaries inside a multi-word key.
func (t phraseTable) lookup(key string) (string, bool) {
	if text, ok := t.exact[key]; ok {
		return text, true
	}
	if wordCount(key) < 2 {
		return "", false
	}
	padded := " " + key + " "
	for _, phrase := range t.multiWord {
		if strings.Contains(padded, " "+phrase+" ") {
			return t.exact[phrase], true
		}
	}
	return "", false
}

// gloss translates word by word when enough of the words are known. Unknown
// words pass through unchanged.
func (t phraseTable) gloss(key string) (string, bool) {
	words := strings.Fields(key)
	if len(words) < glossMinWords {
		return "", false
	}
	known := 0
	out := make([]string, 0, len(words))
	for _, word := range words {
		if text, ok := t.exact[word]; ok {
			out = append(out, text)
			known++
			continue
		}
		out = append(out, word)
	}
	if float64(known) < glossMinShare*float64(len(words)) {
		return "", false
	}
	return strings.Join(out, " "), true
}

// normalizePhrase applies NFC, lower-cases, turns sentence punctuation
// (including the danda) into spaces and collapses whitespace.
func normalizePhrase(text string) string {
	folded := strings.Map(func(r rune) rune {
		switch r {
		case '!', '?', '.', ',', ';', ':', '"', '।', '॥', '¿', '¡':
			return ' '
		}
		return r
	}, norm.NFC.String(text))
	return strings.ToLower(strings.Join(strings.Fields(folded), " "))
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
