package lexicon

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/bbalet/stopwords"
)

//go:embed english.txt
var englishCorpus string

// manualStopwords is the curated list shipped with the classifier's training pipeline.
var manualStopwords = []string{
	"a", "about", "above", "after", "again", "ain", "all", "am", "an",
	"and", "any", "are", "as", "at", "be", "because", "been", "before",
	"being", "below", "between", "both", "by", "can", "d", "did", "do",
	"does", "doing", "down", "during", "each", "few", "for", "from",
	"further", "had", "has", "have", "having", "he", "her", "here",
	"hers", "herself", "him", "himself", "his", "how", "i", "if", "in",
	"into", "is", "it", "its", "itself", "just", "ll", "m", "ma",
	"me", "more", "most", "my", "myself", "now", "o", "of", "on", "once",
	"only", "or", "other", "our", "ours", "ourselves", "out", "own", "re",
	"s", "same", "she", "shes", "should", "shouldve", "so", "some", "such",
	"t", "than", "that", "thatll", "the", "their", "theirs", "them",
	"themselves", "then", "there", "these", "they", "this", "those",
	"through", "to", "too", "under", "until", "up", "ve", "very", "was",
	"we", "were", "what", "when", "where", "which", "while", "who", "whom",
	"why", "will", "with", "won", "y", "you", "youd", "youll", "youre",
	"youve", "your", "yours", "yourself", "yourselves",
}

// ManualStopwords returns a copy of the curated stopword list.
func ManualStopwords() []string {
	out := make([]string, len(manualStopwords))
	copy(out, manualStopwords)
	return out
}

// EnglishCorpus returns the embedded English stopword corpus.
func EnglishCorpus() []string {
	words, _ := ReadCorpus(strings.NewReader(englishCorpus))
	return words
}

// ReadCorpus reads a stopword corpus with one word per line. Blank lines and
// lines starting with '#' are skipped; words are lower-cased.
func ReadCorpus(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, strings.ToLower(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stopword corpus: %w", err)
	}
	return words, nil
}

// ReadCorpusFile reads a stopword corpus from disk.
func ReadCorpusFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stopword corpus: %w", err)
	}
	defer f.Close()
	return ReadCorpus(f)
}

// StopwordSet is an immutable, deduplicated union of stopword lists,
// optionally backed by the bbalet/stopwords corpus for one language.
type StopwordSet struct {
	words    map[string]struct{}
	language string
}

// NewStopwordSet builds the union of the given lists.
func NewStopwordSet(lists ...[]string) *StopwordSet {
	s := &StopwordSet{words: make(map[string]struct{})}
	for _, list := range lists {
		for _, w := range list {
			s.words[w] = struct{}{}
		}
	}
	return s
}

// WithLibraryCorpus returns a copy of the set that also treats words known to
// the bbalet/stopwords corpus of language (ISO 639-1) as stopwords.
func (s *StopwordSet) WithLibraryCorpus(language string) *StopwordSet {
	words := make(map[string]struct{}, len(s.words))
	for w := range s.words {
		words[w] = struct{}{}
	}
	return &StopwordSet{words: words, language: language}
}

// Contains reports whether word is a stopword.
func (s *StopwordSet) Contains(word string) bool {
	if _, ok := s.words[word]; ok {
		return true
	}
	if s.language == "" {
		return false
	}
	return isLibraryStopword(word, s.language)
}

// Len returns the number of explicitly listed words. Library-backed words are not counted.
func (s *StopwordSet) Len() int {
	return len(s.words)
}

// Words returns the explicitly listed words, sorted.
func (s *StopwordSet) Words() []string {
	out := make([]string, 0, len(s.words))
	for w := range s.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// isLibraryStopword asks the library whether a single word is dropped. The
// library's word segmenter ignores digits, so only purely alphabetic words are
// probed; anything else would be reported as removed.
func isLibraryStopword(word, language string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return strings.TrimSpace(stopwords.CleanString(word, language, false)) == ""
}
