package lexicon

import (
	"errors"
	"fmt"
	"strings"
)

// EmojiPrefix is prepended to the tag of every substituted emoticon.
const EmojiPrefix = "EMOJI"

// EmojiEntry maps one emoticon glyph to its semantic tag.
type EmojiEntry struct {
	Glyph string
	Tag   string
}

// EmojiTable is an ordered, immutable emoticon table. Substitution walks the
// entries in order and later entries see the output of earlier ones, so the
// order is part of the table's identity.
type EmojiTable struct {
	entries []EmojiEntry
}

// defaultEmoji keeps the reference insertion order.
var defaultEmoji = []EmojiEntry{
	{":)", "smile"},
	{":-)", "smile"},
	{";d", "wink"},
	{":-E", "vampire"},
	{":(", "sad"},
	{":-(", "sad"},
	{":-<", "sad"},
	{":P", "raspberry"},
	{":O", "surprised"},
	{":-@", "shocked"},
	{":@", "shocked"},
	{":-$", "confused"},
	{`:\`, "annoyed"},
	{":#", "mute"},
	{":X", "mute"},
	{":^)", "smile"},
	{":-&", "confused"},
	{"$_$", "greedy"},
	{"@@", "eyeroll"},
	{":-!", "confused"},
	{":-D", "smile"},
	{":-0", "yell"},
	{"O.o", "confused"},
	{"<(-_-)>", "robot"},
	{"d[-_-]b", "dj"},
	{":'-)", "sadsmile"},
	{";)", "wink"},
	{";-)", "wink"},
	{"O:-)", "angel"},
	{"O*-)", "angel"},
	{"(:-D", "gossip"},
	{"=^.^=", "cat"},
}

// DefaultEmojiTable returns the reference emoticon table.
//
// Glyphs containing upper-case letters (":P", ":-D", "O.o", ...) are kept as-is.
// Text is lower-cased before substitution, so those entries never match.
func DefaultEmojiTable() EmojiTable {
	entries := make([]EmojiEntry, len(defaultEmoji))
	copy(entries, defaultEmoji)
	return EmojiTable{entries: entries}
}

// NewEmojiTable builds a table from entries in the given order.
func NewEmojiTable(entries []EmojiEntry) (EmojiTable, error) {
	seen := make(map[string]struct{}, len(entries))
	out := make([]EmojiEntry, 0, len(entries))
	for i, e := range entries {
		if e.Glyph == "" {
			return EmojiTable{}, fmt.Errorf("emoji entry %d: empty glyph", i)
		}
		if e.Tag == "" {
			return EmojiTable{}, fmt.Errorf("emoji entry %d (%q): empty tag", i, e.Glyph)
		}
		if _, dup := seen[e.Glyph]; dup {
			return EmojiTable{}, fmt.Errorf("emoji entry %d: duplicate glyph %q", i, e.Glyph)
		}
		seen[e.Glyph] = struct{}{}
		out = append(out, e)
	}
	if len(out) == 0 {
		return EmojiTable{}, errors.New("emoji table must not be empty")
	}
	return EmojiTable{entries: out}, nil
}

// Len returns the number of entries.
func (t EmojiTable) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the entries in substitution order.
func (t EmojiTable) Entries() []EmojiEntry {
	out := make([]EmojiEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Replace substitutes every literal occurrence of each glyph with EmojiPrefix+tag,
// one full pass per entry, in table order.
func (t EmojiTable) Replace(text string) string {
	for _, e := range t.entries {
		text = strings.ReplaceAll(text, e.Glyph, EmojiPrefix+e.Tag)
	}
	return text
}
