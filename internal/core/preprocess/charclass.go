package preprocess

import "unicode/utf8"

// minRun is the shortest run of identical characters that gets compressed.
const minRun = 3

// alnumTable marks the ASCII bytes kept by the character pass; everything else
// becomes a space.
var alnumTable = func() (t [utf8.RuneSelf]bool) {
	for c := '0'; c <= '9'; c++ {
		t[c] = true
	}
	for c := 'a'; c <= 'z'; c++ {
		t[c] = true
	}
	for c := 'A'; c <= 'Z'; c++ {
		t[c] = true
	}
	return t
}()

// stripAndCompress appends text to dst with every character outside
// [a-zA-Z0-9] replaced by one space, then collapses runs of three or more
// identical characters to two. The result is always ASCII.
func stripAndCompress(dst []byte, text string) []byte {
	var last byte
	run := 0
	for i := 0; i < len(text); {
		c := text[i]
		if c < utf8.RuneSelf {
			i++
			if !alnumTable[c] {
				c = ' '
			}
		} else {
			// One space per code point; invalid bytes count one each.
			_, size := utf8.DecodeRuneInString(text[i:])
			i += size
			c = ' '
		}

		if run > 0 && c == last {
			run++
		} else {
			last = c
			run = 1
		}
		if run < minRun {
			dst = append(dst, c)
		}
	}
	return dst
}
