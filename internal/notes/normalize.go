package notes

import "strings"

// Export artifacts carry styling artifacts from the reading app's share
// mechanism: non-breaking spaces, soft hyphens inside words, stray control
// characters. None of them may survive into emitted highlight text.

const (
	nonBreakingSpace = '\u00a0'
	softHyphen       = '\u00ad'
	zeroWidthSpace   = '\u200b'
	byteOrderMark    = '\ufeff'
)

// normalizeText strips export styling artifacts from a single line of
// extracted text and trims surrounding whitespace.
func normalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		switch {
		case r == nonBreakingSpace:
			b.WriteRune(' ')
		case r == softHyphen, r == zeroWidthSpace, r == byteOrderMark:
			// dropped entirely: these join or pad words invisibly
		case r < 0x20 && r != '\t':
			// stray control characters
		default:
			b.WriteRune(r)
		}
	}

	return strings.TrimSpace(b.String())
}
