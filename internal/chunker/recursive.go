package chunker

import "strings"

// RecursiveSplitter splits text into character-bounded chunks, preferring to
// break on paragraph boundaries, then line breaks, then spaces. Consecutive
// chunks share a character overlap so sentences cut at a boundary stay
// retrievable.
type RecursiveSplitter struct {
	chunkSize    int
	chunkOverlap int
	separators   []string
}

func NewRecursiveSplitter(chunkSize, chunkOverlap int) *RecursiveSplitter {
	if chunkSize <= 0 {
		chunkSize = 400
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		chunkOverlap = 0
	}
	return &RecursiveSplitter{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		separators:   []string{"\n\n", "\n", " ", ""},
	}
}

func (s *RecursiveSplitter) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return s.split(text, s.separators)
}

func (s *RecursiveSplitter) split(text string, separators []string) []string {
	sep := separators[len(separators)-1]
	var rest []string
	for i, candidate := range separators {
		if candidate == "" || strings.Contains(text, candidate) {
			sep = candidate
			rest = separators[i+1:]
			break
		}
	}

	var units []string
	if sep == "" {
		units = splitRunes(text, s.chunkSize)
	} else {
		units = strings.Split(text, sep)
	}

	var chunks []string
	var buffer []string
	bufLen := 0
	fresh := false

	emit := func() {
		joined := strings.TrimSpace(strings.Join(buffer, sep))
		if joined != "" {
			chunks = append(chunks, joined)
		}
	}
	flush := func() {
		if !fresh {
			return
		}
		emit()
		// Keep a tail of units within the overlap budget for the next chunk.
		var tail []string
		tailLen := 0
		for i := len(buffer) - 1; i >= 0; i-- {
			l := len(buffer[i]) + len(sep)
			if tailLen+l > s.chunkOverlap {
				break
			}
			tail = append([]string{buffer[i]}, tail...)
			tailLen += l
		}
		buffer = tail
		bufLen = tailLen
		fresh = false
	}

	for _, unit := range units {
		if strings.TrimSpace(unit) == "" {
			continue
		}
		// Units too large for one chunk are split again at a finer separator.
		if len(unit) > s.chunkSize && len(rest) > 0 {
			flush()
			buffer, bufLen, fresh = nil, 0, false
			chunks = append(chunks, s.split(unit, rest)...)
			continue
		}
		if bufLen+len(unit)+len(sep) > s.chunkSize {
			flush()
		}
		buffer = append(buffer, unit)
		bufLen += len(unit) + len(sep)
		fresh = true
	}
	if fresh {
		emit()
	}
	return chunks
}

func splitRunes(text string, size int) []string {
	runes := []rune(text)
	var out []string
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
	}
	return out
}
