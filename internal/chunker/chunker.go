package chunker

// Chunk is one window of a longer document, sized to fit a model's
// input budget. StartOffset is the rune offset of Text within the
// source document.
type Chunk struct {
	StartOffset int
	Text        string
}

// Split partitions text into overlapping windows of at most chunkSize
// runes. Windows prefer to end at a paragraph break, then at a sentence
// terminator, and hard-cut only when neither exists. Adjacent windows
// share the last `overlap` runes of the earlier window.
//
// All positions are rune indices, so a window never splits a multi-byte
// code point. Concatenating the windows with the overlaps removed
// reproduces the source text exactly.
func Split(text string, chunkSize, overlap int) []Chunk {
	if text == "" {
		return nil
	}
	if chunkSize <= 0 {
		chunkSize = 1
	}
	if overlap < 0 {
		overlap = 0
	}

	runes := []rune(text)
	n := len(runes)
	if n <= chunkSize {
		return []Chunk{{StartOffset: 0, Text: text}}
	}

	var chunks []Chunk
	pos := 0
	lastBoundary := 0

	for pos < n {
		end := pos + chunkSize
		if end >= n {
			chunks = append(chunks, Chunk{StartOffset: pos, Text: string(runes[pos:n])})
			break
		}

		boundary := findBoundary(runes, pos, end)

		// Never re-emit a boundary we already passed. Possible when the
		// overlap rewinds past a preferred break on pathological input.
		if boundary <= lastBoundary {
			boundary = end
			if boundary <= lastBoundary {
				boundary = lastBoundary + 1
			}
		}

		chunks = append(chunks, Chunk{StartOffset: pos, Text: string(runes[pos:boundary])})
		lastBoundary = boundary

		next := boundary - overlap
		if next <= pos {
			next = boundary
		}
		pos = next
	}

	return chunks
}

// findBoundary picks the best cut point in runes[start:end].
// Preference order: after the last paragraph break, after the last
// sentence terminator, then the hard limit at end.
func findBoundary(runes []rune, start, end int) int {
	// Last "\n\n" inside the window.
	for i := end - 2; i > start; i-- {
		if runes[i] == '\n' && runes[i+1] == '\n' {
			return i + 2
		}
	}

	// Last sentence terminator, cutting just after it.
	for i := end - 1; i > start; i-- {
		switch runes[i] {
		case '.', '!', '?':
			return i + 1
		}
	}

	return end
}

// Reassemble joins chunks back into the original text, dropping the
// overlapping prefixes. Intended for verification; production code keeps
// the source document around.
func Reassemble(chunks []Chunk) string {
	if len(chunks) == 0 {
		return ""
	}
	out := []rune(chunks[0].Text)
	for _, c := range chunks[1:] {
		text := []rune(c.Text)
		skip := len(out) - c.StartOffset
		if skip < 0 {
			skip = 0
		}
		if skip > len(text) {
			skip = len(text)
		}
		out = append(out, text[skip:]...)
	}
	return string(out)
}
