package docgen

import "strings"

// WrapChunks wraps text into at most maxLines lines of at most maxChars
// characters. The text is first split on commas/semicolons so that a
// chunk boundary is preferred over a mid-chunk break (address-style
// fields); chunks sharing a line are rejoined with ", ". A chunk longer
// than the budget is word-wrapped as a fallback, and a single word longer
// than a whole line is hard-cut. Chunks beyond maxLines are dropped —
// documented truncation, not an error.
func WrapChunks(text string, maxLines, maxChars int) []string {
	if maxLines <= 0 || maxChars <= 0 {
		return nil
	}

	var chunks []string
	for _, c := range strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == ';' }) {
		if c = strings.TrimSpace(c); c != "" {
			chunks = append(chunks, c)
		}
	}
	if len(chunks) == 0 {
		return nil
	}

	var lines []string
	cur := ""
	flush := func() {
		if cur != "" {
			lines = append(lines, cur)
			cur = ""
		}
	}
	for _, chunk := range chunks {
		if len(chunk) > maxChars {
			flush()
			lines = append(lines, wrapWords(chunk, maxChars)...)
			continue
		}
		switch {
		case cur == "":
			cur = chunk
		case len(cur)+2+len(chunk) <= maxChars:
			cur += ", " + chunk
		default:
			flush()
			cur = chunk
		}
	}
	flush()

	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}

// WrapTwoLines wraps a short string (payment/delivery terms) on plain
// whitespace into at most two lines. The first line is filled greedily;
// whatever remains goes on line two, itself capped at the budget with the
// overflow dropped.
func WrapTwoLines(text string, maxChars int) []string {
	if maxChars <= 0 {
		return nil
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	first, rest := fillLine(words, maxChars)
	if len(rest) == 0 {
		return []string{first}
	}
	second, _ := fillLine(rest, maxChars)
	return []string{first, second}
}

// fillLine greedily joins words up to maxChars, returning the line and
// the unconsumed remainder. The first word always lands on the line, cut
// to the budget if it alone exceeds it.
func fillLine(words []string, maxChars int) (string, []string) {
	line := words[0]
	if len(line) > maxChars {
		line = line[:maxChars]
	}
	i := 1
	for ; i < len(words); i++ {
		if len(line)+1+len(words[i]) > maxChars {
			break
		}
		line += " " + words[i]
	}
	return line, words[i:]
}

// wrapWords is the chunk-overflow fallback: plain greedy word wrap with
// no line cap.
func wrapWords(text string, maxChars int) []string {
	var lines []string
	rest := strings.Fields(text)
	for len(rest) > 0 {
		var line string
		line, rest = fillLine(rest, maxChars)
		lines = append(lines, line)
	}
	return lines
}
