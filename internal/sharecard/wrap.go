package sharecard

import "strings"

// MeasureFunc returns the rendered width of a string in the current font.
type MeasureFunc func(s string) float64

// Wrap breaks text into at most maxLines lines that each fit maxWidth,
// greedily packing words. When the text overflows, the final line absorbs
// the remainder and is trimmed character by character until it fits with
// a trailing ellipsis.
func Wrap(text string, maxWidth float64, maxLines int, measure MeasureFunc) []string {
	words := strings.Fields(strings.TrimSpace(text))
	if len(words) == 0 || maxLines < 1 {
		return nil
	}
	if maxLines == 1 {
		joined := strings.Join(words, " ")
		if measure(joined) <= maxWidth {
			return []string{joined}
		}
		return []string{Ellipsize(joined, maxWidth, measure)}
	}

	var lines []string
	line := ""
	for i, word := range words {
		test := word
		if line != "" {
			test = line + " " + word
		}
		if measure(test) > maxWidth && line != "" {
			lines = append(lines, line)
			line = word
			if len(lines) >= maxLines-1 {
				rest := line + " " + strings.Join(words[i+1:], " ")
				rest = strings.TrimSpace(rest)
				return append(lines, Ellipsize(rest, maxWidth, measure))
			}
		} else {
			line = test
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// Ellipsize trims s one character at a time until s+"…" fits maxWidth.
func Ellipsize(s string, maxWidth float64, measure MeasureFunc) string {
	runes := []rune(s)
	for len(runes) > 0 && measure(string(runes)+"…") > maxWidth {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
