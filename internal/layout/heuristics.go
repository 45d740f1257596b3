package layout

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	bulletPattern    = regexp.MustCompile(`^[-•‣⁃●○∙]`)
	referencePattern = regexp.MustCompile(`^\[\d+\]`)
)

func startsWithBullet(text string) bool {
	return bulletPattern.MatchString(text)
}

func startsWithReference(text string) bool {
	return referencePattern.MatchString(text)
}

// countWord counts whitespace-separated tokens made only of letters.
func countWord(text string) int {
	n := 0
	for _, f := range strings.Fields(text) {
		if strings.IndexFunc(f, func(r rune) bool { return !unicode.IsLetter(r) }) < 0 {
			n++
		}
	}
	return n
}

// countSpace counts whitespace characters.
func countSpace(text string) int {
	n := 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// countMultiSpace counts non-overlapping pairs of adjacent whitespace.
func countMultiSpace(text string) int {
	n, run := 0, 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			run++
			continue
		}
		n += run / 2
		run = 0
	}
	return n + run/2
}

func isASCII(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] > unicode.MaxASCII {
			return false
		}
	}
	return true
}

func isNumeric(text string) bool {
	for _, r := range text {
		if !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}
