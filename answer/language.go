package answer

import (
	"strings"
	"unicode"
)

// Register is the language style of a question and its answer.
type Register int

const (
	RegisterEnglish Register = iota
	RegisterHindi
	RegisterHinglish
)

func (r Register) String() string {
	switch r {
	case RegisterHindi:
		return "hindi"
	case RegisterHinglish:
		return "hinglish"
	default:
		return "english"
	}
}

var hinglishLexicon = []string{"mujhe", "saari", "sabhi", "dikhao", "batao", "kya", "kitne", "karo"}

// DetectRegister classifies a question as Hindi when it carries any
// Devanagari code point, Hinglish when it uses a known Romanized Hindi
// word, and English otherwise.
func DetectRegister(question string) Register {
	for _, r := range question {
		if unicode.Is(unicode.Devanagari, r) {
			return RegisterHindi
		}
	}
	lower := strings.ToLower(question)
	for _, token := range strings.Fields(lower) {
		token = strings.TrimFunc(token, func(r rune) bool {
			return unicode.IsPunct(r)
		})
		for _, word := range hinglishLexicon {
			if token == word {
				return RegisterHinglish
			}
		}
	}
	return RegisterEnglish
}
