// Package classifier maps free-text error messages from the remote analysis
// service onto the shared error taxonomy, so server-reported failures get the
// same user guidance as failures detected locally.
package classifier

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/arbovm/levenshtein"

	"go-photo-validator/pkg/taxonomy"
)

// minFuzzyKeywordLength keeps short keywords ("mask", "blur") exact-only;
// one edit on a four-letter word matches too much unrelated text.
const minFuzzyKeywordLength = 5

// Classifier scans an ordered rule list; the first rule with a keyword hit wins.
type Classifier struct {
	rules         []Rule
	typoTolerance int
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithRules replaces the default rule list.
func WithRules(rules []Rule) Option {
	return func(c *Classifier) {
		c.rules = rules
	}
}

// WithTypoTolerance enables a fallback pass that accepts single-word keywords
// within maxDistance edits of a message token. It only runs when no rule
// matched exactly.
func WithTypoTolerance(maxDistance int) Option {
	return func(c *Classifier) {
		if maxDistance < 0 {
			maxDistance = 0
		}
		c.typoTolerance = maxDistance
	}
}

// New creates a classifier with the default bilingual rules.
func New(opts ...Option) *Classifier {
	c := &Classifier{rules: DefaultRules}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultClassifier = New()

// ClassifyErrorText classifies a remote error using the default rules.
func ClassifyErrorText(message, detail string) taxonomy.ErrorCategory {
	return defaultClassifier.Classify(message, detail)
}

// Classify returns the category for the concatenated message and detail.
// It never fails: unmatched text yields UNKNOWN_ERROR.
func (c *Classifier) Classify(message, detail string) taxonomy.ErrorCategory {
	text := normalize(message, detail)
	if text == "" {
		return taxonomy.UnknownError
	}

	if containsAny(text, infrastructureSignals) {
		return taxonomy.ProcessingError
	}

	for _, rule := range c.rules {
		if containsAny(text, rule.Keywords) {
			return rule.Category
		}
	}

	if c.typoTolerance > 0 {
		if category, ok := c.classifyFuzzy(text); ok {
			return category
		}
	}

	return taxonomy.UnknownError
}

func (c *Classifier) classifyFuzzy(text string) (taxonomy.ErrorCategory, bool) {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
	if len(tokens) == 0 {
		return "", false
	}

	for _, rule := range c.rules {
		for _, keyword := range rule.Keywords {
			if strings.ContainsRune(keyword, ' ') || utf8.RuneCountInString(keyword) < minFuzzyKeywordLength {
				continue
			}
			for _, token := range tokens {
				if levenshtein.Distance(token, keyword) <= c.typoTolerance {
					return rule.Category, true
				}
			}
		}
	}
	return "", false
}

func normalize(message, detail string) string {
	text := strings.TrimSpace(message + " " + detail)
	return strings.ToLower(text)
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if containsKeyword(text, kw) {
			return true
		}
	}
	return false
}

// containsKeyword reports whether kw occurs in text. A keyword starting with
// a Latin letter or digit must start a word, so "covered" does not match
// "recovered" while "blur" still matches "blurry". Hangul keywords match
// anywhere because particles attach directly to the stem.
func containsKeyword(text, kw string) bool {
	if kw == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(kw)
	if !isLatinWordRune(first) {
		return strings.Contains(text, kw)
	}

	for offset := 0; ; {
		i := strings.Index(text[offset:], kw)
		if i < 0 {
			return false
		}
		i += offset
		prev, _ := utf8.DecodeLastRuneInString(text[:i])
		if i == 0 || !isLatinWordRune(prev) {
			return true
		}
		offset = i + 1
	}
}

func isLatinWordRune(r rune) bool {
	return r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r))
}
