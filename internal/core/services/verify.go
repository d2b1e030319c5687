package services

import (
	"regexp"
	"strings"
)

// Verifier checks whether expected manifest values occur in the text
// extracted from an invoice PDF.
//
// The primary rule is a raw substring test. When that fails, a
// normalised comparison is tried so that OCR punctuation noise and
// decimal-separator differences do not produce false divergences:
// whitespace is collapsed, CNPJs are compared digits-only and amounts
// are compared in both comma and dot decimal notation.
type Verifier struct{}

// NewVerifier creates a verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	digitsRe     = regexp.MustCompile(`\D`)
	cnpjShapeRe  = regexp.MustCompile(`^\d{2}\.?\d{3}\.?\d{3}/?\d{4}-?\d{2}$`)
	amountRe     = regexp.MustCompile(`^\d{1,3}(\.\d{3})*(,\d{2})$|^\d+([.,]\d{1,2})?$`)
)

// Contains reports whether expected occurs in text under the
// verification rules.
func (v *Verifier) Contains(text, expected string) bool {
	expected = strings.TrimSpace(expected)
	if expected == "" {
		// Nothing to verify; an empty manifest cell never diverges.
		return true
	}

	if strings.Contains(text, expected) {
		return true
	}

	folded := collapseWhitespace(text)
	if strings.Contains(folded, collapseWhitespace(expected)) {
		return true
	}

	if cnpjShapeRe.MatchString(expected) {
		if strings.Contains(digitsOnly(text), digitsOnly(expected)) {
			return true
		}
	}

	if amountRe.MatchString(expected) {
		for _, variant := range amountVariants(expected) {
			if strings.Contains(folded, variant) {
				return true
			}
		}
	}

	return false
}

// amountVariants returns the value in both Brazilian ("1.000,50") and
// plain ("1000.50") notation.
func amountVariants(amount string) []string {
	plain := amount
	if strings.Contains(amount, ",") {
		// "2.500,50" -> "2500.50"
		plain = strings.ReplaceAll(amount, ".", "")
		plain = strings.ReplaceAll(plain, ",", ".")
	}

	variants := []string{plain}
	if comma := toCommaNotation(plain); comma != plain {
		variants = append(variants, comma)
	}
	return variants
}

// toCommaNotation converts "2500.50" to "2.500,50".
func toCommaNotation(plain string) string {
	intPart, fracPart := plain, ""
	if i := strings.LastIndex(plain, "."); i >= 0 {
		intPart, fracPart = plain[:i], plain[i+1:]
	}

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := strings.Join(groups, ".")
	if fracPart != "" {
		out += "," + fracPart
	}
	return out
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

func digitsOnly(s string) string {
	return digitsRe.ReplaceAllString(s, "")
}
