package helper

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Name parsing is best effort. It covers the shapes PayEx returns for
// Nordic customers and common western conventions; it is not correct for
// every culture.

var salutations = map[string]bool{
	"mr": true, "mrs": true, "ms": true, "miss": true, "mx": true, "dr": true,
	"prof": true, "sir": true, "madam": true, "herr": true, "fru": true,
	"fröken": true, "frk": true, "hr": true,
}

var suffixes = map[string]bool{
	"jr": true, "sr": true, "ii": true, "iii": true, "iv": true, "v": true,
	"phd": true, "md": true, "esq": true, "jun": true, "sen": true,
}

// Particles that belong to the surname ("van der Berg", "af Klint").
var particles = map[string]bool{
	"af": true, "av": true, "van": true, "von": true, "der": true, "den": true,
	"de": true, "del": true, "della": true, "di": true, "da": true, "dos": true,
	"das": true, "do": true, "du": true, "la": true, "le": true, "zu": true,
	"ter": true, "ten": true, "st": true, "bin": true, "ibn": true, "al": true,
	"el": true, "y": true, "mac": true,
}

var titleCaser = cases.Title(language.Und)

func normalizeToken(token string) string {
	return strings.ToLower(strings.Trim(token, ".,"))
}

// singleCase reports whether s has no mix of upper and lower case letters.
func singleCase(s string) bool {
	var upper, lower bool
	for _, r := range s {
		if unicode.IsUpper(r) {
			upper = true
		} else if unicode.IsLower(r) {
			lower = true
		}
	}
	return !(upper && lower)
}

func fixCase(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, token := range tokens {
		if particles[normalizeToken(token)] && i > 0 {
			out[i] = strings.ToLower(token)
			continue
		}
		out[i] = titleCaser.String(strings.ToLower(token))
	}
	return out
}

func stripAffixes(tokens []string) []string {
	for len(tokens) > 1 && salutations[normalizeToken(tokens[0])] {
		tokens = tokens[1:]
	}
	for len(tokens) > 1 && suffixes[normalizeToken(tokens[len(tokens)-1])] {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}

// ParseFullName splits a full name into first and last name. Given names
// stay together in the first name; surname particles stay with the last
// name. "Last, First" input is recognised.
func ParseFullName(fullName string) (firstName, lastName string) {
	fullName = strings.Join(strings.Fields(fullName), " ")
	if fullName == "" {
		return "", ""
	}
	if singleCase(fullName) {
		fullName = strings.Join(fixCase(strings.Fields(fullName)), " ")
	}

	if before, after, found := strings.Cut(fullName, ","); found {
		rest := stripAffixes(strings.Fields(after))
		if len(rest) > 0 && !(len(rest) == 1 && suffixes[normalizeToken(rest[0])]) {
			last := stripAffixes(strings.Fields(before))
			return strings.Join(rest, " "), strings.Join(last, " ")
		}
		fullName = before
	}

	tokens := stripAffixes(strings.Fields(fullName))
	if len(tokens) == 1 {
		return tokens[0], ""
	}

	start := len(tokens) - 1
	for start > 1 && particles[normalizeToken(tokens[start-1])] {
		start--
	}

	return strings.Join(tokens[:start], " "), strings.Join(tokens[start:], " ")
}
