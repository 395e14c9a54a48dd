package importer

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Source CSV exports are scraped with Python tooling, so list-valued fields
// frequently arrive as repr() output like ['a', 'b'] rather than JSON. The
// normalizer accepts both encodings plus bare comma-separated text.

type fieldKind int

const (
	fieldAbsent fieldKind = iota
	fieldText
	fieldList
)

// RawField is an input value as it arrives from a CSV cell or JSON field:
// absent, free text, or an already-split list. A closed variant instead of
// runtime type probing keeps the normalizer match exhaustive.
type RawField struct {
	kind  fieldKind
	text  string
	items []string
}

// AbsentField is a missing or null input value.
func AbsentField() RawField {
	return RawField{kind: fieldAbsent}
}

// TextField wraps a textual input value.
func TextField(s string) RawField {
	return RawField{kind: fieldText, text: s}
}

// ListField wraps an input value that is already a list.
func ListField(items []string) RawField {
	return RawField{kind: fieldList, items: items}
}

// ParseArrayField converts a loosely-structured field into a normalized list
// of trimmed, non-empty strings. Empty input yields an empty list, never nil
// semantics the caller has to special-case. A strict JSON array parse is
// attempted first; on failure the value is treated as a Python-literal-style
// list. Bare non-empty text without brackets becomes a one-element list
// (the data-preserving fallback).
func ParseArrayField(raw RawField) []string {
	switch raw.kind {
	case fieldAbsent:
		return []string{}
	case fieldList:
		out := make([]string, 0, len(raw.items))
		for _, item := range raw.items {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	}

	trimmed := strings.TrimSpace(raw.text)
	if isEmptyLiteral(trimmed) {
		return []string{}
	}

	if items, ok := parseJSONArray(trimmed); ok {
		return items
	}

	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		return splitLiteralList(trimmed)
	}

	return []string{trimmed}
}

// ParseGenreField normalizes a possibly-list-shaped genre field into a single
// comma-and-space-joined string, because the backend schema stores genre as a
// scalar. A JSON value that is not an array is returned unchanged.
func ParseGenreField(raw RawField) string {
	switch raw.kind {
	case fieldAbsent:
		return ""
	case fieldList:
		return strings.Join(ParseArrayField(raw), ", ")
	}

	trimmed := strings.TrimSpace(raw.text)
	if isEmptyLiteral(trimmed) {
		return ""
	}

	var parsed any
	if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
		arr, ok := parsed.([]any)
		if !ok {
			return raw.text
		}
		items := make([]string, 0, len(arr))
		for _, el := range arr {
			if s := strings.TrimSpace(stringify(el)); s != "" {
				items = append(items, s)
			}
		}
		return strings.Join(items, ", ")
	}

	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		return strings.Join(splitLiteralList(trimmed), ", ")
	}

	// Bare comma-separated text: already scalar, re-normalization is a no-op.
	parts := strings.Split(trimmed, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			items = append(items, s)
		}
	}
	return strings.Join(items, ", ")
}

var nonSlugRuns = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe identifier from a title: lowercased, runs of
// non-alphanumerics collapsed to single hyphens, leading/trailing hyphens
// stripped. Batch-local uniqueness is the builder's job, not Slugify's.
func Slugify(title string) string {
	slug := nonSlugRuns.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

var leadingFloat = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?`)

// ParsePrice parses a currency-formatted string, stripping dollar signs and
// thousands separators. Unparsable input defaults to 0.
func ParsePrice(raw string) float64 {
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(raw))
	match := leadingFloat.FindString(cleaned)
	if match == "" {
		return 0
	}
	price, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return price
}

// FormatPrice renders a parsed price back into the backend's numeric-string
// representation, without a trailing ".0" on whole amounts.
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}

// isEmptyLiteral matches the empty-ish encodings seen in scraped exports.
func isEmptyLiteral(trimmed string) bool {
	switch trimmed {
	case "", "null", "undefined", "[]", "['']", `[""]`:
		return true
	}
	return false
}

// parseJSONArray attempts a strict JSON array parse. Non-array JSON values
// report failure so the caller can fall through to the literal-list path.
func parseJSONArray(trimmed string) ([]string, bool) {
	var arr []any
	if err := json.Unmarshal([]byte(trimmed), &arr); err != nil {
		return nil, false
	}
	items := make([]string, 0, len(arr))
	for _, el := range arr {
		if s := strings.TrimSpace(stringify(el)); s != "" {
			items = append(items, s)
		}
	}
	return items, true
}

// splitLiteralList handles Python repr() style lists: strips the outer
// brackets, splits on commas, and removes one layer of surrounding quotes
// from each element.
func splitLiteralList(trimmed string) []string {
	content := strings.TrimSuffix(strings.TrimPrefix(trimmed, "["), "]")
	if strings.TrimSpace(content) == "" {
		return []string{}
	}
	parts := strings.Split(content, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		cleaned := strings.TrimSpace(part)
		cleaned = stripQuotes(cleaned)
		cleaned = strings.TrimSpace(cleaned)
		if cleaned != "" {
			items = append(items, cleaned)
		}
	}
	return items
}

// stripQuotes removes a single matching layer of ' or " quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func stringify(el any) string {
	if s, ok := el.(string); ok {
		return s
	}
	// Known looseness in the source data: non-string elements inside a JSON
	// array are carried through as their textual form.
	b, err := json.Marshal(el)
	if err != nil {
		return fmt.Sprint(el)
	}
	return string(b)
}
