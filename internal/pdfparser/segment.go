// Package pdfparser turns bank statement PDFs into transaction blocks, one free-text
// block per transaction, ready for the extraction adapter.
package pdfparser

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// boundaryPattern matches the date a statement row starts with, e.g. "2025/06/01".
var boundaryPattern = regexp.MustCompile(`^\d{4}/\d{2}/\d{2}`)

// IsBoundary reports whether line opens a new transaction block.
func IsBoundary(line string) bool {
	return boundaryPattern.MatchString(line)
}

// SegmentBlocks groups statement lines into transaction blocks. A leading header line
// whose first word is "date" is dropped. Lines before the first dated line form a block of their own.
func SegmentBlocks(lines []string) []string {
	if len(lines) == 0 {
		return []string{}
	}
	if isHeader(lines[0]) {
		lines = lines[1:]
	}

	blocks := make([]string, 0)
	var current []string
	for _, line := range lines {
		if IsBoundary(line) && len(current) > 0 {
			blocks = append(blocks, strings.Join(current, " "))
			current = nil
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, strings.Join(current, " "))
	}
	return blocks
}

// isHeader reports whether line opens with the word "date", in any case.
func isHeader(line string) bool {
	if len(line) < 4 || !strings.EqualFold(line[:4], "date") {
		return false
	}
	if len(line) == 4 {
		return true
	}
	next, _ := utf8.DecodeRuneInString(line[4:])
	return !unicode.IsLetter(next) && !unicode.IsDigit(next) && next != '_'
}
