// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package textproc

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Decode converts downloaded bytes to text, dropping invalid UTF-8 sequences.
func Decode(data []byte) string {
	return strings.ToValidUTF8(string(data), "")
}

// Clean normalizes raw scraped text for formatting.
// Blank and whitespace-only lines are dropped, the remaining lines are joined
// with "\n", and every character that is not an ASCII letter, digit or
// whitespace (Unicode spaces included) is removed. Lines left blank by the removal are dropped too, so
// the output never contains a blank line and Clean(Clean(s)) == Clean(s).
func Clean(text string) string {
	text = dropBlankLines(text)
	text = strings.Map(keepRune, text)
	return dropBlankLines(text)
}

// keepRune keeps ASCII letters and digits and any whitespace, including
// Unicode spaces such as NBSP, so words stay separated.
func keepRune(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return r
	case unicode.IsSpace(r), r >= 0x1c && r <= 0x1f:
		return r
	}
	return -1
}

// dropBlankLines splits text on line boundaries and rejoins the non-blank lines with "\n".
func dropBlankLines(text string) string {
	lines := splitLines(text)
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// splitLines splits text on "\r\n" and on the single-rune line boundaries
// \n, \r, \v, \f, FS, GS, RS, NEL, LINE SEPARATOR and PARAGRAPH SEPARATOR.
// A trailing boundary does not produce an empty last line.
func splitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isLineBoundary(r) {
			i += size
			continue
		}
		lines = append(lines, text[start:i])
		i += size
		if r == '\r' && i < len(text) && text[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

func isLineBoundary(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x1c, 0x1d, 0x1e, 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}
