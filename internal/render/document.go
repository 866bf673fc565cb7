// internal/render/document.go
//
// Document linearizes a normalized Node into the indented plain text that
// flows into the PDF export. Unlike the live tree view it is compact: a key
// whose formatted body is empty is omitted entirely, label included, and
// only primary-language content survives.

package render

import (
	"fmt"
	"strings"
	"unicode"

	"campaigndeck/internal/node"
)

const indentUnit = "  "

// Document formats n as a multi-line text block at the given indent level.
// Absent input and empty-after-formatting values contribute nothing.
func Document(n *node.Node, level int) string {
	if n == nil {
		return ""
	}
	indent := strings.Repeat(indentUnit, level)
	switch n.Kind {
	case node.KindPrimitive:
		return n.Text
	case node.KindBilingual:
		// Only the primary language is emitted into the document.
		return n.Primary
	case node.KindSequence:
		var lines []string
		ordinal := 1
		for _, item := range n.Items {
			body := Document(item, level)
			if strings.TrimSpace(body) == "" {
				continue
			}
			// Ordinals count emitted items only, contiguous from 1.
			lines = append(lines, fmt.Sprintf("%s%d. %s", indent, ordinal, body))
			ordinal++
		}
		return strings.Join(lines, "\n")
	case node.KindMap:
		var lines []string
		for _, entry := range n.Entries {
			if isSecondaryLanguageKey(entry.Key) {
				continue
			}
			line := formatEntry(entry, indent, level)
			if line == "" {
				continue
			}
			lines = append(lines, line)
		}
		return strings.Join(lines, "\n")
	default:
		return ""
	}
}

func formatEntry(entry node.Entry, indent string, level int) string {
	if entry.Value == nil {
		return ""
	}
	label := documentLabel(entry.Key)
	switch entry.Value.Kind {
	case node.KindPrimitive, node.KindBilingual:
		text := Document(entry.Value, 0)
		if strings.TrimSpace(text) == "" {
			return ""
		}
		return fmt.Sprintf("%s%s: %s", indent, label, text)
	default:
		body := Document(entry.Value, level+1)
		if strings.TrimSpace(body) == "" {
			return ""
		}
		return fmt.Sprintf("%s%s:\n%s", indent, label, body)
	}
}

// isSecondaryLanguageKey reports keys that duplicate a field in the
// secondary language. These literal conventions come from the automation
// payloads and are matched exactly.
func isSecondaryLanguageKey(key string) bool {
	return strings.HasSuffix(key, node.SecondarySuffix) ||
		key == node.SecondaryLanguageKey ||
		key == node.SecondaryLegacyKey
}

// documentLabel turns a map key into a report label: the primary-language
// suffix is stripped, underscores become spaces, and each word is
// title-cased.
func documentLabel(key string) string {
	key = strings.TrimSuffix(key, node.PrimarySuffix)
	words := strings.Fields(strings.ReplaceAll(key, "_", " "))
	for i, word := range words {
		words[i] = titleWord(word)
	}
	return strings.Join(words, " ")
}

func titleWord(word string) string {
	runes := []rune(strings.ToLower(word))
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
