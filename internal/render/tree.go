// internal/render/tree.go
//
// Tree renders a normalized Node into the nested panel layout shown in the
// live result view: one labeled box per map key, a vertical stack per
// sequence, plain text per primitive. It is one of two leaf strategies over
// the same Node tree; document.go is the other (plain text for export).

package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"campaigndeck/internal/node"
)

const (
	minPanelWidth  = 20
	nestedShrink   = 4
	primaryLabel   = "English"
	secondaryLabel = "Arabic"
)

var (
	keyLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#B794F4"))
	langLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
	bodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC"))
)

// Tree renders n into a nested visual structure. Absent input renders
// nothing. The input Node is never mutated.
func Tree(n *node.Node, width int) string {
	if n == nil {
		return ""
	}
	if width < minPanelWidth {
		width = minPanelWidth
	}
	switch n.Kind {
	case node.KindPrimitive:
		// Embedded line breaks and whitespace are preserved as given.
		return bodyStyle.Render(n.Text)
	case node.KindSequence:
		blocks := make([]string, 0, len(n.Items))
		for _, item := range n.Items {
			if rendered := Tree(item, width); rendered != "" {
				blocks = append(blocks, rendered)
			}
		}
		return lipgloss.JoinVertical(lipgloss.Left, blocks...)
	case node.KindBilingual:
		content := lipgloss.JoinVertical(lipgloss.Left,
			langLabelStyle.Render(primaryLabel),
			bodyStyle.Render(n.Primary),
			langLabelStyle.Render(secondaryLabel),
			bodyStyle.Render(n.Secondary),
		)
		return panelStyle.Width(width).Render(content)
	case node.KindMap:
		blocks := make([]string, 0, len(n.Entries))
		for _, entry := range n.Entries {
			blocks = append(blocks, renderEntry(entry, width))
		}
		return lipgloss.JoinVertical(lipgloss.Left, blocks...)
	default:
		return ""
	}
}

// renderEntry draws one labeled map section. Entries whose value is absent
// still show their label with an empty body: a section header can be
// meaningful on its own in the live view.
func renderEntry(entry node.Entry, width int) string {
	label := keyLabelStyle.Render(keyLabel(entry.Key))
	inner := width - nestedShrink
	if inner < minPanelWidth {
		inner = minPanelWidth
	}
	body := Tree(entry.Value, inner)
	var content string
	if body == "" {
		content = label
	} else {
		content = lipgloss.JoinVertical(lipgloss.Left, label, body)
	}
	return panelStyle.Width(width).Render(content)
}

// keyLabel derives a section label from a map key: underscores become
// spaces, nothing else changes.
func keyLabel(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}
