package notes

import (
	"fmt"
	"strings"

	"github.com/mrlokans/notehammer/internal/entities"
)

// Render produces the persisted markdown representation of a NoteDocument:
// a frontmatter metadata block followed by the ordered highlight list.
// Rendering is fully deterministic - no wall-clock reads, no map iteration -
// so the same document always produces byte-identical output and files stay
// diffable across runs.
func Render(doc *entities.NoteDocument) string {
	var b strings.Builder

	fmt.Fprintf(&b, "---\n")
	fmt.Fprintf(&b, "title: \"%s\"\n", escapeQuotes(doc.Title))
	if doc.Source != "" {
		fmt.Fprintf(&b, "source: \"%s\"\n", escapeQuotes(doc.Source))
	}
	if doc.Citation != "" {
		fmt.Fprintf(&b, "citation: \"%s\"\n", escapeQuotes(doc.Citation))
	}
	if doc.Created != "" {
		fmt.Fprintf(&b, "created: %s\n", doc.Created)
	}
	fmt.Fprintf(&b, "tags: [%s]\n", strings.Join(doc.Tags, ", "))
	fmt.Fprintf(&b, "---\n")

	section := ""
	for _, h := range doc.Highlights {
		if h.Section != section {
			section = h.Section
			if section != "" {
				fmt.Fprintf(&b, "\n## %s\n", section)
			}
		}
		fmt.Fprintf(&b, "- %s\n", h.Text)
		if h.Annotation != "" {
			fmt.Fprintf(&b, "    - %s\n", h.Annotation)
		}
	}

	return b.String()
}

func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
