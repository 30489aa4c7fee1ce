package notes

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/mrlokans/notehammer/internal/entities"
)

var (
	// ErrUnrecognizedFormat means the artifact contains text but nothing
	// resembling a notebook export.
	ErrUnrecognizedFormat = errors.New("unrecognized export format")

	// ErrEmptyExport means the artifact is empty or whitespace only.
	ErrEmptyExport = errors.New("empty export")
)

// Export markers. The export is a markdown-shaped document: a header
// region (title, source line, citation, tag lines, embedded creation
// timestamp), a divider, then bulleted passages grouped under optional
// section headings.
const (
	titlePrefix   = "# "
	sourcePrefix  = "#### "
	sectionPrefix = "### "
	createdPrefix = "- Created:"
	bodyDivider   = "---"
)

var (
	// Tag lines: "#KindleExport" - a single hashtag word on its own line.
	tagLinePattern = regexp.MustCompile(`^#(\w[\w-]*)\s*$`)

	// Bracketed tag suffix in titles: "Some Title [Tag1, Tag2]"
	titleTagsPattern = regexp.MustCompile(`^(.*\S)\s*\[([^\[\]]*)\]\s*$`)
)

// Parser parses raw notebook exports into NoteDocuments. Parsing is
// tolerant of cosmetic inconsistencies; lines it cannot place are skipped
// rather than failing the whole artifact.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse reads one export artifact. An export with a recognizable header
// but zero passages is valid and yields a document with an empty highlight
// sequence.
func (p *Parser) Parse(r io.Reader) (*entities.NoteDocument, error) {
	doc := &entities.NoteDocument{}

	var (
		inBody        bool
		sawContent    bool
		sawMarker     bool
		section       string
		currentIdx    = -1 // index into doc.Highlights of the open passage
		citationTaken bool
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		raw := scanner.Text()
		line := normalizeText(raw)
		if line == "" {
			continue
		}
		sawContent = true

		if line == bodyDivider {
			inBody = true
			sawMarker = true
			continue
		}

		switch {
		case strings.HasPrefix(line, sourcePrefix):
			doc.Source = normalizeText(strings.TrimPrefix(line, sourcePrefix))
			sawMarker = true

		case strings.HasPrefix(line, sectionPrefix):
			section = normalizeText(strings.TrimPrefix(line, sectionPrefix))
			currentIdx = -1
			sawMarker = true

		case strings.HasPrefix(line, titlePrefix):
			title, bracketTags := splitTitleTags(normalizeText(strings.TrimPrefix(line, titlePrefix)))
			doc.Title = title
			doc.Tags = appendUnique(doc.Tags, bracketTags...)
			sawMarker = true

		case strings.HasPrefix(line, createdPrefix):
			doc.Created = normalizeText(strings.TrimPrefix(line, createdPrefix))
			sawMarker = true

		case tagLinePattern.MatchString(line):
			m := tagLinePattern.FindStringSubmatch(line)
			doc.Tags = appendUnique(doc.Tags, m[1])
			sawMarker = true

		case strings.HasPrefix(line, "- "):
			text := normalizeText(strings.TrimPrefix(line, "- "))
			if text == "" {
				continue
			}
			if isIndented(raw) && currentIdx >= 0 {
				// Trailing hyphenated sub-bullet: supplementary commentary
				// that stays with its passage, never a separate entity.
				h := &doc.Highlights[currentIdx]
				if h.Annotation == "" {
					h.Annotation = text
				} else {
					h.Annotation += " " + text
				}
				continue
			}
			if !inBody && !sawMarker {
				// A bullet before any header marker is not a passage.
				continue
			}
			doc.Highlights = append(doc.Highlights, entities.Highlight{
				Text:    text,
				Section: section,
			})
			currentIdx = len(doc.Highlights) - 1
			sawMarker = true

		default:
			if inBody {
				// Wrapped continuation of the open passage.
				if currentIdx >= 0 {
					doc.Highlights[currentIdx].Text += " " + line
				}
				continue
			}
			if !citationTaken {
				doc.Citation = line
				citationTaken = true
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading export: %w", err)
	}

	if !sawContent {
		return nil, ErrEmptyExport
	}
	if !sawMarker {
		return nil, fmt.Errorf("%w: no export markers found", ErrUnrecognizedFormat)
	}

	return doc, nil
}

// isIndented reports whether the raw line starts with whitespace: sub-bullet
// territory. Indentation is judged on the raw line because normalization
// trims it away.
func isIndented(raw string) bool {
	return len(raw) > 0 && (raw[0] == ' ' || raw[0] == '\t')
}

// splitTitleTags strips a bracketed tag suffix from a title line:
// "What war would look like [Prediction, Acoup]" yields the bare title and
// the bracket tags in order.
func splitTitleTags(title string) (string, []string) {
	m := titleTagsPattern.FindStringSubmatch(title)
	if m == nil {
		return title, nil
	}

	var tags []string
	for _, part := range strings.Split(m[2], ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			tags = append(tags, capitalize(part))
		}
	}
	return strings.TrimSpace(m[1]), tags
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// appendUnique appends tags preserving order, skipping duplicates.
func appendUnique(tags []string, more ...string) []string {
	for _, tag := range more {
		exists := false
		for _, t := range tags {
			if t == tag {
				exists = true
				break
			}
		}
		if !exists {
			tags = append(tags, tag)
		}
	}
	return tags
}
