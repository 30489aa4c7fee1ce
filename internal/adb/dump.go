package adb

import (
	"regexp"
	"strconv"
	"strings"
)

// uiautomator dumps are a single line of XML. Attribute order within a node
// is fixed (text before bounds), so a flat scan is enough; we never need the
// tree structure, only text labels and tap targets.
var nodePattern = regexp.MustCompile(`text="([^"]*)"[^>]*bounds="\[(\d+),(\d+)\]\[(\d+),(\d+)\]"`)

var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&#10;", "\n",
)

// parseDump extracts all elements carrying visible text from a hierarchy
// dump, in document order, addressed by bounding-box center.
func parseDump(dump string) []Element {
	var elements []Element
	for _, m := range nodePattern.FindAllStringSubmatch(dump, -1) {
		text := entityReplacer.Replace(m[1])
		if strings.TrimSpace(text) == "" {
			continue
		}

		x1, _ := strconv.Atoi(m[2])
		y1, _ := strconv.Atoi(m[3])
		x2, _ := strconv.Atoi(m[4])
		y2, _ := strconv.Atoi(m[5])

		elements = append(elements, Element{
			X:    (x1 + x2) / 2,
			Y:    (y1 + y2) / 2,
			Text: text,
		})
	}
	return elements
}
