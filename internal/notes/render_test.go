package notes

import (
	"strings"
	"testing"

	"github.com/mrlokans/notehammer/internal/entities"
)

func TestRender_FullDocument(t *testing.T) {
	doc := &entities.NoteDocument{
		Title:    "What war would look like in 2020s",
		Source:   "acoup.blog",
		Citation: `Bret Devereaux, "Collections".`,
		Created:  "2023-11-12_20-43-04",
		Tags:     []string{"Prediction", "Acoup"},
		Highlights: []entities.Highlight{
			{Text: "Battlefields are empty.", Section: "I. The Opening", Annotation: "Compare 19th century."},
			{Text: "Dispersion is survival.", Section: "I. The Opening"},
			{Text: "Wars are won by industry.", Section: "II. Attrition"},
		},
	}

	want := `---
title: "What war would look like in 2020s"
source: "acoup.blog"
citation: "Bret Devereaux, \"Collections\"."
created: 2023-11-12_20-43-04
tags: [Prediction, Acoup]
---

## I. The Opening
- Battlefields are empty.
    - Compare 19th century.
- Dispersion is survival.

## II. Attrition
- Wars are won by industry.
`

	got := Render(doc)
	if got != want {
		t.Errorf("unexpected rendering:\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestRender_NoHighlights(t *testing.T) {
	doc := &entities.NoteDocument{Title: "An Unread Book"}

	got := Render(doc)
	if !strings.Contains(got, `title: "An Unread Book"`) {
		t.Errorf("title missing from rendering:\n%s", got)
	}
	if !strings.Contains(got, "tags: []") {
		t.Errorf("empty tag list missing from rendering:\n%s", got)
	}
	if strings.Contains(got, "- ") {
		t.Errorf("highlight bullets rendered for an empty document:\n%s", got)
	}
}

func TestRender_Deterministic(t *testing.T) {
	input := `# Stable Book [Tag]
#### somewhere
- Created: 2024-03-01_10-00-00
---
- passage one
- passage two
`

	parser := NewParser()

	first, err := parser.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := parser.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if Render(first) != Render(second) {
		t.Error("rendering the same artifact twice produced different bytes")
	}
}
