package adb

import "testing"

func TestParseDump(t *testing.T) {
	dump := `<?xml version='1.0' encoding='UTF-8' standalone='yes' ?>` +
		`<hierarchy rotation="0">` +
		`<node index="0" text="Library" resource-id="com.amazon.kindle:id/tab" class="android.widget.TextView" bounds="[0,100][200,200]"/>` +
		`<node index="1" text="" resource-id="" class="android.widget.FrameLayout" bounds="[0,0][1080,1920]"/>` +
		`<node index="2" text="Dune &amp; Messiah" resource-id="" class="android.widget.TextView" bounds="[100,300][980,400]"/>` +
		`</hierarchy>`

	elements := parseDump(dump)
	if len(elements) != 2 {
		t.Fatalf("expected 2 elements with text, got %d", len(elements))
	}

	first := elements[0]
	if first.Text != "Library" {
		t.Errorf("unexpected text: %q", first.Text)
	}
	if first.X != 100 || first.Y != 150 {
		t.Errorf("expected center (100,150), got (%d,%d)", first.X, first.Y)
	}

	second := elements[1]
	if second.Text != "Dune & Messiah" {
		t.Errorf("XML entities should be decoded, got %q", second.Text)
	}
	if second.X != 540 || second.Y != 350 {
		t.Errorf("expected center (540,350), got (%d,%d)", second.X, second.Y)
	}
}

func TestParseDump_Empty(t *testing.T) {
	if elements := parseDump(""); len(elements) != 0 {
		t.Errorf("expected no elements, got %d", len(elements))
	}
}
