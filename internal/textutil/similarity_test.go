package textutil

import "testing"

func TestSimilarityIdentical(t *testing.T) {
	if got := Similarity("Abbey Road", "Abbey Road"); got != 1.0 {
		t.Fatalf("expected 1.0, got %f", got)
	}
}

func TestSimilarityCaseInsensitive(t *testing.T) {
	if got := Similarity("ABBEY ROAD", "abbey road"); got != 1.0 {
		t.Fatalf("expected 1.0 after folding, got %f", got)
	}
}

func TestSimilarityRemasterSuffixStaysAboveThreshold(t *testing.T) {
	got := Similarity("Abbey Road", "Abbey Road (Remastered)")
	if got < 0.6 {
		t.Fatalf("expected ratio >= 0.6 for remaster suffix, got %f", got)
	}
}

func TestSimilarityDisjoint(t *testing.T) {
	got := Similarity("xxxx", "yyyy")
	if got != 0 {
		t.Fatalf("expected 0 for disjoint strings, got %f", got)
	}
}

func TestSimilarityBothEmpty(t *testing.T) {
	if got := Similarity("", ""); got != 1.0 {
		t.Fatalf("expected 1.0 for two empty strings, got %f", got)
	}
}

func TestFoldStripsDiacritics(t *testing.T) {
	if got := Fold("Motörhead"); got != "motorhead" {
		t.Fatalf("expected folded form, got %q", got)
	}
}

func TestContainsFold(t *testing.T) {
	if !ContainsFold("J.R.R. Tolkien", "tolkien") {
		t.Fatal("expected containment after folding")
	}
	if ContainsFold("anything", "") {
		t.Fatal("empty needle should not match")
	}
}

func TestCleanEditionSuffix(t *testing.T) {
	cases := map[string]string{
		"Heat (Blu-ray)":              "Heat",
		"Dune (4K Ultra HD)":          "Dune",
		"Avatar (3D)":                 "Avatar",
		"Alien (Limited Steelbook)":   "Alien",
		"No Edition Here":             "No Edition Here",
		"Brazil (Blu-ray) (3D)":       "Brazil",
		"Parenthetical (but kept) ok": "Parenthetical (but kept) ok",
	}
	for input, want := range cases {
		if got := CleanEditionSuffix(input); got != want {
			t.Fatalf("CleanEditionSuffix(%q) = %q, want %q", input, got, want)
		}
	}
}
