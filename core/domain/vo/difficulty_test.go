package vo

import "testing"

func TestDifficulty(t *testing.T) {
	cases := []struct {
		d        Difficulty
		minWaits int
		label    string
	}{
		{DifficultyEasy, 1, "初級"},
		{DifficultyNormal, 2, "中級"},
		{DifficultyHard, 3, "上級"},
	}
	for _, tc := range cases {
		if !tc.d.Valid() {
			t.Fatalf("%d expected valid", tc.d)
		}
		if tc.d.MinWaits() != tc.minWaits {
			t.Fatalf("%d min waits expected %d, got %d", tc.d, tc.minWaits, tc.d.MinWaits())
		}
		if tc.d.Label() != tc.label {
			t.Fatalf("%d label expected %s, got %s", tc.d, tc.label, tc.d.Label())
		}
	}
	if Difficulty(4).Valid() || Difficulty(0).Valid() {
		t.Fatalf("0 and 4 expected invalid")
	}
}

func TestParseDifficulty(t *testing.T) {
	ok := map[string]Difficulty{
		"1":      DifficultyEasy,
		" 2 ":    DifficultyNormal,
		"hard":   DifficultyHard,
		"上級":     DifficultyHard,
		"Normal": DifficultyNormal,
	}
	for in, want := range ok {
		got, err := ParseDifficulty(in)
		if err != nil || got != want {
			t.Fatalf("%q expected %v, got %v (%v)", in, want, got, err)
		}
	}
	for _, in := range []string{"0", "4", "expert", ""} {
		if _, err := ParseDifficulty(in); err == nil {
			t.Fatalf("%q expected error", in)
		}
	}
}
