package chinitsu

import (
	"slices"
	"testing"
)

func groupsEqual(a, b []Group) bool {
	return slices.EqualFunc(a, b, func(x, y Group) bool { return slices.Equal(x, y) })
}

func TestGetWinningDecomposition_Standard(t *testing.T) {
	hand := []int{1, 1, 1, 2, 3, 4, 5, 6, 7, 8, 8, 8, 9}
	got := GetWinningDecomposition(hand, 9)
	want := []Group{{9, 9}, {1, 1, 1}, {2, 3, 4}, {5, 6, 7}, {8, 8, 8}}
	if !groupsEqual(got, want) {
		t.Fatalf("decomposition expected %v, got %v", want, got)
	}
}

func TestGetWinningDecomposition_SevenPairs(t *testing.T) {
	hand := []int{1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7}
	got := GetWinningDecomposition(hand, 7)
	if len(got) != 7 {
		t.Fatalf("seven pairs expected 7 groups, got %d: %v", len(got), got)
	}
	for i, g := range got {
		if g.Kind() != GroupPair {
			t.Fatalf("group %d expected pair, got %v", i, g)
		}
		if g[0] != i+1 {
			t.Fatalf("pairs expected ascending, got %v", got)
		}
	}
}

func TestGetWinningDecomposition_NotAWait(t *testing.T) {
	hand := []int{2, 3, 4, 5}
	if got := GetWinningDecomposition(hand, 3); len(got) != 0 {
		t.Fatalf("non wait expected empty decomposition, got %v", got)
	}
	if got := GetWinningDecomposition(hand, 0); got == nil || len(got) != 0 {
		t.Fatalf("invalid tile expected empty non-nil decomposition, got %#v", got)
	}

	// 第五张 1 不存在
	if got := GetWinningDecomposition([]int{1, 1, 1, 1, 2, 3, 4}, 1); len(got) != 0 {
		t.Fatalf("fifth copy expected empty decomposition, got %v", got)
	}
	if got := GetWinningDecomposition([]int{1, 1, 1, 1}, 1); len(got) != 0 {
		t.Fatalf("fifth copy expected empty decomposition, got %v", got)
	}
	if got := GetWinningDecomposition([]int{1, 1, 1, 1, 2, 3, 4}, 4); len(got) != 3 {
		t.Fatalf("wait 4 expected 3 groups, got %v", got)
	}
}

func TestDecomposition_WrongLength(t *testing.T) {
	if got := GetWinningDecomposition([]int{2, 3, 4, 5, 0}, 5); len(got) != 0 {
		t.Fatalf("6 tiles expected empty decomposition, got %v", got)
	}
	if got := DecomposeHand([]int{1, 1, 0}); len(got) != 0 {
		t.Fatalf("3 tiles expected empty decomposition, got %v", got)
	}
}

func TestGetWinningDecomposition_DoesNotMutateHand(t *testing.T) {
	hand := []int{5, 2, 4, 3}
	GetWinningDecomposition(hand, 5)
	if !slices.Equal(hand, []int{5, 2, 4, 3}) {
		t.Fatalf("hand mutated: %v", hand)
	}
}

func checkDecomposition(t *testing.T, full []int, groups []Group) {
	t.Helper()
	if len(groups) == 0 {
		t.Fatalf("winning hand %v has empty decomposition", full)
	}
	if !slices.Equal(FlattenGroups(groups), SortHand(full)) {
		t.Fatalf("decomposition %v does not partition %v", groups, full)
	}

	pairs, sets := 0, 0
	for _, g := range groups {
		switch g.Kind() {
		case GroupPair:
			pairs++
		case GroupTriplet, GroupSequence:
			sets++
		default:
			t.Fatalf("invalid group %v in %v", g, groups)
		}
	}
	if pairs == 7 && sets == 0 {
		seen := map[int]bool{}
		for _, g := range groups {
			seen[g[0]] = true
		}
		if len(seen) != 7 {
			t.Fatalf("seven pairs must span 7 values, got %v", groups)
		}
		return
	}
	if pairs != 1 || sets != (len(full)-2)/3 {
		t.Fatalf("standard form expected 1 pair and %d sets, got %v", (len(full)-2)/3, groups)
	}
}

func TestDecomposition_PartitionsEveryWin(t *testing.T) {
	g := NewGenerator(&Options{Seed: 2024})
	checked := 0
	for i := 0; i < 600; i++ {
		length := []int{7, 10, 13}[i%3]
		hand := g.draw(length)
		for _, w := range GetWaits(hand) {
			full := append(slices.Clone(hand), w)
			if !IsWinningHand(full) {
				t.Fatalf("wait %d of %v does not win", w, hand)
			}
			checkDecomposition(t, full, GetWinningDecomposition(hand, w))
			checkDecomposition(t, full, DecomposeHand(full))
			checked++
		}
	}
	if checked == 0 {
		t.Fatalf("expected at least one tenpai hand in the sample")
	}
}

func TestGroupKind(t *testing.T) {
	cases := []struct {
		g    Group
		want GroupKind
	}{
		{Group{3, 3}, GroupPair},
		{Group{4, 4, 4}, GroupTriplet},
		{Group{7, 8, 9}, GroupSequence},
		{Group{8, 9, 10}, GroupInvalid},
		{Group{1, 2}, GroupInvalid},
		{Group{1, 3, 5}, GroupInvalid},
	}
	for _, tc := range cases {
		if got := tc.g.Kind(); got != tc.want {
			t.Fatalf("%v expected %v, got %v", tc.g, tc.want, got)
		}
	}
}
