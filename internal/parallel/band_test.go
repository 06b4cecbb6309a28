package parallel

import "testing"

func TestSplitRows(t *testing.T) {
	tests := []struct {
		name   string
		y0, y1 int
		n      int
		want   []Band
	}{
		{"even", 0, 8, 4, []Band{{0, 2}, {2, 4}, {4, 6}, {6, 8}}},
		{"remainder", 1, 8, 3, []Band{{1, 4}, {4, 6}, {6, 8}}},
		{"more bands than rows", 2, 4, 10, []Band{{2, 3}, {3, 4}}},
		{"zero bands", 0, 5, 0, []Band{{0, 5}}},
		{"empty", 3, 3, 4, nil},
		{"inverted", 5, 2, 4, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitRows(tt.y0, tt.y1, tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitRows(%d, %d, %d) = %v, want %v", tt.y0, tt.y1, tt.n, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("band[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSplitRowsCoversRange(t *testing.T) {
	for n := 1; n <= 12; n++ {
		bands := SplitRows(1, 99, n)
		next := 1
		for _, b := range bands {
			if b.Y0 != next {
				t.Fatalf("n=%d: band %v starts at %d, want %d", n, b, b.Y0, next)
			}
			if b.Rows() <= 0 {
				t.Fatalf("n=%d: empty band %v", n, b)
			}
			next = b.Y1
		}
		if next != 99 {
			t.Errorf("n=%d: bands end at %d, want 99", n, next)
		}
	}
}
