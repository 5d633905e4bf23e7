package itemid

import "testing"

func TestSplit(t *testing.T) {
	tests := []struct {
		id     string
		prefix string
		seq    int
		ok     bool
	}{
		{"food-app-001", "food-app", 1, true},
		{"food-main-042", "food-main", 42, true},
		{"bar-1234", "bar", 1234, true},
		{"food-app-x01", "", 0, false},
		{"food-app-", "", 0, false},
		{"007", "", 0, false},
		{"-007", "", 0, false},
		{"", "", 0, false},
	}
	for _, tc := range tests {
		prefix, seq, ok := Split(tc.id)
		if prefix != tc.prefix || seq != tc.seq || ok != tc.ok {
			t.Errorf("Split(%q) = %q, %d, %v; want %q, %d, %v", tc.id, prefix, seq, ok, tc.prefix, tc.seq, tc.ok)
		}
	}
}

func TestNext(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want int
	}{
		{"empty", nil, 1},
		{"sequential", []string{"food-app-001", "food-app-002", "food-app-003"}, 4},
		{"gaps and order", []string{"food-app-010", "food-app-002"}, 11},
		{"ignores malformed", []string{"food-app-005", "legacy", "food-app-abc"}, 6},
		{"only malformed", []string{"legacy"}, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Next(tc.ids); got != tc.want {
				t.Errorf("Next = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	if got := Format("food-bread", 5); got != "food-bread-005" {
		t.Errorf("got %q", got)
	}
	if got := Format("food-bread", 1234); got != "food-bread-1234" {
		t.Errorf("got %q", got)
	}
}

func TestSequence(t *testing.T) {
	s := NewSequence([]string{"food-app-033", "food-app-034"}, "", "food-appetizers")
	if s.Prefix() != "food-app" {
		t.Errorf("expected derived prefix food-app, got %q", s.Prefix())
	}
	if a, b := s.Take(), s.Take(); a != "food-app-035" || b != "food-app-036" {
		t.Errorf("got %q, %q", a, b)
	}

	s = NewSequence(nil, "", "food-breads")
	if id := s.Take(); id != "food-breads-001" {
		t.Errorf("fallback prefix: got %q", id)
	}

	s = NewSequence([]string{"food-app-009"}, "food-starter", "food-appetizers")
	if id := s.Take(); id != "food-starter-010" {
		t.Errorf("explicit prefix: got %q", id)
	}
}
