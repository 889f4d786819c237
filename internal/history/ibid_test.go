package history

import "testing"

func TestIsIbid(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"ibid", true},
		{"ibid.", true},
		{"Ibid", true},
		{"Ibid.", true},
		{"IBID", true},
		{"ibidem", true},
		{"Ibidem.", true},
		{"Id.", true},
		{"id.", true},
		{"ibid, 45", true},
		{"ibid., 45", true},
		{"ibid. 123-125", true},
		{"Id. at 45", true},
		{"id. at 789", true},
		{"ibid., pp. 12-15", true},
		{"Ibid., p. 7", true},
		{"  ibid.  ", true},
		{"", false},
		{"identity", false},
		{"idaho code", false},
		{"see ibid", false},
		{"Smith, The New Property", false},
		{"https://example.com/ibid", false},
	}
	for _, tt := range tests {
		if got := IsIbid(tt.text); got != tt.want {
			t.Errorf("IsIbid(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestIbidPage(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"ibid", ""},
		{"ibid.", ""},
		{"ibid, 45", "45"},
		{"ibid., 45", "45"},
		{"ibid. 123-125", "123-125"},
		{"Id. at 789", "789"},
		{"ibid., pp. 12-15", "12-15"},
		{"Ibid., 12–15", "12–15"},
		{"not an ibid", ""},
	}
	for _, tt := range tests {
		if got := IbidPage(tt.text); got != tt.want {
			t.Errorf("IbidPage(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
