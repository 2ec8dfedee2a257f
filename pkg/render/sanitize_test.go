package render

import "testing"

func TestPlainText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "model unavailable", "model unavailable"},
		{"blank", "   ", ""},
		{"tags stripped", "<b>model</b> down", "model down"},
		{"script dropped", "bad<script>alert(1)</script>", "bad"},
		{"entities kept as text", "a & b < c", "a & b < c"},
		{"trimmed", "  spaced  ", "spaced"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PlainText(tc.in); got != tc.want {
				t.Fatalf("PlainText(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
