package css

import "testing"

func TestUnquote(t *testing.T) {
	tests := []struct{ in, want string }{
		{`"base.css"`, "base.css"},
		{`'theme.css'`, "theme.css"},
		{` print.css `, "print.css"},
		{`"`, `"`},
		{`"mismatched'`, `"mismatched'`},
	}
	for _, tt := range tests {
		if got := unquote(tt.in); got != tt.want {
			t.Errorf("unquote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
