package textutil

import "testing"

func TestClean_Empty(t *testing.T) {
	if got := Clean(""); got != "" {
		t.Errorf("Clean(\"\") = %q, want \"\"", got)
	}
}

func TestClean_CollapsesWhitespace(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"hello   world", "hello world"},
		{"line1\r\nline2", "line1 line2"},
		{"para1\n\n\npara2", "para1 para2"},
		{"  padded  \t text \n", "padded text"},
		{"a\nb", "a b"},
	}
	for _, c := range cases {
		if got := Clean(c.in); got != c.want {
			t.Errorf("Clean(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestClean_AlreadyClean(t *testing.T) {
	in := "write about resilience in 150 words"
	if got := Clean(in); got != in {
		t.Errorf("Clean(%q) = %q, want unchanged", in, got)
	}
}
