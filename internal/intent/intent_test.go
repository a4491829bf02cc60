package intent

import "testing"

func TestDetect(t *testing.T) {
	cases := []struct {
		in   string
		want Intent
	}{
		{"", Chat},
		{"hello", Chat},
		{"  Hi  ", Chat},
		{"HEY", Chat},
		{"I need help writing my scholarship essay about my volunteer work", Essay},
		{"hello there", Essay},
		{"write about resilience in 150 words", Essay},
	}
	for _, c := range cases {
		if got := Detect(c.in); got != c.want {
			t.Errorf("Detect(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
