package token

import "testing"

func TestLength(t *testing.T) {
	tok := Token{CharStart: 2, CharEnd: 5}
	if got := tok.Length(); got != 3 {
		t.Errorf("Length() = %d, want 3", got)
	}
}

func TestClassString(t *testing.T) {
	cases := map[Class]string{Dummy: "Dummy", Known: "Known", Unknown: "Unknown", Class(99): "Invalid"}
	for class, want := range cases {
		if got := class.String(); got != want {
			t.Errorf("Class(%d).String() = %q, want %q", class, got, want)
		}
	}
}
