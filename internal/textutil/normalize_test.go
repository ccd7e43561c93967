package textutil

import "testing"

func TestFormatScript(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Plain text.", "Plain text."},
		{"Action [pause] here", "Action pause here"},
		{"So excited!!! Really??", "So excited! Really?"},
		{"Wait... what", "Wait. what"},
		{"  spaced \n out  ", "spaced out"},
		{"(aside) {note}", "aside note"},
	}
	for _, tt := range tests {
		if got := FormatScript(tt.input); got != tt.want {
			t.Errorf("FormatScript(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestStripSymbols(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello, world!", "Hello world"},
		{"it's done.", "its done"},
		{"跑步，很好。", "跑步很好"},
	}
	for _, tt := range tests {
		if got := StripSymbols(tt.input); got != tt.want {
			t.Errorf("StripSymbols(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestStripNonWord(t *testing.T) {
	if got := StripNonWord("Hello, world!"); got != "Helloworld" {
		t.Errorf("StripNonWord = %q, want %q", got, "Helloworld")
	}
	if got := StripNonWord("第 一。句"); got != "第一句" {
		t.Errorf("StripNonWord = %q, want %q", got, "第一句")
	}
}

func TestTightenPunctuation(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello , world !", "Hello, world!"},
		{"word .", "word."},
		{"未加 ，空格 。", "未加，空格。"},
		{"no change.", "no change."},
	}
	for _, tt := range tests {
		if got := TightenPunctuation(tt.input); got != tt.want {
			t.Errorf("TightenPunctuation(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
