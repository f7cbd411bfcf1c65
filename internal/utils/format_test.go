package utils

import "testing"

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"a", "*"},
		{"12345", "1****"},
		{"ünïcödé", "ü******"},
		{"a very long password indeed", "a***************"},
	}
	for _, tt := range tests {
		if got := MaskSecret(tt.in); got != tt.want {
			t.Errorf("MaskSecret(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatBytesHex(t *testing.T) {
	tests := []struct {
		in    []byte
		limit int
		want  string
	}{
		{[]byte("12345"), 8, "31 32 33 34 35"},
		{[]byte("12345"), 2, "31 32 … (+3)"},
		{nil, 4, ""},
	}
	for _, tt := range tests {
		if got := FormatBytesHex(tt.in, tt.limit); got != tt.want {
			t.Errorf("FormatBytesHex(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestFormatWord(t *testing.T) {
	if got := FormatWord(0x35); got != "00000035" {
		t.Errorf("FormatWord(0x35) = %q", got)
	}
}
