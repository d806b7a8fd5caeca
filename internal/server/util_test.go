package server

import (
	"strings"
	"testing"
)

func TestNewRoomCodeShape(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := newRoomCode()
		if len(code) != roomCodeLength {
			t.Fatalf("expected %d-char code, got %q", roomCodeLength, code)
		}
		for _, r := range code {
			if !strings.ContainsRune(codeAlphabet, r) {
				t.Fatalf("code %q contains %q outside the alphabet", code, r)
			}
		}
		seen[code] = true
	}
	if len(seen) < 90 {
		t.Fatalf("expected near-unique codes, got %d distinct out of 100", len(seen))
	}
}

func TestNewHostTokenShape(t *testing.T) {
	token := newHostToken()
	if len(token) != hostTokenLength {
		t.Fatalf("expected %d-char token, got %d", hostTokenLength, len(token))
	}
	for _, r := range token {
		if !strings.ContainsRune(tokenAlphabet, r) {
			t.Fatalf("token contains %q outside the alphabet", r)
		}
	}
	if token == newHostToken() {
		t.Fatal("expected distinct tokens")
	}
}

func TestHostTokenSymbolsRoughlyUniform(t *testing.T) {
	counts := make(map[rune]int, len(tokenAlphabet))
	const tokens = 400 // 12800 characters, ~355 expected per symbol
	for i := 0; i < tokens; i++ {
		for _, r := range newHostToken() {
			counts[r]++
		}
	}
	expected := tokens * hostTokenLength / len(tokenAlphabet)
	for _, r := range tokenAlphabet {
		if counts[r] < expected/2 || counts[r] > expected*2 {
			t.Fatalf("symbol %q appeared %d times, expected around %d", r, counts[r], expected)
		}
	}
}

func TestValidateName(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"Ada", "Ada", false},
		{"  Ada Lovelace  ", "Ada Lovelace", false},
		{"Ada \t Lovelace", "Ada Lovelace", false},
		{"", "", true},
		{"   ", "", true},
		{strings.Repeat("x", 30), strings.Repeat("x", 30), false},
		{strings.Repeat("x", 31), "", true},
		{strings.Repeat("ü", 30), strings.Repeat("ü", 30), false},
	}
	for _, tc := range cases {
		got, err := validateName(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("expected error for %q", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestValidateCode(t *testing.T) {
	if _, err := validateCode("abcd23"); err != nil {
		t.Fatalf("expected lowercase code to normalize: %v", err)
	}
	if got, _ := validateCode(" abcd23 "); got != "ABCD23" {
		t.Fatalf("expected ABCD23, got %q", got)
	}
	for _, bad := range []string{"", "ABC", "ABCD234X2", "ABCD0O", "ABCD1I"} {
		if _, err := validateCode(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
