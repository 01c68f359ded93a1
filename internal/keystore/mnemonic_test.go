package keystore

import (
	"strings"
	"testing"

	scriperr "github.com/scriplabs/scrip/pkg/errors"
)

// A known-valid 12-word BIP39 mnemonic (the all-zero entropy vector).
const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestGenerateMnemonic(t *testing.T) {
	for _, count := range []int{12, 24} {
		mnemonic, err := GenerateMnemonic(count)
		if err != nil {
			t.Fatalf("GenerateMnemonic(%d) error: %v", count, err)
		}
		if got := len(strings.Fields(mnemonic)); got != count {
			t.Errorf("GenerateMnemonic(%d) produced %d words", count, got)
		}
		if err := ValidateMnemonic(mnemonic); err != nil {
			t.Errorf("generated mnemonic failed validation: %v", err)
		}
	}
}

func TestGenerateMnemonicInvalidWordCount(t *testing.T) {
	for _, count := range []int{0, 6, 15, 25} {
		if _, err := GenerateMnemonic(count); !scriperr.Is(err, scriperr.ErrInvalidMnemonic) {
			t.Errorf("GenerateMnemonic(%d) = %v, want invalid mnemonic", count, err)
		}
	}
}

func TestValidateMnemonic(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"valid", testMnemonic, false},
		{"valid with noise", "  Abandon ABANDON abandon,abandon abandon abandon abandon abandon abandon abandon abandon about ", false},
		{"empty", "", true},
		{"wrong word count", "abandon abandon abandon", true},
		{"bad checksum", strings.Replace(testMnemonic, "about", "abandon", 1), true},
		{"unknown word", strings.Replace(testMnemonic, "about", "aboot", 1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMnemonic(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMnemonic() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateMnemonicSuggestsTypoFix(t *testing.T) {
	bad := strings.Replace(testMnemonic, "about", "abuot", 1)

	err := ValidateMnemonic(bad)
	if !scriperr.Is(err, scriperr.ErrInvalidMnemonic) {
		t.Fatalf("ValidateMnemonic() = %v", err)
	}

	var se *scriperr.ScripError
	if !scriperr.As(err, &se) {
		t.Fatal("expected a structured error")
	}
	if !strings.Contains(se.Suggestion, "about") {
		t.Errorf("suggestion %q should name the closest word", se.Suggestion)
	}
}

func TestNormalizeMnemonicInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "alpha beta", "alpha beta"},
		{"uppercase", "ALPHA Beta", "alpha beta"},
		{"commas", "alpha,beta, gamma", "alpha beta gamma"},
		{"numbered list", "1. alpha\n2) beta\n3: gamma", "alpha beta gamma"},
		{"bullets", "- alpha\n* beta\n• gamma", "alpha beta gamma"},
		{"extra whitespace", "  alpha\t\tbeta \n gamma ", "alpha beta gamma"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeMnemonicInput(tt.in); got != tt.want {
				t.Errorf("NormalizeMnemonicInput(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMnemonicToSeed(t *testing.T) {
	seed, err := MnemonicToSeed(testMnemonic, "")
	if err != nil {
		t.Fatalf("MnemonicToSeed() error: %v", err)
	}
	if len(seed) != 64 {
		t.Errorf("seed length = %d, want 64", len(seed))
	}

	// A passphrase yields a different seed
	other, err := MnemonicToSeed(testMnemonic, "trezor")
	if err != nil {
		t.Fatalf("MnemonicToSeed() with passphrase error: %v", err)
	}
	if string(seed) == string(other) {
		t.Error("passphrase should change the derived seed")
	}

	if _, err := MnemonicToSeed("not a mnemonic", ""); !scriperr.Is(err, scriperr.ErrInvalidMnemonic) {
		t.Errorf("MnemonicToSeed() of garbage = %v", err)
	}
}

func TestSuggestWord(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abandon", "abandon"}, // exact
		{"abandn", "abandon"},  // one deletion
		{"abuot", "about"},     // transposition
		{"zzzzzzzzzz", ""},     // nothing close
	}

	for _, tt := range tests {
		if got := SuggestWord(tt.in); got != tt.want {
			t.Errorf("SuggestWord(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDetectTypos(t *testing.T) {
	typos := DetectTypos("abandon abuot zzzzzzzzzz")
	if len(typos) != 2 {
		t.Fatalf("DetectTypos() found %d typos, want 2", len(typos))
	}

	if typos[0].Index != 1 || typos[0].Suggestion != "about" {
		t.Errorf("first typo = %+v", typos[0])
	}
	if typos[1].Suggestion != "" {
		t.Errorf("gibberish should have no suggestion, got %q", typos[1].Suggestion)
	}

	out := FormatTypoSuggestions(typos)
	if !strings.Contains(out, "word 2: 'abuot' - did you mean 'about'?") {
		t.Errorf("FormatTypoSuggestions() = %q", out)
	}
}
