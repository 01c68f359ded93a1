// Package keystore manages the wallet at rest: BIP39 mnemonic handling,
// ed25519 account key derivation, and the encrypted seed file.
package keystore

import (
	"math"
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/tyler-smith/go-bip39"

	scriperr "github.com/scriplabs/scrip/pkg/errors"
)

var (
	// whitespaceRegex matches one or more whitespace characters.
	whitespaceRegex = regexp.MustCompile(`\s+`)

	// numberedListRegex matches numbered list prefixes like "1." "2)" "3:"
	numberedListRegex = regexp.MustCompile(`(?m)^\s*\d+[\.\)\:]\s*`)

	// bulletListRegex matches bullet prefixes like "- " "* " "• "
	bulletListRegex = regexp.MustCompile(`(?m)^\s*[-*•]\s*`)
)

// GenerateMnemonic creates a new BIP39 mnemonic phrase.
// wordCount must be 12 (128 bits entropy) or 24 (256 bits entropy).
func GenerateMnemonic(wordCount int) (string, error) {
	var bitSize int
	switch wordCount {
	case 12:
		bitSize = 128
	case 24:
		bitSize = 256
	default:
		return "", scriperr.WithDetails(scriperr.ErrInvalidMnemonic,
			map[string]string{"reason": "word count must be 12 or 24"})
	}

	entropy, err := bip39.NewEntropy(bitSize)
	if err != nil {
		return "", err
	}

	return bip39.NewMnemonic(entropy)
}

// ValidateMnemonic checks word count, word validity, and checksum. The
// returned error carries typo suggestions when misspelled words are close
// to BIP39 words.
func ValidateMnemonic(mnemonic string) error {
	if mnemonic == "" {
		return scriperr.ErrInvalidMnemonic
	}

	normalized := NormalizeMnemonicInput(mnemonic)

	words := strings.Fields(normalized)
	if len(words) != 12 && len(words) != 24 {
		return scriperr.ErrInvalidMnemonic
	}

	// MnemonicToByteArray validates word validity and the checksum
	if _, err := bip39.MnemonicToByteArray(normalized); err != nil {
		if hints := FormatTypoSuggestions(DetectTypos(normalized)); hints != "" {
			return scriperr.WithSuggestion(scriperr.ErrInvalidMnemonic, hints)
		}
		return scriperr.ErrInvalidMnemonic
	}

	return nil
}

// NormalizeMnemonicInput cleans pasted mnemonic input: lowercases,
// strips numbered-list and bullet prefixes, replaces commas with spaces,
// and collapses whitespace.
func NormalizeMnemonicInput(input string) string {
	input = strings.ToLower(input)
	input = numberedListRegex.ReplaceAllString(input, " ")
	input = bulletListRegex.ReplaceAllString(input, " ")
	input = strings.ReplaceAll(input, ",", " ")
	input = whitespaceRegex.ReplaceAllString(input, " ")
	return strings.TrimSpace(input)
}

// MnemonicToSeed converts a validated mnemonic to the 64-byte BIP39 seed.
// The returned seed must be handled securely and zeroed after use.
func MnemonicToSeed(mnemonic, passphrase string) ([]byte, error) {
	normalized := NormalizeMnemonicInput(mnemonic)

	if _, err := bip39.MnemonicToByteArray(normalized); err != nil {
		return nil, scriperr.ErrInvalidMnemonic
	}

	return bip39.NewSeed(normalized, passphrase), nil
}

// IsValidWord checks if a word is in the BIP39 word list.
func IsValidWord(word string) bool {
	word = strings.ToLower(word)
	for _, w := range bip39.GetWordList() {
		if w == word {
			return true
		}
	}
	return false
}

// MaxTypoDistance is the maximum Levenshtein distance to consider a
// suggestion. Words further away are too different to suggest.
const MaxTypoDistance = 2

// TypoInfo describes one misspelled mnemonic word and its suggestion.
type TypoInfo struct {
	// Index is the word position in the mnemonic (0-based).
	Index int
	// Word is the original (possibly misspelled) word.
	Word string
	// Suggestion is the closest BIP39 word, or empty if none found.
	Suggestion string
	// Distance is the Levenshtein distance to the suggestion.
	Distance int
}

// SuggestWord finds the closest BIP39 word to the input, or "" when
// nothing is within MaxTypoDistance.
func SuggestWord(input string) string {
	input = strings.ToLower(input)

	minDist := math.MaxInt
	var suggestion string

	for _, word := range bip39.GetWordList() {
		dist := levenshtein.ComputeDistance(input, word)
		if dist < minDist {
			minDist = dist
			suggestion = word
		}
		if dist == 0 {
			return word
		}
	}

	if minDist <= MaxTypoDistance {
		return suggestion
	}
	return ""
}

// DetectTypos scans a mnemonic phrase for words outside the BIP39 list
// and suggests corrections.
func DetectTypos(mnemonic string) []TypoInfo {
	if mnemonic == "" {
		return nil
	}

	words := strings.Fields(NormalizeMnemonicInput(mnemonic))
	var typos []TypoInfo

	for i, word := range words {
		if IsValidWord(word) {
			continue
		}
		suggestion := SuggestWord(word)
		distance := 0
		if suggestion != "" {
			distance = levenshtein.ComputeDistance(word, suggestion)
		}
		typos = append(typos, TypoInfo{
			Index:      i,
			Word:       word,
			Suggestion: suggestion,
			Distance:   distance,
		})
	}

	return typos
}

// FormatTypoSuggestions renders typo info as human-readable lines.
func FormatTypoSuggestions(typos []TypoInfo) string {
	if len(typos) == 0 {
		return ""
	}

	var b strings.Builder
	for i, typo := range typos {
		if i > 0 {
			b.WriteByte('\n')
		}
		// Word position is 1-indexed for human readability
		b.WriteString("word ")
		b.WriteString(itoa(typo.Index + 1))
		b.WriteString(": '")
		b.WriteString(typo.Word)
		b.WriteByte('\'')
		if typo.Suggestion != "" {
			b.WriteString(" - did you mean '")
			b.WriteString(typo.Suggestion)
			b.WriteString("'?")
		} else {
			b.WriteString(" is not a valid BIP39 word")
		}
	}
	return b.String()
}

// itoa converts an int to string without importing strconv.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	if n < 0 {
		return "-" + itoa(-n)
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
