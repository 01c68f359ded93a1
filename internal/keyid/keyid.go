// Package keyid decodes the platform's string identifiers into their raw
// binary form. Account and balance IDs are strkey strings: base32 with a
// fixed version byte and a CRC16 checksum. Decoding fails on wrong
// checksum, wrong version byte, or wrong payload length.
package keyid

import (
	"github.com/stellar/go/strkey"

	scriperr "github.com/scriplabs/scrip/pkg/errors"
)

// Balance ID payloads carry a 1-byte type tag followed by a 32-byte hash.
const balanceIDPayloadLen = 33

// DecodeAccountID decodes an account ID string ('G...') into its raw
// 32-byte payload. The field name identifies which input failed when the
// intent carries more than one account reference.
func DecodeAccountID(field, s string) ([]byte, error) {
	raw, err := strkey.Decode(strkey.VersionByteAccountID, s)
	if err != nil {
		return nil, scriperr.WithCause(
			scriperr.WithDetails(scriperr.ErrInvalidAccountID, map[string]string{"field": field}),
			err,
		)
	}
	return raw, nil
}

// DecodeBalanceID decodes a balance ID string ('B...') into its raw payload.
func DecodeBalanceID(field, s string) ([]byte, error) {
	raw, err := strkey.Decode(strkey.VersionByteClaimableBalance, s)
	if err != nil {
		return nil, scriperr.WithCause(
			scriperr.WithDetails(scriperr.ErrInvalidBalanceID, map[string]string{"field": field}),
			err,
		)
	}
	if len(raw) != balanceIDPayloadLen {
		return nil, scriperr.WithDetails(scriperr.ErrInvalidBalanceID, map[string]string{"field": field})
	}
	return raw, nil
}

// EncodeAccountID encodes a raw 32-byte payload as an account ID string.
func EncodeAccountID(raw []byte) (string, error) {
	return strkey.Encode(strkey.VersionByteAccountID, raw)
}

// EncodeBalanceID encodes a raw payload as a balance ID string.
func EncodeBalanceID(raw []byte) (string, error) {
	return strkey.Encode(strkey.VersionByteClaimableBalance, raw)
}

// IsAccountID reports whether s is a well-formed account ID.
func IsAccountID(s string) bool {
	return strkey.IsValidEd25519PublicKey(s)
}
