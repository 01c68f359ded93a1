package tx

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stellar/go/keypair"
	"golang.org/x/crypto/sha3"
)

// Builder collects operations and produces a signed envelope. Operations
// are appended in call order and submitted atomically in that order.
type Builder struct {
	networkPassphrase string
	sourceAccount     string
	ops               []Operation
	now               func() time.Time
}

// NewBuilder creates a builder for the given network and source account.
func NewBuilder(networkPassphrase, sourceAccount string) *Builder {
	return &Builder{
		networkPassphrase: networkPassphrase,
		sourceAccount:     sourceAccount,
		now:               time.Now,
	}
}

// AddOperation appends an operation to the transaction.
func (b *Builder) AddOperation(op Operation) *Builder {
	b.ops = append(b.ops, op)
	return b
}

// OperationCount returns the number of operations added so far.
func (b *Builder) OperationCount() int { return len(b.ops) }

// wireOperation is one operation as serialized into the envelope body.
type wireOperation struct {
	Type string    `json:"type"`
	Body Operation `json:"body"`
}

// body is the signable transaction content.
type body struct {
	SourceAccount string          `json:"source_account"`
	Reference     string          `json:"reference"`
	CreatedAt     int64           `json:"created_at"`
	Operations    []wireOperation `json:"operations"`
}

// Signature is one decorated signature over the envelope hash. The hint is
// the last four bytes of the signing public key, so a verifier can pick
// the right signer without trying every key.
type Signature struct {
	Hint      string `json:"hint"`
	Signature string `json:"signature"`
}

// Envelope is a built transaction: the canonical signable body plus any
// signatures collected so far.
type Envelope struct {
	rawBody   []byte
	networkID [32]byte

	Reference  string          `json:"reference"`
	Body       json.RawMessage `json:"body"`
	Signatures []Signature     `json:"signatures"`
}

// Build validates the collected operations and produces an unsigned
// envelope. It fails on an empty transaction or any malformed operation.
func (b *Builder) Build() (*Envelope, error) {
	if len(b.ops) == 0 {
		return nil, ErrNoOperations
	}

	wireOps := make([]wireOperation, 0, len(b.ops))
	for i, op := range b.ops {
		if err := op.Validate(); err != nil {
			return nil, fmt.Errorf("operation %d (%s): %w", i, op.Type(), err)
		}
		wireOps = append(wireOps, wireOperation{Type: op.Type(), Body: op})
	}

	// The reference doubles as an idempotency key: resubmitting the same
	// envelope must not apply the transaction twice.
	ref := uuid.NewString()

	raw, err := json.Marshal(body{
		SourceAccount: b.sourceAccount,
		Reference:     ref,
		CreatedAt:     b.now().UTC().Unix(),
		Operations:    wireOps,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding transaction body: %w", err)
	}

	return &Envelope{
		rawBody:   raw,
		networkID: sha3.Sum256([]byte(b.networkPassphrase)),
		Reference: ref,
		Body:      raw,
	}, nil
}

// Hash returns the envelope hash: SHA3-256 over the network ID followed by
// the canonical body bytes. Signatures are computed over this hash, which
// binds them to one network.
func (e *Envelope) Hash() [32]byte {
	h := sha3.New256()
	h.Write(e.networkID[:])
	h.Write(e.rawBody)

	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

// Sign signs the envelope hash with the given keypair and appends the
// decorated signature.
func (e *Envelope) Sign(kp *keypair.Full) error {
	hash := e.Hash()

	sig, err := kp.Sign(hash[:])
	if err != nil {
		return fmt.Errorf("signing envelope: %w", err)
	}

	hint := kp.Hint()
	e.Signatures = append(e.Signatures, Signature{
		Hint:      base64.StdEncoding.EncodeToString(hint[:]),
		Signature: base64.StdEncoding.EncodeToString(sig),
	})
	return nil
}
