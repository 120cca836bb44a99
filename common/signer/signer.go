// Package signer provides Ed25519 signing of oracle report payloads.
//
// The signed message is the SHA-256 digest of a canonical pipe-delimited
// payload string, matching what the on-chain contract verifies.
package signer

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Signer holds the oracle keypair for the lifetime of the process.
// It is read-only after construction and safe for concurrent use.
type Signer struct {
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
}

// Generate creates a Signer with a fresh Ed25519 keypair.
// The key is not persisted; callers that need a stable oracle identity must
// save PrivateKeyHex and configure it on the next start.
func Generate() (*Signer, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate keypair: %w", err)
	}
	return &Signer{priv: priv, pub: pub}, nil
}

// FromHex loads a Signer from a hex-encoded private key.
// Both a 32-byte seed and a full 64-byte private key are accepted.
func FromHex(privateKeyHex string) (*Signer, error) {
	raw, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("decode private key: %w", err)
	}

	var priv ed25519.PrivateKey
	switch len(raw) {
	case ed25519.SeedSize:
		priv = ed25519.NewKeyFromSeed(raw)
	case ed25519.PrivateKeySize:
		priv = ed25519.PrivateKey(raw)
	default:
		return nil, fmt.Errorf("private key must be %d or %d bytes, got %d",
			ed25519.SeedSize, ed25519.PrivateKeySize, len(raw))
	}

	return &Signer{priv: priv, pub: priv.Public().(ed25519.PublicKey)}, nil
}

// PrivateKeyHex returns the hex-encoded 32-byte seed.
func (s *Signer) PrivateKeyHex() string {
	return hex.EncodeToString(s.priv.Seed())
}

// PublicKeyHex returns the hex-encoded public key.
func (s *Signer) PublicKeyHex() string {
	return hex.EncodeToString(s.pub)
}

// ReportPayload builds the canonical signing payload for a report.
// The payload is pipe-delimited with no escaping: it is signed and verified
// as an atomic string and must never be parsed back into fields, since a
// summary containing '|' is indistinguishable from a field boundary.
func ReportPayload(shipmentID, summary string, confidence int) string {
	return fmt.Sprintf("%s|%s|%d", shipmentID, summary, confidence)
}

// Sign signs the SHA-256 digest of the payload and returns the signature as
// a 128-character hex string.
func (s *Signer) Sign(payload string) string {
	digest := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(ed25519.Sign(s.priv, digest[:]))
}

// Verify checks signatureHex against the SHA-256 digest of payload using the
// hex-encoded public key. It fails closed: malformed keys or signatures
// return false rather than an error.
func Verify(payload, signatureHex, publicKeyHex string) bool {
	pub, err := hex.DecodeString(publicKeyHex)
	if err != nil || len(pub) != ed25519.PublicKeySize {
		return false
	}

	sig, err := hex.DecodeString(signatureHex)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false
	}

	digest := sha256.Sum256([]byte(payload))
	return ed25519.Verify(ed25519.PublicKey(pub), digest[:], sig)
}
