package signer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	s, err := Generate()
	require.NoError(t, err)

	payload := ReportPayload("SHIP-2025-001", "Shipment delayed due to weather conditions", 85)
	sig := s.Sign(payload)

	assert.Len(t, sig, 128, "signature should be 64 bytes hex encoded")
	assert.True(t, Verify(payload, sig, s.PublicKeyHex()))
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	s, err := Generate()
	require.NoError(t, err)

	payload := ReportPayload("SHIP-2025-001", "Shipment delayed due to weather conditions", 85)
	sig := s.Sign(payload)

	tampered := []string{
		ReportPayload("SHIP-2025-002", "Shipment delayed due to weather conditions", 85),
		ReportPayload("SHIP-2025-001", "Shipment arrived on time", 85),
		ReportPayload("SHIP-2025-001", "Shipment delayed due to weather conditions", 90),
	}
	for _, p := range tampered {
		assert.False(t, Verify(p, sig, s.PublicKeyHex()), "payload %q should not verify", p)
	}
}

func TestVerifyRejectsMismatchedKeypair(t *testing.T) {
	s1, err := Generate()
	require.NoError(t, err)
	s2, err := Generate()
	require.NoError(t, err)

	payload := ReportPayload("SHIP-1", "summary", 50)
	sig := s1.Sign(payload)

	assert.False(t, Verify(payload, sig, s2.PublicKeyHex()))
}

func TestVerifyFailsClosed(t *testing.T) {
	s, err := Generate()
	require.NoError(t, err)
	payload := ReportPayload("SHIP-1", "summary", 50)
	sig := s.Sign(payload)

	assert.False(t, Verify(payload, sig, "not-hex"))
	assert.False(t, Verify(payload, sig, "abcd"))
	assert.False(t, Verify(payload, "zz", s.PublicKeyHex()))
	assert.False(t, Verify(payload, "abcd", s.PublicKeyHex()))
	assert.False(t, Verify(payload, "", ""))
}

func TestFromHexSeedAndFullKey(t *testing.T) {
	s, err := Generate()
	require.NoError(t, err)

	// 32-byte seed round trip
	loaded, err := FromHex(s.PrivateKeyHex())
	require.NoError(t, err)
	assert.Equal(t, s.PublicKeyHex(), loaded.PublicKeyHex())

	payload := ReportPayload("SHIP-1", "summary", 50)
	assert.Equal(t, s.Sign(payload), loaded.Sign(payload), "same key must produce the same signature")
}

func TestFromHexRejectsBadInput(t *testing.T) {
	_, err := FromHex("not hex at all")
	assert.Error(t, err)

	_, err = FromHex("abcd")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "32 or 64 bytes")
}

func TestReportPayloadDeterministic(t *testing.T) {
	a := ReportPayload("SHIP-1700000000", "Truck delayed 3 hours", 82)
	b := ReportPayload("SHIP-1700000000", "Truck delayed 3 hours", 82)

	assert.Equal(t, a, b)
	assert.Equal(t, "SHIP-1700000000|Truck delayed 3 hours|82", a)
}

func TestReportPayloadPipeInSummary(t *testing.T) {
	// No escaping: the whole string is signed atomically, so a pipe in the
	// summary changes the payload but never breaks sign/verify.
	s, err := Generate()
	require.NoError(t, err)

	payload := ReportPayload("SHIP-1", "delayed | rerouted", 60)
	assert.True(t, strings.Contains(payload, "delayed | rerouted"))
	assert.True(t, Verify(payload, s.Sign(payload), s.PublicKeyHex()))
}
