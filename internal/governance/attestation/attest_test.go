package attestation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHMACSigner_EmptySecretFailsLoudly(t *testing.T) {
	_, err := NewHMACSigner(nil)
	assert.Error(t, err)
}

func TestHMACSigner_SignatureIs64CharHex(t *testing.T) {
	signer, err := NewHMACSigner([]byte("s3cr3t"))
	require.NoError(t, err)

	sig, err := signer.Sign("some-digest")
	require.NoError(t, err)
	assert.Len(t, sig, 64)
}

func TestHMACSigner_VerifyRoundTrip(t *testing.T) {
	signer, err := NewHMACSigner([]byte("s3cr3t"))
	require.NoError(t, err)

	sig, err := signer.Sign("digest-a")
	require.NoError(t, err)

	assert.True(t, signer.Verify("digest-a", sig))
	assert.False(t, signer.Verify("digest-b", sig))
	assert.False(t, signer.Verify("digest-a", "short"))
}

func TestJWTSigner_VerifyRoundTrip(t *testing.T) {
	signer, err := NewJWTSigner([]byte("s3cr3t"), "mcp-fusion-go")
	require.NoError(t, err)

	token, err := signer.Sign("digest-a")
	require.NoError(t, err)

	assert.True(t, signer.Verify("digest-a", token))
	assert.False(t, signer.Verify("digest-b", token))
}

func TestAttestServerDigest_SignsWhenNoExpected(t *testing.T) {
	signer, err := NewHMACSigner([]byte("s3cr3t"))
	require.NoError(t, err)
	now := time.Unix(0, 0).UTC()

	result, err := AttestServerDigest("digest-a", AttestOptions{Signer: signer}, now)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	require.NotNil(t, result.Signature)
	assert.Equal(t, "hmac", result.SignerName)
}

func TestAttestServerDigest_ExpectedMismatch(t *testing.T) {
	signer, err := NewHMACSigner([]byte("s3cr3t"))
	require.NoError(t, err)
	now := time.Unix(0, 0).UTC()
	expected := "digest-b"

	result, err := AttestServerDigest("digest-a", AttestOptions{Signer: signer, ExpectedDigest: &expected}, now)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Nil(t, result.Signature)
	assert.Contains(t, result.Error, "does not match")
}

func TestVerifyAttestation(t *testing.T) {
	signer, err := NewHMACSigner([]byte("s3cr3t"))
	require.NoError(t, err)
	now := time.Unix(0, 0).UTC()

	sig, err := signer.Sign("digest-a")
	require.NoError(t, err)

	valid := VerifyAttestation("digest-a", sig, signer, now)
	assert.True(t, valid.Valid)

	invalid := VerifyAttestation("digest-a", "wrong-signature-thats-not-even-hex-length-match", signer, now)
	assert.False(t, invalid.Valid)
	assert.NotEmpty(t, invalid.Error)
}

func TestVerifyCapabilityPin_MismatchWithFailOnMismatch_ThrowsAttestationError(t *testing.T) {
	signer, err := NewHMACSigner([]byte("s3cr3t"))
	require.NoError(t, err)
	now := time.Unix(0, 0).UTC()

	_, err = VerifyCapabilityPin("A", VerifyCapabilityPinOptions{
		Signer:         signer,
		ExpectedDigest: "B",
		FailOnMismatch: true,
	}, now)

	require.Error(t, err)
	var attErr *AttestationError
	require.True(t, errors.As(err, &attErr))
	assert.False(t, attErr.Attestation.Valid)
	assert.Contains(t, attErr.Attestation.Error, "does not match")
}

func TestVerifyCapabilityPin_MismatchWithoutFailOnMismatch_ReturnsResult(t *testing.T) {
	signer, err := NewHMACSigner([]byte("s3cr3t"))
	require.NoError(t, err)
	now := time.Unix(0, 0).UTC()

	result, err := VerifyCapabilityPin("A", VerifyCapabilityPinOptions{
		Signer:         signer,
		ExpectedDigest: "B",
		FailOnMismatch: false,
	}, now)

	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestVerifyCapabilityPin_MatchSucceeds(t *testing.T) {
	signer, err := NewHMACSigner([]byte("s3cr3t"))
	require.NoError(t, err)
	now := time.Unix(0, 0).UTC()

	result, err := VerifyCapabilityPin("A", VerifyCapabilityPinOptions{
		Signer:         signer,
		ExpectedDigest: "A",
		FailOnMismatch: true,
	}, now)

	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestBuildTrustCapability(t *testing.T) {
	signer, err := NewHMACSigner([]byte("s3cr3t"))
	require.NoError(t, err)
	now := time.Unix(0, 0).UTC()

	result, err := AttestServerDigest("digest-a", AttestOptions{Signer: signer}, now)
	require.NoError(t, err)

	trust := BuildTrustCapability(result, 5)
	assert.Equal(t, "digest-a", trust.ServerDigest)
	assert.Equal(t, 5, trust.ToolCount)
	assert.True(t, trust.Verified)
	assert.NotNil(t, trust.Signature)
}
