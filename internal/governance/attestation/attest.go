package attestation

import (
	"fmt"
	"time"
)

// Result is the outcome of an attestation operation (§3 AttestationResult).
type Result struct {
	Valid          bool
	ComputedDigest string
	ExpectedDigest *string
	Signature      *string
	SignerName     string
	AttestedAt     time.Time
	Error          string
}

// AttestationError is the distinguishable error verifyCapabilityPin raises
// when failOnMismatch is set and the expected digest does not match —
// the one exception-for-control-flow the governance core raises (§4.8,
// §7 error taxonomy).
type AttestationError struct {
	Attestation Result
}

func (e *AttestationError) Error() string {
	return fmt.Sprintf("attestation: %s", e.Attestation.Error)
}

// AttestOptions configures AttestServerDigest.
type AttestOptions struct {
	Signer         Signer
	ExpectedDigest *string
}

// AttestServerDigest signs a ServerDigest's digest field, or refuses to
// when an expected digest is present and differs (§4.8).
func AttestServerDigest(digest string, opts AttestOptions, now time.Time) (Result, error) {
	if opts.ExpectedDigest != nil && *opts.ExpectedDigest != digest {
		return Result{
			Valid:          false,
			ComputedDigest: digest,
			ExpectedDigest: opts.ExpectedDigest,
			SignerName:     opts.Signer.Name(),
			AttestedAt:     now,
			Error:          fmt.Sprintf("computed digest %s does not match expected digest %s", digest, *opts.ExpectedDigest),
		}, nil
	}

	signature, err := opts.Signer.Sign(digest)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Valid:          true,
		ComputedDigest: digest,
		ExpectedDigest: opts.ExpectedDigest,
		Signature:      &signature,
		SignerName:     opts.Signer.Name(),
		AttestedAt:     now,
	}, nil
}

// VerifyAttestation checks a previously-produced signature against a
// digest (§4.8).
func VerifyAttestation(digest string, signature string, signer Signer, now time.Time) Result {
	valid := signer.Verify(digest, signature)
	result := Result{
		Valid:          valid,
		ComputedDigest: digest,
		Signature:      &signature,
		SignerName:     signer.Name(),
		AttestedAt:     now,
	}
	if !valid {
		result.Error = "signature does not verify against the computed digest"
	}
	return result
}

// VerifyCapabilityPinOptions configures VerifyCapabilityPin.
type VerifyCapabilityPinOptions struct {
	Signer         Signer
	ExpectedDigest string
	FailOnMismatch bool
}

// VerifyCapabilityPin enforces that a server's current digest matches a
// precomputed expected pin. On mismatch with FailOnMismatch set it raises
// an *AttestationError carrying the full (failed) Result (§4.8).
func VerifyCapabilityPin(digest string, opts VerifyCapabilityPinOptions, now time.Time) (Result, error) {
	expected := opts.ExpectedDigest
	attestOpts := AttestOptions{Signer: opts.Signer, ExpectedDigest: &expected}

	result, err := AttestServerDigest(digest, attestOpts, now)
	if err != nil {
		return Result{}, err
	}

	if !result.Valid && opts.FailOnMismatch {
		return result, &AttestationError{Attestation: result}
	}
	return result, nil
}

// TrustCapability is the compact trust summary a collaborator embeds in a
// server-ready manifest (§4.8).
type TrustCapability struct {
	ServerDigest string
	Signature    *string
	ToolCount    int
	Verified     bool
}

// BuildTrustCapability projects an attestation Result into a TrustCapability.
func BuildTrustCapability(attestation Result, toolCount int) TrustCapability {
	return TrustCapability{
		ServerDigest: attestation.ComputedDigest,
		Signature:    attestation.Signature,
		ToolCount:    toolCount,
		Verified:     attestation.Valid,
	}
}
