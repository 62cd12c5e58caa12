package sigverify

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/mr-tron/base58"
)

// signedTriple generates a keypair and returns a base58 (publicKey, signature)
// pair over the given message.
func signedTriple(t *testing.T, message string) (string, string) {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate keypair: %v", err)
	}

	sig := ed25519.Sign(priv, []byte(message))
	return base58.Encode(pub), base58.Encode(sig)
}

func TestVerify_ValidSignature(t *testing.T) {
	message := "solpin upload challenge 2024-01-01T00:00:00Z"
	pubKey, sig := signedTriple(t, message)

	if !Verify(pubKey, message, sig) {
		t.Fatal("expected valid signature to verify")
	}
}

func TestVerify_MutatedInputs(t *testing.T) {
	message := "prove wallet ownership"
	pubKey, sig := signedTriple(t, message)

	// Different message
	if Verify(pubKey, message+"x", sig) {
		t.Error("expected verification to fail for a different message")
	}

	// Signature from a different key
	_, otherSig := signedTriple(t, message)
	if Verify(pubKey, message, otherSig) {
		t.Error("expected verification to fail for another key's signature")
	}

	// Different public key
	otherPub, _ := signedTriple(t, message)
	if Verify(otherPub, message, sig) {
		t.Error("expected verification to fail under a different public key")
	}
}

func TestVerify_MalformedInputs(t *testing.T) {
	message := "hello"
	pubKey, sig := signedTriple(t, message)

	cases := []struct {
		name      string
		publicKey string
		message   string
		signature string
	}{
		{"empty public key", "", message, sig},
		{"empty message", pubKey, "", sig},
		{"empty signature", pubKey, message, ""},
		{"non-base58 public key", "0OIl", message, sig},
		{"non-base58 signature", pubKey, message, "0OIl"},
		{"short public key", base58.Encode([]byte{1, 2, 3}), message, sig},
		{"short signature", pubKey, message, base58.Encode([]byte{1, 2, 3})},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if Verify(tc.publicKey, tc.message, tc.signature) {
				t.Errorf("expected verification to fail")
			}
		})
	}
}
