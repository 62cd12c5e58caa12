package sigverify

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
)

// Verify reports whether signature is a valid detached Ed25519 signature over
// the UTF-8 bytes of message, under the claimed public key. Public key and
// signature are base58-encoded, as produced by Solana wallets.
//
// Every failure mode, including missing inputs, bad base58, and wrong-length
// key or signature, returns false. The function never returns an error and is
// safe for concurrent use.
func Verify(publicKey, message, signature string) bool {
	if publicKey == "" || message == "" || signature == "" {
		return false
	}

	pub, err := base58.Decode(publicKey)
	if err != nil || len(pub) != ed25519.PublicKeySize {
		return false
	}

	sig, err := base58.Decode(signature)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false
	}

	return ed25519.Verify(ed25519.PublicKey(pub), []byte(message), sig)
}
