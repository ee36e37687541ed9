package crypto

type Signer interface {
	GetCryptoType() CryptoType
	Sign(privKey PrivateKey, msg []byte) Signature
	PubKey(privKey PrivateKey) PublicKey
	Verify(pubKey PublicKey, signature Signature, msg []byte) bool
	RandomKeyPair() (publicKey PublicKey, privateKey PrivateKey, err error)
}

// SignerFor returns the signer implementing the given crypto type.
func SignerFor(typev CryptoType) Signer {
	switch typev {
	case CryptoTypeSecp256k1:
		return &SignerSecp256k1{}
	case CryptoTypeEd25519:
		return &SignerEd25519{}
	default:
		return nil
	}
}
