package electionstore

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"sync"
)

// KeyStore supplies the per-election RSA keypair, generating it lazily and
// exactly once. Concurrent first-access requests converge on a single
// persisted keypair via a per-election in-process lock: this process is
// the sole writer of Election rows, so a lock striped by election id gives
// the same observable guarantee as a database-level atomic set-if-null
// without needing one.
type KeyStore struct {
	store *Store
	bits  int

	locks sync.Map // election id -> *sync.Mutex
}

// NewKeyStore returns a KeyStore that generates bits-sized RSA keys.
func NewKeyStore(store *Store, bits int) *KeyStore {
	return &KeyStore{store: store, bits: bits}
}

func (k *KeyStore) lockFor(id string) *sync.Mutex {
	v, _ := k.locks.LoadOrStore(id, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// GetKeys returns the election's RSA keypair, generating and persisting one
// on first use. Keys, once generated, are immutable for the life of the
// election.
func (k *KeyStore) GetKeys(electionID string) (*rsa.PublicKey, *rsa.PrivateKey, error) {
	lock := k.lockFor(electionID)
	lock.Lock()
	defer lock.Unlock()

	e, err := k.store.Get(electionID)
	if err != nil {
		return nil, nil, err
	}

	if e.HasKeys() {
		return decodeKeys(e)
	}

	priv, err := rsa.GenerateKey(rand.Reader, k.bits)
	if err != nil {
		return nil, nil, fmt.Errorf("electionstore: generate key: %w", err)
	}

	e.PrivateKeyPEM = pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(priv),
	})
	e.PublicKeyPEM = pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PUBLIC KEY",
		Bytes: x509.MarshalPKCS1PublicKey(&priv.PublicKey),
	})

	if err := k.store.Put(e); err != nil {
		return nil, nil, fmt.Errorf("electionstore: persist key: %w", err)
	}

	return &priv.PublicKey, priv, nil
}

// PublicKeyPEM returns just the public key, for the unauthenticated export
// endpoint.
func (k *KeyStore) PublicKeyPEM(electionID string) ([]byte, error) {
	e, err := k.store.Get(electionID)
	if err != nil {
		return nil, err
	}
	if e.HasKeys() {
		return e.PublicKeyPEM, nil
	}
	pub, _, err := k.GetKeys(electionID)
	if err != nil {
		return nil, err
	}
	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PUBLIC KEY",
		Bytes: x509.MarshalPKCS1PublicKey(pub),
	}), nil
}

func decodeKeys(e *Election) (*rsa.PublicKey, *rsa.PrivateKey, error) {
	privBlock, _ := pem.Decode(e.PrivateKeyPEM)
	if privBlock == nil {
		return nil, nil, fmt.Errorf("electionstore: %s: malformed private key PEM", e.ID)
	}
	priv, err := x509.ParsePKCS1PrivateKey(privBlock.Bytes)
	if err != nil {
		return nil, nil, fmt.Errorf("electionstore: %s: parse private key: %w", e.ID, err)
	}
	return &priv.PublicKey, priv, nil
}
