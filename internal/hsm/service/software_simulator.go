package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"

	"github.com/allisson/go-pwdhash"

	cryptoDomain "github.com/allisson/keystore/internal/crypto/domain"
	cryptoService "github.com/allisson/keystore/internal/crypto/service"
	hsmDomain "github.com/allisson/keystore/internal/hsm/domain"
)

// operatorSecretCredentialKey is the credentials map key Authenticate checks
// against the configured operator secret hash.
const operatorSecretCredentialKey = "operator_secret"

// simulatedKey is the in-memory record a SoftwareSimulator holds per key ID.
type simulatedKey struct {
	material  []byte
	algorithm cryptoDomain.Algorithm
	attrs     hsmDomain.KeyAttributes
}

// SoftwareSimulator is an in-process Provider used for local development and
// tests, grounded on the teacher's KeyManagerService: CSPRNG key generation
// and AEADManager-driven encrypt/decrypt, adapted to the HSM interface shape
// instead of the KEK/DEK envelope model.
type SoftwareSimulator struct {
	aeadManager        cryptoService.AEADManager
	hasher             *pwdhash.PasswordHasher
	operatorSecretHash string

	mu    sync.Mutex
	keys  map[string]simulatedKey
	state hsmDomain.ConnectionState
}

// NewSoftwareSimulator creates a new SoftwareSimulator backed by the given
// AEADManager. Authenticate accepts any credentials once Connect has run,
// matching a development HSM with no operator enrolled.
func NewSoftwareSimulator(aeadManager cryptoService.AEADManager) *SoftwareSimulator {
	return &SoftwareSimulator{
		aeadManager: aeadManager,
		keys:        make(map[string]simulatedKey),
		state:       hsmDomain.StateDisconnected,
	}
}

// NewSoftwareSimulatorWithOperatorSecret creates a SoftwareSimulator that
// gates Authenticate on an Argon2id-hashed operator secret, grounded on the
// teacher's SecretService: Authenticate succeeds only when credentials
// carries "operator_secret" and it verifies against hashedSecret.
func NewSoftwareSimulatorWithOperatorSecret(aeadManager cryptoService.AEADManager, hashedSecret string) *SoftwareSimulator {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
	if err != nil {
		panic(err)
	}

	return &SoftwareSimulator{
		aeadManager:        aeadManager,
		hasher:             hasher,
		operatorSecretHash: hashedSecret,
		keys:               make(map[string]simulatedKey),
		state:              hsmDomain.StateDisconnected,
	}
}

func (s *SoftwareSimulator) ConnectionState() hsmDomain.ConnectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *SoftwareSimulator) Connect(ctx context.Context) (*hsmDomain.OperationResult, error) {
	s.mu.Lock()
	s.state = hsmDomain.StateConnected
	s.mu.Unlock()
	return &hsmDomain.OperationResult{Success: true, OperationID: "simulator_connect"}, nil
}

func (s *SoftwareSimulator) Authenticate(ctx context.Context, credentials map[string]string) (*hsmDomain.OperationResult, error) {
	s.mu.Lock()
	if s.state != hsmDomain.StateConnected && s.state != hsmDomain.StateAuthenticated {
		s.mu.Unlock()
		return &hsmDomain.OperationResult{Success: false, ErrorMessage: hsmDomain.ErrNotConnected.Error()}, hsmDomain.ErrNotConnected
	}

	if s.operatorSecretHash != "" {
		ok, err := s.hasher.Verify([]byte(credentials[operatorSecretCredentialKey]), s.operatorSecretHash)
		if err != nil || !ok {
			s.mu.Unlock()
			return &hsmDomain.OperationResult{
				Success:      false,
				ErrorMessage: hsmDomain.ErrAuthenticationFailed.Error(),
			}, hsmDomain.ErrAuthenticationFailed
		}
	}

	s.state = hsmDomain.StateAuthenticated
	s.mu.Unlock()
	return &hsmDomain.OperationResult{Success: true, OperationID: "simulator_authenticate"}, nil
}

func (s *SoftwareSimulator) GenerateKey(
	ctx context.Context,
	keyID string,
	alg cryptoDomain.Algorithm,
	attrs hsmDomain.KeyAttributes,
) (*hsmDomain.OperationResult, error) {
	start := time.Now()

	material := make([]byte, 32)
	if _, err := rand.Read(material); err != nil {
		return &hsmDomain.OperationResult{Success: false, ErrorMessage: err.Error()}, err
	}

	attrs.KeyID = keyID
	attrs.Algorithm = string(alg)
	attrs.KeySizeBits = 256
	attrs.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	s.keys[keyID] = simulatedKey{material: material, algorithm: alg, attrs: attrs}
	s.mu.Unlock()

	return &hsmDomain.OperationResult{
		Success:         true,
		KeyInfo:         &attrs,
		OperationID:     "simulator_generate_key",
		ExecutionTimeMs: time.Since(start).Milliseconds(),
	}, nil
}

func (s *SoftwareSimulator) ImportKey(
	ctx context.Context,
	keyID string,
	keyMaterial []byte,
	attrs hsmDomain.KeyAttributes,
) (*hsmDomain.OperationResult, error) {
	attrs.KeyID = keyID
	attrs.KeySizeBits = len(keyMaterial) * 8
	attrs.CreatedAt = time.Now().UTC()

	alg := cryptoDomain.AESGCM
	if attrs.Algorithm == string(cryptoDomain.ChaCha20) {
		alg = cryptoDomain.ChaCha20
	}

	material := make([]byte, len(keyMaterial))
	copy(material, keyMaterial)

	s.mu.Lock()
	s.keys[keyID] = simulatedKey{material: material, algorithm: alg, attrs: attrs}
	s.mu.Unlock()

	return &hsmDomain.OperationResult{Success: true, KeyInfo: &attrs, OperationID: "simulator_import_key"}, nil
}

func (s *SoftwareSimulator) ExportKey(ctx context.Context, keyID string) (*hsmDomain.OperationResult, error) {
	s.mu.Lock()
	key, ok := s.keys[keyID]
	s.mu.Unlock()

	if !ok {
		return &hsmDomain.OperationResult{Success: false, ErrorMessage: hsmDomain.ErrKeyNotFound.Error()}, hsmDomain.ErrKeyNotFound
	}
	if !key.attrs.Extractable {
		return &hsmDomain.OperationResult{Success: false, ErrorMessage: hsmDomain.ErrKeyNotExtractable.Error()}, hsmDomain.ErrKeyNotExtractable
	}

	data := make([]byte, len(key.material))
	copy(data, key.material)
	return &hsmDomain.OperationResult{Success: true, Data: data, OperationID: "simulator_export_key"}, nil
}

func (s *SoftwareSimulator) DeleteKey(ctx context.Context, keyID string) (*hsmDomain.OperationResult, error) {
	s.mu.Lock()
	_, ok := s.keys[keyID]
	delete(s.keys, keyID)
	s.mu.Unlock()

	if !ok {
		return &hsmDomain.OperationResult{Success: false, ErrorMessage: hsmDomain.ErrKeyNotFound.Error()}, hsmDomain.ErrKeyNotFound
	}
	return &hsmDomain.OperationResult{Success: true, OperationID: "simulator_delete_key"}, nil
}

func (s *SoftwareSimulator) Encrypt(ctx context.Context, keyID string, plaintext []byte) (*hsmDomain.OperationResult, error) {
	key, err := s.lookupKey(keyID)
	if err != nil {
		return &hsmDomain.OperationResult{Success: false, ErrorMessage: err.Error()}, err
	}

	aead, err := s.aeadManager.CreateCipher(key.material, key.algorithm)
	if err != nil {
		return &hsmDomain.OperationResult{Success: false, ErrorMessage: err.Error()}, err
	}

	ciphertext, nonce, err := aead.Encrypt(plaintext, nil)
	if err != nil {
		return &hsmDomain.OperationResult{Success: false, ErrorMessage: err.Error()}, err
	}

	return &hsmDomain.OperationResult{Success: true, Data: prependNonce(nonce, ciphertext), OperationID: "simulator_encrypt"}, nil
}

func (s *SoftwareSimulator) Decrypt(ctx context.Context, keyID string, ciphertext []byte) (*hsmDomain.OperationResult, error) {
	key, err := s.lookupKey(keyID)
	if err != nil {
		return &hsmDomain.OperationResult{Success: false, ErrorMessage: err.Error()}, err
	}

	nonce, data, err := splitNonce(ciphertext)
	if err != nil {
		return &hsmDomain.OperationResult{Success: false, ErrorMessage: err.Error()}, err
	}

	aead, err := s.aeadManager.CreateCipher(key.material, key.algorithm)
	if err != nil {
		return &hsmDomain.OperationResult{Success: false, ErrorMessage: err.Error()}, err
	}

	plaintext, err := aead.Decrypt(data, nonce, nil)
	if err != nil {
		return &hsmDomain.OperationResult{Success: false, ErrorMessage: cryptoDomain.ErrDecryptionFailed.Error()}, cryptoDomain.ErrDecryptionFailed
	}

	return &hsmDomain.OperationResult{Success: true, Data: plaintext, OperationID: "simulator_decrypt"}, nil
}

func (s *SoftwareSimulator) GetKeyInfo(ctx context.Context, keyID string) (*hsmDomain.OperationResult, error) {
	key, err := s.lookupKey(keyID)
	if err != nil {
		return &hsmDomain.OperationResult{Success: false, ErrorMessage: err.Error()}, err
	}
	attrs := key.attrs
	return &hsmDomain.OperationResult{Success: true, KeyInfo: &attrs, OperationID: "simulator_get_key_info"}, nil
}

func (s *SoftwareSimulator) ListKeys(ctx context.Context) (*hsmDomain.OperationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.keys))
	for id := range s.keys {
		ids = append(ids, id)
	}
	return &hsmDomain.OperationResult{Success: true, KeyIDs: ids, OperationID: "simulator_list_keys"}, nil
}

func (s *SoftwareSimulator) HealthCheck(ctx context.Context) (*hsmDomain.OperationResult, error) {
	state := s.ConnectionState()
	healthy := state == hsmDomain.StateConnected || state == hsmDomain.StateAuthenticated
	return &hsmDomain.OperationResult{Success: healthy, OperationID: "simulator_health_check"}, nil
}

func (s *SoftwareSimulator) lookupKey(keyID string) (simulatedKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key, ok := s.keys[keyID]
	if !ok {
		return simulatedKey{}, hsmDomain.ErrKeyNotFound
	}
	return key, nil
}

// prependNonce and splitNonce frame the nonce alongside the ciphertext using
// a fixed 4-byte big-endian length prefix, since HSM Encrypt/Decrypt
// operates on opaque byte slices rather than the domain's EncryptedBlob.
func prependNonce(nonce, ciphertext []byte) []byte {
	out := make([]byte, 4+len(nonce)+len(ciphertext))
	binary.BigEndian.PutUint32(out[:4], uint32(len(nonce)))
	copy(out[4:], nonce)
	copy(out[4+len(nonce):], ciphertext)
	return out
}

func splitNonce(framed []byte) (nonce, ciphertext []byte, err error) {
	if len(framed) < 4 {
		return nil, nil, cryptoDomain.ErrDecryptionFailed
	}
	nonceLen := binary.BigEndian.Uint32(framed[:4])
	if uint32(len(framed)) < 4+nonceLen {
		return nil, nil, cryptoDomain.ErrDecryptionFailed
	}
	return framed[4 : 4+nonceLen], framed[4+nonceLen:], nil
}
