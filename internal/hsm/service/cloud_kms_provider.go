package service

import (
	"context"
	"fmt"
	"time"

	"gocloud.dev/secrets"

	cryptoDomain "github.com/allisson/keystore/internal/crypto/domain"
	hsmDomain "github.com/allisson/keystore/internal/hsm/domain"

	// Register all KMS provider drivers, mirroring crypto/service.KMSService.
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
)

// CloudKMSProvider adapts a gocloud.dev/secrets.Keeper to the Provider
// interface, wrapping it the same way crypto/service.KMSService.OpenKeeper
// does for master-key unwrap. A cloud KMS holds exactly one key per keeper
// URI, so GenerateKey/ImportKey/DeleteKey are unsupported, ExportKey returns
// ErrKeyNotExtractable and ListKeys reports only that one key: key material
// never leaves the cloud provider's boundary.
type CloudKMSProvider struct {
	keyID  string
	keeper *secrets.Keeper
	state  hsmDomain.ConnectionState
}

// NewCloudKMSProvider opens a secrets.Keeper for keyURI and wraps it as a
// Provider identified by keyID.
func NewCloudKMSProvider(ctx context.Context, keyID, keyURI string) (*CloudKMSProvider, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", hsmDomain.ErrConnectionFailed, err)
	}
	return &CloudKMSProvider{keyID: keyID, keeper: keeper, state: hsmDomain.StateConnected}, nil
}

// Close releases the underlying keeper.
func (p *CloudKMSProvider) Close() error {
	return p.keeper.Close()
}

func (p *CloudKMSProvider) ConnectionState() hsmDomain.ConnectionState {
	return p.state
}

func (p *CloudKMSProvider) Connect(ctx context.Context) (*hsmDomain.OperationResult, error) {
	p.state = hsmDomain.StateConnected
	return &hsmDomain.OperationResult{Success: true, OperationID: "cloud_kms_connect"}, nil
}

func (p *CloudKMSProvider) Authenticate(ctx context.Context, credentials map[string]string) (*hsmDomain.OperationResult, error) {
	// Authentication is handled by the cloud provider's own credential chain
	// (IAM role, service principal, Vault token) at OpenKeeper time.
	p.state = hsmDomain.StateAuthenticated
	return &hsmDomain.OperationResult{Success: true, OperationID: "cloud_kms_authenticate"}, nil
}

func (p *CloudKMSProvider) GenerateKey(
	ctx context.Context,
	keyID string,
	alg cryptoDomain.Algorithm,
	attrs hsmDomain.KeyAttributes,
) (*hsmDomain.OperationResult, error) {
	return p.unsupported("cloud_kms_generate_key")
}

func (p *CloudKMSProvider) ImportKey(
	ctx context.Context,
	keyID string,
	keyMaterial []byte,
	attrs hsmDomain.KeyAttributes,
) (*hsmDomain.OperationResult, error) {
	return p.unsupported("cloud_kms_import_key")
}

func (p *CloudKMSProvider) ExportKey(ctx context.Context, keyID string) (*hsmDomain.OperationResult, error) {
	return &hsmDomain.OperationResult{
		Success:      false,
		ErrorMessage: hsmDomain.ErrKeyNotExtractable.Error(),
		OperationID:  "cloud_kms_export_key",
	}, hsmDomain.ErrKeyNotExtractable
}

func (p *CloudKMSProvider) DeleteKey(ctx context.Context, keyID string) (*hsmDomain.OperationResult, error) {
	return p.unsupported("cloud_kms_delete_key")
}

func (p *CloudKMSProvider) Encrypt(ctx context.Context, keyID string, plaintext []byte) (*hsmDomain.OperationResult, error) {
	if keyID != p.keyID {
		return &hsmDomain.OperationResult{Success: false, ErrorMessage: hsmDomain.ErrKeyNotFound.Error()}, hsmDomain.ErrKeyNotFound
	}

	start := time.Now()
	ciphertext, err := p.keeper.Encrypt(ctx, plaintext)
	if err != nil {
		return &hsmDomain.OperationResult{Success: false, ErrorMessage: err.Error()}, err
	}

	return &hsmDomain.OperationResult{
		Success:         true,
		Data:            ciphertext,
		OperationID:     "cloud_kms_encrypt",
		ExecutionTimeMs: time.Since(start).Milliseconds(),
	}, nil
}

func (p *CloudKMSProvider) Decrypt(ctx context.Context, keyID string, ciphertext []byte) (*hsmDomain.OperationResult, error) {
	if keyID != p.keyID {
		return &hsmDomain.OperationResult{Success: false, ErrorMessage: hsmDomain.ErrKeyNotFound.Error()}, hsmDomain.ErrKeyNotFound
	}

	plaintext, err := p.keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return &hsmDomain.OperationResult{Success: false, ErrorMessage: cryptoDomain.ErrDecryptionFailed.Error()}, cryptoDomain.ErrDecryptionFailed
	}

	return &hsmDomain.OperationResult{Success: true, Data: plaintext, OperationID: "cloud_kms_decrypt"}, nil
}

func (p *CloudKMSProvider) GetKeyInfo(ctx context.Context, keyID string) (*hsmDomain.OperationResult, error) {
	if keyID != p.keyID {
		return &hsmDomain.OperationResult{Success: false, ErrorMessage: hsmDomain.ErrKeyNotFound.Error()}, hsmDomain.ErrKeyNotFound
	}

	return &hsmDomain.OperationResult{
		Success: true,
		KeyInfo: &hsmDomain.KeyAttributes{
			KeyID:       p.keyID,
			KeyType:     "cloud-kms",
			Extractable: false,
			Usage:       []hsmDomain.KeyUsage{hsmDomain.KeyUsageEncrypt, hsmDomain.KeyUsageDecrypt},
		},
		OperationID: "cloud_kms_get_key_info",
	}, nil
}

func (p *CloudKMSProvider) ListKeys(ctx context.Context) (*hsmDomain.OperationResult, error) {
	return &hsmDomain.OperationResult{Success: true, KeyIDs: []string{p.keyID}, OperationID: "cloud_kms_list_keys"}, nil
}

func (p *CloudKMSProvider) HealthCheck(ctx context.Context) (*hsmDomain.OperationResult, error) {
	_, err := p.keeper.Encrypt(ctx, []byte("health-check"))
	if err != nil {
		return &hsmDomain.OperationResult{Success: false, ErrorMessage: err.Error()}, err
	}
	return &hsmDomain.OperationResult{Success: true, OperationID: "cloud_kms_health_check"}, nil
}

func (p *CloudKMSProvider) unsupported(operationID string) (*hsmDomain.OperationResult, error) {
	err := fmt.Errorf("cloud kms provider does not support key material operations")
	return &hsmDomain.OperationResult{Success: false, ErrorMessage: err.Error(), OperationID: operationID}, err
}
