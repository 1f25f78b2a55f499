package app

import (
	"context"
	"fmt"

	hsmService "github.com/allisson/keystore/internal/hsm/service"
)

// HSMProvider returns the configured HSM abstraction provider.
func (c *Container) HSMProvider() (hsmService.Provider, error) {
	var err error
	c.hsmProviderInit.Do(func() {
		c.hsmProvider, err = c.initHSMProvider()
		if err != nil {
			c.initErrors["hsmProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["hsmProvider"]; exists {
		return nil, storedErr
	}
	return c.hsmProvider, nil
}

// initHSMProvider creates the HSM provider configured via HSM_PROVIDER:
// "software" for the in-process simulator, "cloud-kms" for a gocloud.dev
// secrets.Keeper-backed provider.
func (c *Container) initHSMProvider() (hsmService.Provider, error) {
	switch c.config.HSMProvider {
	case "", "software":
		aeadManager := c.AEADManager()
		if c.config.HSMOperatorSecretHash != "" {
			return hsmService.NewSoftwareSimulatorWithOperatorSecret(aeadManager, c.config.HSMOperatorSecretHash), nil
		}
		return hsmService.NewSoftwareSimulator(aeadManager), nil
	case "cloud-kms":
		if c.config.HSMKeyURI == "" {
			return nil, fmt.Errorf("HSM_KEY_URI must be set when HSM_PROVIDER=cloud-kms")
		}
		return hsmService.NewCloudKMSProvider(context.Background(), c.config.HSMKeyID, c.config.HSMKeyURI)
	default:
		return nil, fmt.Errorf("unsupported HSM provider: %s", c.config.HSMProvider)
	}
}
