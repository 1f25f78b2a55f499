package app

import (
	alertingUseCase "github.com/allisson/keystore/internal/alerting/usecase"
)

// AlertingUseCase returns the monitoring rule engine with the five default
// rules registered.
func (c *Container) AlertingUseCase() (alertingUseCase.UseCase, error) {
	var err error
	c.alertingUseCaseInit.Do(func() {
		c.alertingUseCase, err = c.initAlertingUseCase()
		if err != nil {
			c.initErrors["alertingUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["alertingUseCase"]; exists {
		return nil, storedErr
	}
	return c.alertingUseCase, nil
}

func (c *Container) initAlertingUseCase() (alertingUseCase.UseCase, error) {
	uc := alertingUseCase.NewAlertingUseCase()
	if err := alertingUseCase.RegisterDefaultRules(uc); err != nil {
		return nil, err
	}
	return uc, nil
}
