package app

import (
	"context"
	"fmt"

	licensesHTTP "github.com/allisson/licenses/internal/licenses/http"
	"github.com/allisson/licenses/internal/licenses/repository"
	licensesService "github.com/allisson/licenses/internal/licenses/service"
	licensesUseCase "github.com/allisson/licenses/internal/licenses/usecase"
	"github.com/allisson/licenses/internal/mail"
)

// KeyGenerator returns the license key generator.
func (c *Container) KeyGenerator() licensesService.KeyGenerator {
	c.keyGeneratorInit.Do(func() {
		c.keyGenerator = licensesService.NewUUIDKeyGenerator()
	})
	return c.keyGenerator
}

// LicenseRepository returns the license repository based on the store driver.
func (c *Container) LicenseRepository() (licensesUseCase.LicenseRepository, error) {
	var err error
	c.licenseRepoInit.Do(func() {
		c.licenseRepo, err = c.initLicenseRepository()
		if err != nil {
			c.initErrors["licenseRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["licenseRepo"]; exists {
		return nil, storedErr
	}
	return c.licenseRepo, nil
}

// Mailer returns the license key mailer.
func (c *Container) Mailer() (licensesUseCase.Mailer, error) {
	var err error
	c.mailerInit.Do(func() {
		c.mailer, err = mail.NewMailer(c.config)
		if err != nil {
			c.initErrors["mailer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["mailer"]; exists {
		return nil, storedErr
	}
	return c.mailer, nil
}

// LicenseUseCase returns the license use case.
func (c *Container) LicenseUseCase() (licensesUseCase.LicenseUseCase, error) {
	var err error
	c.licenseUseCaseInit.Do(func() {
		c.licenseUseCase, err = c.initLicenseUseCase()
		if err != nil {
			c.initErrors["licenseUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["licenseUseCase"]; exists {
		return nil, storedErr
	}
	return c.licenseUseCase, nil
}

// LicenseHandler returns the license HTTP handler.
func (c *Container) LicenseHandler() (*licensesHTTP.LicenseHandler, error) {
	var err error
	c.licenseHandlerInit.Do(func() {
		c.licenseHandler, err = c.initLicenseHandler()
		if err != nil {
			c.initErrors["licenseHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["licenseHandler"]; exists {
		return nil, storedErr
	}
	return c.licenseHandler, nil
}

// initLicenseRepository creates the license repository instance.
func (c *Container) initLicenseRepository() (licensesUseCase.LicenseRepository, error) {
	switch c.config.StoreDriver {
	case "postgres", "mysql":
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for license repository: %w", err)
		}
		if c.config.StoreDriver == "mysql" {
			return repository.NewMySQLLicenseRepository(db), nil
		}
		return repository.NewPostgreSQLLicenseRepository(db), nil
	case "sheets":
		if c.config.SheetsCredentialsJSON == "" || c.config.SheetsSpreadsheetID == "" {
			return nil, fmt.Errorf("sheets store requires SHEETS_CREDENTIALS_JSON and SHEETS_SPREADSHEET_ID")
		}
		repo, err := repository.NewSheetsLicenseRepository(
			context.Background(),
			[]byte(c.config.SheetsCredentialsJSON),
			c.config.SheetsSpreadsheetID,
			c.config.SheetsRange,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create sheets license repository: %w", err)
		}
		return repo, nil
	case "memory":
		// For local development without any backing store.
		return repository.NewMemoryLicenseRepository(), nil
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", c.config.StoreDriver)
	}
}

// initLicenseUseCase creates the license use case with all its dependencies,
// decorated with business metrics.
func (c *Container) initLicenseUseCase() (licensesUseCase.LicenseUseCase, error) {
	repo, err := c.LicenseRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get license repository for license use case: %w", err)
	}

	mailer, err := c.Mailer()
	if err != nil {
		return nil, fmt.Errorf("failed to get mailer for license use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for license use case: %w", err)
	}

	useCase := licensesUseCase.NewLicenseUseCase(
		repo,
		mailer,
		c.KeyGenerator(),
		c.config.ApprovedStatusCode,
		c.Logger(),
	)

	return licensesUseCase.NewLicenseUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initLicenseHandler creates the license HTTP handler.
func (c *Container) initLicenseHandler() (*licensesHTTP.LicenseHandler, error) {
	useCase, err := c.LicenseUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get license use case for license handler: %w", err)
	}

	return licensesHTTP.NewLicenseHandler(useCase, c.Logger()), nil
}
