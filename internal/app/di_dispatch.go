package app

import (
	"context"
	"fmt"

	"github.com/allisson/dispatcher/internal/database"
	dispatchHTTP "github.com/allisson/dispatcher/internal/dispatch/http"
	dispatchRepository "github.com/allisson/dispatcher/internal/dispatch/repository"
	dispatchService "github.com/allisson/dispatcher/internal/dispatch/service"
	dispatchUseCase "github.com/allisson/dispatcher/internal/dispatch/usecase"
)

// DispatchRecordRepository returns the outcome store based on database driver.
func (c *Container) DispatchRecordRepository() (dispatchUseCase.DispatchRecordRepository, error) {
	var err error
	c.dispatchRecordRepoInit.Do(func() {
		c.dispatchRecordRepo, err = c.initDispatchRecordRepository()
		if err != nil {
			c.setInitError("dispatchRecordRepo", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("dispatchRecordRepo"); storedErr != nil {
		return nil, storedErr
	}
	return c.dispatchRecordRepo, nil
}

// DeliveryGateway returns the gateway selected by GATEWAY_DRIVER.
func (c *Container) DeliveryGateway() (dispatchUseCase.DeliveryGateway, error) {
	var err error
	c.deliveryGatewayInit.Do(func() {
		c.deliveryGateway, err = c.initDeliveryGateway()
		if err != nil {
			c.setInitError("deliveryGateway", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("deliveryGateway"); storedErr != nil {
		return nil, storedErr
	}
	return c.deliveryGateway, nil
}

// DispatchUseCase returns the submit and history use case, instrumented when
// metrics are enabled.
func (c *Container) DispatchUseCase() (dispatchUseCase.DispatchUseCase, error) {
	var err error
	c.dispatchUseCaseInit.Do(func() {
		c.dispatchUseCase, err = c.initDispatchUseCase()
		if err != nil {
			c.setInitError("dispatchUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("dispatchUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.dispatchUseCase, nil
}

// WorkerUseCase returns the dispatch worker pool.
func (c *Container) WorkerUseCase() (dispatchUseCase.WorkerUseCase, error) {
	var err error
	c.workerUseCaseInit.Do(func() {
		c.workerUseCase, err = c.initWorkerUseCase()
		if err != nil {
			c.setInitError("workerUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("workerUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.workerUseCase, nil
}

// DispatchHandler returns the HTTP handler for the dispatch API.
func (c *Container) DispatchHandler() (*dispatchHTTP.DispatchHandler, error) {
	var err error
	c.dispatchHandlerInit.Do(func() {
		c.dispatchHandler, err = c.initDispatchHandler()
		if err != nil {
			c.setInitError("dispatchHandler", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("dispatchHandler"); storedErr != nil {
		return nil, storedErr
	}
	return c.dispatchHandler, nil
}

func (c *Container) initDispatchRecordRepository() (dispatchUseCase.DispatchRecordRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for dispatch record repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverMySQL:
		return dispatchRepository.NewMySQLDispatchRecordRepository(db), nil
	case database.DriverPostgres:
		return dispatchRepository.NewPostgreSQLDispatchRecordRepository(db), nil
	case database.DriverSQLite:
		return dispatchRepository.NewSQLiteDispatchRecordRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initDeliveryGateway() (dispatchUseCase.DeliveryGateway, error) {
	switch c.config.GatewayDriver {
	case dispatchService.DriverLog:
		return dispatchService.NewLogGateway(c.Logger()), nil

	case dispatchService.DriverSMTP:
		password, err := dispatchService.ResolvePassword(
			context.Background(),
			dispatchService.OpenKeeper,
			c.config.SMTPPasswordKeeperURI,
			c.config.SMTPPassword,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve smtp password: %w", err)
		}

		gateway, err := dispatchService.NewSMTPGateway(dispatchService.SMTPConfig{
			Host:     c.config.SMTPHost,
			Port:     c.config.SMTPPort,
			TLSMode:  c.config.SMTPTLSMode,
			Username: c.config.SMTPUsername,
			Password: password,
			From:     c.config.SMTPFrom,
			Subject:  c.config.SMTPSubject,
			Timeout:  c.config.SMTPTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create smtp gateway: %w", err)
		}
		return gateway, nil

	default:
		return nil, fmt.Errorf("unsupported gateway driver: %s", c.config.GatewayDriver)
	}
}

func (c *Container) initDispatchUseCase() (dispatchUseCase.DispatchUseCase, error) {
	q, err := c.Queue()
	if err != nil {
		return nil, fmt.Errorf("failed to get queue for dispatch use case: %w", err)
	}

	recordRepo, err := c.DispatchRecordRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get dispatch record repository for dispatch use case: %w", err)
	}

	useCase := dispatchUseCase.NewDispatchUseCase(q, recordRepo)

	if !c.config.MetricsEnabled {
		return useCase, nil
	}

	dispatchMetrics, err := c.DispatchMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get dispatch metrics for dispatch use case: %w", err)
	}

	return dispatchUseCase.NewDispatchUseCaseWithMetrics(useCase, dispatchMetrics), nil
}

func (c *Container) initWorkerUseCase() (dispatchUseCase.WorkerUseCase, error) {
	q, err := c.Queue()
	if err != nil {
		return nil, fmt.Errorf("failed to get queue for worker: %w", err)
	}

	recordRepo, err := c.DispatchRecordRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get dispatch record repository for worker: %w", err)
	}

	gateway, err := c.DeliveryGateway()
	if err != nil {
		return nil, fmt.Errorf("failed to get delivery gateway for worker: %w", err)
	}

	deliveryMetrics, err := c.DeliveryMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get delivery metrics for worker: %w", err)
	}

	return dispatchUseCase.NewWorkerUseCase(
		dispatchUseCase.WorkerConfig{
			Concurrency:      c.config.WorkerConcurrency,
			ErrorBackoff:     c.config.WorkerErrorBackoff,
			ErrorLogInterval: c.config.WorkerErrorLogInterval,
		},
		q,
		recordRepo,
		gateway,
		deliveryMetrics,
		c.Logger(),
	), nil
}

func (c *Container) initDispatchHandler() (*dispatchHTTP.DispatchHandler, error) {
	useCase, err := c.DispatchUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get dispatch use case for handler: %w", err)
	}
	return dispatchHTTP.NewDispatchHandler(useCase, c.Logger()), nil
}
