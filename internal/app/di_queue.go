package app

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/allisson/dispatcher/internal/database"
	"github.com/allisson/dispatcher/internal/queue"
	queueRepository "github.com/allisson/dispatcher/internal/queue/repository"
)

// redisBlockTimeout bounds a single BLMOVE so Close is noticed promptly.
const redisBlockTimeout = 2 * time.Second

// QueuedJobRepository returns the queued job repository based on database driver.
func (c *Container) QueuedJobRepository() (queue.QueuedJobRepository, error) {
	var err error
	c.queuedJobRepoInit.Do(func() {
		c.queuedJobRepo, err = c.initQueuedJobRepository()
		if err != nil {
			c.setInitError("queuedJobRepo", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("queuedJobRepo"); storedErr != nil {
		return nil, storedErr
	}
	return c.queuedJobRepo, nil
}

// Queue returns the task queue selected by QUEUE_DRIVER.
func (c *Container) Queue() (queue.Queue, error) {
	var err error
	c.queueInit.Do(func() {
		c.queue, err = c.initQueue()
		if err != nil {
			c.setInitError("queue", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("queue"); storedErr != nil {
		return nil, storedErr
	}
	return c.queue, nil
}

func (c *Container) initQueuedJobRepository() (queue.QueuedJobRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for queued job repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverMySQL:
		return queueRepository.NewMySQLQueuedJobRepository(db), nil
	case database.DriverPostgres:
		return queueRepository.NewPostgreSQLQueuedJobRepository(db), nil
	case database.DriverSQLite:
		return queueRepository.NewSQLiteQueuedJobRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initQueue() (queue.Queue, error) {
	switch c.config.QueueDriver {
	case queue.DriverDatabase:
		txManager, err := c.TxManager()
		if err != nil {
			return nil, fmt.Errorf("failed to get tx manager for database queue: %w", err)
		}
		repo, err := c.QueuedJobRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to get queued job repository for database queue: %w", err)
		}
		return queue.NewDatabaseQueue(queue.DatabaseConfig{
			Name:              c.config.QueueName,
			PollInterval:      c.config.QueuePollInterval,
			VisibilityTimeout: c.config.QueueVisibilityTimeout,
		}, txManager, repo), nil

	case queue.DriverRabbitMQ:
		q, err := queue.OpenRabbitMQQueue(c.config.RabbitMQURL, c.config.QueueName)
		if err != nil {
			return nil, fmt.Errorf("failed to open rabbitmq queue: %w", err)
		}
		return q, nil

	case queue.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     c.config.RedisAddr,
			Password: c.config.RedisPassword,
			DB:       c.config.RedisDB,
		})
		return queue.NewRedisQueue(client, queue.RedisConfig{
			Name:         c.config.QueueName,
			BlockTimeout: redisBlockTimeout,
		}), nil

	case queue.DriverMemory:
		return queue.NewMemoryQueue(c.config.QueueVisibilityTimeout), nil

	default:
		return nil, fmt.Errorf("unsupported queue driver: %s", c.config.QueueDriver)
	}
}
