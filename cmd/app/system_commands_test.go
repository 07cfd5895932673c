package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setMemoryQueueEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_CONNECTION_STRING", ":memory:")
	t.Setenv("GATEWAY_DRIVER", "log")
	t.Setenv("QUEUE_DRIVER", "memory")
	t.Setenv("WORKER_EMBEDDED", "true")
}

func TestLoadContainer_MemoryQueueWithEmbeddedWorkers(t *testing.T) {
	setMemoryQueueEnv(t)

	container, err := loadContainer()
	require.NoError(t, err)
	assert.NoError(t, container.Shutdown(context.Background()))
}

func TestLoadContainer_MemoryQueueWithoutEmbeddedWorkers(t *testing.T) {
	setMemoryQueueEnv(t)
	t.Setenv("WORKER_EMBEDDED", "false")

	_, err := loadContainer()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WorkerEmbedded")
}

func TestLoadStandaloneContainer(t *testing.T) {
	t.Run("rejects memory queue", func(t *testing.T) {
		setMemoryQueueEnv(t)

		_, err := loadStandaloneContainer()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
		assert.Contains(t, err.Error(), "QueueDriver")
	})

	t.Run("accepts database queue", func(t *testing.T) {
		setMemoryQueueEnv(t)
		t.Setenv("QUEUE_DRIVER", "database")
		t.Setenv("WORKER_EMBEDDED", "false")

		container, err := loadStandaloneContainer()
		require.NoError(t, err)
		assert.NoError(t, container.Shutdown(context.Background()))
	})
}
