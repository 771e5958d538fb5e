package exec

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandExecutor_Run(t *testing.T) {
	executor := NewCommandExecutor(0)

	t.Run("should execute a simple command successfully", func(t *testing.T) {
		result, err := executor.Run("echo", "hello world")
		require.NoError(t, err)
		assert.Equal(t, "hello world\n", result.Stdout)
		assert.Empty(t, result.Stderr)
		assert.True(t, result.Success())
	})

	t.Run("should capture stderr", func(t *testing.T) {
		result, err := executor.Run("sh", "-c", "echo 'hello stderr' 1>&2")
		require.NoError(t, err)
		assert.Empty(t, result.Stdout)
		assert.Equal(t, "hello stderr\n", result.Stderr)
	})

	t.Run("should handle non-zero exit codes", func(t *testing.T) {
		result, err := executor.Run("sh", "-c", "exit 42")
		require.NoError(t, err)
		assert.Equal(t, 42, result.ExitCode)
		assert.False(t, result.Success())
	})

	t.Run("should return error for non-existent command", func(t *testing.T) {
		result, err := executor.Run("this_command_does_not_exist_12345")
		assert.Error(t, err)
		assert.Nil(t, result)
	})
}

func TestCommandExecutor_Timeout(t *testing.T) {
	t.Run("should stop commands that run too long", func(t *testing.T) {
		executor := NewCommandExecutor(100 * time.Millisecond)
		_, err := executor.Run("sleep", "5")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrTimeout))
	})

	t.Run("should not affect fast commands", func(t *testing.T) {
		executor := NewCommandExecutor(5 * time.Second)
		result, err := executor.Run("true")
		require.NoError(t, err)
		assert.Equal(t, 0, result.ExitCode)
	})
}
