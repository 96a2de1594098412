package cmd

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	gerrors "gorelay/internal/errors"
	"gorelay/util"
)

func TestExecuteRejectsMalformedAddress(t *testing.T) {
	// The address is rejected before any socket is touched.
	err := Execute(context.Background(), []string{"not.an.ip"})
	require.Error(t, err)

	var ce *gerrors.ConfigError
	require.ErrorAs(t, err, &ce)
}

func TestExecuteRequiresAddress(t *testing.T) {
	err := Execute(context.Background(), []string{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "server address required")
}

func TestExecuteRejectsExtraArguments(t *testing.T) {
	err := Execute(context.Background(), []string{"192.0.2.10", "extra"})
	require.Error(t, err)

	err = Execute(context.Background(), []string{"-l", "positional"})
	require.Error(t, err)
}

func TestExecuteRejectsEchoWithoutListen(t *testing.T) {
	err := Execute(context.Background(), []string{"--echo", "192.0.2.10"})
	require.Error(t, err)
}

func TestExecuteVersion(t *testing.T) {
	require.NoError(t, Execute(context.Background(), []string{"--version"}))
}

func TestExecuteHelp(t *testing.T) {
	require.NoError(t, Execute(context.Background(), []string{"--help"}))
}

func TestExecuteListenShutsDownOnCancel(t *testing.T) {
	port, err := util.FindFreePort()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Execute(ctx, []string{"-l", "-p", strconv.Itoa(port)})
	}()

	// Give the listener a moment, then cancel.
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("listen mode did not shut down on cancel")
	}
}
