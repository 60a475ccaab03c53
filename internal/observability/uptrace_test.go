package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/tactics-board/internal/config"
	"github.com/riskibarqy/tactics-board/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledReason(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{name: "disabled", cfg: config.Config{UptraceDSN: "https://token@api.uptrace.dev?grpc=4317"}, want: "UPTRACE_ENABLED=false"},
		{name: "no dsn", cfg: config.Config{UptraceEnabled: true, UptraceDSN: "  "}, want: "UPTRACE_DSN empty"},
		{name: "enabled", cfg: config.Config{UptraceEnabled: true, UptraceDSN: "https://token@api.uptrace.dev?grpc=4317"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, disabledReason(tt.cfg))
		})
	}
}

func TestInitUptrace_DisabledIsNoop(t *testing.T) {
	shutdown, err := InitUptrace(config.Config{ServiceName: "tactics-board", Store: config.StoreFile}, logging.NewNop())
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))

	// A nil logger falls back to the default one.
	shutdown, err = InitUptrace(config.Config{UptraceEnabled: true}, nil)
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestCommandSpan(t *testing.T) {
	ctx, span := StartCommand(context.Background(), "tactics swap")
	require.NotNil(t, ctx)
	require.NotNil(t, span)

	EndCommand(span, errors.New("boom"))
	EndCommand(nil, nil)
}
