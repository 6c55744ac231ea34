package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "4096", want: 4096},
		{in: "64K", want: 64 << 10},
		{in: "64k", want: 64 << 10},
		{in: "64KiB", want: 64 << 10},
		{in: "1M", want: 1 << 20},
		{in: "1MB", want: 1 << 20},
		{in: "2G", want: 2 << 30},
		{in: "512B", want: 512},
		{in: " 10 ", want: 10},
		{in: "0", want: 0},
		{in: "", wantErr: true},
		{in: "K", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "ten", wantErr: true},
		{in: "99999999999999999999G", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSize(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv(envCapacity, "")
	t.Setenv(envStrategy, "")
	cfg := loadConfig()
	assert.Equal(t, defaultCapacity, cfg.Capacity)
	assert.Equal(t, defaultStrategy, cfg.Strategy)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv(envCapacity, "256K")
	t.Setenv(envStrategy, "worst")
	cfg := loadConfig()
	assert.Equal(t, "256K", cfg.Capacity)
	assert.Equal(t, "worst", cfg.Strategy)
}
