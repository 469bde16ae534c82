package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormat(t *testing.T) {
	for _, f := range []OutputFormat{OutputTable, OutputJSON, OutputYAML} {
		assert.True(t, f.IsValid(), f.String())
		parsed, err := ParseOutputFormat(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, parsed)
	}

	_, err := ParseOutputFormat("xml")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.False(t, OutputFormat("").IsValid())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"valid", Config{ProjectID: "p", Location: "us"}, nil},
		{"valid with format", Config{ProjectID: "p", Location: "us", Format: OutputJSON}, nil},
		{"missing project", Config{Location: "us"}, ErrProjectRequired},
		{"missing location", Config{ProjectID: "p"}, ErrInvalidInput},
		{"bad format", Config{ProjectID: "p", Location: "us", Format: "xml"}, ErrInvalidInput},
		{"with timeout", Config{ProjectID: "p", Location: "us", OperationTimeout: time.Minute}, nil},
		{"negative timeout", Config{ProjectID: "p", Location: "us", OperationTimeout: -time.Second}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConfig_CollectionOrDefault(t *testing.T) {
	assert.Equal(t, DefaultCollection, Config{}.CollectionOrDefault())
	assert.Equal(t, "c", Config{Collection: "c"}.CollectionOrDefault())
}

func TestAuthMethod_Description(t *testing.T) {
	assert.Equal(t, "gcloud user credentials", AuthMethodGcloud.Description())
	assert.Equal(t, "application default credentials", AuthMethodADC.Description())
	assert.Equal(t, "unknown", AuthMethod("other").Description())
	assert.Equal(t, "adc", AuthMethodADC.String())
}
