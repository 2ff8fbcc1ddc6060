package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))
	assert.Equal(t, DefaultTemperature, config.Temperature)
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{
		Models: map[ModelTier]string{
			TierLite: "fallback-model",
		},
	}

	// Unknown tier should fallback to TierStandard, then TierLite
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
}

func TestGetModel_EmptyConfig(t *testing.T) {
	config := &Config{Models: map[ModelTier]string{}}
	assert.Empty(t, config.GetModel(TierStandard))
}

func TestWithModel(t *testing.T) {
	original := DefaultConfig()
	updated := original.WithModel(TierAdvanced, "custom-model")

	assert.Equal(t, "custom-model", updated.GetModel(TierAdvanced))
	assert.Equal(t, "gemini-2.5-pro", original.GetModel(TierAdvanced))
	assert.Equal(t, original.Temperature, updated.Temperature)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(ModelEnv, "gemini-test")
	config := ConfigFromEnv()

	assert.Equal(t, "gemini-test", config.GetModel(TierLite))
	assert.Equal(t, "gemini-test", config.GetModel(TierAdvanced))

	t.Setenv(ModelEnv, "")
	assert.Equal(t, "gemini-2.5-pro", ConfigFromEnv().GetModel(TierAdvanced))
}
