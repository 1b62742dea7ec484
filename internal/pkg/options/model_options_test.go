package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModelOptionsDefaultsAreValid(t *testing.T) {
	assert.Empty(t, NewModelOptions().Validate())
}

func TestModelOptionsValidate(t *testing.T) {
	o := NewModelOptions()
	o.Mode = "append"
	o.Temperature = 3
	o.Providers["broken"] = &ProviderConfig{Models: []ModelDefinition{{}}}

	errs := o.Validate()
	// mode, temperature, base-url, empty model id
	assert.Len(t, errs, 4)
}
