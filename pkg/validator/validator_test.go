package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email string  `validate:"required,email"`
	Price float64 `validate:"gte=0"`
}

func TestValidateStructPasses(t *testing.T) {
	errs := ValidateStruct(&sampleRequest{Email: "buyer@example.com", Price: 9.99})
	assert.Empty(t, errs)
}

func TestValidateStructCollectsFailures(t *testing.T) {
	errs := ValidateStruct(&sampleRequest{Email: "not-an-email", Price: -1})
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].FailedField, "Email")
	assert.Equal(t, "email", errs[0].Tag)
	assert.Contains(t, errs[1].FailedField, "Price")
	assert.Equal(t, "gte", errs[1].Tag)
}
