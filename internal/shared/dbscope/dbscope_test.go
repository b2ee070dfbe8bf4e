package dbscope_test

import (
	"testing"

	"go-jobmarket/internal/shared/dbscope"

	"github.com/stretchr/testify/assert"
)

func TestContains(t *testing.T) {
	assert.Equal(t, "%acme%", dbscope.Contains("acme"))
	assert.Equal(t, `%50\%\_off\\%`, dbscope.Contains(`50%_off\`))
}
