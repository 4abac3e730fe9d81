package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("   "))
	assert.Equal(t, "Juan", Normalize("juan"))
	assert.Equal(t, "María José", Normalize("  maría  JOSÉ "))
	assert.Equal(t, "Ángel De La Cruz", Normalize("ÁNGEL de la cruz"))
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "Ana Pérez", Join("ana", "", " pérez "))
	assert.Equal(t, "", Join("", " "))
}
