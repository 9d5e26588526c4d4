package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialector(t *testing.T) {
	d, err := Dialector("postgres", "host=localhost")
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	d, err = Dialector("mysql", "user:pass@tcp(localhost:3306)/db")
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	_, err = Dialector("oracle", "")
	assert.ErrorContains(t, err, "unsupported database driver")
}
