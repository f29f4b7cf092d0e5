package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	msqlite "modernc.org/sqlite"

	"github.com/mesh-intelligence/tabula/pkg/types"
)

func TestEngineError_Nil(t *testing.T) {
	assert.NoError(t, engineError("op", nil))
}

func TestEngineError_PlainErrorIsEngine(t *testing.T) {
	cause := errors.New("something broke")
	err := engineError("load table t", cause)

	assert.Equal(t, types.CodeEngine, types.CodeOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "load table t: something broke", err.Error())
}

func TestEngineError_KeepsDriverError(t *testing.T) {
	s, _ := openTestSession(t, sampleTableDB...)

	_, err := s.LoadTable(context.Background(), "missing")
	require.Error(t, err)

	var se *msqlite.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, types.CodeEngine, types.CodeOf(err))
	assert.Contains(t, err.Error(), "no such table")
}

func TestMisuse(t *testing.T) {
	err := misuse("list tables", types.ErrNoConnection)
	assert.ErrorIs(t, err, types.ErrMisuse)
	assert.ErrorIs(t, err, types.ErrNoConnection)
	assert.NotErrorIs(t, err, types.ErrEngine)
}
