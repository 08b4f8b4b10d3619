package api_test

import (
	"context"
	"io"
	"testing"

	"github.com/mkavanagh/revapi/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryArchiveRoundTrips(t *testing.T) {
	archive := api.NewInMemoryArchive("mem://foo", []byte("package foo\n"))

	assert.Equal(t, "mem://foo", archive.Name())

	r, err := archive.Open(context.Background())
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "package foo\n", string(data))
}

func TestInMemoryArchiveOpenIsIndependentEachCall(t *testing.T) {
	archive := api.NewInMemoryArchive("mem://foo", []byte("abc"))

	first, err := archive.Open(context.Background())
	require.NoError(t, err)
	second, err := archive.Open(context.Background())
	require.NoError(t, err)

	firstByte := make([]byte, 1)
	_, err = first.Read(firstByte)
	require.NoError(t, err)
	assert.Equal(t, byte('a'), firstByte[0])

	secondByte := make([]byte, 1)
	_, err = second.Read(secondByte)
	require.NoError(t, err)
	assert.Equal(t, byte('a'), secondByte[0], "a fresh reader must start from the beginning")
}

func TestAPIIsPrimary(t *testing.T) {
	primary := api.NewInMemoryArchive("primary", nil)
	supplementary := api.NewInMemoryArchive("dep", nil)
	a := api.NewAPI([]api.Archive{primary}, []api.Archive{supplementary})

	assert.True(t, a.IsPrimary(primary))
	assert.False(t, a.IsPrimary(supplementary))
	assert.False(t, a.IsPrimary(nil))
}

func TestNewAPIDoesNotRetainCallerSlices(t *testing.T) {
	primary := []api.Archive{api.NewInMemoryArchive("primary", nil)}
	a := api.NewAPI(primary, nil)

	primary[0] = api.NewInMemoryArchive("mutated", nil)

	assert.Equal(t, "primary", a.Primary()[0].Name())
}
