package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileQuery(t *testing.T) {
	utils := &stubUtility{responses: map[string][]byte{
		"GET /api/v1/profile": []byte(`{"profile": "balanced"}`),
	}}

	output, err := executeCommand(NewProfileCmd(listeningNetwork(), utils))
	require.NoError(t, err)
	assert.Equal(t, "balanced\n", output)
}

func TestProfileSet(t *testing.T) {
	utils := &stubUtility{responses: map[string][]byte{
		"POST /api/v1/profile": []byte(`{"profile": "battery"}`),
	}}

	output, err := executeCommand(NewProfileCmd(listeningNetwork(), utils), "battery")
	require.NoError(t, err)
	assert.Contains(t, output, "Power profile set to battery")

	require.Len(t, utils.requests, 1)
	assert.JSONEq(t, `{"profile": "battery"}`, string(utils.requests[0].body))
}

func TestProfileSurfacesApiError(t *testing.T) {
	utils := &stubUtility{responses: map[string][]byte{
		"POST /api/v1/profile": []byte(`{"error": "unknown power profile: turbo"}`),
	}}

	_, err := executeCommand(NewProfileCmd(listeningNetwork(), utils), "battery")
	assert.EqualError(t, err, "unknown power profile: turbo")
}
