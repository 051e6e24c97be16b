package logpanel

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestManager_CreateOrShow(t *testing.T) {
	var out bytes.Buffer
	m := NewManager(&out)

	first, err := m.CreateOrShow("dpl_1")
	require.NoError(t, err)
	_, err = uuid.Parse(first.ID)
	assert.NoError(t, err, "panel id is a uuid")
	assert.Equal(t, 1, first.Shown)
	assert.Contains(t, out.String(), "Opened logs for dpl_1")

	again, err := m.CreateOrShow("dpl_1")
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, 2, again.Shown)
	assert.Contains(t, out.String(), "Showing logs for dpl_1")

	other, err := m.CreateOrShow("dpl_2")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)

	panels := m.Panels()
	require.Len(t, panels, 2)
	assert.Equal(t, "dpl_1", panels[0].DeploymentID)
	assert.Equal(t, "dpl_2", panels[1].DeploymentID)
}

func TestManager_RejectsEmptyID(t *testing.T) {
	var out bytes.Buffer
	m := NewManager(&out)

	_, err := m.CreateOrShow("")
	assert.ErrorIs(t, err, ErrEmptyDeploymentID)
	assert.Empty(t, m.Panels())
	assert.Zero(t, out.Len())
}

func TestManager_WriteFailure(t *testing.T) {
	m := NewManager(failingWriter{})

	panel, err := m.CreateOrShow("dpl_1")
	require.Error(t, err)
	require.NotNil(t, panel)
	assert.Len(t, m.Panels(), 1)
}
