package commands

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vercelctl/internal/logpanel"
)

type fakeOpener struct {
	ids []string
	err error
}

func (f *fakeOpener) CreateOrShow(id string) (*logpanel.Panel, error) {
	f.ids = append(f.ids, id)
	if f.err != nil {
		return nil, f.err
	}
	return &logpanel.Panel{DeploymentID: id}, nil
}

func TestOpenLogPanel_ForwardsID(t *testing.T) {
	opener := &fakeOpener{}
	cmd := NewOpenLogPanel(opener)

	require.NoError(t, cmd.Execute(context.Background(), []string{"dpl_123"}))
	assert.Equal(t, []string{"dpl_123"}, opener.ids)
}

func TestOpenLogPanel_RequiresID(t *testing.T) {
	opener := &fakeOpener{}
	err := NewOpenLogPanel(opener).Execute(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage")
	assert.Empty(t, opener.ids)
}

func TestOpenLogPanel_ReturnsCollaboratorError(t *testing.T) {
	want := errors.New("panel unavailable")
	err := NewOpenLogPanel(&fakeOpener{err: want}).Execute(context.Background(), []string{"dpl_1"})
	assert.ErrorIs(t, err, want)
}

func TestRegistry(t *testing.T) {
	var out bytes.Buffer
	panels := logpanel.NewManager(&out)

	registry := NewRegistry()
	registry.Register(OpenLogPanelID, NewOpenLogPanel(panels))

	t.Run("execute by id", func(t *testing.T) {
		require.NoError(t, registry.Execute(context.Background(), OpenLogPanelID, []string{"dpl_1"}))
		require.Len(t, panels.Panels(), 1)
		assert.Equal(t, "dpl_1", panels.Panels()[0].DeploymentID)
	})

	t.Run("execute by alias", func(t *testing.T) {
		require.NoError(t, registry.Execute(context.Background(), "logs", []string{"dpl_2"}))
		assert.Len(t, panels.Panels(), 2)
	})

	t.Run("unknown id", func(t *testing.T) {
		err := registry.Execute(context.Background(), "vercelctl.nope", nil)
		assert.ErrorIs(t, err, ErrUnknownCommand)
		assert.Contains(t, err.Error(), "vercelctl.nope")
	})

	t.Run("list", func(t *testing.T) {
		assert.Equal(t, []string{OpenLogPanelID}, registry.List())
		_, ok := registry.Get("vercelctl.nope")
		assert.False(t, ok)
	})
}
