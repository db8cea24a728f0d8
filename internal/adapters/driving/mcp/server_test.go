package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil search controller returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingSearchController)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchController{}})
		require.NoError(t, err)
		assert.NotNil(t, server)
		assert.NotNil(t, server.Handler())
	})
}

func TestPorts_Validate(t *testing.T) {
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingSearchController)
	assert.NoError(t, (&Ports{Search: &mockSearchController{}}).Validate())
	assert.NoError(t, (&Ports{Search: &mockSearchController{}, Chat: &mockChatController{}}).Validate())
}

func listTools(t *testing.T, ports *Ports) []string {
	t.Helper()
	ctx := context.Background()

	server, err := NewServer(ports)
	require.NoError(t, err)

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer serverSession.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer session.Close()

	result, err := session.ListTools(ctx, nil)
	require.NoError(t, err)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	return names
}

func TestServer_RegistersTools(t *testing.T) {
	t.Run("with chat", func(t *testing.T) {
		names := listTools(t, &Ports{Search: &mockSearchController{}, Chat: &mockChatController{}})
		assert.ElementsMatch(t, []string{"search_ideas", "load_more", "chat"}, names)
	})

	t.Run("without chat", func(t *testing.T) {
		names := listTools(t, &Ports{Search: &mockSearchController{}})
		assert.ElementsMatch(t, []string{"search_ideas", "load_more"}, names)
	})
}
