package onlinehelp_test

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/onlinehelp/internal/component"
	"github.com/nfrund/onlinehelp/internal/onlinehelp"
)

func TestNamespace(t *testing.T) {
	help := newTestHelp(t)

	t.Run("context is attached to the traversed handle only", func(t *testing.T) {
		ctx := provides(iface1)
		traversed := onlinehelp.NewNamespace(help, ctx).Traverse("")
		assert.Equal(t, ctx, traversed.Context())
		assert.Same(t, help, traversed.OnlineHelp)

		other := onlinehelp.NewNamespace(help, nil).Traverse("")
		assert.Nil(t, other.Context())
	})

	t.Run("cannot be serialized", func(t *testing.T) {
		traversed := onlinehelp.NewNamespace(help, nil).Traverse("")

		_, err := json.Marshal(traversed)
		assert.True(t, errors.Is(err, onlinehelp.ErrNotSerializable))

		err = gob.NewEncoder(&bytes.Buffer{}).Encode(traversed)
		assert.Error(t, err)
	})
}

func TestContextTopic(t *testing.T) {
	help := newTestHelp(t)
	_, err := help.RegisterHelpTopic(onlinehelp.Registration{
		ID: "help", Title: "Help", DocPath: "help/help.txt", Interface: "site.IRootFolder",
	})
	require.NoError(t, err)
	_, err = help.RegisterHelpTopic(onlinehelp.Registration{
		ID: "help2", Title: "Help2", DocPath: "help/help2.txt", Interface: "site.IRootFolder", View: "contents.html",
	})
	require.NoError(t, err)

	root := provides("site.IRootFolder")
	file := provides("site.IFile")

	cases := []struct {
		name    string
		context any
		want    string
	}{
		{"view with its own topic", &component.BoundView{ViewName: "contents.html", Parent: root}, "Help2"},
		{"view falls back to its context", &component.BoundView{ViewName: "index.html", Parent: root}, "Help"},
		{"plain context", root, "Help"},
		{"nothing registered", &component.BoundView{ViewName: "edit.html", Parent: file}, "Online Help"},
		{"no context", nil, "Online Help"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			traversed := onlinehelp.NewNamespace(help, tc.context).Traverse("")
			assert.Equal(t, tc.want, traversed.ContextTopic().Title())
		})
	}
}
