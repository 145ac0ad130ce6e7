package rendering_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/onlinehelp/internal/onlinehelp"
	"github.com/nfrund/onlinehelp/internal/rendering"
)

func newTemplateTopic(t *testing.T, fs afero.Fs, path, body string) *onlinehelp.TemplateTopic {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(body), 0o644))
	topic, err := onlinehelp.NewTemplateTopic(fs, onlinehelp.TopicConfig{ID: "tmpl", Title: "Template Help", Path: path})
	require.NoError(t, err)
	return topic.(*onlinehelp.TemplateTopic)
}

func renderComponent(t *testing.T, templates *rendering.Templates, topic *onlinehelp.TemplateTopic, data rendering.TemplateData) (string, error) {
	t.Helper()
	var buf strings.Builder
	err := templates.Component(topic, data).Render(context.Background(), &buf)
	return buf.String(), err
}

func TestTemplatesComponent(t *testing.T) {
	fs := afero.NewMemMapFs()
	topic := newTemplateTopic(t, fs, "help/help.pt", "<h1>{{.Title}}</h1>{{.TopicContent}}")
	templates := rendering.NewTemplates()
	req := httptest.NewRequest("GET", "/++help++/tmpl", nil)

	t.Run("missing content fails", func(t *testing.T) {
		_, err := renderComponent(t, templates, topic, rendering.NewTemplateData(topic, req))
		require.Error(t, err)
		assert.True(t, onlinehelp.IsErrorType(err, onlinehelp.ErrorRenderFailed))
		assert.Contains(t, err.Error(), "TopicContent")
	})

	t.Run("renders with content", func(t *testing.T) {
		data := rendering.NewTemplateData(topic, req)
		data["TopicContent"] = "<b>escaped</b>"
		out, err := renderComponent(t, templates, topic, data)
		require.NoError(t, err)
		assert.Equal(t, "<h1>Template Help</h1>&lt;b&gt;escaped&lt;/b&gt;", out)
	})
}

func TestTemplatesCache(t *testing.T) {
	fs := afero.NewMemMapFs()
	topic := newTemplateTopic(t, fs, "help/page.tmpl", `{{.Title | printf "%s!"}} {{safeHTML "<i>raw</i>"}}`)
	templates := rendering.NewTemplates()
	data := rendering.NewTemplateData(topic, nil)

	out, err := renderComponent(t, templates, topic, data)
	require.NoError(t, err)
	assert.Equal(t, "Template Help! <i>raw</i>", out)

	require.NoError(t, afero.WriteFile(fs, "help/page.tmpl", []byte("changed"), 0o644))
	out, err = renderComponent(t, templates, topic, data)
	require.NoError(t, err)
	assert.Equal(t, "Template Help! <i>raw</i>", out, "cached template is reused")

	templates.Invalidate("help/page.tmpl")
	out, err = renderComponent(t, templates, topic, data)
	require.NoError(t, err)
	assert.Equal(t, "changed", out)

	require.NoError(t, afero.WriteFile(fs, "help/page.tmpl", []byte("again"), 0o644))
	templates.Reset()
	out, err = renderComponent(t, templates, topic, data)
	require.NoError(t, err)
	assert.Equal(t, "again", out)
}

func TestTemplatesParseError(t *testing.T) {
	fs := afero.NewMemMapFs()
	topic := newTemplateTopic(t, fs, "help/broken.pt", "{{.Title")

	_, err := rendering.NewTemplates().Get(topic)
	require.Error(t, err)
	assert.True(t, onlinehelp.IsErrorType(err, onlinehelp.ErrorRenderFailed))
}
