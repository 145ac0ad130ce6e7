package views_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"

	"github.com/nfrund/onlinehelp/internal/component"
	"github.com/nfrund/onlinehelp/internal/onlinehelp"
	"github.com/nfrund/onlinehelp/internal/rendering"
	"github.com/nfrund/onlinehelp/internal/views"
)

const iRoot component.Interface = "site.IRootFolder"

func render(t *testing.T, n g.Node) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, n.Render(&b))
	return b.String()
}

func newHelp(t *testing.T) *onlinehelp.OnlineHelp {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range map[string]string{
		"help/welcome.stx": "Welcome",
		"help/help.txt":    "This is a help!",
		"help/help2.txt":   "This is another help!",
		"help/sub.md":      "Sub *topic*",
		"help/page.pt":     "<b>{{.Title}}</b>",
		"help/test1.png":   "\x89PNG\r\n\x1a\n",
	} {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}

	help, err := onlinehelp.New(fs, "Online Help", "help/welcome.stx")
	require.NoError(t, err)
	for _, reg := range []onlinehelp.Registration{
		{ID: "help", Title: "Help", DocPath: "help/help.txt", Interface: iRoot, Resources: []string{"test1.png"}},
		{ID: "help2", Title: "Help2", DocPath: "help/help2.txt", Interface: iRoot, View: "contents.html"},
		{ID: "sub", Title: "Sub", ParentPath: "help", DocPath: "help/sub.md"},
		{ID: "page", Title: "Page", DocPath: "help/page.pt", Factory: onlinehelp.FactoryTemplate},
	} {
		_, err := help.RegisterHelpTopic(reg)
		require.NoError(t, err)
	}
	return help
}

func TestContextHelpURL(t *testing.T) {
	assert.Equal(t, "/contents.html/++help++/@@contexthelp.html", views.ContextHelpURL("/contents.html"))
	assert.Equal(t, "/folder/index.html/++help++/@@contexthelp.html", views.ContextHelpURL("folder/index.html"))
	assert.Equal(t, "/++help++/@@contexthelp.html", views.ContextHelpURL("/"))
}

func TestPopupLink(t *testing.T) {
	html := render(t, views.PopupLink("/contents.html", "Help"))
	assert.Contains(t, html, `href="/contents.html/++help++/@@contexthelp.html"`)
	assert.Contains(t, html, `hx-get="/contents.html/++help++/@@contexthelp.html"`)
	assert.Contains(t, html, `hx-target="#help-pane"`)
	assert.Contains(t, html, ">Help</a>")
	assert.Equal(t, `<aside id="help-pane" class="help-pane"></aside>`, render(t, views.Pane()))
}

func TestContextHelpView(t *testing.T) {
	help := newHelp(t)
	root := component.Declaration{iRoot}

	tests := []struct {
		name    string
		context any
		want    string
	}{
		{"view with topic", &component.BoundView{ViewName: "contents.html", Parent: root}, "help2"},
		{"view without topic", &component.BoundView{ViewName: "index.html", Parent: root}, "help"},
		{"plain object", root, "help"},
		{"unknown object", "nothing", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := views.NewContextHelpView(onlinehelp.NewNamespace(help, tt.context).Traverse(""))
			assert.Equal(t, tt.want, v.Topic().TopicPath())
		})
	}
}

func TestContextHelpViewIsMemoized(t *testing.T) {
	help := newHelp(t)
	v := views.NewContextHelpView(onlinehelp.NewNamespace(help, component.Declaration{iRoot}).Traverse(""))
	first := v.Topic()

	_, err := help.RegisterHelpTopic(onlinehelp.Registration{
		ID: "help", Title: "Replaced", DocPath: "help/help2.txt", Interface: iRoot,
	})
	require.NoError(t, err)

	assert.Same(t, first, v.Topic())
	assert.Equal(t, "Help", v.Topic().Title())
}

func TestTree(t *testing.T) {
	html := render(t, views.Tree(newHelp(t), "/++help++"))
	assert.Contains(t, html, "<h1>Topics</h1>")
	assert.Contains(t, html, `<a href="/++help++/@@index.html">Online Help</a>`)
	assert.Contains(t, html, `<li><a href="/++help++/help/index.html">Help</a><ul><li><a href="/++help++/help/sub/index.html">Sub</a></li></ul></li>`)
	assert.Contains(t, html, `<a href="/++help++/help2/index.html">Help2</a>`)
}

func TestTopicView(t *testing.T) {
	help := newHelp(t)
	sources, templates := rendering.NewSources(), rendering.NewTemplates()
	req := httptest.NewRequest("GET", "/++help++/help", nil)

	fragment := func(t *testing.T, topic onlinehelp.Topic) string {
		t.Helper()
		n, err := views.NewTopicView(topic, "/++help++", sources, templates).Fragment(context.Background(), req)
		require.NoError(t, err)
		return render(t, n)
	}

	t.Run("source topic", func(t *testing.T) {
		topic, _ := help.Topic("help")
		html := fragment(t, topic)
		assert.Contains(t, html, "<h1>Help</h1>")
		assert.Contains(t, html, "This is a help!")
		assert.Contains(t, html, `<a href="/++help++/help/sub/index.html">Sub</a>`)
		assert.Contains(t, html, `<a href="/++help++/help/test1.png">test1.png</a>`)
	})

	t.Run("template topic", func(t *testing.T) {
		topic, _ := help.Topic("page")
		assert.Contains(t, fragment(t, topic), "<b>Page</b>")
	})

	t.Run("root through the namespace", func(t *testing.T) {
		html := fragment(t, onlinehelp.NewNamespace(help, nil).Traverse(""))
		assert.Contains(t, html, "<h1>Online Help</h1>")
		assert.Contains(t, html, "<p>Welcome</p>")
	})

	t.Run("missing file", func(t *testing.T) {
		topic, _ := help.Topic("help2")
		require.NoError(t, help.Fs().Remove("help/help2.txt"))
		_, err := views.NewTopicView(topic, "/++help++", sources, templates).Fragment(context.Background(), req)
		assert.True(t, onlinehelp.IsErrorType(err, onlinehelp.ErrorRenderFailed))
	})
}

func TestPageTitle(t *testing.T) {
	assert.Equal(t, "Help - Online Help", views.PageTitle("Help"))
	assert.Equal(t, "Online Help", views.PageTitle(""))
	assert.Contains(t, render(t, views.Page("Help")), "<title>Help - Online Help</title>")
}

// wikiTopic and snippetTopic stand for topic kinds a host application plugs
// in through its own factories.
type wikiTopic struct {
	*onlinehelp.SourceTopic
}

type snippetTopic struct {
	*onlinehelp.TemplateTopic
}

func TestTopicViewCustomTopicKinds(t *testing.T) {
	help := newHelp(t)
	fs := help.Fs()
	require.NoError(t, afero.WriteFile(fs, "help/wiki.txt", []byte("Wiki\n====\n\nSee *this*."), 0o644))
	require.NoError(t, afero.WriteFile(fs, "help/snippet.txt", []byte("<i>{{.Title}}</i>"), 0o644))

	require.NoError(t, help.RegisterFactory("wiki", func(fs afero.Fs, cfg onlinehelp.TopicConfig) (onlinehelp.Topic, error) {
		topic, err := onlinehelp.NewReSTTopic(fs, cfg)
		if err != nil {
			return nil, err
		}
		return &wikiTopic{SourceTopic: topic.(*onlinehelp.SourceTopic)}, nil
	}))
	require.NoError(t, help.RegisterFactory("snippet", func(fs afero.Fs, cfg onlinehelp.TopicConfig) (onlinehelp.Topic, error) {
		topic, err := onlinehelp.NewTemplateTopic(fs, cfg)
		if err != nil {
			return nil, err
		}
		return &snippetTopic{TemplateTopic: topic.(*onlinehelp.TemplateTopic)}, nil
	}))

	tests := []struct {
		reg  onlinehelp.Registration
		want string
	}{
		{
			reg:  onlinehelp.Registration{ID: "wiki", Title: "Wiki", DocPath: "help/wiki.txt", Factory: "wiki"},
			want: "<em>this</em>",
		},
		{
			reg:  onlinehelp.Registration{ID: "snippet", Title: "Snippet", DocPath: "help/snippet.txt", Factory: "snippet"},
			want: "<i>Snippet</i>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.reg.ID, func(t *testing.T) {
			topic, err := help.RegisterHelpTopic(tt.reg)
			require.NoError(t, err)

			view := views.NewTopicView(topic, "/++help++", rendering.NewSources(), rendering.NewTemplates())
			fragment, err := view.Fragment(context.Background(), httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Contains(t, render(t, fragment), tt.want)
		})
	}
}
