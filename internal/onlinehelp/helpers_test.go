package onlinehelp_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/onlinehelp/internal/component"
	"github.com/nfrund/onlinehelp/internal/onlinehelp"
)

const (
	iface1 component.Interface = "test.I1"
	iface3 component.Interface = "test.I3"
)

// provider is a content object declaring a fixed set of interfaces.
type provider struct {
	component.Declaration
}

func provides(ifaces ...component.Interface) provider {
	return provider{component.Declaration(ifaces)}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// newTestFs returns an in-memory filesystem with the topic fixtures under
// "help/".
func newTestFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	files := map[string][]byte{
		"help/welcome.stx": []byte("Welcome to the Online Help System."),
		"help/help.txt":    []byte("This is a help!"),
		"help/help2.txt":   []byte("This is another help!\n\nфайл"),
		"help/help.stx":    []byte("This is a STX help!\n\nфайл"),
		"help/help.html":   []byte("<p>This is HTML</p>\n"),
		"help/help.rst":    []byte("\xef\xbb\xbfThis is a ReST help!\n\nфайл"),
		"help/help.md":     []byte("This is a *Markdown* help!"),
		"help/help.pt":     []byte("<span>This is a template help!</span> файл"),
		"help/noext":       []byte("plain"),
		"help/test1.png":   pngBytes(t, 3, 2),
		"help/test2.png":   pngBytes(t, 1, 1),
	}
	for name, data := range files {
		require.NoError(t, afero.WriteFile(fs, name, data, 0o644))
	}
	return fs
}

func newTestHelp(t *testing.T) *onlinehelp.OnlineHelp {
	t.Helper()
	help, err := onlinehelp.New(newTestFs(t), "Online Help", "help/welcome.stx")
	require.NoError(t, err)
	return help
}
