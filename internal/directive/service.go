package directive

import (
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/spf13/afero"

	"github.com/nfrund/onlinehelp/internal/onlinehelp"
)

// Options describe how the help tree is built.
type Options struct {
	Fs          afero.Fs
	Title       string
	WelcomePath string
	// Declarations is the root declarations file. Empty builds a tree with
	// only the welcome page.
	Declarations string
	// Factories are registered in addition to the built-in ones.
	Factories map[string]onlinehelp.Factory
}

// Service holds the current help tree and rebuilds it from the
// declarations on demand.
type Service struct {
	opts    Options
	loader  *Loader
	current atomic.Pointer[onlinehelp.OnlineHelp]

	mu    sync.Mutex
	files []string
}

// NewService builds the initial help tree.
func NewService(opts Options) (*Service, error) {
	s := &Service{
		opts:   opts,
		loader: NewLoader(opts.Fs),
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Help returns the current help tree.
func (s *Service) Help() *onlinehelp.OnlineHelp {
	return s.current.Load()
}

// Build creates a fresh help tree without installing it.
func (s *Service) Build() (*onlinehelp.OnlineHelp, *Declarations, error) {
	help, err := onlinehelp.New(s.opts.Fs, s.opts.Title, s.opts.WelcomePath)
	if err != nil {
		return nil, nil, err
	}
	for name, f := range s.opts.Factories {
		if err := help.RegisterFactory(name, f); err != nil {
			return nil, nil, err
		}
	}

	decls := &Declarations{}
	if s.opts.Declarations != "" {
		if decls, err = s.loader.Load(s.opts.Declarations); err != nil {
			return nil, nil, err
		}
		if err := Apply(help, decls); err != nil {
			return nil, nil, err
		}
	}
	return help, decls, nil
}

// Reload rebuilds the help tree and swaps it in. On failure the current tree
// stays in place.
func (s *Service) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	help, decls, err := s.Build()
	if err != nil {
		return err
	}

	files := append([]string{s.opts.WelcomePath}, decls.Files...)
	for _, d := range decls.Topics {
		files = append(files, d.DocPath)
		for _, r := range d.Resources {
			files = append(files, filepath.Join(filepath.Dir(d.DocPath), r))
		}
	}
	s.files = files
	s.current.Store(help)

	slog.Info("Help topics loaded", "declarations", s.opts.Declarations, "topics", help.Count())
	return nil
}

// Files returns the declarations and topic files the current tree was
// built from.
func (s *Service) Files() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.files...)
}
