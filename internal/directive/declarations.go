// Package directive loads help topic declarations from YAML or TOML files
// and registers them on a help root.
package directive

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/nfrund/onlinehelp/internal/component"
	"github.com/nfrund/onlinehelp/internal/onlinehelp"
)

// File is the content of a single declarations file.
type File struct {
	// Include lists other declarations files, relative to this one. They
	// are applied before the topics of this file.
	Include []string `yaml:"include" toml:"include" validate:"dive,required"`
	Topics  []Topic  `yaml:"topics" toml:"topics" validate:"dive"`
}

// Topic declares one help topic.
type Topic struct {
	ID     string `yaml:"id" toml:"id" validate:"required,excludes=/"`
	Title  string `yaml:"title" toml:"title" validate:"required"`
	Parent string `yaml:"parent" toml:"parent"`
	// For is the interface the topic documents.
	For  string `yaml:"for" toml:"for" validate:"omitempty,interface"`
	View string `yaml:"view" toml:"view"`
	// DocPath is relative to the declarations file.
	DocPath string `yaml:"doc_path" toml:"doc_path" validate:"required"`
	// Class names the topic factory. Empty picks one from the file extension.
	Class     string   `yaml:"class" toml:"class"`
	Resources []string `yaml:"resources" toml:"resources" validate:"dive,required,excludes=/"`
}

// Declaration is a declared topic with its document path resolved.
type Declaration struct {
	Topic
	// Source is the declarations file the topic was read from.
	Source string
}

// Declarations is the result of loading a declarations file together with
// everything it includes.
type Declarations struct {
	// Files are the loaded files, includes before their includer.
	Files  []string
	Topics []Declaration
}

// Loader reads declarations files.
type Loader struct {
	fs       afero.Fs
	validate *validator.Validate
}

// NewLoader creates a loader reading from fs.
func NewLoader(fs afero.Fs) *Loader {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("interface", func(fl validator.FieldLevel) bool {
		return component.Interface(fl.Field().String()).Valid()
	})

	return &Loader{fs: fs, validate: v}
}

// Load reads the declarations file at path and its includes.
func (l *Loader) Load(path string) (*Declarations, error) {
	decls := &Declarations{}
	if err := l.load(filepath.Clean(path), decls, map[string]bool{}); err != nil {
		return nil, err
	}
	return decls, nil
}

func (l *Loader) load(path string, decls *Declarations, loading map[string]bool) error {
	if loading[path] {
		return invalid(path, "include cycle", nil)
	}
	if slices.Contains(decls.Files, path) {
		return nil
	}
	loading[path] = true
	defer delete(loading, path)

	f, err := l.decode(path)
	if err != nil {
		return err
	}
	if err := l.validate.Struct(f); err != nil {
		return invalid(path, validationMessage(err), err)
	}

	dir := filepath.Dir(path)
	for _, inc := range f.Include {
		if err := l.load(resolve(dir, inc), decls, loading); err != nil {
			return err
		}
	}

	seen := make(map[string]bool, len(f.Topics))
	for _, t := range f.Topics {
		key := strings.Trim(t.Parent, "/") + "/" + t.ID
		if seen[key] {
			return invalid(path, fmt.Sprintf("duplicate topic %q", strings.TrimPrefix(key, "/")), nil)
		}
		seen[key] = true

		t.DocPath = resolve(dir, t.DocPath)
		decls.Topics = append(decls.Topics, Declaration{Topic: t, Source: path})
	}
	decls.Files = append(decls.Files, path)
	return nil
}

func (l *Loader) decode(path string) (*File, error) {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, invalid(path, "failed to read declarations", err)
	}

	var f File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, invalid(path, "failed to parse YAML declarations", err)
		}
	case ".toml":
		meta, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, invalid(path, "failed to parse TOML declarations", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, invalid(path, "unknown keys: "+strings.Join(keys, ", "), nil)
		}
	default:
		return nil, invalid(path, fmt.Sprintf("unsupported declarations format %q", filepath.Ext(path)), nil)
	}
	return &f, nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "File.")
		if fe.Param() != "" {
			msgs[i] = fmt.Sprintf("%s fails %s=%s", field, fe.Tag(), fe.Param())
		} else {
			msgs[i] = fmt.Sprintf("%s fails %s", field, fe.Tag())
		}
	}
	return strings.Join(msgs, "; ")
}

func resolve(dir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(dir, p)
}

func invalid(path, msg string, cause error) error {
	return &onlinehelp.HelpError{
		Type:    onlinehelp.ErrorInvalidDirective,
		Path:    path,
		Message: fmt.Sprintf("%s: %s", path, msg),
		Cause:   cause,
	}
}

// Apply registers the declared topics on help in declaration order.
func Apply(help *onlinehelp.OnlineHelp, decls *Declarations) error {
	for _, d := range decls.Topics {
		factory := d.Class
		if factory == "" {
			factory = onlinehelp.FactoryForPath(d.DocPath)
		}
		_, err := help.RegisterHelpTopic(onlinehelp.Registration{
			ParentPath: d.Parent,
			ID:         d.ID,
			Title:      d.Title,
			DocPath:    d.DocPath,
			Interface:  component.Interface(d.For),
			View:       d.View,
			Factory:    factory,
			Resources:  d.Resources,
		})
		if err != nil {
			return fmt.Errorf("%s: topic %q: %w", d.Source, d.ID, err)
		}
	}
	return nil
}
