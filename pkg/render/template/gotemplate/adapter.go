// Package gotemplate implements template.TemplateRenderer with pongo2.
//
// Data passed to the engine goes through a JSON round trip, so templates
// address struct fields by their json tag names.
package gotemplate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-insurepredict/pkg/render/template"
)

const defaultExtension = ".tpl"

// FilterFunc is a template filter over plain Go values.
type FilterFunc func(input any, param any) (any, error)

// Option configures an Engine.
type Option func(*Engine)

// WithBaseDir loads templates from dir. Files found there shadow the fs.FS
// given to WithFS.
func WithBaseDir(dir string) Option {
	return func(e *Engine) {
		e.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from files.
func WithFS(files fs.FS) Option {
	return func(e *Engine) {
		e.files = files
	}
}

// WithFilter registers a filter. pongo2 filters are process wide; a later
// registration under the same name replaces the earlier one.
func WithFilter(name string, fn FilterFunc) Option {
	return func(e *Engine) {
		if e.filters == nil {
			e.filters = map[string]FilterFunc{}
		}
		e.filters[strings.TrimSpace(name)] = fn
	}
}

// Engine renders named templates from a pongo2 template set and caches the
// parsed result.
type Engine struct {
	baseDir string
	files   fs.FS
	filters map[string]FilterFunc

	set   *pongo2.TemplateSet
	mu    sync.Mutex
	cache map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an engine. At least one of WithBaseDir or WithFS is required.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{cache: map[string]*pongo2.Template{}}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	if e.baseDir == "" && e.files == nil {
		return nil, errors.New("gotemplate: a base dir or fs.FS is required")
	}

	var loaders []pongo2.TemplateLoader
	if e.baseDir != "" {
		local, err := pongo2.NewLocalFileSystemLoader(e.baseDir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: base dir: %w", err)
		}
		loaders = append(loaders, local)
	}
	if e.files != nil {
		loaders = append(loaders, pongo2.NewFSLoader(e.files))
	}
	e.set = pongo2.NewSet("insurepredict", loaders...)

	registerBuiltins()
	for name, fn := range e.filters {
		if err := setFilter(name, fn); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// RenderTemplate renders the named template. The .tpl extension is optional.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if !strings.HasSuffix(name, defaultExtension) {
		name += defaultExtension
	}
	tmpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}
	return execute(tmpl, name, data, out)
}

// RenderString renders inline template source. The result is not cached.
func (e *Engine) RenderString(content string, data any, out ...io.Writer) (string, error) {
	tmpl, err := e.set.FromString(content)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse inline template: %w", err)
	}
	return execute(tmpl, "inline", data, out)
}

func (e *Engine) lookup(name string) (*pongo2.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.cache[name]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load %q: %w", name, err)
	}
	e.cache[name] = tmpl
	return tmpl, nil
}

func execute(tmpl *pongo2.Template, name string, data any, out []io.Writer) (string, error) {
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: %s data: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", fmt.Errorf("gotemplate: execute %s: %w", name, err)
	}
	for _, w := range out {
		if _, err := w.Write(buf.Bytes()); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// toContext flattens data to maps, slices and scalars.
func toContext(data any) (pongo2.Context, error) {
	if data == nil {
		return pongo2.Context{}, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	ctx := pongo2.Context{}
	if err := json.Unmarshal(raw, &ctx); err != nil {
		return nil, fmt.Errorf("top level must be an object: %w", err)
	}
	return ctx, nil
}

var builtinsOnce sync.Once

func registerBuiltins() {
	builtinsOnce.Do(func() {
		_ = setFilter("trim", func(in any, _ any) (any, error) {
			if in == nil {
				return "", nil
			}
			return strings.TrimSpace(fmt.Sprint(in)), nil
		})
		if !pongo2.FilterExists("bmi") {
			_ = pongo2.RegisterFilter("bmi", filterBMI)
		}
	})
}

func setFilter(name string, fn FilterFunc) error {
	if name == "" || fn == nil {
		return errors.New("gotemplate: filter name and function required")
	}
	wrapped := func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var p any
		if param != nil {
			p = param.Interface()
		}
		result, err := fn(in.Interface(), p)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	}
	if pongo2.FilterExists(name) {
		return pongo2.ReplaceFilter(name, wrapped)
	}
	return pongo2.RegisterFilter(name, wrapped)
}

// filterBMI prints a number with two decimals. Zero and non-numeric input
// print the parameter instead, "N/A" by convention.
func filterBMI(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in == nil || in.IsNil() || !in.IsNumber() || in.Float() == 0 {
		if param != nil && !param.IsNil() {
			return pongo2.AsValue(param.String()), nil
		}
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strconv.FormatFloat(in.Float(), 'f', 2, 64)), nil
}
