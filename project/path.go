// Package project places generated documents on disk: either into explicitly
// requested file or into organized per-site project directory accompanied by
// metadata and documentation.
package project

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"wse/common"
	"wse/config"
)

const (
	outputBaseName = "styles"

	MetadataFile   = "metadata.txt"
	ReadmeFile     = "README.md"
	ReadmeHTMLFile = "README.html"
)

// ErrExists is returned when output would replace existing file and
// overwriting was not requested.
var ErrExists = errors.New("output file already exists")

// Request describes where user wants the result.
type Request struct {
	URL         string
	Format      common.OutputFmt
	OutputFile  string
	ProjectName string
}

// Layout is resolved set of output locations. Dir is empty when result goes
// into explicitly requested file, in which case no supporting files are
// produced.
type Layout struct {
	Dir    string
	Output string
}

// ProjectMode reports whether layout is organized project directory.
func (l Layout) ProjectMode() bool {
	return len(l.Dir) > 0
}

func (l Layout) supporting(name string) string {
	if !l.ProjectMode() {
		return ""
	}
	return filepath.Join(l.Dir, name)
}

func (l Layout) Metadata() string   { return l.supporting(MetadataFile) }
func (l Layout) Readme() string     { return l.supporting(ReadmeFile) }
func (l Layout) ReadmeHTML() string { return l.supporting(ReadmeHTMLFile) }

// Files lists every file layout would produce, main output first.
func (l Layout) Files() []string {
	if !l.ProjectMode() {
		return []string{l.Output}
	}
	return []string{l.Output, l.Metadata(), l.Readme(), l.ReadmeHTML()}
}

// nameValues are available for project name template expansion.
type nameValues struct {
	Context string
	Host    string
	URL     string
	Format  string
}

// HostName returns host part of the page URL with leading "www." removed.
func HostName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Host, "www.")
}

// Resolve decides where generated document goes. Explicit output file wins,
// otherwise document is placed into <projects dir>/<project name>/styles.<ext>.
// Project name comes from request, configured template or page host, in
// that order, and is always cleaned to be usable as a single path segment.
func Resolve(cfg *config.OutputConfig, req Request, log *zap.Logger) (Layout, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if len(req.OutputFile) > 0 {
		return Layout{Output: filepath.Clean(req.OutputFile)}, nil
	}

	name := req.ProjectName
	if len(name) == 0 && len(cfg.ProjectNameTemplate) > 0 {
		expanded, err := expandName(cfg.ProjectNameTemplate, req)
		if err != nil {
			log.Warn("Unable to prepare project name, using host", zap.Error(err))
		}
		name = strings.TrimSpace(expanded)
	}
	if len(name) == 0 {
		name = HostName(req.URL)
	}
	if len(name) == 0 {
		return Layout{}, fmt.Errorf("unable to derive project name from %q", req.URL)
	}
	if cfg.Transliterate {
		name = slug.Make(name)
	}
	name = config.CleanFileName(name)

	dir := filepath.Join(cfg.ProjectsDir, name)
	return Layout{
		Dir:    dir,
		Output: filepath.Join(dir, outputBaseName+"."+req.Format.Ext()),
	}, nil
}

func expandName(field string, req Request) (string, error) {
	name := config.ProjectNameTemplateFieldName

	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := nameValues{
		Context: string(name),
		Host:    HostName(req.URL),
		URL:     req.URL,
		Format:  req.Format.String(),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Check refuses to replace existing main output unless overwrite is set.
// Nothing is created on disk.
func (l Layout) Check(overwrite bool) error {
	_, err := os.Stat(l.Output)
	switch {
	case err == nil && !overwrite:
		return fmt.Errorf("%w: %s", ErrExists, l.Output)
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("unable to check output file: %w", err)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("unable to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
