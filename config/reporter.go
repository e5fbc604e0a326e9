package config

import (
	"archive/zip"
	"bytes"
	"cmp"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.uber.org/multierr"

	"wse/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare opens report archive at configured destination, falling back to
// temporary directory when destination cannot be created.
func (conf *ReporterConfig) Prepare() (*Report, error) {
	f, err := os.Create(conf.Destination)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err != nil {
			return nil, fmt.Errorf("unable to create report: %w", err)
		}
	}
	return &Report{file: f, index: make(map[string]int)}, nil
}

// reportItem is either a file system path (file or directory) collected when
// report is closed or data captured right away.
type reportItem struct {
	name  string
	path  string
	data  []byte
	stamp time.Time
}

func (it reportItem) captured() bool {
	return it.data != nil
}

// Report collects logs, configuration and extraction artifacts of a single
// run into zip archive. Nil report ignores everything, so callers do not need
// to check whether debugging was requested. Not safe for concurrent use.
type Report struct {
	file  *os.File
	items []reportItem
	index map[string]int
}

// add registers item, the same name may only be stored again for the same
// path.
func (r *Report) add(it reportItem) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if i, ok := r.index[it.name]; ok {
		old := r.items[i]
		if old.captured() || it.captured() || old.path != it.path {
			panic(fmt.Sprintf("report entry %q stored twice", it.name))
		}
		return
	}
	r.index[it.name] = len(r.items)
	r.items = append(r.items, it)
}

// Store remembers file or directory to be archived under name when report is
// closed. Paths which do not exist at that time are skipped.
func (r *Report) Store(name, path string) {
	if r == nil {
		return
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	r.add(reportItem{name: name, path: path})
}

// StoreData archives data under name.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		return
	}
	if data == nil {
		data = []byte{}
	}
	r.add(reportItem{name: name, data: data, stamp: time.Now()})
}

// Name returns absolute name of report archive.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

// Close writes everything collected into the archive.
func (r *Report) Close() (err error) {
	if r == nil || r.file == nil {
		return nil
	}
	defer func() {
		err = multierr.Append(err, r.file.Close())
	}()

	arc := zip.NewWriter(r.file)
	err = r.write(arc)
	return multierr.Append(err, arc.Close())
}

func (r *Report) write(arc *zip.Writer) error {
	now := time.Now()
	if err := addFile(arc, "MANIFEST", now, bytes.NewReader(r.manifest(now))); err != nil {
		return err
	}

	items := slices.Clone(r.items)
	slices.SortFunc(items, func(a, b reportItem) int { return cmp.Compare(a.name, b.name) })
	for _, it := range items {
		if it.captured() {
			if err := addFile(arc, it.name, it.stamp, bytes.NewReader(it.data)); err != nil {
				return err
			}
			continue
		}
		fi, err := os.Stat(it.path)
		if err != nil {
			continue
		}
		if fi.IsDir() {
			err = addDir(arc, it.name, it.path)
		} else if fi.Mode().IsRegular() {
			err = addPath(arc, it.name, it.path, fi.ModTime())
		}
		if err != nil {
			return fmt.Errorf("unable to add %s to report: %w", it.name, err)
		}
	}
	return nil
}

// manifest lists entries in the order they were stored.
func (r *Report) manifest(now time.Time) []byte {
	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "%s %s (%s)\n", misc.GetDisplayName(), misc.GetVersion(), misc.GetGitHash())
	for _, it := range r.items {
		stamp, what := now, it.path
		if it.captured() {
			stamp, what = it.stamp, fmt.Sprintf("<%d bytes>", len(it.data))
		}
		fmt.Fprintf(buf, "%s\t%s\t%s\n", stamp.UTC().Format(time.RFC3339), it.name, what)
	}
	return buf.Bytes()
}

func addFile(arc *zip.Writer, name string, t time.Time, src io.Reader) error {
	w, err := arc.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: t})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}

func addPath(arc *zip.Writer, name, path string, t time.Time) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return addFile(arc, name, t, f)
}

// addDir archives regular files of dir under name, links and other special
// files are ignored.
func addDir(arc *zip.Writer, name, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.Type().IsRegular() {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		return addPath(arc, filepath.ToSlash(filepath.Join(name, rel)), path, fi.ModTime())
	})
}
