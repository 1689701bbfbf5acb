package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"project-resolver/internal/project"
	"project-resolver/internal/vfs"
)

// workspace binds a project service to the filesystem the command line
// arguments refer to.
type workspace struct {
	svc  *project.Service
	fsys vfs.FileSystem
	host *vfs.OSFS
	zip  *vfs.ZipFS
}

// open returns the workspace selected by the global flags: the zip archive
// named by --zip, or the host filesystem rooted at the volume of the
// working directory.
func (c *Command) open() (*workspace, error) {
	w := &workspace{}
	if name, _ := c.root.PersistentFlags().GetString(flagZip); name != "" {
		z, err := vfs.OpenZip(name)
		if err != nil {
			return nil, err
		}
		w.zip, w.fsys = z, z
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		host, err := vfs.OS(filepath.VolumeName(wd) + string(filepath.Separator))
		if err != nil {
			return nil, err
		}
		w.host, w.fsys = host, host
	}
	w.svc = project.New(w.fsys, c.cfg.ProjectOptions(c.log))
	return w, nil
}

func (w *workspace) Close() error {
	if w.zip != nil {
		return w.zip.Close()
	}
	return nil
}

// path converts a command line argument into a handle.
func (w *workspace) path(arg string) (vfs.Path, error) {
	if w.host != nil {
		return w.host.Convert(arg)
	}
	return vfs.NewPath(w.fsys.Scheme(), arg)
}

// display renders p the way the user spelled paths: natively on the host,
// as an entry name inside an archive.
func (w *workspace) display(p vfs.Path) string {
	if w.host != nil {
		if s, err := w.host.Native(p); err == nil {
			return s
		}
	}
	return p.Name()
}

// project resolves the project enclosing arg, failing when there is none.
func (w *workspace) project(arg string) (*project.Project, error) {
	p, err := w.path(arg)
	if err != nil {
		return nil, err
	}
	proj, err := w.svc.ResolveProject(p)
	if err != nil {
		return nil, err
	}
	if proj == nil {
		return nil, fmt.Errorf("%s: no project", arg)
	}
	return proj, nil
}

func printJSON(c *Command, v any) error {
	enc := json.NewEncoder(c.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
