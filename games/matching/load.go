/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package matching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document names, relative to the content root and without extension.
const (
	CatalogDoc = "themes"
	PortalsDoc = "portals"
	LayoutDir  = "layouts"
)

var docExtensions = []string{".json", ".yaml", ".yml"}

type catalogDoc struct {
	AllItems []Item `json:"allItems" yaml:"allItems"`
}

type portalsDoc struct {
	Portals []Portal `json:"portals" yaml:"portals"`
}

// LoadContent reads the catalog, the portal list and every layout the
// portals reference from fsys. Any problem aborts the whole load.
func LoadContent(ctx context.Context, fsys fs.FS) (*Content, error) {
	var catalog catalogDoc
	if err := readDoc(ctx, fsys, CatalogDoc, &catalog); err != nil {
		return nil, err
	}

	if err := checkItems(catalog.AllItems); err != nil {
		return nil, &LoadError{Doc: CatalogDoc, Err: err}
	}

	var portals portalsDoc
	if err := readDoc(ctx, fsys, PortalsDoc, &portals); err != nil {
		return nil, err
	}

	if len(portals.Portals) == 0 {
		return nil, &LoadError{Doc: PortalsDoc, Err: errors.New("no portals defined")}
	}

	layouts := make(map[string]*Layout)

	for _, p := range portals.Portals {
		if p.Name == "" {
			return nil, &LoadError{Doc: PortalsDoc, Err: errors.New("portal without a name")}
		}
		if len(p.Layouts) == 0 {
			return nil, &LoadError{Doc: PortalsDoc, Err: fmt.Errorf("portal %q has no layouts", p.Name)}
		}

		for _, id := range p.Layouts {
			if _, ok := layouts[id]; ok {
				continue
			}

			l, err := loadLayout(ctx, fsys, id)
			if err != nil {
				return nil, err
			}

			if l.Background == "" && l.BackgroundSmall == "" && l.BackgroundLarge == "" {
				l.Background = p.Background
			}

			layouts[id] = l
		}
	}

	return &Content{
		Items:   catalog.AllItems,
		Portals: portals.Portals,
		Layouts: layouts,
	}, nil
}

func loadLayout(ctx context.Context, fsys fs.FS, id string) (*Layout, error) {
	name := path.Join(LayoutDir, id)

	if id == "" || strings.ContainsAny(id, `/\`) || !fs.ValidPath(name) {
		return nil, &LoadError{Doc: PortalsDoc, Err: fmt.Errorf("invalid layout id %q", id)}
	}

	l := &Layout{}
	if err := readDoc(ctx, fsys, name, l); err != nil {
		return nil, err
	}

	l.ID = id

	if l.Distractors != nil && *l.Distractors < 0 {
		return nil, &LoadError{Doc: name, Err: fmt.Errorf("negative distractor count %d", *l.Distractors)}
	}

	for i := range l.Slots {
		if len(l.Slots[i].Index) == 0 {
			return nil, &LoadError{Doc: name, Err: fmt.Errorf("slot %d has no index", i)}
		}
		l.Slots[i].ID = i
	}

	return l, nil
}

func checkItems(items []Item) error {
	seen := make(map[string]bool, len(items))

	for i, item := range items {
		if item.ID == "" {
			return fmt.Errorf("item %d has no id", i)
		}
		if seen[item.ID] {
			return fmt.Errorf("duplicate item id %q", item.ID)
		}
		seen[item.ID] = true
	}

	return nil
}

// readDoc decodes the first of name.json, name.yaml and name.yml that
// exists in fsys.
func readDoc(ctx context.Context, fsys fs.FS, name string, v any) error {
	if err := ctx.Err(); err != nil {
		return &LoadError{Doc: name, Err: err}
	}

	for _, ext := range docExtensions {
		data, err := fs.ReadFile(fsys, name+ext)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return &LoadError{Doc: name + ext, Err: err}
		}

		if ext == ".json" {
			err = json.Unmarshal(data, v)
		} else {
			err = yaml.Unmarshal(data, v)
		}
		if err != nil {
			return &LoadError{Doc: name + ext, Err: err}
		}

		return nil
	}

	return &LoadError{Doc: name, Err: fs.ErrNotExist}
}
