package dummyapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core/material"
)

type materialAPI struct {
	db *DB
}

var _ material.API = (*materialAPI)(nil) // interface compliance check

func NewMaterialAPI(db *DB) material.API {
	return &materialAPI{db: db}
}

func (api *materialAPI) ListMaterials(_ context.Context) ([]material.Material, error) {
	api.db.mu.RLock()
	defer api.db.mu.RUnlock()

	out := make([]material.Material, 0, len(api.db.materials))
	for _, m := range api.db.materials {
		out = append(out, *m)
	}
	return out, nil
}

func (api *materialAPI) ListClassroomMaterials(_ context.Context, classroomID int) ([]material.Material, error) {
	api.db.mu.RLock()
	defer api.db.mu.RUnlock()

	out := make([]material.Material, 0)
	for _, m := range api.db.materials {
		if m.ClassroomID == classroomID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (api *materialAPI) UploadMaterial(_ context.Context, nm material.NewMaterial) (material.Material, error) {
	api.db.mu.Lock()
	defer api.db.mu.Unlock()

	content, err := io.ReadAll(nm.File.Content)
	if err != nil {
		return material.Material{}, err
	}

	m := material.Material{
		ID:           api.db.nextPK(),
		Title:        nm.Title,
		UploadedByID: nm.UploadedByID,
		ClassroomID:  nm.ClassroomID,
		CreatedAt:    time.Now().UTC(),
	}
	if nm.Description != "" {
		m.Description = null.StringFrom(nm.Description)
	}
	m.FileURL = fmt.Sprintf("/files/materials/%d/%s", m.ID, nm.File.Name)
	api.db.materials[m.ID] = &m
	api.db.materialFiles[nm.File.Name] = content
	return m, nil
}

func (api *materialAPI) DownloadMaterial(_ context.Context, fileName string) (io.ReadCloser, error) {
	api.db.mu.RLock()
	defer api.db.mu.RUnlock()

	content, ok := api.db.materialFiles[fileName]
	if !ok {
		return nil, material.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

func (api *materialAPI) DeleteMaterial(_ context.Context, id int) error {
	api.db.mu.Lock()
	defer api.db.mu.Unlock()

	m, ok := api.db.materials[id]
	if !ok {
		return material.ErrNotFound
	}
	delete(api.db.materialFiles, path.Base(m.FileURL))
	delete(api.db.materials, id)
	return nil
}
