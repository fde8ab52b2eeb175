package restapi

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/material"
)

type materialAPI struct {
	client *Client
}

var _ material.API = (*materialAPI)(nil) // interface compliance check

func NewMaterialAPI(client *Client) material.API {
	return &materialAPI{client: client}
}

func (api *materialAPI) ListMaterials(ctx context.Context) ([]material.Material, error) {
	var out []material.Material
	if err := api.client.get(ctx, "/learning-materials", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (api *materialAPI) ListClassroomMaterials(ctx context.Context, classroomID int) ([]material.Material, error) {
	var out []material.Material
	if err := api.client.get(ctx, fmt.Sprintf("/learning-materials/classroom/%d", classroomID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (api *materialAPI) UploadMaterial(ctx context.Context, nm material.NewMaterial) (material.Material, error) {
	parts := func(w *multipart.Writer) error {
		if err := w.WriteField("title", nm.Title); err != nil {
			return errors.Wrap(err, "writing title field")
		}
		if nm.Description != "" {
			if err := w.WriteField("description", nm.Description); err != nil {
				return errors.Wrap(err, "writing description field")
			}
		}
		if err := w.WriteField("classroomId", strconv.Itoa(nm.ClassroomID)); err != nil {
			return errors.Wrap(err, "writing classroomId field")
		}
		if err := w.WriteField("uploadedById", strconv.Itoa(nm.UploadedByID)); err != nil {
			return errors.Wrap(err, "writing uploadedById field")
		}

		pw, err := w.CreatePart(fileHeader("file", nm.File.Name, nm.File.ContentType))
		if err != nil {
			return errors.Wrapf(err, "creating part for %s", nm.File.Name)
		}
		if _, err = io.Copy(pw, nm.File.Content); err != nil {
			return errors.Wrapf(err, "copying %s", nm.File.Name)
		}
		return nil
	}

	var out material.Material
	if err := api.client.postMultipart(ctx, "/learning-materials/upload", nil, parts, &out); err != nil {
		return material.Material{}, err
	}
	return out, nil
}

func (api *materialAPI) DownloadMaterial(ctx context.Context, fileName string) (io.ReadCloser, error) {
	body, err := api.client.stream(ctx, "/learning-materials/download/"+url.PathEscape(fileName))
	if err != nil {
		if core.IsAPIError(err, http.StatusNotFound) {
			return nil, material.ErrNotFound
		}
		return nil, err
	}
	return body, nil
}

func (api *materialAPI) DeleteMaterial(ctx context.Context, id int) error {
	if err := api.client.delete(ctx, fmt.Sprintf("/learning-materials/%d", id), nil); err != nil {
		if core.IsAPIError(err, http.StatusNotFound) {
			return material.ErrNotFound
		}
		return err
	}
	return nil
}
