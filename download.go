package openai

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Save writes every image in the response to dir and returns the created
// file paths. Images are fetched (or base64-decoded) in parallel. The
// directory must already exist.
func (r *ImagesResponse) Save(ctx context.Context, dir string) ([]string, error) {
	if len(r.Data) == 0 {
		return nil, nil
	}

	paths := make([]string, len(r.Data))

	g, ctx := errgroup.WithContext(ctx)
	for idx, image := range r.Data {
		g.Go(func() error {
			path, err := image.save(ctx, dir)
			if err != nil {
				return err
			}
			paths[idx] = path
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func (i Image) save(ctx context.Context, dir string) (string, error) {
	switch {
	case i.B64JSON != "":
		data, err := base64.StdEncoding.DecodeString(i.B64JSON)
		if err != nil {
			return "", &DeserializationError{Err: err, Content: i.B64JSON}
		}
		path := filepath.Join(dir, uuid.NewString()+".png")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return "", &FileError{Op: "write", Path: path, Err: err}
		}
		return path, nil

	case i.URL != "":
		return downloadFile(ctx, i.URL, dir)

	default:
		return "", invalidArgumentf("image has neither url nor b64_json")
	}
}

func downloadFile(ctx context.Context, url, dir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating download request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &RequestError{StatusCode: resp.StatusCode}
	}

	ext := ".png"
	if e := filepath.Ext(req.URL.Path); e != "" {
		ext = e
	}

	path := filepath.Join(dir, uuid.NewString()+ext)
	f, err := os.Create(path)
	if err != nil {
		return "", &FileError{Op: "create", Path: path, Err: err}
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", &FileError{Op: "write", Path: path, Err: err}
	}
	return path, nil
}
