// Package repository makes Maven artifacts available in the local repository,
// downloading them from the session mirror when they are missing.
package repository

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/mvninspect/internal/core/domain"
	"go.trai.ch/mvninspect/internal/core/ports"
	"go.trai.ch/zerr"
)

const httpClientTimeout = 5 * time.Minute

var _ ports.ArtifactFetcher = (*Client)(nil)

// Client implements ports.ArtifactFetcher over http, https and file mirrors.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a Client whose transport also serves file:// mirrors.
func NewClient() *Client {
	transport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		transport = &http.Transport{}
	}
	transport = transport.Clone()
	transport.RegisterProtocol("file", http.NewFileTransport(http.Dir("/")))

	return newClientWithHTTP(&http.Client{
		Transport: transport,
		Timeout:   httpClientTimeout,
	})
}

// newClientWithHTTP creates a Client with a custom http client (used for testing).
func newClientWithHTTP(client *http.Client) *Client {
	return &Client{httpClient: client}
}

// Fetch returns the local repository path of artifact. A local copy always
// wins; otherwise the artifact is downloaded from the session mirror unless
// the session is offline.
func (c *Client) Fetch(ctx context.Context, session domain.RepositorySession, artifact domain.Artifact) (string, error) {
	rel := artifact.RepositoryPath()
	local := filepath.Join(session.LocalRepository, filepath.FromSlash(rel))

	if info, err := os.Stat(local); err == nil && info.Mode().IsRegular() {
		return local, nil
	}
	if session.Offline {
		return "", zerr.With(domain.ErrArtifactOffline, "artifact", artifact.String())
	}

	body, err := c.download(ctx, session, rel, artifact)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = body.Close()
	}()

	if err := atomicWriteFile(local, body); err != nil {
		writeErr := zerr.Wrap(err, domain.ErrLocalRepositoryWrite.Error())
		return "", zerr.With(writeErr, "path", local)
	}
	return local, nil
}

func (c *Client) download(
	ctx context.Context,
	session domain.RepositorySession,
	rel string,
	artifact domain.Artifact,
) (io.ReadCloser, error) {
	base := session.Mirror.URL
	if base == "" {
		base = domain.DefaultMirrorURL
	}
	url := strings.TrimSuffix(base, "/") + "/" + rel

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrArtifactDownload.Error()), "url", url)
	}
	if creds := session.Credentials; creds != nil {
		req.SetBasicAuth(creds.Username, creds.Password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrArtifactDownload.Error()), "url", url)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_ = resp.Body.Close()
		notFoundErr := zerr.With(domain.ErrArtifactNotFound, "artifact", artifact.String())
		return nil, zerr.With(notFoundErr, "mirror", base)
	case resp.StatusCode != http.StatusOK:
		_ = resp.Body.Close()
		downloadErr := zerr.With(domain.ErrArtifactDownload, "status_code", resp.StatusCode)
		return nil, zerr.With(downloadErr, "url", url)
	}
	return resp.Body, nil
}

// atomicWriteFile streams r into a temp file next to path and renames it into place.
func atomicWriteFile(path string, r io.Reader) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmpFile, r); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
