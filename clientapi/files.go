package clientapi

import (
	"context"
	"net/http"

	"github.com/adamwoolhether/pterom/internal/endpoint"
	"github.com/adamwoolhether/pterom/panelpath"
	"github.com/adamwoolhether/pterom/resource"
)

type renamePair struct {
	From string `json:"from" validate:"required"`
	To   string `json:"to" validate:"required"`
}

type renameFilesRequest struct {
	Root  string       `json:"root" validate:"required"`
	Files []renamePair `json:"files" validate:"required,min=1,dive"`
}

type copyFileRequest struct {
	Location string `json:"location" validate:"required"`
}

type filesRequest struct {
	Root  string   `json:"root" validate:"required"`
	Files []string `json:"files" validate:"required,min=1,dive,required"`
}

type decompressRequest struct {
	Root string `json:"root" validate:"required"`
	File string `json:"file" validate:"required"`
}

type createFolderRequest struct {
	Root string `json:"root" validate:"required"`
	Name string `json:"name" validate:"required"`
}

func filesRoute(serverID, action string) string {
	return endpoint.Route(servers, serverID, "files", action)
}

// ListFiles lists the contents of dir, e.g. "/" or "/plugins".
func (c *Client) ListFiles(ctx context.Context, serverID, dir string) (*resource.List[FileObject], error) {
	return endpoint.List[FileObject](ctx, c.caller, endpoint.Call{
		Op:     "list files",
		Method: http.MethodGet,
		Route:  filesRoute(serverID, "list") + "?directory=" + panelpath.Encode(dir),
	})
}

// GetFileContent returns the raw content of dir/file.
func (c *Client) GetFileContent(ctx context.Context, serverID, dir, file string) (string, error) {
	resp, err := c.caller.Do(ctx, endpoint.Call{
		Op:     "get file content",
		Method: http.MethodGet,
		Route:  filesRoute(serverID, "contents") + "?file=" + panelpath.EncodeFile(dir, file),
	})
	if err != nil {
		return "", err
	}

	return string(resp.Body), nil
}

// DownloadFile returns a one-time URL serving dir/file.
func (c *Client) DownloadFile(ctx context.Context, serverID, dir, file string) (string, error) {
	return endpoint.URL(ctx, c.caller, endpoint.Call{
		Op:     "download file",
		Method: http.MethodGet,
		Route:  filesRoute(serverID, "download") + "?file=" + panelpath.EncodeFile(dir, file),
	})
}

// RenameFile renames from to to, both relative to root.
func (c *Client) RenameFile(ctx context.Context, serverID, root, from, to string) error {
	return c.caller.Exec(ctx, endpoint.Call{
		Op:     "rename file",
		Method: http.MethodPut,
		Route:  filesRoute(serverID, "rename"),
		Payload: renameFilesRequest{
			Root:  root,
			Files: []renamePair{{From: from, To: to}},
		},
	})
}

// CopyFile duplicates the file at location next to itself.
func (c *Client) CopyFile(ctx context.Context, serverID, location string) error {
	return c.caller.Exec(ctx, endpoint.Call{
		Op:      "copy file",
		Method:  http.MethodPost,
		Route:   filesRoute(serverID, "copy"),
		Payload: copyFileRequest{Location: location},
	})
}

// WriteFile replaces the content of dir/file, creating it if needed.
// content is sent as the raw request body.
func (c *Client) WriteFile(ctx context.Context, serverID, dir, file, content string) error {
	return c.caller.Exec(ctx, endpoint.Call{
		Op:     "write file",
		Method: http.MethodPost,
		Route:  filesRoute(serverID, "write") + "?file=" + panelpath.EncodeFile(dir, file),
		Raw:    &content,
	})
}

// CompressFiles archives files under root and returns the archive.
func (c *Client) CompressFiles(ctx context.Context, serverID, root string, files []string) (*FileObject, error) {
	return endpoint.Attributes[FileObject](ctx, c.caller, endpoint.Call{
		Op:      "compress files",
		Method:  http.MethodPost,
		Route:   filesRoute(serverID, "compress"),
		Payload: filesRequest{Root: root, Files: files},
	})
}

func (c *Client) DecompressFile(ctx context.Context, serverID, root, file string) error {
	return c.caller.Exec(ctx, endpoint.Call{
		Op:      "decompress file",
		Method:  http.MethodPost,
		Route:   filesRoute(serverID, "decompress"),
		Payload: decompressRequest{Root: root, File: file},
	})
}

func (c *Client) DeleteFiles(ctx context.Context, serverID, root string, files []string) error {
	return c.caller.Exec(ctx, endpoint.Call{
		Op:      "delete files",
		Method:  http.MethodPost,
		Route:   filesRoute(serverID, "delete"),
		Payload: filesRequest{Root: root, Files: files},
	})
}

func (c *Client) CreateFolder(ctx context.Context, serverID, root, name string) error {
	return c.caller.Exec(ctx, endpoint.Call{
		Op:      "create folder",
		Method:  http.MethodPost,
		Route:   filesRoute(serverID, "create-folder"),
		Payload: createFolderRequest{Root: root, Name: name},
	})
}

// UploadURL returns a one-time URL accepting multipart file uploads.
func (c *Client) UploadURL(ctx context.Context, serverID string) (string, error) {
	return endpoint.URL(ctx, c.caller, endpoint.Call{
		Op:     "upload file",
		Method: http.MethodGet,
		Route:  filesRoute(serverID, "upload"),
	})
}
