package clientapi

import (
	"context"
	"net/http"

	"github.com/adamwoolhether/pterom/internal/endpoint"
	"github.com/adamwoolhether/pterom/resource"
)

// BackupRequest optionally names a backup and lists paths to leave
// out of it. The zero value is a valid request.
type BackupRequest struct {
	Name     string `json:"name,omitempty" validate:"omitempty,max=191"`
	Ignored  string `json:"ignored,omitempty"`
	IsLocked bool   `json:"is_locked,omitempty"`
}

func backupsRoute(serverID string, segments ...any) string {
	return endpoint.Route(servers, append([]any{serverID, "backups"}, segments...)...)
}

func (c *Client) ListBackups(ctx context.Context, serverID string) (*resource.List[Backup], error) {
	return endpoint.List[Backup](ctx, c.caller, endpoint.Call{
		Op:     "list backups",
		Method: http.MethodGet,
		Route:  backupsRoute(serverID),
	})
}

// CreateBackup starts a backup. The returned backup is still in
// progress: CompletedAt is nil until it finishes.
func (c *Client) CreateBackup(ctx context.Context, serverID string, req BackupRequest) (*Backup, error) {
	call := endpoint.Call{
		Op:     "create backup",
		Method: http.MethodPost,
		Route:  backupsRoute(serverID),
	}
	if req != (BackupRequest{}) {
		call.Payload = req
	}

	return endpoint.Attributes[Backup](ctx, c.caller, call)
}

func (c *Client) BackupDetails(ctx context.Context, serverID, backupUUID string) (*Backup, error) {
	return endpoint.Attributes[Backup](ctx, c.caller, endpoint.Call{
		Op:     "backup details",
		Method: http.MethodGet,
		Route:  backupsRoute(serverID, backupUUID),
	})
}

// DownloadBackup returns a one-time URL serving the backup archive.
func (c *Client) DownloadBackup(ctx context.Context, serverID, backupUUID string) (string, error) {
	return endpoint.URL(ctx, c.caller, endpoint.Call{
		Op:     "download backup",
		Method: http.MethodGet,
		Route:  backupsRoute(serverID, backupUUID, "download"),
	})
}

func (c *Client) DeleteBackup(ctx context.Context, serverID, backupUUID string) error {
	return c.caller.Exec(ctx, endpoint.Call{
		Op:     "delete backup",
		Method: http.MethodDelete,
		Route:  backupsRoute(serverID, backupUUID),
	})
}
