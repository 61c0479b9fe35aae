// Package drive talks to the Google Drive v3 REST API. It covers only the
// calls the handoff service needs: reading file metadata, inspecting and
// creating permissions, and promoting a permission to owner. Credentials
// are supplied per call; the client itself holds no user state.
package drive

import (
	"context"

	"golang.org/x/oauth2"
)

const RoleWriter = "writer"
const RoleOwner = "owner"

// FileInfo is the metadata snapshot we read for a file.
type FileInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size,string"`
}

// Permission is a single grant on a file.
type Permission struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Role         string `json:"role"`
	EmailAddress string `json:"emailAddress"`
	PendingOwner bool   `json:"pendingOwner"`
}

type Client interface {
	GetFileMetadata(ctx context.Context, token *oauth2.Token, fileID string) (*FileInfo, error)
	ListPermissions(ctx context.Context, token *oauth2.Token, fileID string) ([]Permission, error)
	CreateWriterPermission(ctx context.Context, token *oauth2.Token, fileID, email string) (*Permission, error)
	TransferOwnership(ctx context.Context, token *oauth2.Token, fileID, permissionID string) (*Permission, error)
}
