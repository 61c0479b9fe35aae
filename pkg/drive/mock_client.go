package drive

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

// MockClient implements Client for tests. Errors can be injected globally
// or per file id, and every permission it hands out is recorded so tests
// can assert on the call sequence.
type MockClient struct {
	err            error
	errByFileID    map[string]error
	files          map[string]FileInfo
	permissions    map[string][]Permission
	lastPermission int

	CreatedWriterGrants  []string
	OwnershipTransferred []string
}

func NewMockClient() *MockClient {
	return &MockClient{
		errByFileID: make(map[string]error),
		files:       make(map[string]FileInfo),
		permissions: make(map[string][]Permission),
	}
}

func (c *MockClient) SetError(err error) {
	c.err = err
}

func (c *MockClient) SetErrorForFile(fileID string, err error) {
	c.errByFileID[fileID] = err
}

func (c *MockClient) SetFile(file FileInfo) {
	c.files[file.ID] = file
}

func (c *MockClient) SetPermissions(fileID string, permissions []Permission) {
	c.permissions[fileID] = permissions
}

func (c *MockClient) Err(err error) *MockClient {
	c.err = err
	return c
}

func (c *MockClient) errFor(fileID string) error {
	if c.err != nil {
		return c.err
	}

	return c.errByFileID[fileID]
}

func (c *MockClient) GetFileMetadata(ctx context.Context, token *oauth2.Token, fileID string) (*FileInfo, error) {
	if err := c.errFor(fileID); err != nil {
		return nil, err
	}

	if file, ok := c.files[fileID]; ok {
		return &file, nil
	}

	return &FileInfo{ID: fileID, Name: fileID}, nil
}

func (c *MockClient) ListPermissions(ctx context.Context, token *oauth2.Token, fileID string) ([]Permission, error) {
	if err := c.errFor(fileID); err != nil {
		return nil, err
	}

	return c.permissions[fileID], nil
}

func (c *MockClient) CreateWriterPermission(ctx context.Context, token *oauth2.Token, fileID, email string) (*Permission, error) {
	if err := c.errFor(fileID); err != nil {
		return nil, err
	}

	c.lastPermission = c.lastPermission + 1
	permission := Permission{
		ID:           fmt.Sprintf("perm-%d", c.lastPermission),
		Type:         "user",
		Role:         RoleWriter,
		EmailAddress: email,
	}
	c.permissions[fileID] = append(c.permissions[fileID], permission)
	c.CreatedWriterGrants = append(c.CreatedWriterGrants, fileID)

	return &permission, nil
}

func (c *MockClient) TransferOwnership(ctx context.Context, token *oauth2.Token, fileID, permissionID string) (*Permission, error) {
	if err := c.errFor(fileID); err != nil {
		return nil, err
	}

	for i := range c.permissions[fileID] {
		if c.permissions[fileID][i].ID == permissionID {
			c.permissions[fileID][i].Role = RoleOwner
			c.OwnershipTransferred = append(c.OwnershipTransferred, fileID)
			p := c.permissions[fileID][i]
			return &p, nil
		}
	}

	c.OwnershipTransferred = append(c.OwnershipTransferred, fileID)
	return &Permission{ID: permissionID, Role: RoleOwner}, nil
}
