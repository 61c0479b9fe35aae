package drive

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
)

const DefaultBaseURL = "https://www.googleapis.com/drive/v3"

type RestClient struct {
	c       *resty.Client
	baseURL string

	lastErrorResponse *ErrorResponse
}

func NewRestClient() *RestClient {
	return NewRestClientWithBaseURL(DefaultBaseURL)
}

// NewRestClientWithBaseURL exists so tests can point the client at a local
// httptest server.
func NewRestClientWithBaseURL(baseURL string) *RestClient {
	return &RestClient{
		c:       resty.New(),
		baseURL: baseURL,
	}
}

// GetDriveErrorResponse returns the decoded error body from the last
// failed call, for callers that want the provider's reason code.
func (c *RestClient) GetDriveErrorResponse() *ErrorResponse {
	return c.lastErrorResponse
}

func (c *RestClient) GetFileMetadata(ctx context.Context, token *oauth2.Token, fileID string) (*FileInfo, error) {
	var file FileInfo
	resp, err := c.c.R().
		SetContext(ctx).
		SetAuthToken(token.AccessToken).
		SetQueryParam("fields", "id,name,mimeType,size").
		SetResult(&file).
		Get(fmt.Sprintf("%s/files/%s", c.baseURL, fileID))

	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, c.toError(resp)
	}

	return &file, nil
}

func (c *RestClient) ListPermissions(ctx context.Context, token *oauth2.Token, fileID string) ([]Permission, error) {
	var result struct {
		Permissions []Permission `json:"permissions"`
	}

	resp, err := c.c.R().
		SetContext(ctx).
		SetAuthToken(token.AccessToken).
		SetQueryParam("fields", "permissions(id,type,role,emailAddress,pendingOwner)").
		SetResult(&result).
		Get(fmt.Sprintf("%s/files/%s/permissions", c.baseURL, fileID))

	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, c.toError(resp)
	}

	return result.Permissions, nil
}

func (c *RestClient) CreateWriterPermission(ctx context.Context, token *oauth2.Token, fileID, email string) (*Permission, error) {
	var permission Permission
	resp, err := c.c.R().
		SetContext(ctx).
		SetAuthToken(token.AccessToken).
		SetBody(map[string]string{
			"type":         "user",
			"role":         RoleWriter,
			"emailAddress": email,
		}).
		SetResult(&permission).
		Post(fmt.Sprintf("%s/files/%s/permissions", c.baseURL, fileID))

	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, c.toError(resp)
	}

	return &permission, nil
}

// TransferOwnership promotes an existing permission to the owner role.
// Drive requires transferOwnership=true on the update; without it the API
// rejects any role change to owner.
func (c *RestClient) TransferOwnership(ctx context.Context, token *oauth2.Token, fileID, permissionID string) (*Permission, error) {
	var permission Permission
	resp, err := c.c.R().
		SetContext(ctx).
		SetAuthToken(token.AccessToken).
		SetQueryParam("transferOwnership", "true").
		SetBody(map[string]string{
			"role": RoleOwner,
		}).
		SetResult(&permission).
		Patch(fmt.Sprintf("%s/files/%s/permissions/%s", c.baseURL, fileID, permissionID))

	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, c.toError(resp)
	}

	return &permission, nil
}

func (c *RestClient) toError(resp *resty.Response) error {
	errorResponse, err := ToErrorFromResponse(resp)
	c.lastErrorResponse = errorResponse
	return err
}
