package drive

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

var testToken = &oauth2.Token{AccessToken: "test-access-token"}

func TestGetFileMetadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/file-123", r.URL.Path)
		assert.Equal(t, "Bearer test-access-token", r.Header.Get("Authorization"))
		assert.Equal(t, "id,name,mimeType,size", r.URL.Query().Get("fields"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"file-123","name":"report.pdf","mimeType":"application/pdf","size":"2048"}`))
	}))
	defer server.Close()

	client := NewRestClientWithBaseURL(server.URL)

	file, err := client.GetFileMetadata(context.Background(), testToken, "file-123")
	require.NoError(t, err)
	assert.Equal(t, "file-123", file.ID)
	assert.Equal(t, "report.pdf", file.Name)
	assert.Equal(t, int64(2048), file.Size)
}

func TestListPermissions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/file-123/permissions", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"permissions":[
			{"id":"p1","type":"user","role":"owner","emailAddress":"sender@example.com"},
			{"id":"p2","type":"user","role":"writer","emailAddress":"receiver@example.com"}
		]}`))
	}))
	defer server.Close()

	client := NewRestClientWithBaseURL(server.URL)

	permissions, err := client.ListPermissions(context.Background(), testToken, "file-123")
	require.NoError(t, err)
	require.Len(t, permissions, 2)
	assert.Equal(t, RoleOwner, permissions[0].Role)
	assert.Equal(t, "receiver@example.com", permissions[1].EmailAddress)
}

func TestCreateWriterPermission(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/files/file-123/permissions", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "user", body["type"])
		assert.Equal(t, RoleWriter, body["role"])
		assert.Equal(t, "receiver@example.com", body["emailAddress"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"p-new","type":"user","role":"writer","emailAddress":"receiver@example.com"}`))
	}))
	defer server.Close()

	client := NewRestClientWithBaseURL(server.URL)

	permission, err := client.CreateWriterPermission(context.Background(), testToken, "file-123", "receiver@example.com")
	require.NoError(t, err)
	assert.Equal(t, "p-new", permission.ID)
	assert.Equal(t, RoleWriter, permission.Role)
}

func TestTransferOwnership(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/files/file-123/permissions/p2", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("transferOwnership"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, RoleOwner, body["role"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"p2","type":"user","role":"owner","emailAddress":"receiver@example.com"}`))
	}))
	defer server.Close()

	client := NewRestClientWithBaseURL(server.URL)

	permission, err := client.TransferOwnership(context.Background(), testToken, "file-123", "p2")
	require.NoError(t, err)
	assert.Equal(t, RoleOwner, permission.Role)
}

func TestDriveErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"The user does not have sufficient permissions","errors":[{"domain":"global","reason":"insufficientFilePermissions","message":"The user does not have sufficient permissions"}]}}`))
	}))
	defer server.Close()

	client := NewRestClientWithBaseURL(server.URL)

	_, err := client.GetFileMetadata(context.Background(), testToken, "file-123")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDriveAPI)
	assert.Contains(t, err.Error(), "insufficientFilePermissions")

	errorResponse := client.GetDriveErrorResponse()
	require.NotNil(t, errorResponse)
	assert.Equal(t, 403, errorResponse.Error.Code)
}
