package stor

import (
	"testing"
	"time"

	"github.com/handoff-labs/handoff/pkg/hodb/homodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestCreateUserSetsSlugAndUUID(t *testing.T) {
	db := newTestDB(t)
	userStor := NewGormUserStor(db)

	user, err := userStor.CreateUser(&homodel.User{Name: "Jamie Rivera", Email: "jamie@example.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, user.UUID)
	assert.Equal(t, "jamie-rivera", user.Slug)

	loaded, err := userStor.GetUserBySlug("jamie-rivera")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loaded.ID)
}

func TestGetUserByAPIToken(t *testing.T) {
	db := newTestDB(t)
	userStor := NewGormUserStor(db)

	user, err := userStor.CreateUser(&homodel.User{Name: "Api User", Email: "api@example.com", ApiToken: "secret-key"})
	require.NoError(t, err)

	loaded, err := userStor.GetUserByAPIToken("secret-key")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loaded.ID)

	_, err = userStor.GetUserByAPIToken("wrong-key")
	assert.True(t, IsRecordNotFound(err))
}

func TestTokenStorRoundTrip(t *testing.T) {
	db := newTestDB(t)
	userStor := NewGormUserStor(db)
	tokenStor := NewGormTokenStor(db)

	user, err := userStor.CreateUser(&homodel.User{Name: "Token User", Email: "token@example.com"})
	require.NoError(t, err)

	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	err = tokenStor.SaveDriveTokenForUser(user.ID, &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		Expiry:       expiry,
	})
	require.NoError(t, err)

	token, err := tokenStor.GetDriveTokenForUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "access", token.AccessToken)
	assert.Equal(t, "refresh", token.RefreshToken)
	assert.WithinDuration(t, expiry, token.Expiry, time.Second)

	_, err = tokenStor.GetDriveTokenForUser(999999)
	assert.True(t, IsRecordNotFound(err))
}
