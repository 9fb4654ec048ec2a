package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBasicContext(user, pass string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if len(user) > 0 {
		req.SetBasicAuth(user, pass)
	}
	c.Request = req
	return c
}

func TestBasicAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fn := StaticUsers(map[string]string{"abc": "123"})
	list := AuthList()
	require.Len(t, list, 1)
	ba := list[0]
	assert.Equal(t, BasicAuthName, ba.Name())

	u, err := ba.Auth(newBasicContext("abc", "123"), fn)
	require.NoError(t, err)
	assert.Equal(t, "abc", u.Username)
	assert.Equal(t, BasicAuthName, u.AuthType)

	_, err = ba.Auth(newBasicContext("abc", "bad"), fn)
	assert.ErrorIs(t, err, ErrDenied)
	_, err = ba.Auth(newBasicContext("nobody", "123"), fn)
	assert.ErrorIs(t, err, ErrDenied)
	_, err = ba.Auth(newBasicContext("", ""), fn)
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestBasicAuthLookupError(t *testing.T) {
	fn := func(ctx context.Context, user string) (string, bool, error) {
		return "", false, errors.New("backend down")
	}
	_, err := (&basicAuth{}).Auth(newBasicContext("abc", "123"), fn)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrDenied)
}

func TestAuthenticate(t *testing.T) {
	fn := StaticUsers(map[string]string{"abc": "123"})
	u, err := Authenticate(newBasicContext("abc", "123"), fn)
	require.NoError(t, err)
	assert.Equal(t, "abc", u.Username)

	_, err = Authenticate(newBasicContext("", ""), fn)
	assert.ErrorIs(t, err, ErrNoCredential)
	_, err = Authenticate(newBasicContext("abc", "x"), fn)
	assert.ErrorIs(t, err, ErrDenied)
}

func TestUserInfoContext(t *testing.T) {
	_, ok := GetUserInfo(context.Background())
	assert.False(t, ok)
	ctx := SetUserInfo(context.Background(), &UserInfo{AuthType: BasicAuthName, Username: "abc"})
	u, ok := GetUserInfo(ctx)
	require.True(t, ok)
	assert.Equal(t, "abc", u.Username)
}
