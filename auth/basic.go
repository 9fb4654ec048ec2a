package auth

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

const (
	BasicAuthName = "basic"
)

func init() {
	register(&basicAuth{})
}

type basicAuth struct {
}

func (b *basicAuth) Name() string {
	return BasicAuthName
}

func (b *basicAuth) Auth(c *gin.Context, lookup UserLookupFunc) (*UserInfo, error) {
	user, pass, ok := c.Request.BasicAuth()
	if !ok {
		return nil, ErrNoCredential
	}
	secret, ok, err := lookup(c.Request.Context(), user)
	if err != nil {
		return nil, fmt.Errorf("lookup user failed, u:%s, err:%w", user, err)
	}
	// 用户不存在和密码错误返回同一种错误
	if !ok || !secretEqual(secret, pass) {
		return nil, fmt.Errorf("u:%s, err:%w", user, ErrDenied)
	}
	return &UserInfo{AuthType: BasicAuthName, Username: user}, nil
}
