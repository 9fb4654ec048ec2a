package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sort"

	"github.com/gin-gonic/gin"
)

var (
	ErrNoCredential = errors.New("no credential found")
	ErrDenied       = errors.New("credential denied")
)

// UserLookupFunc 根据用户名查询密码, ok=false 表示用户不存在
type UserLookupFunc func(ctx context.Context, user string) (string, bool, error)

func StaticUsers(users map[string]string) UserLookupFunc {
	return func(ctx context.Context, user string) (string, bool, error) {
		secret, ok := users[user]
		return secret, ok, nil
	}
}

type IAuth interface {
	Name() string
	Auth(c *gin.Context, lookup UserLookupFunc) (*UserInfo, error)
}

var mp = make(map[string]IAuth)

func register(a IAuth) {
	mp[a.Name()] = a
}

// AuthList 按名字排序, 保证多种认证方式的尝试顺序固定
func AuthList() []IAuth {
	rs := make([]IAuth, 0, len(mp))
	for _, v := range mp {
		rs = append(rs, v)
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i].Name() < rs[j].Name() })
	return rs
}

// Authenticate tries every registered method in order. It returns
// ErrNoCredential only when none of them found a credential in the request.
func Authenticate(c *gin.Context, lookup UserLookupFunc) (*UserInfo, error) {
	var lastErr error
	for _, a := range AuthList() {
		u, err := a.Auth(c, lookup)
		if err == nil {
			return u, nil
		}
		if errors.Is(err, ErrNoCredential) {
			continue
		}
		lastErr = fmt.Errorf("auth by %s failed, err:%w", a.Name(), err)
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ErrNoCredential
}

func secretEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
