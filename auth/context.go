package auth

import "context"

type userInfoKey struct{}

type UserInfo struct {
	AuthType string
	Username string
}

func SetUserInfo(ctx context.Context, u *UserInfo) context.Context {
	return context.WithValue(ctx, userInfoKey{}, u)
}

func GetUserInfo(ctx context.Context) (*UserInfo, bool) {
	u, ok := ctx.Value(userInfoKey{}).(*UserInfo)
	return u, ok
}
