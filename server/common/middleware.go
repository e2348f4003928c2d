package common

import (
	"corpus-annotator-backend/logging"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	RequestContextKeyUser = "user"

	HeaderUserName  = "X-User-Name"
	HeaderUserEmail = "X-User-Email"
	HeaderUserRoles = "X-User-Roles"

	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"

	debugUserName  = "debug"
	debugUserEmail = ""
)

var debugUserRoles = []string{RoleOwner, RoleAdmin, RoleMember}

type UserInfo struct {
	Name  string
	Email string
	Roles []string
}

func (u *UserInfo) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// parseRoles 解析逗号分隔的角色列表，忽略空项
func parseRoles(header string) []string {
	ret := make([]string, 0)
	for _, role := range strings.Split(header, ",") {
		role = strings.TrimSpace(role)
		if len(role) != 0 {
			ret = append(ret, role)
		}
	}
	return ret
}

// LogRequest 记录每个请求的方法、路径、状态码和耗时
func LogRequest(ctx *gin.Context) {
	start := time.Now()

	ctx.Next()

	logging.Default().Infof("%s %s -> %d (%s)",
		ctx.Request.Method, ctx.Request.URL.Path, ctx.Writer.Status(), time.Since(start))
}

/*
SetUserInfo 从请求头读取标注人。

网关完成登录校验后写入 X-User-Name、X-User-Email 与 X-User-Roles（逗号分隔）；
debug 模式下缺少请求头时使用默认的 debug 用户，拥有全部角色。
*/
func SetUserInfo(debug bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		name := ctx.GetHeader(HeaderUserName)
		email := ctx.GetHeader(HeaderUserEmail)
		roles := parseRoles(ctx.GetHeader(HeaderUserRoles))

		if len(name) == 0 && debug {
			name = debugUserName
			email = debugUserEmail
			roles = debugUserRoles
		}

		if len(name) != 0 {
			ctx.Set(RequestContextKeyUser, &UserInfo{
				Name:  name,
				Email: email,
				Roles: roles,
			})
		}

		ctx.Next()
	}
}

func RejectNotLogin(debug bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if debug {
			ctx.Next()
			return
		}

		if GetUserInfo(ctx) == nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, MakeErrorResp(CodeNotLogin, "not login"))
			return
		}

		ctx.Next()
	}
}

// RequireRole 拒绝不具有 role 的用户，需放在 RejectNotLogin 之后
func RequireRole(role string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user := GetUserInfo(ctx)
		if user == nil || !user.HasRole(role) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, MakeErrorResp(CodeForbidden, "permission denied"))
			return
		}

		ctx.Next()
	}
}

// GetUserInfo 返回 SetUserInfo 写入的标注人，未登录时返回 nil
func GetUserInfo(ctx *gin.Context) *UserInfo {
	user, exist := ctx.Get(RequestContextKeyUser)
	if !exist {
		return nil
	}

	userInfo, ok := user.(*UserInfo)
	if !ok {
		logging.Default().Errorf("ctx.Get(%s) get [%#v] not (*common.UserInfo)", RequestContextKeyUser, user)
		return nil
	}

	return userInfo
}
