package server

import (
	"corpus-annotator-backend/server/common"
	"corpus-annotator-backend/server/handler"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Config struct {
	Host        string
	Port        int
	DebugMode   bool
	CorpusTitle string
}

type Server struct {
	engine *gin.Engine
	config *Config
}

func New(config *Config) *Server {
	handler.Init(&handler.Setting{CorpusTitle: config.CorpusTitle})

	eng := gin.Default()

	eng.Use(common.LogRequest)
	eng.Use(common.SetUserInfo(config.DebugMode))
	eng.Use(cors.New(corsConfig()))

	eng.GET("/test/coffee", coffeeHandler)

	eng.GET("/corpus", handler.GetCorpus)

	// 标注相关的路由都以标注人区分
	annotateGroup := eng.Group("annotate")
	{
		annotateGroup.Use(common.RejectNotLogin(config.DebugMode))

		annotateGroup.POST("/check", handler.CheckRow)
		annotateGroup.POST("/expand", handler.ExpandRow)
		annotateGroup.POST("/collapse", handler.CollapseRow)
		annotateGroup.POST("/page", handler.ChangePage)
		annotateGroup.GET("/form", handler.GetForm)
		annotateGroup.POST("/form", handler.UpdateForm)
		annotateGroup.POST("/entity", handler.StageEntity)
		annotateGroup.POST("/relation", handler.StageRelation)
		annotateGroup.POST("/confirm", handler.Confirm)
		annotateGroup.POST("/discard", handler.Discard)
	}

	adminGroup := eng.Group("admin")
	{
		adminGroup.Use(common.RejectNotLogin(config.DebugMode))
		adminGroup.Use(common.RequireRole(common.RoleAdmin))

		adminGroup.POST("/lines", handler.IngestLines)
		adminGroup.GET("/export", handler.Export)
	}

	return &Server{
		engine: eng,
		config: config,
	}
}

// 用户信息由网关通过请求头传入
func corsConfig() cors.Config {
	conf := cors.DefaultConfig()
	conf.AllowAllOrigins = true
	conf.AddAllowHeaders(common.HeaderUserName, common.HeaderUserEmail, common.HeaderUserRoles)
	return conf
}

func coffeeHandler(ctx *gin.Context) {
	ctx.String(http.StatusTeapot, "I'm a teapot")
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) RunServer() error {
	return s.engine.Run(fmt.Sprintf("%s:%d", s.config.Host, s.config.Port))
}
