package web

import (
	"net/http"

	"axiapac.com/hrms/core"
	"axiapac.com/hrms/web/common"
	"axiapac.com/hrms/web/handlers/attendance"
	"axiapac.com/hrms/web/handlers/candidates"
	"axiapac.com/hrms/web/handlers/employees"
	"axiapac.com/hrms/web/handlers/leaves"
	"axiapac.com/hrms/web/handlers/users"
	"axiapac.com/hrms/web/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RouterOptions struct {
	Service        *core.Service
	Tokens         middlewares.TokenParser
	Logger         *logrus.Logger
	MaxUploadBytes int64
}

func NewRouter(opts RouterOptions) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	r := gin.New()
	r.Use(middlewares.Logging(log), gin.Recovery())
	if opts.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = opts.MaxUploadBytes
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	base := common.Handler{Service: opts.Service, MaxUploadBytes: opts.MaxUploadBytes}

	public := r.Group("/api")
	protected := r.Group("/api")
	protected.Use(middlewares.Authentication(opts.Tokens))
	{
		users.Register(public, protected, base)
		candidates.Register(protected, base)
		employees.Register(protected, base)
		attendance.Register(protected, base)
		leaves.Register(protected, base)
	}

	return r
}
