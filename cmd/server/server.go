package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"campus-event-system/config"
	"campus-event-system/internal/global/cache"
	"campus-event-system/internal/global/database"
	"campus-event-system/internal/global/logger"
	"campus-event-system/internal/global/middleware"
	internalOtel "campus-event-system/internal/global/otel"
	internalSentry "campus-event-system/internal/global/sentry"
	"campus-event-system/internal/module"
	"campus-event-system/tools"

	"github.com/gin-gonic/gin"
)

var log *slog.Logger

func Init() {
	config.Init()
	log = logger.New("Server")

	if err := internalSentry.Init(); err != nil {
		log.Warn("sentry 初始化失败", "error", err)
	}

	database.Init()
	cache.Init()

	if config.Get().OTel.Enable {
		log.Info("OTel Enabled")
		internalOtel.Init()
	}

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Module: %s", m.GetName()))
		m.Init()
	}
}

func Run() {
	gin.SetMode(string(config.Get().Mode))
	r := gin.New()

	r.Use(internalSentry.Middleware())
	switch config.Get().Mode {
	case config.ModeRelease:
		r.Use(middleware.Logger(logger.Get()))
	case config.ModeDebug:
		r.Use(gin.Logger())
	}
	r.Use(middleware.Cors())
	r.Use(middleware.Recovery())

	if config.Get().OTel.Enable {
		r.Use(middleware.Trace())
	}

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Router: %s", m.GetName()))
		m.InitRouter(r.Group("/" + config.Get().Prefix))
	}
	err := r.Run(config.Get().Host + ":" + config.Get().Port)
	tools.PanicOnErr(err)
}

// Shutdown 退出前冲刷 sentry 并关闭 TracerProvider
func Shutdown() {
	internalSentry.Flush(2 * time.Second)
	if config.Get().OTel.Enable {
		if err := internalOtel.Shutdown(context.Background()); err != nil {
			log.Error("关闭 TracerProvider 失败", "error", err)
		}
	}
}
