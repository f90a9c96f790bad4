package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func SetupRouter(h *Handler, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(h.log))

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowHeaders = append(config.AllowHeaders, LearnerHeader, "Content-Type")
	r.Use(cors.New(config))

	apiV1 := r.Group("/api/v1")
	{
		apiV1.GET("/health", h.Health)
		apiV1.GET("/courses", h.ListCourses)
		apiV1.GET("/sections/:id", h.GetSection)

		learner := apiV1.Group("", h.requireLearner)
		learner.POST("/sections/:id/quiz", h.StartQuiz)
		learner.POST("/exams/:id", h.StartExam)
		learner.GET("/sessions/:id", h.GetSession)
		learner.POST("/sessions/:id/answers", h.SubmitAnswer)
		learner.POST("/sessions/:id/finish", h.FinishSession)
		learner.POST("/checks/:id/answers", h.AnswerCheck)
		learner.GET("/attempts", h.ListAttempts)
		learner.GET("/stats", h.Stats)
	}

	return r
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("learner", c.GetHeader(LearnerHeader)),
		)
	}
}
