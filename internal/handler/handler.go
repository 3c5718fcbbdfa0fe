package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/BloggingApp/vanguard/internal/config"
	"github.com/BloggingApp/vanguard/internal/dto"
	"github.com/BloggingApp/vanguard/internal/model"
	"github.com/BloggingApp/vanguard/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	services *service.Service
	logger   *zap.Logger
	cfg      config.HTTPConfig
}

func New(services *service.Service, logger *zap.Logger, cfg config.HTTPConfig) *Handler {
	registerValidators()

	return &Handler{
		services: services,
		logger:   logger,
		cfg:      cfg,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(h.accessLog, gin.Recovery())
	if h.cfg.ClientOrigin != "" {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{h.cfg.ClientOrigin},
			AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, errNotFound.Error()))
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, dto.NewBasicResponse(false, errMethodNotAllowed.Error()))
	})

	r.GET("/feeds/:feedFile", h.feedsRSS)

	v1 := r.Group("/api/v1", h.authMiddleware)
	{
		posts := v1.Group("/posts")
		{
			posts.POST("", h.postsCreate)
			posts.GET("", h.postsList)

			post := posts.Group("/:postID")
			{
				post.GET("", h.postsGetByID)
				post.PATCH("", h.postsUpdate)
				post.DELETE("", h.postsDelete)
				post.GET("/revisions", h.postsRevisions)
				post.POST("/reactions", h.reactionsToggle)
				post.GET("/reactions", h.reactionsSummary)
				post.GET("/comments", h.commentsGet)
				post.POST("/comments", h.commentsCreate)
			}
		}

		feeds := v1.Group("/feeds")
		{
			feeds.GET("", h.feedsList)
			feeds.POST("", h.adminMiddleware, h.feedsCreate)
			feeds.PATCH("/:feedID", h.adminMiddleware, h.feedsUpdate)
		}

		comments := v1.Group("/comments")
		{
			comments.GET("", h.adminMiddleware, h.commentsGetAll)
			comments.DELETE("/:commentID", h.commentsDelete)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", h.categoriesGet)
			categories.POST("", h.adminMiddleware, h.categoriesCreate)
		}

		users := v1.Group("/users")
		{
			users.GET("/@me", h.usersGetMe)
			users.PATCH("/:userID", h.usersUpdate)
		}
	}

	return r
}

func (h *Handler) accessLog(c *gin.Context) {
	start := time.Now()

	c.Next()

	h.logger.Info(
		"request",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", c.Writer.Status()),
		zap.Duration("latency", time.Since(start)),
	)
}

// handleError writes the response for an error returned by a service.
func (h *Handler) handleError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{Errors: verr.Fields})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, errNotFound.Error()))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.NewBasicResponse(false, errNoAccess.Error()))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, service.ErrInternal.Error()))
	}
}

func (h *Handler) getUserFromRequest(c *gin.Context) model.User {
	userReq, _ := c.Get("user")

	user, _ := userReq.(model.User)
	return user
}

func parsePostID(c *gin.Context) (int64, bool) {
	postID, err := strconv.ParseInt(strings.TrimSpace(c.Param("postID")), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return 0, false
	}
	return postID, true
}
