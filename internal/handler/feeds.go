package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/BloggingApp/vanguard/internal/dto"
	"github.com/BloggingApp/vanguard/internal/model"
	"github.com/BloggingApp/vanguard/internal/rss"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) feedsList(c *gin.Context) {
	user := h.getUserFromRequest(c)

	includeRestricted, _ := strconv.ParseBool(c.Query("includeRestricted"))

	feeds, err := h.services.Feed.FeedList(c.Request.Context(), user, includeRestricted)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, feeds)
}

func (h *Handler) feedsCreate(c *gin.Context) {
	user := h.getUserFromRequest(c)

	var input dto.CreateFeedRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{Errors: bindingErrors(err)})
		return
	}

	feed, err := h.services.Feed.CreateFeed(c.Request.Context(), user, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, feed)
}

func (h *Handler) feedsUpdate(c *gin.Context) {
	user := h.getUserFromRequest(c)

	feedID, err := uuid.Parse(c.Param("feedID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	var input model.FeedChangeset
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{Errors: bindingErrors(err)})
		return
	}

	feed, err := h.services.Feed.UpdateFeed(c.Request.Context(), user, feedID, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, feed)
}

// feedsRSS serves /feeds/{id}.xml.
func (h *Handler) feedsRSS(c *gin.Context) {
	feedFile := c.Param("feedFile")
	if !strings.HasSuffix(feedFile, ".xml") {
		c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, errNotFound.Error()))
		return
	}

	feedID, err := uuid.Parse(strings.TrimSuffix(feedFile, ".xml"))
	if err != nil {
		c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, errNotFound.Error()))
		return
	}

	doc, err := h.services.Feed.RenderRSS(c.Request.Context(), feedID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Cache-Control", rss.CacheControl)
	c.Header("Content-Length", strconv.Itoa(len(doc)))
	c.Data(http.StatusOK, rss.ContentType, doc)
}
