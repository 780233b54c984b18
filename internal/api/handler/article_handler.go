package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nusapress/articles-api/internal/api/metrics"
	apimiddleware "github.com/nusapress/articles-api/internal/api/middleware"
	"github.com/nusapress/articles-api/internal/core/domain"
	"github.com/nusapress/articles-api/internal/core/ports"
)

// ArticleHandler handles HTTP requests for article operations.
type ArticleHandler struct {
	service ports.ArticleService
}

func NewArticleHandler(service ports.ArticleService) *ArticleHandler {
	return &ArticleHandler{service: service}
}

// --- Request / Response types ---

type createArticleRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type updateArticleRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Status  *string `json:"status"`
}

type createArticleResponse struct {
	Message string          `json:"message"`
	Article *domain.Article `json:"article"`
	Author  string          `json:"author"`
}

type updateArticleResponse struct {
	Message string          `json:"message"`
	Article *domain.Article `json:"article"`
}

type deleteArticleResponse struct {
	Message          string `json:"message"`
	DeletedArticleID int64  `json:"deletedArticleId"`
}

type adminListResponse struct {
	Message  string            `json:"message"`
	Total    int               `json:"total"`
	Articles []*domain.Article `json:"articles"`
}

// articleID parses the :id path parameter. An unparseable id behaves like a
// missing one: the service reports not-found for id 0, and anonymous
// callers still get their 401 first because the service decides login
// state before the lookup.
func articleID(c echo.Context) int64 {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// List handles GET /articles.
//
// @Summary      List published articles
// @Tags         articles
// @Produce      json
// @Success      200  {array}  domain.Article
// @Router       /articles [get]
func (h *ArticleHandler) List(c echo.Context) error {
	articles, err := h.service.ListPublished(c.Request().Context())
	if err != nil {
		return err
	}
	if articles == nil {
		articles = []*domain.Article{}
	}
	return c.JSON(http.StatusOK, articles)
}

// Get handles GET /articles/:id.
//
// @Summary      Get a published article
// @Tags         articles
// @Produce      json
// @Param        id   path      int  true  "Article id"
// @Success      200  {object}  domain.Article
// @Failure      404  {object}  map[string]string
// @Router       /articles/{id} [get]
func (h *ArticleHandler) Get(c echo.Context) error {
	article, err := h.service.GetPublished(c.Request().Context(), articleID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, article)
}

// Create handles POST /articles.
//
// @Summary      Create an article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createArticleRequest  true  "Article fields"
// @Success      201   {object}  createArticleResponse
// @Failure      401   {object}  map[string]string
// @Router       /articles [post]
func (h *ArticleHandler) Create(c echo.Context) error {
	var req createArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	actor := apimiddleware.CurrentUser(c)
	article, err := h.service.Create(c.Request().Context(), actor, ports.CreateArticleInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}

	metrics.AccessDecisionsTotal.WithLabelValues("allow", "").Inc()
	metrics.ArticlesCreatedTotal.Inc()

	return c.JSON(http.StatusCreated, createArticleResponse{
		Message: "article created",
		Article: article,
		Author:  actor.Username,
	})
}

// Update handles PUT /articles/:id.
//
// @Summary      Update an article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Article id"
// @Param        body  body      updateArticleRequest  true  "Fields to change"
// @Success      200   {object}  updateArticleResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /articles/{id} [put]
func (h *ArticleHandler) Update(c echo.Context) error {
	var req updateArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	var status *domain.ArticleStatus
	if req.Status != nil {
		s := domain.ArticleStatus(*req.Status)
		status = &s
	}

	article, err := h.service.Update(c.Request().Context(), apimiddleware.CurrentUser(c), articleID(c), ports.UpdateArticleInput{
		Title:   req.Title,
		Content: req.Content,
		Status:  status,
	})
	if err != nil {
		return err
	}

	metrics.AccessDecisionsTotal.WithLabelValues("allow", "").Inc()

	return c.JSON(http.StatusOK, updateArticleResponse{
		Message: "article updated",
		Article: article,
	})
}

// Delete handles DELETE /articles/:id.
//
// @Summary      Delete an article
// @Tags         articles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Article id"
// @Success      200  {object}  deleteArticleResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /articles/{id} [delete]
func (h *ArticleHandler) Delete(c echo.Context) error {
	id := articleID(c)
	if err := h.service.Delete(c.Request().Context(), apimiddleware.CurrentUser(c), id); err != nil {
		return err
	}

	metrics.AccessDecisionsTotal.WithLabelValues("allow", "").Inc()

	return c.JSON(http.StatusOK, deleteArticleResponse{
		Message:          "article deleted",
		DeletedArticleID: id,
	})
}

// ListAll handles GET /articles-admin.
//
// @Summary      List every article, drafts included
// @Tags         articles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  adminListResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /articles-admin [get]
func (h *ArticleHandler) ListAll(c echo.Context) error {
	articles, err := h.service.ListAll(c.Request().Context(), apimiddleware.CurrentUser(c))
	if err != nil {
		return err
	}
	if articles == nil {
		articles = []*domain.Article{}
	}

	metrics.AccessDecisionsTotal.WithLabelValues("allow", "").Inc()

	return c.JSON(http.StatusOK, adminListResponse{
		Message:  "all articles, drafts included",
		Total:    len(articles),
		Articles: articles,
	})
}
