package news

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"com.martdev.newsroom/internal/auth"
	newsservice "com.martdev.newsroom/internal/service/news"
	"com.martdev.newsroom/internal/util"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	notFoundMessage        = "News article not found"
	forbiddenCreateMessage = "Only admins can create news articles"
	forbiddenDeleteMessage = "Only admins can delete news articles"
)

type Handler struct {
	service newsservice.NewsService
	logger  *zap.SugaredLogger
}

func NewHandler(service newsservice.NewsService, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: service, logger: logger}
}

// List news godoc
//
//	@summary	List every news article, newest first
//	@tags		news
//	@produce	json
//	@success	200	{array}		news.NewsResponse
//	@failure	401	{object}	util.ErrorResponse
//	@failure	500	{object}	util.ErrorResponse
//	@security	ApiKeyAuth
//	@router		/news/ [get]
func (h *Handler) listNewsHandler(w http.ResponseWriter, r *http.Request) {
	newsList, err := h.service.ListNews(r.Context(), auth.CallerFromContext(r.Context()))
	if err != nil {
		h.serviceErrorResponse(w, r, err, "")
		return
	}

	if err := util.JSONResponse(w, http.StatusOK, newsList); err != nil {
		util.InternalServerErrorResponse(w, r, err, h.logger)
	}
}

// Get news godoc
//
//	@summary	Get a news article by id
//	@tags		news
//	@produce	json
//	@param		news_id	path		int	true	"News ID"
//	@success	200		{object}	news.NewsResponse
//	@failure	401		{object}	util.ErrorResponse
//	@failure	404		{object}	util.ErrorResponse
//	@failure	422		{object}	util.ErrorResponse
//	@security	ApiKeyAuth
//	@router		/news/{news_id} [get]
func (h *Handler) getNewsHandler(w http.ResponseWriter, r *http.Request) {
	newsID, err := newsIDParam(r)
	if err != nil {
		util.UnprocessableEntityErrorResponse(w, r, err, h.logger)
		return
	}

	news, err := h.service.GetNews(r.Context(), auth.CallerFromContext(r.Context()), newsID)
	if err != nil {
		h.serviceErrorResponse(w, r, err, "")
		return
	}

	if err := util.JSONResponse(w, http.StatusOK, news); err != nil {
		util.InternalServerErrorResponse(w, r, err, h.logger)
	}
}

// Create news godoc
//
//	@summary	Create a news article authored by the caller (admin only)
//	@tags		news
//	@accept		json
//	@produce	json
//	@param		payload	body		news.CreateNewsRequest	true	"News info"
//	@success	200		{object}	news.NewsResponse
//	@failure	401		{object}	util.ErrorResponse
//	@failure	403		{object}	util.ErrorResponse
//	@failure	422		{object}	util.ErrorResponse
//	@failure	500		{object}	util.ErrorResponse
//	@security	ApiKeyAuth
//	@router		/news/ [post]
func (h *Handler) createNewsHandler(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFromContext(r.Context())
	if err := h.service.Authorize(caller); err != nil {
		h.serviceErrorResponse(w, r, err, forbiddenCreateMessage)
		return
	}

	var req newsservice.CreateNewsRequest
	if err := util.ReadJSON(w, r, &req); err != nil {
		util.UnprocessableEntityErrorResponse(w, r, err, h.logger)
		return
	}

	created, err := h.service.CreateNews(r.Context(), caller, &req)
	if err != nil {
		h.serviceErrorResponse(w, r, err, forbiddenCreateMessage)
		return
	}

	if err := util.JSONResponse(w, http.StatusOK, created); err != nil {
		util.InternalServerErrorResponse(w, r, err, h.logger)
	}
}

// Delete news godoc
//
//	@summary	Delete a news article (admin only)
//	@tags		news
//	@produce	json
//	@param		news_id	path		int	true	"News ID"
//	@success	200		{object}	util.MessageResponse
//	@failure	401		{object}	util.ErrorResponse
//	@failure	403		{object}	util.ErrorResponse
//	@failure	404		{object}	util.ErrorResponse
//	@failure	422		{object}	util.ErrorResponse
//	@security	ApiKeyAuth
//	@router		/news/{news_id} [delete]
func (h *Handler) deleteNewsHandler(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFromContext(r.Context())
	if err := h.service.Authorize(caller); err != nil {
		h.serviceErrorResponse(w, r, err, forbiddenDeleteMessage)
		return
	}

	newsID, err := newsIDParam(r)
	if err != nil {
		util.UnprocessableEntityErrorResponse(w, r, err, h.logger)
		return
	}

	resp, err := h.service.DeleteNews(r.Context(), caller, newsID)
	if err != nil {
		h.serviceErrorResponse(w, r, err, forbiddenDeleteMessage)
		return
	}

	if err := util.JSONResponse(w, http.StatusOK, resp); err != nil {
		util.InternalServerErrorResponse(w, r, err, h.logger)
	}
}

func (h *Handler) serviceErrorResponse(w http.ResponseWriter, r *http.Request, err error, forbiddenMessage string) {
	switch {
	case errors.Is(err, util.ErrorUnauthenticated), errors.Is(err, util.ErrorAuthorNotFound):
		util.UnauthorizedErrorResponse(w, r, err, h.logger)
	case errors.Is(err, util.ErrorForbidden):
		util.ForbiddenErrorResponse(w, r, err, forbiddenMessage, h.logger)
	case errors.Is(err, util.ErrorNotFound):
		util.NotFoundErrorResponse(w, r, err, notFoundMessage, h.logger)
	case errors.Is(err, util.ErrorValidation):
		util.UnprocessableEntityErrorResponse(w, r, err, h.logger)
	default:
		util.InternalServerErrorResponse(w, r, err, h.logger)
	}
}

func newsIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "news_id")
	newsID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("news_id must be an integer, got %q", raw)
	}
	return newsID, nil
}
