package news

import (
	"context"
	"fmt"
	"time"

	"com.martdev.newsroom/internal/auth"
	dbnews "com.martdev.newsroom/internal/database/news"
	"com.martdev.newsroom/internal/events"
	"com.martdev.newsroom/internal/tracing"
	"com.martdev.newsroom/internal/util"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const DeletedMessage = "News article deleted successfully"

type CreateNewsRequest struct {
	Title    string  `json:"title" validate:"required,max=255"`
	Content  string  `json:"content" validate:"required"`
	Category string  `json:"category" validate:"required,max=50"`
	ImageURL *string `json:"image_url" validate:"omitempty,url,max=255"`
}

type AuthorResponse struct {
	ID             int64   `json:"id"`
	Username       string  `json:"username"`
	ProfilePicture *string `json:"profile_picture"`
}

type NewsResponse struct {
	ID        int64          `json:"id"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	Category  string         `json:"category"`
	ImageURL  *string        `json:"image_url"`
	CreatedAt string         `json:"created_at"`
	Author    AuthorResponse `json:"author"`
}

type NewsService interface {
	// Authorize fails with ErrorUnauthenticated or ErrorForbidden unless caller
	// may create and delete news.
	Authorize(caller *auth.Caller) error
	ListNews(ctx context.Context, caller *auth.Caller) ([]NewsResponse, error)
	GetNews(ctx context.Context, caller *auth.Caller, newsID int64) (*NewsResponse, error)
	CreateNews(ctx context.Context, caller *auth.Caller, req *CreateNewsRequest) (*NewsResponse, error)
	DeleteNews(ctx context.Context, caller *auth.Caller, newsID int64) (*util.MessageResponse, error)
}

// Recorder counts completed mutations.
type Recorder interface {
	NewsCreatedInc()
	NewsDeletedInc()
}

type noopRecorder struct{}

func (noopRecorder) NewsCreatedInc() {}
func (noopRecorder) NewsDeletedInc() {}

type Service struct {
	store      dbnews.NewsStorer
	authorizer auth.Authorizer
	publisher  events.NewsPublisher
	recorder   Recorder
	tracer     trace.Tracer
	logger     *zap.SugaredLogger
}

type Option func(*Service)

func WithPublisher(publisher events.NewsPublisher) Option {
	return func(s *Service) { s.publisher = publisher }
}

func WithRecorder(recorder Recorder) Option {
	return func(s *Service) { s.recorder = recorder }
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) { s.tracer = tracer }
}

func NewNewsService(store dbnews.NewsStorer, authorizer auth.Authorizer, logger *zap.SugaredLogger, opts ...Option) *Service {
	s := &Service{
		store:      store,
		authorizer: authorizer,
		publisher:  events.NoopPublisher{},
		recorder:   noopRecorder{},
		tracer:     otel.Tracer("newsroom/service/news"),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ToNewsResponse projects a stored row and its joined author into the API shape.
func ToNewsResponse(n *dbnews.News) NewsResponse {
	return NewsResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Category:  n.Category,
		ImageURL:  n.ImageURL,
		CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339Nano),
		Author: AuthorResponse{
			ID:             n.Author.ID,
			Username:       n.Author.Username,
			ProfilePicture: n.Author.ProfilePicture,
		},
	}
}

func (s *Service) ListNews(ctx context.Context, caller *auth.Caller) (_ []NewsResponse, err error) {
	ctx, span := s.tracer.Start(ctx, "NewsService.ListNews")
	defer func() { tracing.RecordError(span, err); span.End() }()

	if caller == nil {
		return nil, util.ErrorUnauthenticated
	}

	newsList, err := s.store.GetAllNews(ctx)
	if err != nil {
		return nil, err
	}

	response := make([]NewsResponse, 0, len(newsList))
	for i := range newsList {
		response = append(response, ToNewsResponse(&newsList[i]))
	}
	return response, nil
}

func (s *Service) GetNews(ctx context.Context, caller *auth.Caller, newsID int64) (_ *NewsResponse, err error) {
	ctx, span := s.tracer.Start(ctx, "NewsService.GetNews", trace.WithAttributes(attribute.Int64("news.id", newsID)))
	defer func() { tracing.RecordError(span, err); span.End() }()

	if caller == nil {
		return nil, util.ErrorUnauthenticated
	}

	n, err := s.store.GetNewsByID(ctx, newsID)
	if err != nil {
		return nil, err
	}
	response := ToNewsResponse(n)
	return &response, nil
}

func (s *Service) CreateNews(ctx context.Context, caller *auth.Caller, req *CreateNewsRequest) (_ *NewsResponse, err error) {
	ctx, span := s.tracer.Start(ctx, "NewsService.CreateNews")
	defer func() { tracing.RecordError(span, err); span.End() }()

	if err := s.Authorize(caller); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", util.ErrorValidation)
	}
	if err := util.Validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrorValidation, err)
	}

	n := &dbnews.News{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		ImageURL: req.ImageURL,
		AuthorID: caller.ID,
	}
	if err := s.store.CreateNews(ctx, n); err != nil {
		return nil, err
	}

	response := ToNewsResponse(n)
	s.recorder.NewsCreatedInc()
	if err := s.publisher.PublishNewsCreated(ctx, response); err != nil {
		s.logger.Warnw("failed to publish news created event", "news_id", n.ID, "error", err)
	}
	return &response, nil
}

func (s *Service) DeleteNews(ctx context.Context, caller *auth.Caller, newsID int64) (_ *util.MessageResponse, err error) {
	ctx, span := s.tracer.Start(ctx, "NewsService.DeleteNews", trace.WithAttributes(attribute.Int64("news.id", newsID)))
	defer func() { tracing.RecordError(span, err); span.End() }()

	if err := s.Authorize(caller); err != nil {
		return nil, err
	}

	if err := s.store.DeleteNews(ctx, newsID); err != nil {
		return nil, err
	}

	s.recorder.NewsDeletedInc()
	if err := s.publisher.PublishNewsDeleted(ctx, newsID); err != nil {
		s.logger.Warnw("failed to publish news deleted event", "news_id", newsID, "error", err)
	}
	return &util.MessageResponse{Message: DeletedMessage}, nil
}

func (s *Service) Authorize(caller *auth.Caller) error {
	if caller == nil {
		return util.ErrorUnauthenticated
	}
	if !s.authorizer.Can(caller, auth.PermissionManageNews) {
		return util.ErrorForbidden
	}
	return nil
}
