package app

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/benbjohnson/clock"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/clear-ness/postcounters/mlog"
	"github.com/clear-ness/postcounters/model"
)

// CounterSync keeps the view count, like count and like icon of one page equal to what the
// server last reported. The server alone decides whether a toggle likes or unlikes.
type CounterSync struct {
	app    *App
	client *model.Client
	page   PageContext
	log    *mlog.Logger
	tracer trace.Tracer

	views *CounterAnimator
	likes *CounterAnimator

	viewRecorded int32

	mu           sync.Mutex
	closed       bool
	likeSeq      uint64
	likeApplied  uint64
	likeInFlight int
	pulseTimer   *clock.Timer
}

// NewCounterSync binds a page to the configured site. The credential is read once here and
// reused for every request of the page.
func (a *App) NewCounterSync(page PageContext) (*CounterSync, *model.AppError) {
	if page.PostId == "" {
		return nil, model.NewAppError("NewCounterSync", "app.counter_sync.missing_post_id.app_error", nil, "", http.StatusBadRequest)
	}

	var csrfToken string
	if page.Credential != nil {
		csrfToken = page.Credential.CSRFToken()
	}

	s := &CounterSync{
		app:    a,
		client: a.NewClient(csrfToken),
		page:   page,
		log:    a.Log.With(mlog.String("post_id", page.PostId)),
		tracer: a.TracerProvider.Tracer("github.com/clear-ness/postcounters/app"),
	}

	if csrfToken == "" {
		s.log.Warn("No CSRF token available, requests will be sent without one")
	}

	if page.ViewCounter != nil {
		s.views = NewCounterAnimator(page.ViewCounter, a.Clock, a.animationTiming)
	}
	if page.LikeCounter != nil {
		s.likes = NewCounterAnimator(page.LikeCounter, a.Clock, a.animationTiming)
	}

	return s, nil
}

// RecordView registers one view of the post. It sends at most one request per CounterSync;
// failures are logged and never retried.
func (s *CounterSync) RecordView(ctx context.Context) *model.AppError {
	if !atomic.CompareAndSwapInt32(&s.viewRecorded, 0, 1) {
		return model.NewAppError("RecordView", "app.counter_sync.view_already_recorded.app_error", nil, "", http.StatusBadRequest)
	}

	if s.isClosed() {
		return model.NewAppError("RecordView", "app.counter_sync.page_closed.app_error", nil, "", http.StatusBadRequest)
	}

	ctx, span := s.tracer.Start(ctx, "CounterSync.RecordView", trace.WithAttributes(attribute.String("post_id", s.page.PostId)))
	defer span.End()

	views, resp := s.client.RegisterPostView(ctx, s.page.PostId)
	if resp.Error != nil {
		recordSpanError(span, resp)
		s.log.Error("View error",
			mlog.Int("status_code", resp.StatusCode),
			mlog.String("request_id", resp.RequestId),
			mlog.Err(resp.Error),
		)
		return resp.Error
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		s.log.Debug("Ignoring view response for a closed page", mlog.String("request_id", resp.RequestId))
		return nil
	}

	span.SetAttributes(attribute.Int("views_count", views.ViewsCount))

	if s.views != nil {
		s.views.Animate(views.ViewsCount)
	}

	return nil
}

// ToggleLike asks the server to flip the viewer's like and renders its answer. Nothing is
// changed on screen before the server confirms. A response older than one already applied
// is discarded.
func (s *CounterSync) ToggleLike(ctx context.Context) *model.AppError {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return model.NewAppError("ToggleLike", "app.counter_sync.page_closed.app_error", nil, "", http.StatusBadRequest)
	}

	if s.likeInFlight > 0 && *s.app.Config().ClientSettings.DisableLikeWhileInFlight {
		s.mu.Unlock()
		s.log.Debug("Like toggle ignored while another is in flight")
		return model.NewAppError("ToggleLike", "app.counter_sync.like_in_flight.app_error", nil, "", http.StatusConflict)
	}

	s.likeInFlight++
	s.likeSeq++
	seq := s.likeSeq
	s.mu.Unlock()

	ctx, span := s.tracer.Start(ctx, "CounterSync.ToggleLike", trace.WithAttributes(
		attribute.String("post_id", s.page.PostId),
		attribute.Int64("seq", int64(seq)),
	))
	defer span.End()

	status, resp := s.client.TogglePostLike(ctx, s.page.PostId)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.likeInFlight--

	if resp.Error != nil {
		recordSpanError(span, resp)
		s.log.Error("Like error",
			mlog.Int("status_code", resp.StatusCode),
			mlog.String("request_id", resp.RequestId),
			mlog.Err(resp.Error),
		)
		return resp.Error
	}

	if s.closed {
		s.log.Debug("Ignoring like response for a closed page", mlog.String("request_id", resp.RequestId))
		return nil
	}

	if seq < s.likeApplied {
		span.SetAttributes(attribute.Bool("stale", true))
		s.log.Debug("Discarding stale like response",
			mlog.Uint64("seq", seq),
			mlog.Uint64("applied_seq", s.likeApplied),
			mlog.String("request_id", resp.RequestId),
		)
		return model.NewAppError("ToggleLike", "app.counter_sync.stale_response.app_error", nil, "", http.StatusConflict)
	}
	s.likeApplied = seq

	span.SetAttributes(
		attribute.String("status", status.Status),
		attribute.Int("like_count", status.LikeCount),
	)
	s.applyLikeStatusLocked(status)

	return nil
}

func recordSpanError(span trace.Span, resp *model.Response) {
	span.SetAttributes(
		attribute.Int("http.status_code", resp.StatusCode),
		attribute.String("request_id", resp.RequestId),
	)
	span.RecordError(resp.Error)
	span.SetStatus(codes.Error, resp.Error.Id)
}

func (s *CounterSync) applyLikeStatusLocked(status *model.PostLikeStatus) {
	if s.page.LikeIcon != nil {
		s.page.LikeIcon.SetLiked(status.Liked())
		s.pulseLocked()
	}

	if s.likes != nil {
		s.likes.Animate(status.LikeCount)
	}
}

func (s *CounterSync) pulseLocked() {
	icon := s.page.LikeIcon

	if s.pulseTimer != nil {
		s.pulseTimer.Stop()
	}

	icon.SetPulse(true)
	s.pulseTimer = s.app.Clock.AfterFunc(s.app.pulseDuration(), func() {
		icon.SetPulse(false)
	})
}

func (s *CounterSync) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closed
}

// Close tears the page down: running animations stop where they are and responses that
// arrive later are ignored.
func (s *CounterSync) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true

	if s.views != nil {
		s.views.Stop()
	}
	if s.likes != nil {
		s.likes.Stop()
	}
	if s.pulseTimer != nil {
		s.pulseTimer.Stop()
	}
}

// Wait blocks until both counters have finished animating.
func (s *CounterSync) Wait() {
	if s.views != nil {
		s.views.Wait()
	}
	if s.likes != nil {
		s.likes.Wait()
	}
}
