package testlib

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gorilla/mux"

	"github.com/clear-ness/postcounters/model"
)

// RecordedRequest is one call received by a FakeBlog.
type RecordedRequest struct {
	Method string
	Path   string
	PostId string
	Header http.Header
	Body   string
}

type fakePost struct {
	views int
	likes int
	liked bool
}

// FakeBlog serves the view and like endpoints of the blog API from memory. Likes toggle
// per post exactly like the real server: the viewer's current state decides the outcome.
type FakeBlog struct {
	Server *httptest.Server
	Router *mux.Router

	mu             sync.Mutex
	posts          map[string]*fakePost
	requests       []RecordedRequest
	overrideStatus int
	overrideBody   string
	pendingHolds   []*likeHold
	allHolds       []*likeHold
}

type likeHold struct {
	ch   chan struct{}
	once sync.Once
}

func (h *likeHold) release() {
	h.once.Do(func() { close(h.ch) })
}

func NewFakeBlog() *FakeBlog {
	b := &FakeBlog{
		Router: mux.NewRouter().UseEncodedPath(),
		posts:  map[string]*fakePost{},
	}

	posts := b.Router.PathPrefix("/api/posts/{post_id}").Subrouter()
	posts.HandleFunc("/view/", b.registerView).Methods(http.MethodPost)
	posts.HandleFunc("/like/", b.toggleLike).Methods(http.MethodPost)

	b.Server = httptest.NewServer(b.Router)

	return b
}

func (b *FakeBlog) URL() string {
	return b.Server.URL
}

func (b *FakeBlog) Close() {
	b.mu.Lock()
	for _, h := range b.allHolds {
		h.release()
	}
	b.pendingHolds = nil
	b.mu.Unlock()

	b.Server.Close()
}

// SetPost sets the stored counters of postId as seen before the next request.
func (b *FakeBlog) SetPost(postId string, views, likes int, liked bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.posts[postId] = &fakePost{views: views, likes: likes, liked: liked}
}

// RespondWith makes every following request answer status with body instead of the real
// result. A zero status restores normal handling.
func (b *FakeBlog) RespondWith(status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.overrideStatus = status
	b.overrideBody = body
}

// HoldNextLike delays the response to the next like request, whose result is computed on
// arrival, until the returned function is called.
func (b *FakeBlog) HoldNextLike() func() {
	h := &likeHold{ch: make(chan struct{})}

	b.mu.Lock()
	b.pendingHolds = append(b.pendingHolds, h)
	b.allHolds = append(b.allHolds, h)
	b.mu.Unlock()

	return h.release
}

func (b *FakeBlog) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]RecordedRequest(nil), b.requests...)
}

// RequestCount counts the requests whose path ends in suffix, such as "/view/".
func (b *FakeBlog) RequestCount(suffix string) int {
	count := 0
	for _, r := range b.Requests() {
		if len(r.Path) >= len(suffix) && r.Path[len(r.Path)-len(suffix):] == suffix {
			count++
		}
	}
	return count
}

func (b *FakeBlog) record(r *http.Request) {
	body, _ := ioutil.ReadAll(r.Body)

	b.requests = append(b.requests, RecordedRequest{
		Method: r.Method,
		Path:   r.URL.EscapedPath(),
		PostId: mux.Vars(r)["post_id"],
		Header: r.Header.Clone(),
		Body:   string(body),
	})
}

func (b *FakeBlog) post(postId string) *fakePost {
	p, ok := b.posts[postId]
	if !ok {
		p = &fakePost{}
		b.posts[postId] = p
	}
	return p
}

func (b *FakeBlog) override(w http.ResponseWriter) bool {
	if b.overrideStatus == 0 {
		return false
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(b.overrideStatus)
	fmt.Fprint(w, b.overrideBody)
	return true
}

func (b *FakeBlog) registerView(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.record(r)
	w.Header().Set(model.HEADER_REQUEST_ID, r.Header.Get(model.HEADER_REQUEST_ID))

	if b.override(w) {
		b.mu.Unlock()
		return
	}

	p := b.post(mux.Vars(r)["post_id"])
	p.views++
	resp := &model.PostViewCount{ViewsCount: p.views}
	b.mu.Unlock()

	writeJson(w, resp)
}

func (b *FakeBlog) toggleLike(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.record(r)
	w.Header().Set(model.HEADER_REQUEST_ID, r.Header.Get(model.HEADER_REQUEST_ID))

	if b.override(w) {
		b.mu.Unlock()
		return
	}

	p := b.post(mux.Vars(r)["post_id"])
	p.liked = !p.liked
	if p.liked {
		p.likes++
	} else if p.likes > 0 {
		p.likes--
	}

	resp := &model.PostLikeStatus{Status: model.LIKE_STATUS_UNLIKED, LikeCount: p.likes}
	if p.liked {
		resp.Status = model.LIKE_STATUS_LIKED
	}

	var hold *likeHold
	if len(b.pendingHolds) > 0 {
		hold = b.pendingHolds[0]
		b.pendingHolds = b.pendingHolds[1:]
	}
	b.mu.Unlock()

	if hold != nil {
		select {
		case <-hold.ch:
		case <-r.Context().Done():
			return
		}
	}

	writeJson(w, resp)
}

func writeJson(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
