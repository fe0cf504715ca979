package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lluuk/tweeter-api/internal/auth"
	dom "github.com/lluuk/tweeter-api/internal/domain"
	"github.com/lluuk/tweeter-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

// In-memory doubles with the same semantics as the Mongo repos, wired under
// the real services, handlers and middleware so tests exercise full requests.

type fakeSessions struct {
	byID map[string]string
	seq  int
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{byID: map[string]string{}}
}

func (f *fakeSessions) Create(ctx context.Context, accountID string) (string, error) {
	f.seq++
	id := fmt.Sprintf("sess-%d", f.seq)
	f.byID[id] = accountID
	return id, nil
}

func (f *fakeSessions) GetAccountID(ctx context.Context, id string) (string, bool) {
	accountID, ok := f.byID[id]
	return accountID, ok
}

func (f *fakeSessions) Delete(ctx context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

type fakeAccountRepo struct {
	accounts map[string]dom.Account
	seq      int
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[string]dom.Account{}}
}

func (f *fakeAccountRepo) Create(ctx context.Context, a dom.Account) (dom.Account, error) {
	for _, existing := range f.accounts {
		if existing.Email == a.Email {
			return dom.Account{}, mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
		}
	}
	f.seq++
	a.ID = fmt.Sprintf("acc-%d", f.seq)
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.Followers == nil {
		a.Followers = []string{}
	}
	if a.Following == nil {
		a.Following = []string{}
	}
	f.accounts[a.ID] = a
	return a, nil
}

func (f *fakeAccountRepo) GetByID(ctx context.Context, id string) (dom.Account, error) {
	a, ok := f.accounts[id]
	if !ok {
		return dom.Account{}, mongo.ErrNoDocuments
	}
	return a, nil
}

func (f *fakeAccountRepo) GetByEmail(ctx context.Context, email string) (dom.Account, error) {
	for _, a := range f.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return dom.Account{}, mongo.ErrNoDocuments
}

func (f *fakeAccountRepo) AddFollow(ctx context.Context, actorID, targetID string) (dom.Account, error) {
	actor, ok := f.accounts[actorID]
	if !ok {
		return dom.Account{}, mongo.ErrNoDocuments
	}
	actor.Following = addToSet(actor.Following, targetID)
	f.accounts[actorID] = actor

	target, ok := f.accounts[targetID]
	if !ok {
		return dom.Account{}, mongo.ErrNoDocuments
	}
	target.Followers = addToSet(target.Followers, actorID)
	f.accounts[targetID] = target
	return target, nil
}

func (f *fakeAccountRepo) RemoveFollow(ctx context.Context, actorID, targetID string) (dom.Account, error) {
	actor, ok := f.accounts[actorID]
	if !ok {
		return dom.Account{}, mongo.ErrNoDocuments
	}
	actor.Following = pull(actor.Following, targetID)
	f.accounts[actorID] = actor

	target, ok := f.accounts[targetID]
	if !ok {
		return dom.Account{}, mongo.ErrNoDocuments
	}
	target.Followers = pull(target.Followers, actorID)
	f.accounts[targetID] = target
	return target, nil
}

type fakeTweetRepo struct {
	tweets map[string]dom.Tweet
	order  []string
	seq    int
}

func newFakeTweetRepo() *fakeTweetRepo {
	return &fakeTweetRepo{tweets: map[string]dom.Tweet{}}
}

func (f *fakeTweetRepo) Create(ctx context.Context, t dom.Tweet) (dom.Tweet, error) {
	f.seq++
	t.ID = fmt.Sprintf("tweet-%d", f.seq)
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Favorites == nil {
		t.Favorites = []string{}
	}
	if t.Comments == nil {
		t.Comments = []dom.Comment{}
	}
	f.tweets[t.ID] = t
	f.order = append(f.order, t.ID)
	return t, nil
}

func (f *fakeTweetRepo) GetByID(ctx context.Context, id string) (dom.Tweet, error) {
	t, ok := f.tweets[id]
	if !ok {
		return dom.Tweet{}, mongo.ErrNoDocuments
	}
	return t, nil
}

func (f *fakeTweetRepo) Delete(ctx context.Context, id string) (dom.Tweet, error) {
	t, ok := f.tweets[id]
	if !ok {
		return dom.Tweet{}, mongo.ErrNoDocuments
	}
	delete(f.tweets, id)
	return t, nil
}

func (f *fakeTweetRepo) ListByAuthors(ctx context.Context, authorIDs []string) ([]dom.Tweet, error) {
	authors := map[string]bool{}
	for _, id := range authorIDs {
		authors[id] = true
	}
	list := []dom.Tweet{}
	for _, id := range f.order {
		t, ok := f.tweets[id]
		if ok && authors[t.AuthorID] {
			list = append(list, t)
		}
	}
	return list, nil
}

func (f *fakeTweetRepo) UpdateBody(ctx context.Context, id, body string) (dom.Tweet, error) {
	t, ok := f.tweets[id]
	if !ok {
		return dom.Tweet{}, mongo.ErrNoDocuments
	}
	t.Body = body
	t.UpdatedAt = time.Now().UTC()
	f.tweets[id] = t
	return t, nil
}

func (f *fakeTweetRepo) AddComment(ctx context.Context, id string, c dom.Comment) (dom.Tweet, error) {
	t, ok := f.tweets[id]
	if !ok {
		return dom.Tweet{}, mongo.ErrNoDocuments
	}
	t.Comments = append(t.Comments, c)
	t.UpdatedAt = time.Now().UTC()
	f.tweets[id] = t
	return t, nil
}

func (f *fakeTweetRepo) UpdateComment(ctx context.Context, id, commentID, body string) (dom.Tweet, error) {
	t, ok := f.tweets[id]
	if !ok {
		return dom.Tweet{}, mongo.ErrNoDocuments
	}
	for i := range t.Comments {
		if t.Comments[i].ID == commentID {
			t.Comments[i].Body = body
			t.UpdatedAt = time.Now().UTC()
			f.tweets[id] = t
			return t, nil
		}
	}
	return dom.Tweet{}, mongo.ErrNoDocuments
}

func (f *fakeTweetRepo) RemoveComment(ctx context.Context, id, commentID string) (dom.Tweet, error) {
	t, ok := f.tweets[id]
	if !ok {
		return dom.Tweet{}, mongo.ErrNoDocuments
	}
	kept := []dom.Comment{}
	for _, c := range t.Comments {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}
	t.Comments = kept
	t.UpdatedAt = time.Now().UTC()
	f.tweets[id] = t
	return t, nil
}

func addToSet(s []string, v string) []string {
	for _, x := range s {
		if x == v {
			return s
		}
	}
	return append(s, v)
}

func pull(s []string, v string) []string {
	out := []string{}
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

// newTestRouter wires the full route table over in-memory stores, mirroring
// the production setup in internal/app.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	sessions := newFakeSessions()
	accountRepo := newFakeAccountRepo()
	accountSvc := service.NewAccountService(accountRepo)
	accountHandler := NewAccountHandler(sessions, accountSvc)

	tweetRepo := newFakeTweetRepo()
	tweetSvc := service.NewTweetService(tweetRepo, accountRepo)
	tweetHandler := NewTweetHandler(tweetSvc)

	r.POST("/signup", accountHandler.Signup)
	r.POST("/login", accountHandler.Login)

	protected := r.Group("", auth.RequireSession(sessions))
	protected.POST("/logout", accountHandler.Logout)
	protected.GET("/me", accountHandler.Me)
	protected.GET("/users/:id", accountHandler.GetUser)
	protected.POST("/follow/:id", accountHandler.Follow)
	protected.DELETE("/follow/:id", accountHandler.Unfollow)
	protected.POST("/tweet", tweetHandler.Create)
	protected.GET("/tweets", tweetHandler.List)
	protected.GET("/tweet/:id", tweetHandler.Get)
	protected.PATCH("/tweet/:id", tweetHandler.Update)
	protected.DELETE("/tweet/:id", tweetHandler.Delete)
	protected.POST("/tweet/:id/comment", tweetHandler.AddComment)
	protected.PATCH("/tweet/:id/comment/:commentId", tweetHandler.UpdateComment)
	protected.DELETE("/tweet/:id/comment/:commentId", tweetHandler.RemoveComment)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "session_id" && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

// signupAndLogin registers an account and logs in, returning the account ID
// and the session cookie.
func signupAndLogin(t *testing.T, r *gin.Engine, email, name string) (string, *http.Cookie) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/signup", gin.H{
		"email":    email,
		"name":     name,
		"password": "s3cret-long",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	decodeBody(t, w, &created)

	w = doJSON(t, r, http.MethodPost, "/login", gin.H{
		"email":    email,
		"password": "s3cret-long",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	return created.User.ID, sessionCookie(t, w)
}
