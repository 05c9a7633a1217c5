package interfaces

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmatcher/auth"
	"jobmatcher/domain"
	"jobmatcher/infrastructure"
	"jobmatcher/matcher"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// In-memory stores mirroring the gorm-backed behavior: ids are assigned on
// insert and unknown or malformed ids resolve to ErrNotFound.

type fakeUserStore struct {
	users map[string]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*domain.User{}}
}

func (s *fakeUserStore) Create(_ context.Context, user *domain.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *fakeUserStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

type fakeJobStore struct {
	jobs []domain.JobDescription
}

func (s *fakeJobStore) Create(_ context.Context, job *domain.JobDescription) error {
	job.ID = uint(len(s.jobs) + 1)
	s.jobs = append(s.jobs, *job)
	return nil
}

func (s *fakeJobStore) FindByID(_ context.Context, id string) (*domain.JobDescription, error) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil || n == 0 || n > uint64(len(s.jobs)) {
		return nil, domain.ErrNotFound
	}
	job := s.jobs[n-1]
	return &job, nil
}

func (s *fakeJobStore) FindAll(_ context.Context) ([]domain.JobDescription, error) {
	return s.jobs, nil
}

type fakeResumeStore struct {
	resumes []domain.Resume
}

func (s *fakeResumeStore) Create(_ context.Context, resume *domain.Resume) error {
	resume.ID = uint(len(s.resumes) + 1)
	s.resumes = append(s.resumes, *resume)
	return nil
}

func (s *fakeResumeStore) FindByID(_ context.Context, id string) (*domain.Resume, error) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil || n == 0 || n > uint64(len(s.resumes)) {
		return nil, domain.ErrNotFound
	}
	resume := s.resumes[n-1]
	return &resume, nil
}

func (s *fakeResumeStore) FindAll(_ context.Context) ([]domain.Resume, error) {
	return s.resumes, nil
}

type fakeMatchStore struct {
	matches []domain.Match
}

func (s *fakeMatchStore) Create(_ context.Context, match *domain.Match) error {
	match.ID = uint(len(s.matches) + 1)
	s.matches = append(s.matches, *match)
	return nil
}

func (s *fakeMatchStore) FindAll(_ context.Context) ([]domain.Match, error) {
	return s.matches, nil
}

type fakePublisher struct {
	events []infrastructure.MatchEvent
}

func (p *fakePublisher) PublishMatch(event infrastructure.MatchEvent) error {
	p.events = append(p.events, event)
	return nil
}

// flatEmbedder returns the same vector for every text, so every semantic
// similarity term scores 100.
type flatEmbedder struct{}

func (flatEmbedder) Embed(context.Context, string) ([]float64, error) {
	return []float64{1, 2, 3}, nil
}

func stubExtractor(text string) TextExtractor {
	return func(_ io.Reader, filename string) (string, error) {
		if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
			return "", domain.ErrUnsupportedFormat
		}
		return text, nil
	}
}

type testEnv struct {
	router  *gin.Engine
	users   *fakeUserStore
	jobs    *fakeJobStore
	resumes *fakeResumeStore
	matches *fakeMatchStore
	events  *fakePublisher
}

func newTestEnv(extractedText string) *testEnv {
	log := logrus.New()
	log.SetOutput(io.Discard)

	env := &testEnv{
		users:   newFakeUserStore(),
		jobs:    &fakeJobStore{},
		resumes: &fakeResumeStore{},
		matches: &fakeMatchStore{},
		events:  &fakePublisher{},
	}

	router := gin.New()
	NewHTTPHandler(router, &HTTPHandler{
		Users:   env.users,
		Jobs:    env.jobs,
		Resumes: env.resumes,
		Matches: env.matches,
		Scorer:  matcher.NewScorer(flatEmbedder{}),
		Extract: stubExtractor(extractedText),
		Tokens:  auth.NewTokenIssuer("jobmatcher", "test-key", time.Hour),
		Verify:  auth.NewTokenVerifier("test-key"),
		Events:  env.events,
		Log:     log,
	})
	env.router = router
	return env
}

func (e *testEnv) do(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var body map[string]any
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Body.String(), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func formRequest(method, path string, fields map[string]string) *http.Request {
	values := make([]string, 0, len(fields))
	for k, v := range fields {
		values = append(values, k+"="+v)
	}
	req := httptest.NewRequest(method, path, strings.NewReader(strings.Join(values, "&")))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func multipartRequest(t *testing.T, path string, fields map[string]string, fileField, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	fw, err := w.CreateFormFile(fileField, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv("")

	rec, body := env.do(t, formRequest(http.MethodPost, "/api/register", map[string]string{
		"email": "ann@example.com", "password": "pw", "name": "Ann",
	}))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "User registered successfully", body["message"])

	// Duplicate email.
	rec, body = env.do(t, formRequest(http.MethodPost, "/api/register", map[string]string{
		"email": "ann@example.com", "password": "pw",
	}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User already exists", body["error"])

	// Wrong password gets the same generic message as an unknown user.
	rec, body = env.do(t, jsonRequest(t, http.MethodPost, "/api/login", gin.H{
		"email": "ann@example.com", "password": "nope",
	}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", body["error"])

	rec, body = env.do(t, jsonRequest(t, http.MethodPost, "/api/login", gin.H{
		"email": "ghost@example.com", "password": "pw",
	}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", body["error"])

	rec, body = env.do(t, jsonRequest(t, http.MethodPost, "/api/login", gin.H{
		"email": "ann@example.com", "password": "pw",
	}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, body["access_token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "ann@example.com", user["email"])
	assert.Equal(t, domain.NotSpecified, user["education"])
}

func TestRegisterMissingFields(t *testing.T) {
	env := newTestEnv("")

	rec, body := env.do(t, formRequest(http.MethodPost, "/api/register", map[string]string{
		"email": "ann@example.com",
	}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email and password are required", body["error"])
}

func TestRegisterWithResume(t *testing.T) {
	env := newTestEnv("Bachelor's degree, 5 years experience, responsible for developing Python and AWS services")

	rec, _ := env.do(t, multipartRequest(t, "/api/register", map[string]string{
		"email": "bob@example.com", "password": "pw",
	}, "resume_file", "resume.pdf", "%PDF"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, body := env.do(t, jsonRequest(t, http.MethodPost, "/api/login", gin.H{
		"email": "bob@example.com", "password": "pw",
	}))
	require.Equal(t, http.StatusOK, rec.Code)
	user := body["user"].(map[string]any)
	assert.Equal(t, "Bachelor's Degree", user["education"])
	assert.Equal(t, "5 years", user["experience"])
	assert.Equal(t, []any{"python", "aws"}, user["skills"])
}

func loginToken(t *testing.T, env *testEnv, email, password string) string {
	t.Helper()
	rec, body := env.do(t, jsonRequest(t, http.MethodPost, "/api/login", gin.H{
		"email": email, "password": password,
	}))
	require.Equal(t, http.StatusOK, rec.Code)
	return body["access_token"].(string)
}

func TestGetProfile(t *testing.T) {
	env := newTestEnv("")

	rec, _ := env.do(t, formRequest(http.MethodPost, "/api/register", map[string]string{
		"email": "ann@example.com", "password": "pw", "name": "Ann",
	}))
	require.Equal(t, http.StatusCreated, rec.Code)
	token := loginToken(t, env, "ann@example.com", "pw")

	// No token.
	rec, _ = env.do(t, httptest.NewRequest(http.MethodGet, "/api/profile?email=ann@example.com", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Forged token.
	req := httptest.NewRequest(http.MethodGet, "/api/profile?email=ann@example.com", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec, _ = env.do(t, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// By email.
	req = httptest.NewRequest(http.MethodGet, "/api/profile?email=ann@example.com", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec, body := env.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := body["user_profile"].(map[string]any)
	assert.Equal(t, "Ann", profile["name"])

	// Missing email.
	req = httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec, _ = env.do(t, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Someone else's email.
	req = httptest.NewRequest(http.MethodGet, "/api/profile?email=other@example.com", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec, _ = env.do(t, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// By id: own id passes, another id is rejected.
	userID := profile["id"].(string)
	req = httptest.NewRequest(http.MethodGet, "/api/profile/"+userID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec, _ = env.do(t, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/profile/someone-else", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec, _ = env.do(t, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUploadJobDescription(t *testing.T) {
	text := "Senior Python Developer. Bachelor's degree and 5 years experience required. Responsible for developing and testing services with Django and AWS."
	env := newTestEnv(text)

	rec, body := env.do(t, multipartRequest(t, "/api/job-description", nil, "file", "job.pdf", "%PDF"))
	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, "1", body["_id"])
	assert.Equal(t, "Developer", body["title"])
	assert.Equal(t, text, body["description"])
	assert.Equal(t, []any{"python", "django", "aws"}, body["required_skills"])
	assert.Equal(t, "Bachelor's Degree", body["education"])
	assert.Equal(t, "responsible for, developing, testing", body["responsibilities"])
	assert.Equal(t, "5 years", body["years_of_experience"])
	assert.Equal(t, "job.pdf", body["file"])
}

func TestUploadResume(t *testing.T) {
	env := newTestEnv("Java and SQL developer, managing releases")

	rec, body := env.do(t, multipartRequest(t, "/api/resume", map[string]string{"name": "Bob"}, "file", "cv.pdf", "%PDF"))
	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, "1", body["_id"])
	assert.Equal(t, "Bob", body["name"])
	assert.Equal(t, []any{"sql", "java"}, body["skills"])
	assert.Equal(t, "managing", body["responsibilities"])
	require.Len(t, env.resumes.resumes, 1)
	assert.Equal(t, "Java and SQL developer, managing releases", env.resumes.resumes[0].RawText)
}

func TestUploadRejectsNonPDF(t *testing.T) {
	env := newTestEnv("whatever")

	rec, body := env.do(t, multipartRequest(t, "/api/resume", nil, "file", "cv.docx", "data"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Unsupported file type", body["error"])
}

func TestUploadMissingFile(t *testing.T) {
	env := newTestEnv("whatever")

	rec, body := env.do(t, formRequest(http.MethodPost, "/api/job-description", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No file uploaded", body["error"])
}

func seedMatchPair(env *testEnv) {
	env.jobs.Create(context.Background(), &domain.JobDescription{
		Title:            "Developer",
		Description:      "job text",
		RequiredSkills:   domain.StringList{"python", "aws"},
		Education:        "Bachelor's Degree",
		Responsibilities: "develop, test",
	})
	env.resumes.Create(context.Background(), &domain.Resume{
		Skills:           domain.StringList{"python", "java"},
		Education:        "bachelor's degree",
		Responsibilities: "develop, design",
		RawText:          "resume text",
	})
}

func TestCreateMatch(t *testing.T) {
	env := newTestEnv("")
	seedMatchPair(env)

	rec, body := env.do(t, jsonRequest(t, http.MethodPost, "/api/match", gin.H{
		"job_desc_id": "1", "resume_id": "1",
	}))
	require.Equal(t, http.StatusOK, rec.Code)

	// Flat embeddings make both similarity terms 100; skills match 50%.
	assert.InDelta(t, 85.0, body["match_score"].(float64), 1e-9)
	assert.Equal(t, []any{"python"}, body["matched_skills"])
	assert.Equal(t, []any{"aws"}, body["missing_skills"])
	assert.Equal(t, []any{"develop"}, body["matched_responsibilities"])
	assert.Equal(t, []any{"test"}, body["missing_responsibilities"])
	assert.Equal(t, true, body["education_match"])
	assert.NotEmpty(t, body["feedback"])

	require.Len(t, env.matches.matches, 1)
	require.Len(t, env.events.events, 1)
	event := env.events.events[0]
	assert.Equal(t, "1", event.MatchID)
	assert.Equal(t, []string{"aws"}, event.MissingSkills)
	assert.InDelta(t, 85.0, event.MatchScore, 1e-9)
}

func TestCreateMatchRepeatable(t *testing.T) {
	env := newTestEnv("")
	seedMatchPair(env)

	for range 2 {
		rec, _ := env.do(t, jsonRequest(t, http.MethodPost, "/api/match", gin.H{
			"job_desc_id": "1", "resume_id": "1",
		}))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	// No dedup: both match records persist.
	assert.Len(t, env.matches.matches, 2)
}

func TestCreateMatchNotFound(t *testing.T) {
	env := newTestEnv("")
	seedMatchPair(env)

	for _, req := range []gin.H{
		{"job_desc_id": "99", "resume_id": "1"},
		{"job_desc_id": "1", "resume_id": "99"},
		{"job_desc_id": "not-an-id", "resume_id": "1"},
	} {
		rec, body := env.do(t, jsonRequest(t, http.MethodPost, "/api/match", req))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Invalid job description or resume ID", body["error"])
	}
	assert.Empty(t, env.matches.matches)
}

func TestCreateMatchMissingIDs(t *testing.T) {
	env := newTestEnv("")

	rec, _ := env.do(t, jsonRequest(t, http.MethodPost, "/api/match", gin.H{"job_desc_id": "1"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListEndpoints(t *testing.T) {
	env := newTestEnv("")
	seedMatchPair(env)

	for _, path := range []string{"/api/job-descriptions", "/api/resumes"} {
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, path)

		var list []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
		assert.Len(t, list, 1, path)
		assert.Equal(t, "1", list[0]["_id"], path)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/matches", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Empty(t, list)
}
