package careerforge

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func testClient(srv *httptest.Server) *Client {
	c := New(context.Background(), zap.NewNop())
	c.ProfileURL = srv.URL
	c.JobsURL = srv.URL
	return c
}

func TestRecommendationsDecodes(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recommend/u1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		io.WriteString(w, `{"results": [
			{"id": 7, "title": "ML Engineer", "company": "Acme",
			 "skills": ["Python"], "locations": ["Remote"],
			 "relevance": 91.5, "publish_date": "2025-05-01"}
		]}`)
	}))
	defer srv.Close()

	jobs, err := testClient(srv).Recommendations("u1")
	if err != nil {
		t.Fatal(err)
	}

	if jobs.Len() != 1 {
		t.Fatalf("expected 1 job, got %d", jobs.Len())
	}
	job := jobs.Items[0]
	if job.ID != 7 || job.Title != "ML Engineer" || job.Relevance != 91.5 {
		t.Fatalf("bad decode: %+v", job)
	}
	if job.PublishedAt().IsZero() {
		t.Fatal("publish date did not parse")
	}
}

func TestRecommendationsMissingResults(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"count": 0}`)
	}))
	defer srv.Close()

	_, err := testClient(srv).Recommendations("u1")

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
	if malformed.Missing != "results" {
		t.Fatalf("unexpected missing field %q", malformed.Missing)
	}
}

func TestRemoteErrorCarriesDetail(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		io.WriteString(w, `{"detail": "index rebuilding"}`)
	}))
	defer srv.Close()

	_, err := testClient(srv).Recommendations("u1")

	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if remote.Status != http.StatusServiceUnavailable || remote.Detail != "index rebuilding" {
		t.Fatalf("unexpected remote error: %+v", remote)
	}
	if got := UserMessage(err, "fallback"); got != "index rebuilding" {
		t.Fatalf("UserMessage should prefer the detail, got %q", got)
	}
}

func TestNetworkErrorWrapsTransport(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse subsequent connections

	_, err := testClient(srv).Recommendations("u1")

	var network *NetworkError
	if !errors.As(err, &network) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if got := UserMessage(err, "fallback"); got != "fallback" {
		t.Fatalf("UserMessage for network error must use the fallback, got %q", got)
	}
}

func TestSearchRequestBody(t *testing.T) {
	t.Parallel()

	var params SearchParams
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/search/u1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		io.WriteString(w, `{"results": []}`)
	}))
	defer srv.Close()

	jobs, err := testClient(srv).Search("u1", "golang developer", 55)
	if err != nil {
		t.Fatal(err)
	}
	if jobs.Len() != 0 {
		t.Fatalf("expected empty set, got %d", jobs.Len())
	}

	if len(params.Titles) != 1 || params.Titles[0] != "golang developer" {
		t.Fatalf("unexpected titles %v", params.Titles)
	}
	if params.TopK != 20 || params.MinRelevance != 55 {
		t.Fatalf("unexpected params: %+v", params)
	}
}

func TestQuestionsDecodesVariants(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"questions": [
			{"id": "q1", "question": "Pick one:",
			 "options": [{"text": "A", "value": "E"}, {"text": "B", "value": "I"}]},
			{"id": "q2", "question": "Rate it:",
			 "scale": [{"label": "Low", "value": 1}, {"label": "High", "value": 5}]}
		]}`)
	}))
	defer srv.Close()

	set, err := testClient(srv).Questions()
	if err != nil {
		t.Fatal(err)
	}

	if set.Source != SourceRemote || set.Len() != 2 {
		t.Fatalf("unexpected set: source=%q len=%d", set.Source, set.Len())
	}
	if set.FindByID("q1").IsScale() {
		t.Fatal("q1 must be categorical")
	}
	q2 := set.FindByID("q2")
	if !q2.IsScale() || q2.Scale[1].Value != 5 {
		t.Fatalf("q2 scale decoded badly: %+v", q2)
	}
}

func TestScoreAnswersPassthrough(t *testing.T) {
	t.Parallel()

	var sent struct {
		Answers []Answer `json:"answers"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/answers" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&sent); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		io.WriteString(w, `{"personality scores": {"openness": 0.8, "extraversion": 0.3}}`)
	}))
	defer srv.Close()

	vector, err := testClient(srv).ScoreAnswers([]Answer{
		{QuestionID: "q1", Value: "E"},
		{QuestionID: "q2", Value: 3},
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(sent.Answers) != 2 || sent.Answers[0].QuestionID != "q1" {
		t.Fatalf("unexpected submitted answers: %+v", sent.Answers)
	}

	// The vector is opaque: the exact bytes round-trip into registration.
	var decoded map[string]float64
	if err := json.Unmarshal(vector, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["openness"] != 0.8 {
		t.Fatalf("vector not passed through: %v", decoded)
	}
}

func TestRegisterReturnsUserID(t *testing.T) {
	t.Parallel()

	var sent Registration
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&sent); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		io.WriteString(w, `{"user_id": "u-42"}`)
	}))
	defer srv.Close()

	id, err := testClient(srv).Register(&Registration{Name: "Ada Lovelace", Email: "ada@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	if id != "u-42" {
		t.Fatalf("unexpected user id %q", id)
	}
	if sent.Name != "Ada Lovelace" {
		t.Fatalf("unexpected payload: %+v", sent)
	}
	if sent.Bucket != nil || sent.DestinationBlob != nil {
		t.Fatal("resume locator must stay null when no resume was uploaded")
	}
}

func TestRegisterMissingUserID(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	_, err := testClient(srv).Register(&Registration{})

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
}

func TestUploadResume(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "resume.pdf")
	if err := os.WriteFile(path, []byte("resume body"), 0o644); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		defer file.Close()
		if header.Filename != "resume.pdf" {
			t.Errorf("unexpected filename %q", header.Filename)
		}
		io.WriteString(w, `{"bucket": "resumes", "dest_blob": "u1/resume.pdf"}`)
	}))
	defer srv.Close()

	upload, err := testClient(srv).UploadResume(path)
	if err != nil {
		t.Fatal(err)
	}
	if upload.Bucket != "resumes" || upload.DestBlob != "u1/resume.pdf" {
		t.Fatalf("unexpected locator: %+v", upload)
	}
}

func TestGenerateTreeRequiresOKStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/careertree/generate/u1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		io.WriteString(w, `{"user_id": "u1", "status": "ok", "tree": {
			"user_id": "u1",
			"paths": [{"id": "p1", "title": "ML", "stages": []}]
		}}`)
	}))
	defer srv.Close()

	tree, err := testClient(srv).GenerateTree("u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(tree.Paths) != 1 || tree.Paths[0].ID != "p1" {
		t.Fatalf("unexpected tree: %+v", tree)
	}
}

func TestGenerateTreeRejectsPending(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"user_id": "u1", "status": "pending"}`)
	}))
	defer srv.Close()

	_, err := testClient(srv).GenerateTree("u1")

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
}

func TestUserAgentHeader(t *testing.T) {
	t.Parallel()

	var agent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.Header.Get("User-Agent")
		io.WriteString(w, `{"questions": []}`)
	}))
	defer srv.Close()

	if _, err := testClient(srv).Questions(); err != nil {
		t.Fatal(err)
	}
	if agent != userAgent {
		t.Fatalf("unexpected user agent %q", agent)
	}
}
