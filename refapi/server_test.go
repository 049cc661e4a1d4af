package refapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "secret"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := NewServer(Options{Token: testToken})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.store.Close() })
	return s
}

func doRequest(t *testing.T, s *Server, method, path, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+testToken)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func createRecord[T any](t *testing.T, s *Server, path, body string) T {
	t.Helper()
	status, data := doRequest(t, s, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, status, string(data))
	var record T
	require.NoError(t, json.Unmarshal(data, &record))
	return record
}

const userBody = `{"name":"A","email":"a@mail.com","gender":"female","status":"active"}`

func TestRequestsWithoutTokenAreRejected(t *testing.T) {
	s := newTestServer(t)
	for _, header := range []string{"", "Bearer wrong", testToken} {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := s.App().Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, header)
	}
}

func TestUserCRUD(t *testing.T) {
	s := newTestServer(t)

	user := createRecord[User](t, s, "/users", userBody)
	assert.NotZero(t, user.ID)
	assert.Equal(t, User{ID: user.ID, Name: "A", Email: "a@mail.com", Gender: "female", Status: "active"}, user)
	path := "/users/" + strconv.Itoa(user.ID)

	status, data := doRequest(t, s, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"id":`+strconv.Itoa(user.ID)+`,"name":"A","email":"a@mail.com","gender":"female","status":"active"}`, string(data))

	status, data = doRequest(t, s, http.MethodPut, path, `{"name":"B","status":"inactive"}`)
	require.Equal(t, http.StatusOK, status, string(data))
	var updated User
	require.NoError(t, json.Unmarshal(data, &updated))
	assert.Equal(t, User{ID: user.ID, Name: "B", Email: "a@mail.com", Gender: "female", Status: "inactive"}, updated)

	status, data = doRequest(t, s, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, status)
	var all []User
	require.NoError(t, json.Unmarshal(data, &all))
	assert.Equal(t, []User{updated}, all)

	status, _ = doRequest(t, s, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, status)
	status, data = doRequest(t, s, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"message":"Resource not found"}`, string(data))
	status, _ = doRequest(t, s, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestEmptyListIsArray(t *testing.T) {
	s := newTestServer(t)
	status, data := doRequest(t, s, http.MethodGet, "/comments", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(data))
}

func TestValidationErrors(t *testing.T) {
	s := newTestServer(t)
	createRecord[User](t, s, "/users", userBody)

	status, data := doRequest(t, s, http.MethodPost, "/users",
		`{"name":" ","email":"a@mail.com","gender":"other"}`)
	require.Equal(t, http.StatusUnprocessableEntity, status)
	var errs []FieldError
	require.NoError(t, json.Unmarshal(data, &errs))
	assert.Equal(t, []FieldError{
		{Field: "name", Message: msgBlank},
		{Field: "email", Message: msgTaken},
		{Field: "gender", Message: "can be male or female"},
		{Field: "status", Message: msgBlank},
	}, errs)

	status, data = doRequest(t, s, http.MethodPost, "/comments", `{"post_id":999,"name":"n","email":"bad","body":"b"}`)
	require.Equal(t, http.StatusUnprocessableEntity, status)
	require.NoError(t, json.Unmarshal(data, &errs))
	assert.Equal(t, []FieldError{
		{Field: "post", Message: msgMissing},
		{Field: "email", Message: msgInvalid},
	}, errs)

	status, _ = doRequest(t, s, http.MethodPost, "/posts", `not json`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestUpdateKeepsOwnEmail(t *testing.T) {
	s := newTestServer(t)
	user := createRecord[User](t, s, "/users", userBody)
	status, data := doRequest(t, s, http.MethodPut, "/users/"+strconv.Itoa(user.ID), `{"email":"a@mail.com"}`)
	assert.Equal(t, http.StatusOK, status, string(data))
}

func TestNestedCommentsAndDependents(t *testing.T) {
	s := newTestServer(t)
	user := createRecord[User](t, s, "/users", userBody)
	post1 := createRecord[Post](t, s, "/posts", `{"user_id":`+strconv.Itoa(user.ID)+`,"title":"t1","body":"b1"}`)
	post2 := createRecord[Post](t, s, "/posts", `{"user_id":`+strconv.Itoa(user.ID)+`,"title":"t2","body":"b2"}`)
	comment := createRecord[Comment](t, s, "/comments",
		`{"post_id":`+strconv.Itoa(post1.ID)+`,"name":"n","email":"c@mail.com","body":"hi"}`)
	createRecord[Comment](t, s, "/comments",
		`{"post_id":`+strconv.Itoa(post2.ID)+`,"name":"n","email":"c@mail.com","body":"other"}`)

	status, data := doRequest(t, s, http.MethodGet, "/posts/"+strconv.Itoa(post1.ID)+"/comments", "")
	require.Equal(t, http.StatusOK, status)
	var comments []Comment
	require.NoError(t, json.Unmarshal(data, &comments))
	assert.Equal(t, []Comment{comment}, comments)

	status, _ = doRequest(t, s, http.MethodGet, "/posts/999/comments", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, data = doRequest(t, s, http.MethodDelete, "/users/"+strconv.Itoa(user.ID), "")
	assert.Equal(t, http.StatusConflict, status)
	assert.JSONEq(t, `{"message":"Resource still has dependent resources"}`, string(data))
	status, _ = doRequest(t, s, http.MethodDelete, "/posts/"+strconv.Itoa(post1.ID), "")
	assert.Equal(t, http.StatusConflict, status)

	status, _ = doRequest(t, s, http.MethodDelete, "/comments/"+strconv.Itoa(comment.ID), "")
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = doRequest(t, s, http.MethodDelete, "/posts/"+strconv.Itoa(post1.ID), "")
	assert.Equal(t, http.StatusNoContent, status)
}

func TestInvalidIDIsNotFound(t *testing.T) {
	s := newTestServer(t)
	status, _ := doRequest(t, s, http.MethodGet, "/users/abc", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestTestServerServesOverHTTP(t *testing.T) {
	ts, err := NewTestServer(testToken)
	require.NoError(t, err)
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/users", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+testToken)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
