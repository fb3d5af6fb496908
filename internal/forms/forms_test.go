package forms

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formContext(t *testing.T, values url.Values) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := httptest.NewRequest("POST", "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.Request = req

	return c
}

func TestParseRegisterForm_Valid(t *testing.T) {
	c := formContext(t, url.Values{
		"username": {"alice"},
		"password": {"pw1"},
	})

	form, errs := ParseRegisterForm(c)

	assert.False(t, errs.Any())
	assert.Equal(t, "alice", form.Username)
	assert.Equal(t, "pw1", form.Password)
}

func TestParseRegisterForm_MissingFields(t *testing.T) {
	c := formContext(t, url.Values{})

	_, errs := ParseRegisterForm(c)

	require.True(t, errs.Any())
	assert.Contains(t, errs, "username")
	assert.Contains(t, errs, "password")
}

func TestParseRegisterForm_TrimsUsername(t *testing.T) {
	c := formContext(t, url.Values{
		"username": {"  alice  "},
		"password": {"pw1"},
	})

	form, errs := ParseRegisterForm(c)

	assert.False(t, errs.Any())
	assert.Equal(t, "alice", form.Username)
}

func TestParseLoginForm_MissingPassword(t *testing.T) {
	c := formContext(t, url.Values{"username": {"alice"}})

	_, errs := ParseLoginForm(c)

	require.True(t, errs.Any())
	assert.Contains(t, errs, "password")
	assert.NotContains(t, errs, "username")
}

func TestParseBookForm_Valid(t *testing.T) {
	c := formContext(t, url.Values{
		"title":       {"Dune"},
		"total_pages": {"400"},
		"pages_read":  {"50"},
	})

	form, errs := ParseBookForm(c)

	assert.False(t, errs.Any())
	assert.Equal(t, "Dune", form.Title)
	assert.Equal(t, 400, form.TotalPages)
	assert.Equal(t, 50, form.PagesRead)
}

func TestParseBookForm_ZeroPagesRead(t *testing.T) {
	c := formContext(t, url.Values{
		"title":       {"Dune"},
		"total_pages": {"400"},
		"pages_read":  {"0"},
	})

	form, errs := ParseBookForm(c)

	assert.False(t, errs.Any(), "a freshly started book has zero pages read")
	assert.Equal(t, 0, form.PagesRead)
}

func TestParseBookForm_MissingTotalPages(t *testing.T) {
	c := formContext(t, url.Values{
		"title":      {"Dune"},
		"pages_read": {"50"},
	})

	_, errs := ParseBookForm(c)

	require.True(t, errs.Any())
	assert.Equal(t, "This field is required.", errs["total_pages"])
}

func TestParseBookForm_MalformedInteger(t *testing.T) {
	c := formContext(t, url.Values{
		"title":       {"Dune"},
		"total_pages": {"a lot"},
		"pages_read":  {"50"},
	})

	_, errs := ParseBookForm(c)

	require.True(t, errs.Any())
	assert.Equal(t, "Must be a whole number.", errs["total_pages"])
}

func TestParseBookForm_NegativePagesRead(t *testing.T) {
	c := formContext(t, url.Values{
		"title":       {"Dune"},
		"total_pages": {"400"},
		"pages_read":  {"-5"},
	})

	_, errs := ParseBookForm(c)

	require.True(t, errs.Any())
	assert.Contains(t, errs, "pages_read")
}

func TestParseBookForm_ZeroTotalPages(t *testing.T) {
	c := formContext(t, url.Values{
		"title":       {"Dune"},
		"total_pages": {"0"},
		"pages_read":  {"0"},
	})

	_, errs := ParseBookForm(c)

	require.True(t, errs.Any())
	assert.Contains(t, errs, "total_pages")
}

func TestParseBookForm_MissingTitle(t *testing.T) {
	c := formContext(t, url.Values{
		"total_pages": {"400"},
		"pages_read":  {"50"},
	})

	_, errs := ParseBookForm(c)

	require.True(t, errs.Any())
	assert.Equal(t, "This field is required.", errs["title"])
}
