package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListWritesEmptyArrayForNil(t *testing.T) {
	rr := httptest.NewRecorder()
	List[Fixture](rr, nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestCreated(t *testing.T) {
	rr := httptest.NewRecorder()
	Created(rr, Tournament{Name: "Cup", Teams: []string{"T1"}})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"name":"Cup","teams":["T1"]}`, rr.Body.String())
}
