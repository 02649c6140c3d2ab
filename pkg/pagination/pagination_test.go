package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func parseFor(t *testing.T, query string) Params {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return Parse(c)
}

func TestParseDefaults(t *testing.T) {
	p := parseFor(t, "")
	if p.Page != DefaultPage || p.Limit != DefaultLimit || p.Offset != 0 {
		t.Fatalf("unexpected defaults: %+v", p)
	}
}

func TestParseClampsLimit(t *testing.T) {
	p := parseFor(t, "page=3&limit=9999")
	if p.Limit != MaxLimit {
		t.Fatalf("limit not clamped: %d", p.Limit)
	}
	if p.Offset != 2*MaxLimit {
		t.Fatalf("offset mismatch: %d", p.Offset)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	p := parseFor(t, "page=-1&limit=abc")
	if p.Page != DefaultPage || p.Limit != DefaultLimit {
		t.Fatalf("garbage not defaulted: %+v", p)
	}
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	got := Slice(items, Params{Page: 2, Limit: 2, Offset: 2})
	if len(got) != 2 || got[0] != 3 || got[1] != 4 {
		t.Fatalf("unexpected page: %v", got)
	}

	if got := Slice(items, Params{Page: 3, Limit: 2, Offset: 4}); len(got) != 1 || got[0] != 5 {
		t.Fatalf("unexpected partial page: %v", got)
	}

	if got := Slice(items, Params{Page: 9, Limit: 2, Offset: 16}); len(got) != 0 {
		t.Fatalf("out of range page not empty: %v", got)
	}
}
