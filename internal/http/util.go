package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gabrielwysoczanski31/aurora-sub001/internal/filter"
)

const (
	maxBodyBytes  = 1 << 20
	userHeader    = "X-User-Id"
	anonymousUser = "anonymous"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func readBodyJSON(r *http.Request, maxBytes int64, out any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes))
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

// userID identifies the caller for per-user state such as the CEEB selection.
func userID(r *http.Request) string {
	if u := strings.TrimSpace(r.Header.Get(userHeader)); u != "" {
		return u
	}
	return anonymousUser
}

// parseIDs reads a comma separated id list; repeated parameters are merged.
func parseIDs(values []string) ([]int, error) {
	var out []int
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid id %q", part)
			}
			out = append(out, id)
		}
	}
	return out, nil
}

// criteriaFromQuery maps list query parameters onto filter criteria.
func criteriaFromQuery(r *http.Request) (filter.Criteria, error) {
	q := r.URL.Query()
	c := filter.Criteria{
		Search:     q.Get("search"),
		Result:     q.Get("result"),
		City:       q.Get("city"),
		Type:       q.Get("type"),
		CeebStatus: q.Get("ceeb_status"),
	}
	if v := q.Get("date_from"); v != "" {
		t, err := filter.ParseBound(v)
		if err != nil {
			return c, fmt.Errorf("invalid date_from: %w", err)
		}
		c.DateFrom = t
	}
	if v := q.Get("date_to"); v != "" {
		t, err := filter.ParseBound(v)
		if err != nil {
			return c, fmt.Errorf("invalid date_to: %w", err)
		}
		c.DateTo = t
	}
	return c, nil
}

func methodAllowed(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	w.WriteHeader(http.StatusMethodNotAllowed)
	return false
}
