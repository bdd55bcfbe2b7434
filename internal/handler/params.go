package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/6540011013-oss/Room-Status-System/internal/apperr"
)

// params merges a JSON request body with query-string, url-encoded and multipart form values.
type params struct {
	body map[string]any
	form map[string][]string
}

func readParams(c *gin.Context, maxBody int64) (params, error) {
	p := params{body: map[string]any{}}
	req := c.Request

	if req.Body != nil && req.Body != http.NoBody {
		raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, req.Body, maxBody))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return p, apperr.Validation("Request body too large")
			}
			return p, apperr.Validation("Invalid request body")
		}
		req.Body = io.NopCloser(bytes.NewReader(raw))

		if isMultipart(c.ContentType()) {
			if err := req.ParseMultipartForm(maxBody); err != nil {
				return p, apperr.Validation("Invalid request body")
			}
		} else if !isForm(c.ContentType()) && len(bytes.TrimSpace(raw)) > 0 {
			dec := json.NewDecoder(bytes.NewReader(raw))
			dec.UseNumber()
			// A body that is not a JSON object leaves only query and form values.
			_ = dec.Decode(&p.body)
		}
	}
	if err := req.ParseForm(); err != nil {
		return p, apperr.Validation("Invalid request body")
	}
	p.form = make(map[string][]string, len(req.Form))
	// Multipart fields win over the query string, as url-encoded ones do in ParseForm.
	if req.MultipartForm != nil {
		for k, v := range req.MultipartForm.Value {
			p.form[k] = v
		}
	}
	for k, v := range req.Form {
		if _, ok := p.form[k]; !ok {
			p.form[k] = v
		}
	}
	return p, nil
}

func isForm(ct string) bool {
	return ct == "application/x-www-form-urlencoded" || isMultipart(ct)
}

func isMultipart(ct string) bool {
	return ct == "multipart/form-data"
}

// action prefers the query string and form over the JSON body.
func (p params) action() string {
	if v, ok := p.fromForm("action"); ok {
		return v
	}
	v, _ := p.fromBody("action")
	return v
}

// get prefers the JSON body over the query string and form. Missing values are "".
func (p params) get(key string) string {
	if v, ok := p.fromBody(key); ok {
		return v
	}
	v, _ := p.fromForm(key)
	return v
}

// raw is get without trimming, for payloads stored verbatim.
func (p params) raw(key string) string {
	if v, ok := p.body[key]; ok && v != nil {
		return stringify(v)
	}
	if vs, ok := p.form[key]; ok && len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// getInt64 is 0 for missing or non-numeric values.
func (p params) getInt64(key string) int64 {
	n, err := strconv.ParseInt(p.get(key), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func (p params) getInt(key string) int { return int(p.getInt64(key)) }

// flag accepts 1/true/on and any non-zero integer.
func (p params) flag(key string) bool {
	v := strings.ToLower(p.get(key))
	switch v {
	case "", "0", "false", "off", "no":
		return false
	case "1", "true", "on", "yes":
		return true
	}
	n, err := strconv.ParseInt(v, 10, 64)
	return err == nil && n != 0
}

func (p params) fromBody(key string) (string, bool) {
	v, ok := p.body[key]
	if !ok || v == nil {
		return "", false
	}
	return strings.TrimSpace(stringify(v)), true
}

func (p params) fromForm(key string) (string, bool) {
	vs, ok := p.form[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return strings.TrimSpace(vs[0]), true
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
