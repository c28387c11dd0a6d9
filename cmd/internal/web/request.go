package web

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"
)

// Fields is the plain field-map every operation consumes.
type Fields map[string]string

// Get returns the trimmed value for key ("" when absent).
func (f Fields) Get(key string) string {
	return strings.TrimSpace(f[key])
}

// Bool reads a loose boolean field ("true"/"1"/"on").
func (f Fields) Bool(key string) bool {
	switch strings.ToLower(f.Get(key)) {
	case "true", "1", "on", "yes":
		return true
	default:
		return false
	}
}

// DecodeFields extracts a field-map from the request body. JSON bodies,
// url-encoded forms and multipart forms are all accepted so browser form
// posts and API clients share one path.
func DecodeFields(w http.ResponseWriter, r *http.Request, maxBytes int64) (Fields, error) {
	if r.Body != nil {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch ct {
	case "application/json", "":
		return decodeJSONFields(r)
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		return fromValues(r.PostForm), nil
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			return nil, err
		}
		return fromValues(r.PostForm), nil
	default:
		return nil, errors.New("unsupported content type")
	}
}

func decodeJSONFields(r *http.Request) (Fields, error) {
	if r.Body == nil || r.ContentLength == 0 {
		return Fields{}, nil
	}
	defer func() { _ = r.Body.Close() }()

	var raw map[string]any
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	// Ensure there is no extra data after the first JSON value.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, errors.New("extra data after JSON object")
	}

	out := make(Fields, len(raw))
	for k, v := range raw {
		switch t := v.(type) {
		case string:
			out[k] = t
		case bool:
			if t {
				out[k] = "true"
			} else {
				out[k] = "false"
			}
		case float64:
			out[k] = jsonNumber(t)
		case nil:
			// Absent.
		default:
			// Nested structures are not part of any field-map contract.
		}
	}
	return out, nil
}

func jsonNumber(f float64) string {
	b, _ := json.Marshal(f)
	return string(b)
}

func fromValues(values map[string][]string) Fields {
	out := make(Fields, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	return out
}
