package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/GregMSThompson/sahakari-backend/internal/errs"
)

const (
	// form values without files are small
	maxFormMemory = 1 << 20
	maxJSONBody   = 1 << 20
)

// decodeBody fills dst from a JSON body, or from the text fields of a
// multipart form. Unknown fields are rejected either way.
func decodeBody(r *http.Request, dst any) error {
	if strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "multipart/form-data") {
		return decodeForm(r, dst)
	}
	return decodeJSON(r, dst)
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return errs.NewValidationError("request body is required")
		case errors.As(err, &tooLarge):
			return errs.NewValidationError(fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		}
		return errs.NewInvalidInput("invalid request body", err)
	}
	return nil
}

// decodeForm maps multipart text fields onto dst using its json tags, with
// string to number and bool conversion.
func decodeForm(r *http.Request, dst any) error {
	if r.MultipartForm == nil {
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return errs.NewValidationError("invalid multipart form")
		}
	}

	input := make(map[string]any, len(r.MultipartForm.Value))
	for k, vals := range r.MultipartForm.Value {
		if len(vals) == 1 {
			input[k] = vals[0]
		} else {
			input[k] = vals
		}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       jsonListHook,
		TagName:          "json",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Squash:           true,
		Result:           dst,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(input); err != nil {
		return errs.NewInvalidInput("invalid form", err)
	}
	return nil
}

// jsonListHook accepts a JSON array string for slice fields, which is how
// the SPA sends lists besides repeated keys. Text fields keep the raw value
// even when it starts with a bracket.
func jsonListHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Slice {
		return data, nil
	}
	raw := strings.TrimSpace(data.(string))
	if !strings.HasPrefix(raw, "[") {
		return data, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("expected a JSON array of strings")
	}
	return list, nil
}

// queryParams rejects parameters that the endpoint does not understand.
func queryParams(r *http.Request, allowed ...string) (url.Values, error) {
	q := r.URL.Query()
	for k := range q {
		if !slices.Contains(allowed, k) {
			return nil, errs.NewValidationError(fmt.Sprintf("unknown query parameter %q", k))
		}
	}
	return q, nil
}

func queryBool(q url.Values, key string) (*bool, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, errs.NewValidationError(fmt.Sprintf("%s must be true or false", key))
	}
	return &v, nil
}
