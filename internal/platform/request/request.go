// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the router's parameter extraction and body decoding so that
every handler reports malformed input with the same 400 response.
*/
package requestutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/pokereview/internal/platform/validate"
	"github.com/taibuivan/pokereview/pkg/query"
)

// maxBodyBytes caps decoded request bodies.
const maxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

An empty body or a literal null is rejected, matching the "payload is null"
rule of every write endpoint.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	body, err := io.ReadAll(http.MaxBytesReader(writer, request.Body, maxBodyBytes))
	if err != nil {
		return validate.ErrInvalidJSON
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return validate.ErrInvalidJSON
	}

	if err := json.Unmarshal(trimmed, target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves a named URL parameter and parses it as a positive identity.
*/
func ID(request *http.Request, name string) (int, error) {
	id, err := query.PositiveInt(chi.URLParam(request, name))
	if err != nil {
		return 0, validate.FieldError(name, "Must be a positive integer")
	}
	return id, nil
}

/*
QueryID parses an optional identity from the query string; 0 means absent.
*/
func QueryID(request *http.Request, name string) (int, error) {
	id, err := query.OptionalInt(request.URL.Query().Get(name))
	if err != nil {
		return 0, validate.FieldError(name, "Must be a positive integer")
	}
	return id, nil
}

/*
QueryIDs parses every identity given for a repeated or comma-separated
query parameter. It returns nil when the parameter is absent.
*/
func QueryIDs(request *http.Request, name string) ([]int, error) {
	ids, err := query.IntSlice(request.URL.Query()[name])
	if err != nil {
		return nil, validate.FieldError(name, "Must be positive integers")
	}
	return ids, nil
}
