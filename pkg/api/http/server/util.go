package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/voidshard/easel/internal/utils"
	"github.com/voidshard/easel/pkg/api/http/common"
	ee "github.com/voidshard/easel/pkg/errors"
	"github.com/voidshard/easel/pkg/structs"
)

var (
	errmap map[int][]error = map[int][]error{
		http.StatusBadRequest: []error{
			ee.ErrInvalidArg,
			ee.ErrMissingField,
			ee.ErrMaxExceeded,
			ee.ErrInvalidFormat,
		},
		http.StatusNotFound: []error{
			ee.ErrNotFound,
		},
		http.StatusConflict: []error{
			ee.ErrInvalidState,
			ee.ErrMaxRetries,
		},
	}
)

// mapError returns the http status code for a given error from Easel, or
// http.StatusInternalServerError if the error is not recognised.
func mapError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	for code, errs := range errmap {
		for _, e := range errs {
			if errors.Is(err, e) {
				return code
			}
		}
	}
	return http.StatusInternalServerError
}

// writeError writes err as an ErrorResponse with the given status code.
func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(&common.ErrorResponse{Error: err.Error(), Code: ee.Code(err)})
}

// writeJson writes obj as the response body.
func writeJson(w http.ResponseWriter, status int, obj interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(obj)
}

func unmarshalQuery(w http.ResponseWriter, r *http.Request, out *structs.Query) error {
	q := r.URL.Query()

	if q.Has("limit") {
		limit, err := strconv.Atoi(q.Get("limit"))
		if err != nil {
			err = fmt.Errorf("%w: bad limit: %v", ee.ErrInvalidArg, err)
			writeError(w, http.StatusBadRequest, err)
			return err
		}
		out.Limit = limit
	}

	if q.Has("offset") {
		offset, err := strconv.Atoi(q.Get("offset"))
		if err != nil {
			err = fmt.Errorf("%w: bad offset: %v", ee.ErrInvalidArg, err)
			writeError(w, http.StatusBadRequest, err)
			return err
		}
		out.Offset = offset
	}

	ids := []struct {
		key string
		out *[]string
	}{
		{"job_ids", &out.JobIDs},
		{"workboard_ids", &out.WorkboardIDs},
		{"media_ids", &out.MediaIDs},
	}
	for _, f := range ids {
		if !q.Has(f.key) {
			continue
		}
		*f.out = q[f.key]
		for _, id := range *f.out {
			if !utils.IsValidID(id) {
				err := fmt.Errorf("%w: bad id in %s: %q", ee.ErrInvalidArg, f.key, id)
				writeError(w, http.StatusBadRequest, err)
				return err
			}
		}
	}
	if q.Has("user_ids") {
		out.UserIDs = q["user_ids"]
	}
	if q.Has("statuses") {
		out.Statuses = []structs.Status{}
		for _, s := range q["statuses"] {
			st := structs.ToStatus(s)
			if st == "" {
				err := fmt.Errorf("%w: bad status %q", ee.ErrInvalidArg, s)
				writeError(w, http.StatusBadRequest, err)
				return err
			}
			out.Statuses = append(out.Statuses, st)
		}
	}

	out.Sanitize()
	return nil
}

// unmarshalJson reads the body of a request and attempts to unmarshal it into the given object.
// This function write an error to the writer if an error occurs, and returns the error.
func unmarshalJson(w http.ResponseWriter, r *http.Request, obj interface{}) error {
	if r.Body == nil {
		err := fmt.Errorf("%w: no body", ee.ErrInvalidArg)
		writeError(w, http.StatusBadRequest, err)
		return err
	}
	d := json.NewDecoder(r.Body)
	d.DisallowUnknownFields() // catch unwanted fields

	err := d.Decode(obj)
	if err != nil {
		// bad JSON or unrecognized json field
		err = fmt.Errorf("%w: bad json: %v", ee.ErrInvalidArg, err)
		writeError(w, http.StatusBadRequest, err)
		return err
	}

	return nil
}
