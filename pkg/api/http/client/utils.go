package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/voidshard/easel/pkg/api/http/common"
	"github.com/voidshard/easel/pkg/errors"
	"github.com/voidshard/easel/pkg/structs"
)

// do sends in (if not nil) as JSON to addr and unmarshals the response into out.
func (c *Client) do(ctx context.Context, method string, addr *url.URL, in interface{}, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, addr.String(), body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 { // some error code, assume message is error message
		return statusError(resp.StatusCode, data)
	}

	return json.Unmarshal(data, out)
}

// statusError turns an error response back into an error wrapping the matching sentinel.
func statusError(code int, body []byte) error {
	msg := string(body)
	er := &common.ErrorResponse{}
	if err := json.Unmarshal(body, er); err == nil && er.Error != "" {
		msg = er.Error
	}

	switch code {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", errors.ErrInvalidArg, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", errors.ErrNotFound, msg)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", errors.ErrInvalidState, msg)
	}
	return fmt.Errorf("bad status code %d, returned %s", code, msg)
}

// setQueryString sets the query string of a URL based on the given query object.
func setQueryString(u *url.URL, q *structs.Query) {
	if q == nil {
		q = &structs.Query{}
	}
	q.Sanitize()
	values := u.Query()

	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		values.Set("offset", strconv.Itoa(q.Offset))
	}
	if q.JobIDs != nil {
		values["job_ids"] = q.JobIDs
	}
	if q.UserIDs != nil {
		values["user_ids"] = q.UserIDs
	}
	if q.WorkboardIDs != nil {
		values["workboard_ids"] = q.WorkboardIDs
	}
	if q.MediaIDs != nil {
		values["media_ids"] = q.MediaIDs
	}
	if q.Statuses != nil {
		ss := []string{}
		for _, s := range q.Statuses {
			ss = append(ss, string(s))
		}
		values["statuses"] = ss
	}

	u.RawQuery = values.Encode()
}
