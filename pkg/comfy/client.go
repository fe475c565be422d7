// Package comfy talks to a ComfyUI compatible compute server: submitting workflows, following
// their progress over a websocket & downloading what they produce.
package comfy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/voidshard/easel/pkg/errors"
)

const maxErrorBody = 2048

// Client is safe for concurrent use; each execution uses its own client id & stream.
type Client struct {
	opts *Options
	log  zerolog.Logger
}

// New returns a client. Server addresses are given per call since each workboard names its own.
func New(opts *Options) *Client {
	if opts == nil {
		opts = &Options{}
	}
	opts.SetDefaults()
	return &Client{opts: opts, log: *opts.Logger}
}

// Execute submits a rendered workflow and blocks until it finishes, fails, or times out.
//
// Errors wrap ErrRemote (server unreachable / 5xx, retryable), ErrExecution (the server ran
// the workflow and it failed), ErrTimeout or ErrCancelled. Definitive rejections are marked
// permanent.
func (c *Client) Execute(ctx context.Context, server string, doc []byte, progress ProgressFunc) (*Result, error) {
	base, err := parseServer(server)
	if err != nil {
		return nil, err
	}

	tctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	clientID := uuid.NewString()
	log := c.log.With().Str("server", base.Host).Str("client_id", clientID).Logger()

	// the stream is opened before submitting so no message for our prompt can be missed
	stream, err := c.openStream(tctx, base, clientID)
	if err != nil {
		return nil, c.ctxError(ctx, tctx, err)
	}
	defer stream.Close()

	promptID, err := c.submit(tctx, base, doc, clientID)
	if err != nil {
		return nil, c.ctxError(ctx, tctx, err)
	}
	log = log.With().Str("prompt_id", promptID).Logger()
	log.Debug().Msg("workflow submitted")

	err = stream.wait(tctx, promptID, progress)
	if err != nil {
		if tctx.Err() != nil {
			ictx, icancel := context.WithTimeout(context.Background(), c.opts.RequestTimeout)
			defer icancel()
			if ierr := c.Interrupt(ictx, server); ierr != nil {
				log.Warn().Err(ierr).Msg("failed to interrupt abandoned execution")
			}
		}
		return nil, c.ctxError(ctx, tctx, err)
	}

	outputs, err := c.history(tctx, base, promptID)
	if err != nil {
		return nil, c.ctxError(ctx, tctx, err)
	}
	for _, out := range outputs {
		out.Data, out.ContentType, err = c.view(tctx, base, out)
		if err != nil {
			return nil, c.ctxError(ctx, tctx, err)
		}
	}
	log.Debug().Int("outputs", len(outputs)).Msg("execution complete")

	return &Result{PromptID: promptID, Outputs: outputs}, nil
}

// Upload sends image bytes to the server's input folder, returning the name the server
// stored them under.
func (c *Client) Upload(ctx context.Context, server, filename string, data []byte) (string, error) {
	base, err := parseServer(server)
	if err != nil {
		return "", err
	}

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	part, err := form.CreateFormFile("image", path.Base(filename))
	if err != nil {
		return "", err
	}
	if _, err = part.Write(data); err != nil {
		return "", err
	}
	if err = form.WriteField("overwrite", "true"); err != nil {
		return "", err
	}
	if err = form.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint(base, "/upload/image").String(), body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	var out uploadResponse
	if err = c.doJSON(req, &out); err != nil {
		return "", fmt.Errorf("%w: %w", errors.ErrUpload, err)
	}
	if out.Name == "" {
		return "", fmt.Errorf("%w: server returned no filename", errors.ErrUpload)
	}
	if out.Subfolder != "" {
		return out.Subfolder + "/" + out.Name, nil
	}
	return out.Name, nil
}

// Interrupt asks the server to stop whatever it is currently executing.
func (c *Client) Interrupt(ctx context.Context, server string) error {
	base, err := parseServer(server)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint(base, "/interrupt").String(), nil)
	if err != nil {
		return err
	}
	return c.doJSON(req, nil)
}

func (c *Client) submit(ctx context.Context, base *url.URL, doc []byte, clientID string) (string, error) {
	data, err := json.Marshal(&promptRequest{Prompt: doc, ClientID: clientID})
	if err != nil {
		return "", errors.Permanent(fmt.Errorf("%w: %w", errors.ErrRender, err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint(base, "/prompt").String(), bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	var out promptResponse
	if err := c.doJSON(req, &out); err != nil {
		return "", err
	}
	if out.PromptID == "" {
		return "", fmt.Errorf("%w: no prompt id returned", errors.ErrRemote)
	}
	return out.PromptID, nil
}

// history fetches the outputs of a finished prompt.
func (c *Client) history(ctx context.Context, base *url.URL, promptID string) ([]*Output, error) {
	addr := endpoint(base, "/history/"+url.PathEscape(promptID)).String()

	var entry *historyEntry
	for i := 0; i < c.opts.HistoryRetries; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
		if err != nil {
			return nil, err
		}
		found := map[string]*historyEntry{}
		if err := c.doJSON(req, &found); err != nil {
			return nil, err
		}
		if e, ok := found[promptID]; ok {
			entry = e
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.opts.HistoryBackoff):
		}
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: no history for prompt %s", errors.ErrRemote, promptID)
	}

	nodes := make([]string, 0, len(entry.Outputs))
	for id := range entry.Outputs {
		nodes = append(nodes, id)
	}
	sort.Strings(nodes)

	// previews (type "temp") are only returned when nothing was saved
	outputs, previews := []*Output{}, []*Output{}
	for _, node := range nodes {
		no := entry.Outputs[node]
		for _, set := range [][]fileRef{no.Images, no.Gifs, no.Videos} {
			for _, f := range set {
				out := &Output{
					Kind:      f.kind(),
					Node:      node,
					Filename:  f.Filename,
					Subfolder: f.Subfolder,
					Type:      f.Type,
					Format:    f.Format,
					FrameRate: f.FrameRate,
				}
				if f.Type == "temp" {
					previews = append(previews, out)
				} else {
					outputs = append(outputs, out)
				}
			}
		}
	}
	if len(outputs) == 0 {
		return previews, nil
	}
	return outputs, nil
}

// view downloads a produced file.
func (c *Client) view(ctx context.Context, base *url.URL, out *Output) ([]byte, string, error) {
	u := endpoint(base, "/view")
	q := u.Query()
	q.Set("filename", out.Filename)
	q.Set("subfolder", out.Subfolder)
	q.Set("type", out.Type)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := c.opts.HTTPClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", errors.ErrRemote, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", errors.ErrRemote, err)
	}
	if err := statusError(resp.StatusCode, body); err != nil {
		return nil, "", err
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// doJSON performs the request and decodes any JSON response into out.
func (c *Client) doJSON(req *http.Request, out interface{}) error {
	resp, err := c.opts.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrRemote, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrRemote, err)
	}
	if err := statusError(resp.StatusCode, body); err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: unexpected response: %w", errors.ErrRemote, err)
	}
	return nil
}

// ctxError rewrites an error caused by our own deadline or the caller's cancellation.
func (c *Client) ctxError(parent, ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if parent.Err() != nil {
		return fmt.Errorf("%w: %w", errors.ErrCancelled, parent.Err())
	}
	if ctx.Err() != nil {
		return fmt.Errorf("%w: no result after %s", errors.ErrTimeout, c.opts.Timeout)
	}
	return err
}

// statusError classifies a response; 4xx is a definitive rejection that a retry won't fix.
func statusError(code int, body []byte) error {
	if code < 400 {
		return nil
	}
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	err := fmt.Errorf("%w: bad status code %d, returned %s", errors.ErrRemote, code, strings.TrimSpace(string(body)))
	if code < 500 {
		return errors.Permanent(err)
	}
	return err
}

func parseServer(server string) (*url.URL, error) {
	server = strings.TrimSpace(server)
	if !strings.Contains(server, "://") {
		server = "http://" + server
	}
	u, err := url.Parse(server)
	if err != nil || u.Host == "" {
		return nil, errors.Permanent(fmt.Errorf("%w: invalid server address %q", errors.ErrInvalidArg, server))
	}
	return u, nil
}

func endpoint(base *url.URL, p string) *url.URL {
	return &url.URL{Scheme: base.Scheme, Host: base.Host, User: base.User, Path: strings.TrimRight(base.Path, "/") + p}
}
