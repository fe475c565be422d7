package comfy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/voidshard/easel/pkg/errors"
)

// stream is the websocket a server pushes execution events over.
type stream struct {
	conn *websocket.Conn
	log  zerolog.Logger
}

func (c *Client) openStream(ctx context.Context, base *url.URL, clientID string) (*stream, error) {
	u := endpoint(base, "/ws")
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	q := u.Query()
	q.Set("clientId", clientID)
	u.RawQuery = q.Encode()

	conn, resp, err := c.opts.Dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		if resp != nil && resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, errors.Permanent(fmt.Errorf("%w: websocket refused with %d", errors.ErrRemote, resp.StatusCode))
		}
		return nil, fmt.Errorf("%w: websocket: %w", errors.ErrRemote, err)
	}
	return &stream{conn: conn, log: c.log}, nil
}

func (s *stream) Close() error {
	return s.conn.Close()
}

// wait reads events until the prompt completes or fails, or ctx ends.
func (s *stream) wait(ctx context.Context, promptID string, progress ProgressFunc) error {
	done := make(chan error, 1)
	go func() {
		done <- s.read(promptID, progress)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		s.conn.Close() // unblocks read
		<-done
		return ctx.Err()
	}
}

func (s *stream) read(promptID string, progress ProgressFunc) error {
	for {
		kind, data, err := s.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("%w: stream closed: %w", errors.ErrRemote, err)
		}
		if kind != websocket.TextMessage {
			continue // binary frames carry preview images
		}

		msg := message{}
		if err := json.Unmarshal(data, &msg); err != nil {
			s.log.Debug().Err(err).Msg("ignoring undecodable stream message")
			continue
		}

		finished, err := handle(&msg, promptID, progress)
		if err != nil || finished {
			return err
		}
	}
}

// handle interprets one stream message. Messages for other prompts are ignored.
func handle(msg *message, promptID string, progress ProgressFunc) (bool, error) {
	switch msg.Type {
	case msgProgress:
		d := progressData{}
		if json.Unmarshal(msg.Data, &d) != nil {
			return false, nil
		}
		if d.PromptID != "" && d.PromptID != promptID {
			return false, nil
		}
		if progress != nil && d.Max > 0 {
			progress(d.Value, d.Max)
		}
	case msgExecuting:
		d := executingData{}
		if json.Unmarshal(msg.Data, &d) != nil {
			return false, nil
		}
		return d.Node == nil && d.PromptID == promptID, nil
	case msgSuccess:
		d := promptData{}
		if json.Unmarshal(msg.Data, &d) != nil {
			return false, nil
		}
		return d.PromptID == promptID, nil
	case msgError:
		d := errorData{}
		if json.Unmarshal(msg.Data, &d) != nil || d.PromptID != promptID {
			return false, nil
		}
		detail := strings.TrimSpace(d.ExceptionMessage)
		if d.NodeType != "" {
			detail = fmt.Sprintf("%s (node %s %s)", detail, d.NodeID, d.NodeType)
		}
		return true, fmt.Errorf("%w: %s", errors.ErrExecution, detail)
	case msgInterrupted:
		d := promptData{}
		if json.Unmarshal(msg.Data, &d) != nil || d.PromptID != promptID {
			return false, nil
		}
		return true, fmt.Errorf("%w: execution interrupted", errors.ErrCancelled)
	}
	return false, nil
}
