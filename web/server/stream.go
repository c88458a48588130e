package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/df07/go-raycaster/pkg/output"
	"github.com/df07/go-raycaster/pkg/renderer"
)

// CompleteEvent is the final event of a streamed render
type CompleteEvent struct {
	Scene     string `json:"scene"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
}

type renderOutcome struct {
	fb    *renderer.Framebuffer
	stats renderer.RenderStats
	err   error
}

// handleRenderStream renders one frame and reports progress via SSE: "console"
// events carry the render log, then a single "complete" or "error" event ends the stream.
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}
	s.setSSEHeaders(w)
	ctx := r.Context()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendSSEEvent(w, flusher, "error", fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan := make(chan ConsoleMessage, 50)
	webLogger := NewWebLogger(fmt.Sprintf("render-%d", time.Now().UnixNano()), s.logger, consoleChan)

	raytracer, _, err := s.newRaytracer(req, webLogger)
	if err != nil {
		s.sendSSEEvent(w, flusher, "error", err.Error())
		return
	}

	done := make(chan renderOutcome, 1)
	go func() {
		fb, stats, err := raytracer.Render(ctx)
		done <- renderOutcome{fb: fb, stats: stats, err: err}
	}()

	// This goroutine is the only writer to w
	for {
		select {
		case msg := <-consoleChan:
			s.sendJSONEvent(w, flusher, "console", msg)

		case outcome := <-done:
			s.drainConsole(w, flusher, consoleChan)
			if outcome.err != nil {
				s.sendSSEEvent(w, flusher, "error", outcome.err.Error())
				return
			}

			var buf bytes.Buffer
			if err := output.Encode(&buf, outcome.fb, output.PNG); err != nil {
				s.sendSSEEvent(w, flusher, "error", err.Error())
				return
			}

			s.sendJSONEvent(w, flusher, "complete", CompleteEvent{
				Scene:     req.Scene,
				Width:     req.Width,
				Height:    req.Height,
				ImageData: base64.StdEncoding.EncodeToString(buf.Bytes()),
				Stats:     newStats(outcome.stats),
			})
			return

		case <-ctx.Done():
			// Client disconnected; the render goroutine sees the same context
			return
		}
	}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// drainConsole forwards console messages still buffered after the render finished
func (s *Server) drainConsole(w http.ResponseWriter, flusher http.Flusher, consoleChan chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			s.sendJSONEvent(w, flusher, "console", msg)
		default:
			return
		}
	}
}

func (s *Server) sendJSONEvent(w http.ResponseWriter, flusher http.Flusher, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.sendSSEEvent(w, flusher, "error", err.Error())
		return
	}
	s.sendSSEEvent(w, flusher, event, string(data))
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, flusher http.Flusher, event, data string) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	flusher.Flush()
}
