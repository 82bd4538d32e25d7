package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mlmathbook/mlmath/internal/docview"
	"github.com/mlmathbook/mlmath/internal/keynav"
	"github.com/mlmathbook/mlmath/internal/nav"
	"github.com/mlmathbook/mlmath/internal/settings"
	"github.com/mlmathbook/mlmath/internal/toc"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// clientMsg is the incoming WebSocket message format. Type selects which
// fields are meaningful.
type clientMsg struct {
	Type string `json:"type"`

	// layout
	Headings       []headingPayload `json:"headings,omitempty"`
	DocumentHeight float64          `json:"documentHeight,omitempty"`
	ViewportHeight float64          `json:"viewportHeight,omitempty"`

	// scroll / resize
	ScrollTop float64 `json:"scrollTop,omitempty"`

	// key
	Key *keynav.KeyEvent `json:"key,omitempty"`

	// hashchange / navigate
	Hash   string `json:"hash,omitempty"`
	Target string `json:"target,omitempty"`

	// set-settings
	Settings *settings.Navigation `json:"settings,omitempty"`
}

type headingPayload struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Level  int     `json:"level"`
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// serverMsg is the outgoing WebSocket message format.
type serverMsg struct {
	Type      string     `json:"type"` // "state", "scroll-to", "url", "copied", "error"
	SessionID string     `json:"session_id"`
	State     *nav.State `json:"state,omitempty"`
	ScrollTop float64    `json:"scrollTop,omitempty"`
	Hash      string     `json:"hash,omitempty"`
	URL       string     `json:"url,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// session is one connected reader: a server-side mirror of their viewport.
type session struct {
	id   string
	conn *websocket.Conn
	nav  *nav.Navigator
	page *docview.Page

	writeMu sync.Mutex
}

// Copy pushes the URL to the client, which performs the actual clipboard
// write; the browser is the only place the clipboard exists.
func (sess *session) Copy(_ context.Context, text string) error {
	sess.send(serverMsg{Type: "copied", URL: text})
	return nil
}

// handleSession upgrades the connection and runs the session until the
// reader disconnects. The chapter comes from the ?chapter query parameter.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	slug := r.URL.Query().Get("chapter")

	var outline []*toc.Item
	if rendered, err := s.loader.Load(slug); err == nil {
		outline = rendered.Outline
	}

	page := docview.NewPage(0, 0)
	sess := &session{
		id:   uuid.New().String(),
		conn: conn,
		page: page,
	}
	sess.nav = nav.New(page, outline, nav.Options{
		BaseURL:     s.cfg.BaseURL + "/chapters/" + slug,
		ChapterSlug: slug,
		Store:       s.store,
		Clipboard:   sess,
	})
	navigator := sess.nav

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Subscribe before Start so the initial snapshot and any early document
	// movement reach the client.
	updates, unsubUpdates := navigator.Updates()
	events, unsubEvents := page.Subscribe()

	navigator.Start(ctx)
	defer navigator.Close()

	go sess.pushLoop(ctx, updates, unsubUpdates, events, unsubEvents)

	sess.readLoop(ctx)
}

// readLoop consumes browser events until the connection closes.
func (sess *session) readLoop(ctx context.Context) {
	for {
		_, msg, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("server: websocket read: %v", err)
			}
			return
		}

		var req clientMsg
		if err := json.Unmarshal(msg, &req); err != nil {
			sess.sendError("invalid message format")
			continue
		}

		sess.handleMessage(ctx, req)
	}
}

func (sess *session) handleMessage(ctx context.Context, req clientMsg) {
	switch req.Type {
	case "layout":
		headings := make([]docview.Heading, len(req.Headings))
		for i, h := range req.Headings {
			headings[i] = docview.Heading{
				ID: h.ID, Title: h.Title, Level: h.Level,
				Top: h.Top, Height: h.Height,
			}
		}
		if req.ViewportHeight > 0 {
			sess.page.Resize(req.ViewportHeight)
		}
		sess.page.SetLayout(headings, req.DocumentHeight)

	case "scroll":
		sess.page.UserScroll(req.ScrollTop)

	case "resize":
		sess.page.Resize(req.ViewportHeight)

	case "input":
		sess.page.UserInput()

	case "key":
		if req.Key == nil {
			sess.sendError("key message missing key event")
			return
		}
		// Navigation actions animate for their full scroll duration; running
		// them here would stall the read loop and make an in-flight scroll
		// uninterruptible by the reader's own input. The engine's exclusive
		// animation slot serializes concurrent dispatches.
		ev := *req.Key
		go sess.nav.HandleKey(ctx, ev)

	case "hashchange":
		sess.page.SetFragmentExternal(req.Hash)

	case "navigate":
		target := req.Target
		go func() {
			if err := sess.nav.NavigateToSection(ctx, target); err != nil {
				sess.sendError("navigate: " + err.Error())
			}
		}()

	case "toggle-toc":
		sess.nav.ToggleToc()
		sess.pushState()

	case "set-settings":
		if req.Settings == nil {
			sess.sendError("set-settings message missing settings")
			return
		}
		sess.nav.UpdateSettings(ctx, *req.Settings)

	case "copy-url":
		if _, err := sess.nav.CopySectionURL(ctx); err != nil {
			sess.sendError("copy-url: " + err.Error())
		}

	default:
		sess.sendError("unknown message type: " + req.Type)
	}
}

// pushLoop forwards read-model updates and document movements to the client.
func (sess *session) pushLoop(ctx context.Context, updates <-chan struct{}, unsubUpdates func(), events <-chan docview.Event, unsubEvents func()) {
	defer unsubUpdates()
	defer unsubEvents()

	for {
		select {
		case <-ctx.Done():
			return

		case <-updates:
			sess.pushState()

		case ev := <-events:
			switch ev.Kind {
			case docview.EventScroll:
				// The client ignores positions it already holds, so echoing
				// user scrolls back is harmless.
				sess.send(serverMsg{Type: "scroll-to", ScrollTop: sess.page.Metrics().ScrollTop})
			case docview.EventHashChange:
				sess.send(serverMsg{Type: "url", Hash: ev.Hash})
			}
		}
	}
}

func (sess *session) pushState() {
	st := sess.nav.State()
	sess.send(serverMsg{Type: "state", State: &st})
}

func (sess *session) send(msg serverMsg) {
	msg.SessionID = sess.id
	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()
	if err := sess.conn.WriteJSON(msg); err != nil {
		log.Printf("server: websocket write: %v", err)
	}
}

func (sess *session) sendError(message string) {
	sess.send(serverMsg{Type: "error", Error: message})
}
