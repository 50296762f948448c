package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"backdrop/internal/nav"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 32
)

// Client message types.
const (
	msgLayout = "layout"
	msgScroll = "scroll"
	msgResize = "resize"
)

// Server message types.
const (
	msgHello = "hello"
	msgState = "state"
	msgError = "error"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// clientMessage is what a page sends: its section layout, scroll offsets
// and resize notifications. A resize may carry new section heights.
type clientMessage struct {
	Type     string        `json:"type"`
	Y        float64       `json:"y,omitempty"`
	Offset   float64       `json:"offset,omitempty"`
	Sections []nav.Section `json:"sections,omitempty"`
}

type serverMessage struct {
	Type    string     `json:"type"`
	Session string     `json:"session,omitempty"`
	State   *nav.State `json:"state,omitempty"`
	Error   string     `json:"error,omitempty"`
}

// session is one websocket client. Its tracker and layout belong to the
// loop goroutine.
type session struct {
	id      string
	layout  *nav.Layout
	tracker *nav.Tracker

	mu     sync.Mutex
	out    chan serverMessage
	closed bool
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade", "err", err)
		return
	}
	defer conn.Close()

	sess := &session{
		id:     uuid.NewString(),
		layout: nav.NewLayout(0, s.cfg.Sections...),
		out:    make(chan serverMessage, sendBuffer),
	}
	log := s.log.With("session", sess.id)

	ids := make([]string, len(s.cfg.Sections))
	for i, sec := range s.cfg.Sections {
		ids[i] = sec.ID
	}
	sess.tracker = nav.NewTracker(s.loop, sess.layout,
		nav.WithSections(ids...),
		nav.WithLookahead(s.cfg.Lookahead),
		nav.WithScrolledThreshold(s.cfg.Threshold),
		nav.WithResizeDelay(s.cfg.Debounce),
		nav.WithLogger(log),
		nav.OnChange(func(st nav.State) { sess.send(serverMessage{Type: msgState, State: &st}) }))

	ctx := r.Context()
	if err := s.loop.Call(ctx, func() {
		sess.tracker.Mount(0)
		st := sess.tracker.State()
		sess.send(serverMessage{Type: msgHello, Session: sess.id, State: &st})
	}); err != nil {
		return
	}
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	log.Debug("websocket session opened")

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range sess.out {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				log.Debug("websocket write", "err", err)
				return
			}
		}
	}()

	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("websocket read", "err", err)
			}
			break
		}
		s.loop.Post(func() { sess.handle(msg) })
	}

	s.mu.Lock()
	delete(s.sessions, sess.id)
	s.mu.Unlock()
	closeCtx, cancel := context.WithTimeout(context.Background(), writeWait)
	defer cancel()
	if err := s.loop.Call(closeCtx, sess.tracker.Unmount); err != nil {
		log.Debug("websocket unmount", "err", err)
	}
	sess.close()
	<-done
	log.Debug("websocket session closed")
}

// handle runs on the loop goroutine.
func (sess *session) handle(msg clientMessage) {
	switch msg.Type {
	case msgLayout:
		sess.layout.Offset = msg.Offset
		sess.layout.Sections = msg.Sections
		sess.tracker.Mount(sess.tracker.ScrollY())
	case msgScroll:
		sess.tracker.Scroll(msg.Y)
	case msgResize:
		for _, sec := range msg.Sections {
			sess.layout.Set(sec.ID, sec.Height)
		}
		sess.tracker.Resize()
	default:
		sess.send(serverMessage{Type: msgError, Error: "unknown message type " + msg.Type})
	}
}

// send never blocks the loop; a client that stops reading loses messages.
func (sess *session) send(msg serverMessage) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed {
		return
	}
	select {
	case sess.out <- msg:
	default:
	}
}

func (sess *session) close() {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if !sess.closed {
		sess.closed = true
		close(sess.out)
	}
}
