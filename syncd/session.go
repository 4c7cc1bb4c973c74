package syncd

import (
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 32
)

// session is one websocket attached to a document.
type session struct {
	id   string
	doc  *document
	conn *websocket.Conn
	out  chan any
	log  *slog.Logger
}

// send enqueues a frame without blocking the committer; when the buffer
// is full the frame is dropped and the connection is closed.
func (s *session) send(frame any) {
	select {
	case s.out <- frame:
	default:
		s.log.Warn("session send buffer full, dropping", "session", s.id)
		s.conn.Close()
	}
}

func (s *session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()
	for {
		select {
		case frame, ok := <-s.out:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteJSON(frame); err != nil {
				s.log.Debug("write failed", "session", s.id, "error", err)
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *session) readPump(srv *Server) {
	defer func() {
		s.doc.detach(s)
		close(s.out)
		s.conn.Close()
	}()
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		frame := &EditFrame{}
		if err := s.conn.ReadJSON(frame); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug("read failed", "session", s.id, "error", err)
			}
			return
		}
		rev, _, err := s.doc.commit(s, frame.Rev, frame.Delta, srv.Spec.Policy)
		if err != nil {
			s.log.Warn("commit rejected", "session", s.id, "error", err)
			s.send(AckFrame{Rev: frame.Rev, Ack: false})
			continue
		}
		s.send(AckFrame{Rev: rev, Ack: true})
	}
}
