// Package ws streams diagnostic events to a loopback-only websocket debug
// client.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"hipstertrail/internal/app/ports"
)

const (
	backlogSize  = 20
	writeTimeout = 5 * time.Second
	readTimeout  = 60 * time.Second
)

type Source interface {
	Recent(limit int) []ports.Event
	Subscribe() (<-chan ports.Event, func())
}

type Server struct {
	source   Source
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

func NewServer(source Source, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		source: source,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Handler serves /ws/events on its own net/http mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/events", s.serveEvents)
	return mux
}

func (s *Server) serveEvents(rw http.ResponseWriter, r *http.Request) {
	if !isLoopbackRemote(r.RemoteAddr) {
		http.Error(rw, "forbidden", http.StatusForbidden)
		return
	}
	conn, err := s.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	live, cancelSub := s.source.Subscribe()
	defer cancelSub()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Reader: only watches for the client going away.
	go func() {
		defer cancel()
		for {
			_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for _, evt := range s.source.Recent(backlogSize) {
		if err := writeEvent(conn, evt); err != nil {
			return
		}
	}
	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"), time.Now().Add(time.Second))
			return
		case evt, ok := <-live:
			if !ok {
				return
			}
			if err := writeEvent(conn, evt); err != nil {
				s.logger.Debug("event stream write failed", "error", err)
				return
			}
		}
	}
}

func writeEvent(conn *websocket.Conn, evt ports.Event) error {
	b, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteMessage(websocket.TextMessage, b)
}

func isLoopbackRemote(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	host = strings.TrimPrefix(host, "[")
	host = strings.TrimSuffix(host, "]")
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
