// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/danielhkuo/click-experiment/leaderboard"
	"github.com/danielhkuo/click-experiment/models"
)

const (
	feedBuffer    = 8
	feedWriteWait = 10 * time.Second
)

// FeedMetrics tracks open feed connections.
type FeedMetrics interface {
	FeedSubscribers(delta int)
}

type noOpFeedMetrics struct{}

func (noOpFeedMetrics) FeedSubscribers(int) {}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// LeaderboardSource is the part of leaderboard.Service the feed reads.
type LeaderboardSource interface {
	Leaderboard(uid string) models.LeaderboardView
	Subscribe(fn func()) (unsubscribe func())
}

var _ LeaderboardSource = (*leaderboard.Service)(nil)

// FeedHandler streams the leaderboard over a websocket. Each connection
// gets the view on connect and a fresh one after every recorded session.
type FeedHandler struct {
	svc     LeaderboardSource
	metrics FeedMetrics
}

func NewFeedHandler(svc LeaderboardSource, metrics FeedMetrics) *FeedHandler {
	if metrics == nil {
		metrics = noOpFeedMetrics{}
	}
	return &FeedHandler{svc: svc, metrics: metrics}
}

type feedClient struct {
	conn *websocket.Conn
	send chan models.LeaderboardResponse
	done chan struct{}
	uid  string
}

// push queues v without blocking. A slow client misses intermediate views.
func (c *feedClient) push(v models.LeaderboardView) {
	select {
	case c.send <- models.LeaderboardResponse{OK: true, LeaderboardView: v}:
	case <-c.done:
	default:
		slog.Debug("feed client lagging, view dropped", "uid", c.uid)
	}
}

// ServeWS handles GET /api/leaderboard/ws?uid=
func (h *FeedHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &feedClient{
		conn: conn,
		send: make(chan models.LeaderboardResponse, feedBuffer),
		done: make(chan struct{}),
		uid:  r.URL.Query().Get("uid"),
	}

	unsubscribe := h.attach(client)

	h.metrics.FeedSubscribers(1)
	slog.Debug("feed client connected", "uid", client.uid, "remote", r.RemoteAddr)

	defer func() {
		unsubscribe()
		h.metrics.FeedSubscribers(-1)
		slog.Debug("feed client disconnected", "uid", client.uid)
	}()

	go client.writePump()
	client.readPump()
}

// attach subscribes c and then queues the current view, so no recorded
// session falls between the two.
func (h *FeedHandler) attach(c *feedClient) (unsubscribe func()) {
	unsubscribe = h.svc.Subscribe(func() {
		c.push(h.svc.Leaderboard(c.uid))
	})
	c.push(h.svc.Leaderboard(c.uid))
	return unsubscribe
}

// readPump discards inbound messages and returns when the peer goes away.
func (c *feedClient) readPump() {
	defer func() {
		close(c.done)
		_ = c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *feedClient) writePump() {
	defer c.conn.Close()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
