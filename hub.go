/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"crypto/rand"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/Seednode/matchbox/games/matching"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

type Client struct {
	conn     *websocket.Conn
	send     chan any
	deviceID string
}

type command struct {
	client *Client
	msg    ClientMessage
}

// Hub owns one game session. Every change to the session's round happens on
// the goroutine running run, so the round needs no locking of its own; mu
// only guards what the reaper and closeAll read from other goroutines.
type Hub struct {
	id    string
	cfg   *Config
	store *contentStore

	clients map[*Client]bool

	register chan *Client
	unreg    chan *Client
	commands chan command
	timeouts chan uint64
	done     chan struct{}

	mu sync.RWMutex

	createdAt  time.Time
	lastActive time.Time
	closed     bool

	content   *matching.Content // content the current portal was loaded from
	portal    *matching.Portal
	layoutIdx int
	round     *matching.Round

	// timer fires the end of the resolving window. timerGen is bumped on
	// every stop so an expiry that raced a reset is recognised and dropped.
	timer    *time.Timer
	timerGen uint64
}

func newHub(cfg *Config, store *contentStore, gameID string) *Hub {
	now := time.Now()
	return &Hub{
		id:         gameID,
		cfg:        cfg,
		store:      store,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unreg:      make(chan *Client),
		commands:   make(chan command),
		timeouts:   make(chan uint64),
		done:       make(chan struct{}),
		createdAt:  now,
		lastActive: now,
	}
}

func (h *Hub) run() {
	for {
		select {
		case <-h.done:
			return

		case c := <-h.register:
			h.mu.Lock()
			h.lastActive = time.Now()
			h.clients[c] = true

			content := h.content
			if content == nil {
				content = h.store.Content()
			}

			h.sendLocked(c, SessionInfoMessage{
				Type:    "session_info",
				GameID:  h.id,
				Portals: portalInfos(h.cfg, content),
			})
			h.sendLocked(c, h.stateLocked())
			h.mu.Unlock()

			logf(h.cfg, "GAMES: Device %s joined %s", c.deviceID, h.id)

		case c := <-h.unreg:
			h.mu.Lock()
			h.lastActive = time.Now()

			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()

		case cmd := <-h.commands:
			h.handleCommand(cmd)

		case gen := <-h.timeouts:
			h.handleTimeout(gen)
		}
	}
}

func (h *Hub) handleCommand(cmd command) {
	msg := cmd.msg

	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastActive = time.Now()

	switch msg.Type {
	case "select_portal":
		h.selectPortalLocked(msg.Portal, msg.Layout)

	case "start":
		if h.round == nil {
			return
		}
		h.applyLocked(h.round.StartTurn())

	case "choose":
		if h.round == nil {
			return
		}
		h.applyLocked(h.round.SubmitChoice(msg.Choice))

	case "play_again":
		if h.round == nil {
			return
		}
		h.stopTimerLocked()
		h.round.Reset()
		logf(h.cfg, "GAMES: Restarted layout %q in %s", h.round.Layout().ID, h.id)
		h.broadcastLocked(h.stateLocked())

	case "next_layout":
		if h.round == nil {
			return
		}
		h.loadLayoutLocked((h.layoutIdx + 1) % len(h.portal.Layouts))

	case "menu":
		h.stopTimerLocked()
		h.content = nil
		h.portal = nil
		h.round = nil
		h.broadcastLocked(h.stateLocked())
	}
}

func (h *Hub) selectPortalLocked(name, layoutID string) {
	content := h.store.Content()

	portal, ok := content.Portal(name)
	if !ok {
		return
	}

	idx := 0
	for i, id := range portal.Layouts {
		if id == layoutID {
			idx = i
			break
		}
	}

	h.content = content
	h.portal = portal

	h.loadLayoutLocked(idx)
}

// loadLayoutLocked replaces the current round with a fresh round of the
// portal's layout at idx. On failure the session goes back to the menu.
func (h *Hub) loadLayoutLocked(idx int) {
	h.stopTimerLocked()
	h.round = nil

	id := h.portal.Layouts[idx]

	layout, ok := h.content.Layout(id)
	if !ok {
		h.failLocked(&matching.LoadError{Doc: matching.LayoutDir + "/" + id, Err: fs.ErrNotExist})
		return
	}

	round, err := matching.LoadRound(layout, h.content.Items, h.cfg.roundOptions())
	if err != nil {
		h.failLocked(err)
		return
	}

	h.layoutIdx = idx
	h.round = round

	logf(h.cfg, "GAMES: Loaded layout %q of %q in %s", id, h.portal.Name, h.id)

	h.broadcastLocked(h.stateLocked())
}

func (h *Hub) failLocked(err error) {
	errorf("GAMES: %s: %v", h.id, err)

	h.content = nil
	h.portal = nil
	h.round = nil

	h.broadcastLocked(SimpleMessage{
		Type:    "error",
		Message: promptBroken,
	})
	h.broadcastLocked(h.stateLocked())
}

// applyLocked turns a round result into messages and timers.
func (h *Hub) applyLocked(res matching.Result) {
	switch res.Outcome {
	case matching.Ignored:
		logf(h.cfg, "GAMES: Ignored command in %s: %v", h.id, res.Reason)

	case matching.Activated, matching.Waiting:
		h.broadcastLocked(h.stateLocked())

	case matching.Match:
		logf(h.cfg, "GAMES: %q placed in slot %d of %q in %s", res.Item.ID, res.Slot.ID, h.round.Layout().ID, h.id)
		h.broadcastLocked(FeedbackMessage{
			Type:    "feedback",
			Correct: true,
			Choice:  res.Item.ID,
			Message: promptCorrect,
		})
		h.broadcastLocked(h.stateLocked())
		h.scheduleResolveLocked()

	case matching.NoMatch:
		h.broadcastLocked(FeedbackMessage{
			Type:    "feedback",
			Correct: false,
			Choice:  res.Item.ID,
			Message: promptWrong,
		})

	case matching.Finished:
		logf(h.cfg, "GAMES: Completed layout %q in %s", h.round.Layout().ID, h.id)
		h.broadcastLocked(h.stateLocked())
		h.broadcastLocked(SimpleMessage{
			Type:    "win",
			Message: promptWin,
		})
	}
}

func (h *Hub) scheduleResolveLocked() {
	h.stopTimerLocked()

	gen := h.timerGen
	h.timer = time.AfterFunc(h.cfg.resolveDelay, func() {
		select {
		case h.timeouts <- gen:
		case <-h.done:
		}
	})
}

func (h *Hub) stopTimerLocked() {
	h.timerGen++

	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
}

func (h *Hub) handleTimeout(gen uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if gen != h.timerGen || h.round == nil {
		return
	}

	h.timer = nil
	h.applyLocked(h.round.Resolve())
}

func (h *Hub) stateLocked() RoundStateMessage {
	if h.round == nil {
		return menuState()
	}

	return roundState(h.cfg, h.portal, h.layoutIdx, h.round)
}

// sendLocked queues msg for c, dropping the client if it cannot keep up.
func (h *Hub) sendLocked(c *Client, msg any) {
	if !h.clients[c] {
		return
	}

	select {
	case c.send <- msg:
	default:
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) broadcastLocked(msg any) {
	for client := range h.clients {
		h.sendLocked(client, msg)
	}
}

// closeAll disconnects all clients of this hub and stops its loop.
func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	close(h.done)
	h.stopTimerLocked()

	for c := range h.clients {
		close(c.send)
		_ = c.conn.Close()
		delete(h.clients, c)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const deviceCookieName = "matchbox_id"

func getOrSetDeviceID(cfg *Config, w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(deviceCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.NewString()

	http.SetCookie(w, &http.Cookie{
		Name:     deviceCookieName,
		Value:    id,
		Path:     cfg.prefix + "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}

// GameManager holds a set of hubs keyed by game ID, so each $path/$gameid
// is its own isolated session.
type GameManager struct {
	mu          sync.Mutex
	cfg         *Config
	store       *contentStore
	hubs        map[string]*Hub
	idleTimeout time.Duration
}

func newGameManager(cfg *Config, store *contentStore) *GameManager {
	gm := &GameManager{
		cfg:         cfg,
		store:       store,
		hubs:        make(map[string]*Hub),
		idleTimeout: cfg.sessionTimeout,
	}

	if gm.idleTimeout > 0 {
		go gm.reaperLoop()
	}

	return gm
}

func (gm *GameManager) getHub(gameID string) *Hub {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if hub, ok := gm.hubs[gameID]; ok {
		return hub
	}

	hub := newHub(gm.cfg, gm.store, gameID)
	gm.hubs[gameID] = hub
	go hub.run()

	return hub
}

// newGameID generates a crypto-random game ID and ensures it doesn't
// collide with existing games.
func (gm *GameManager) newGameID() string {
	const letters = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	const max = byte(255 - (256 % len(letters)))

	for {
		out := make([]byte, 0, 8)
		buf := make([]byte, 16)

		for len(out) < cap(out) {
			if _, err := rand.Read(buf); err != nil {
				panic("crypto/rand failure: " + err.Error())
			}

			for _, b := range buf {
				if b <= max && len(out) < cap(out) {
					out = append(out, letters[int(b)%len(letters)])
				}
			}
		}

		id := string(out)

		gm.mu.Lock()
		_, exists := gm.hubs[id]
		gm.mu.Unlock()

		if !exists {
			return id
		}
	}
}

// reaperLoop periodically removes hubs that have been idle longer than idleTimeout.
func (gm *GameManager) reaperLoop() {
	ticker := time.NewTicker(gm.idleTimeout / 2)

	for range ticker.C {
		gm.reap(time.Now().Add(-gm.idleTimeout))
	}
}

func (gm *GameManager) reap(cutoff time.Time) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	for id, hub := range gm.hubs {
		hub.mu.RLock()
		last := hub.lastActive
		hub.mu.RUnlock()

		if last.Before(cutoff) {
			delete(gm.hubs, id)
			logf(gm.cfg, "GAMES: Reaped idle game %s", id)
			go hub.closeAll()
		}
	}
}

// WebSocket handler that picks the hub based on :gameid
func serveWSForManager(cfg *Config, gm *GameManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		gameID := ps.ByName("gameid")
		if gameID == "" {
			http.Error(w, "missing game id", http.StatusBadRequest)
			return
		}

		deviceID := getOrSetDeviceID(cfg, w, r)

		hub := gm.getHub(gameID)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logf(cfg, "SERVE: Websocket upgrade for %s failed: %v", realIP(r), err)
			return
		}

		client := &Client{
			conn:     conn,
			send:     make(chan any, 16),
			deviceID: deviceID,
		}

		select {
		case hub.register <- client:
		case <-hub.done:
			_ = conn.Close()
			return
		}

		go client.writePump()
		client.readPump(hub)
	}
}

func (c *Client) readPump(h *Hub) {
	defer func() {
		select {
		case h.unreg <- c:
		case <-h.done:
		}
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case "select_portal", "start", "choose", "play_again", "next_layout", "menu":
			select {
			case h.commands <- command{client: c, msg: msg}:
			case <-h.done:
				return
			}
		default:
			// ignore unknown types
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}
