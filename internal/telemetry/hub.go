// SPDX-License-Identifier: MIT

// Package telemetry broadcasts graph render statistics to connected
// browser clients over WebSocket. A Hub runs entirely on the control
// thread: it only ever reads values a render loop has already published
// to an output endpoint or a spectrum analyzer, and never touches
// Chain.Render itself.
package telemetry

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Hub upgrades HTTP connections to WebSocket and fans out JSON-encoded
// snapshots to every connected client, rate limited so a fast control
// loop cannot flood slow clients.
type Hub struct {
	upgrader    websocket.Upgrader
	server      *http.Server
	minInterval time.Duration

	clientsMu sync.Mutex
	clients   map[*websocket.Conn]bool

	broadcast chan any

	lastSendMu sync.Mutex
	lastSend   time.Time
}

// NewHub constructs a Hub listening on addr's "/telemetry" path. It does
// not start the HTTP server; call Start to do that.
func NewHub(addr string, minInterval time.Duration) *Hub {
	h := &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		minInterval: minInterval,
		clients:     make(map[*websocket.Conn]bool),
		broadcast:   make(chan any, 256),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/telemetry", h.handleWebSocket)
	h.server = &http.Server{Addr: addr, Handler: mux}
	return h
}

// Start begins serving WebSocket connections and fanning out broadcasts
// in background goroutines. Safe to call at most once.
func (h *Hub) Start() {
	go func() {
		log.Printf("telemetry: hub listening on %s", h.server.Addr)
		if err := h.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("telemetry: server error: %v", err)
		}
	}()
	go h.drainBroadcasts()
}

func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("telemetry: upgrade error: %v", err)
		return
	}

	h.clientsMu.Lock()
	h.clients[conn] = true
	count := len(h.clients)
	h.clientsMu.Unlock()
	log.Printf("telemetry: client connected, total: %d", count)

	go func() {
		_, _, err := conn.ReadMessage()
		if err != nil {
			h.clientsMu.Lock()
			delete(h.clients, conn)
			count := len(h.clients)
			h.clientsMu.Unlock()
			conn.Close()
			log.Printf("telemetry: client disconnected, total: %d", count)
		}
	}()
}

func (h *Hub) drainBroadcasts() {
	for data := range h.broadcast {
		payload, err := json.Marshal(data)
		if err != nil {
			log.Printf("telemetry: marshal error: %v", err)
			continue
		}

		h.clientsMu.Lock()
		for client := range h.clients {
			if err := client.WriteMessage(websocket.TextMessage, payload); err != nil {
				client.Close()
				delete(h.clients, client)
			}
		}
		h.clientsMu.Unlock()
	}
}

// Publish queues a snapshot for broadcast, respecting the hub's minimum
// send interval. It never blocks: a full queue or a too-soon call drops
// the update silently, the same way an output endpoint drops samples on
// a full stream.
func (h *Hub) Publish(snapshot any) {
	h.lastSendMu.Lock()
	now := time.Now()
	if now.Sub(h.lastSend) < h.minInterval {
		h.lastSendMu.Unlock()
		return
	}
	h.lastSend = now
	h.lastSendMu.Unlock()

	select {
	case h.broadcast <- snapshot:
	default:
	}
}

// Close shuts down the HTTP server and closes every client connection.
func (h *Hub) Close() error {
	h.clientsMu.Lock()
	for client := range h.clients {
		client.Close()
	}
	h.clients = make(map[*websocket.Conn]bool)
	h.clientsMu.Unlock()

	return h.server.Close()
}

// Snapshot is the payload a Hub broadcasts each telemetry tick: queue
// occupancy, render throughput, and the latest spectrum analysis.
type Snapshot struct {
	RenderedSamples uint64             `json:"rendered_samples"`
	QueueOccupancy  map[string]int     `json:"queue_occupancy,omitempty"`
	Magnitudes      []float64          `json:"magnitudes,omitempty"`
	Bands           map[string]float64 `json:"bands,omitempty"`
	Beat            bool               `json:"beat,omitempty"`
}
