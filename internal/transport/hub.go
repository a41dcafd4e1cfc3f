package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/petdoor-tools/doorsched/internal/logger"
	"github.com/petdoor-tools/doorsched/internal/models"
)

// Hub is a websocket RPC client for the hub API. Commands are id-tagged
// request/response pairs; state_changed events for a watched entity are
// delivered on a channel.
type Hub struct {
	conn *websocket.Conn

	writeMu sync.Mutex // serialises WriteJSON

	mu      sync.Mutex
	nextID  int64
	pending map[int64]chan rpcResponse
	watch   string
	err     error

	events chan models.EntitySnapshot
	done   chan struct{}
	once   sync.Once
}

type rpcResponse struct {
	result json.RawMessage
	err    error
}

type rpcError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type serverMsg struct {
	ID      int64           `json:"id,omitempty"`
	Type    string          `json:"type"`
	Success bool            `json:"success,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
	Event   *stateEvent     `json:"event,omitempty"`
	Message string          `json:"message,omitempty"`
}

type stateEvent struct {
	EventType string `json:"event_type"`
	Data      struct {
		EntityID string                 `json:"entity_id"`
		NewState *models.EntitySnapshot `json:"new_state"`
	} `json:"data"`
}

// ScheduleInfo describes one schedule entity, as returned by the list RPC.
type ScheduleInfo struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	State    string          `json:"state"`
	Schedule models.Schedule `json:"schedule"`
}

// WebsocketURL turns a hub base URL into its websocket endpoint.
func WebsocketURL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid hub URL %q: %w", base, err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported hub URL scheme %q", u.Scheme)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/api/websocket"
	}
	return u.String(), nil
}

// Dial connects to the hub, performs the auth handshake, and starts the
// read loop. Close must be called to release the connection.
func Dial(ctx context.Context, hubURL, token string) (*Hub, error) {
	endpoint, err := WebsocketURL(hubURL)
	if err != nil {
		return nil, err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("dial hub %s: %w", endpoint, err)
	}

	h := &Hub{
		conn:    conn,
		pending: map[int64]chan rpcResponse{},
		events:  make(chan models.EntitySnapshot, 8),
		done:    make(chan struct{}),
	}

	if err := h.authenticate(token); err != nil {
		conn.Close()
		return nil, err
	}

	go h.readLoop()
	return h, nil
}

func (h *Hub) authenticate(token string) error {
	var msg serverMsg
	if err := h.conn.ReadJSON(&msg); err != nil {
		return fmt.Errorf("hub handshake: %w", err)
	}
	switch msg.Type {
	case "auth_ok":
		return nil
	case "auth_required":
	default:
		return fmt.Errorf("unexpected handshake message %q", msg.Type)
	}

	if err := h.conn.WriteJSON(map[string]string{
		"type":         "auth",
		"access_token": token,
	}); err != nil {
		return fmt.Errorf("hub auth: %w", err)
	}

	if err := h.conn.ReadJSON(&msg); err != nil {
		return fmt.Errorf("hub auth: %w", err)
	}
	if msg.Type != "auth_ok" {
		return fmt.Errorf("hub rejected auth: %s", msg.Message)
	}
	return nil
}

// Load fetches the schedule via the typed get RPC.
func (h *Hub) Load(ctx context.Context, entityID string) (models.Schedule, error) {
	raw, err := h.call(ctx, map[string]any{
		"type":      CmdScheduleGet,
		"entity_id": entityID,
	})
	if err != nil {
		return nil, err
	}
	var res struct {
		Schedule models.Schedule `json:"schedule"`
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("decode schedule: %w", err)
	}
	return NormalizeSchedule(res.Schedule)
}

// Save pushes the schedule via the typed update RPC. Times are emitted in
// canonical "HH:MM" form.
func (h *Hub) Save(ctx context.Context, entityID string, sched models.Schedule) error {
	normalized, err := NormalizeSchedule(sched)
	if err != nil {
		return err
	}
	_, err = h.call(ctx, map[string]any{
		"type":      CmdScheduleUpdate,
		"entity_id": entityID,
		"schedule":  normalized,
	})
	return err
}

// ListSchedules enumerates the hub's schedule entities; the configure
// form uses it as the entity picker source.
func (h *Hub) ListSchedules(ctx context.Context) ([]ScheduleInfo, error) {
	raw, err := h.call(ctx, map[string]any{"type": CmdScheduleList})
	if err != nil {
		return nil, err
	}
	var infos []ScheduleInfo
	if err := json.Unmarshal(raw, &infos); err != nil {
		return nil, fmt.Errorf("decode schedule list: %w", err)
	}
	return infos, nil
}

// FetchState retrieves the current snapshot of one entity.
func (h *Hub) FetchState(ctx context.Context, entityID string) (models.EntitySnapshot, error) {
	raw, err := h.call(ctx, map[string]any{"type": "get_states"})
	if err != nil {
		return models.EntitySnapshot{}, err
	}
	var states []models.EntitySnapshot
	if err := json.Unmarshal(raw, &states); err != nil {
		return models.EntitySnapshot{}, fmt.Errorf("decode states: %w", err)
	}
	for _, s := range states {
		if s.EntityID == entityID {
			return s, nil
		}
	}
	return models.EntitySnapshot{}, ErrNotFound
}

// SubscribeStates subscribes to state_changed events for one entity and
// returns the snapshot channel. Snapshots are dropped, not queued, when
// the consumer falls behind.
func (h *Hub) SubscribeStates(ctx context.Context, entityID string) (<-chan models.EntitySnapshot, error) {
	h.mu.Lock()
	h.watch = entityID
	h.mu.Unlock()

	if _, err := h.call(ctx, map[string]any{
		"type":       "subscribe_events",
		"event_type": "state_changed",
	}); err != nil {
		return nil, err
	}
	return h.events, nil
}

// Close shuts the connection down and fails all pending calls.
func (h *Hub) Close() error {
	h.once.Do(func() {
		close(h.done)
		h.conn.Close()
		h.failPending(fmt.Errorf("connection closed"))
	})
	return nil
}

func (h *Hub) call(ctx context.Context, cmd map[string]any) (json.RawMessage, error) {
	h.mu.Lock()
	if h.err != nil {
		err := h.err
		h.mu.Unlock()
		return nil, err
	}
	h.nextID++
	id := h.nextID
	ch := make(chan rpcResponse, 1)
	h.pending[id] = ch
	h.mu.Unlock()

	cmd["id"] = id

	h.writeMu.Lock()
	err := h.conn.WriteJSON(cmd)
	h.writeMu.Unlock()
	if err != nil {
		h.drop(id)
		return nil, fmt.Errorf("send %v: %w", cmd["type"], err)
	}

	select {
	case <-ctx.Done():
		h.drop(id)
		return nil, ctx.Err()
	case <-h.done:
		return nil, fmt.Errorf("connection closed")
	case res := <-ch:
		return res.result, res.err
	}
}

func (h *Hub) readLoop() {
	for {
		var msg serverMsg
		if err := h.conn.ReadJSON(&msg); err != nil {
			select {
			case <-h.done:
			default:
				logger.Warn("hub connection lost", "error", err)
			}
			h.mu.Lock()
			h.err = fmt.Errorf("connection lost: %w", err)
			h.mu.Unlock()
			h.failPending(err)
			return
		}

		switch msg.Type {
		case "result":
			h.deliver(msg)
		case "event":
			h.handleEvent(msg)
		}
	}
}

func (h *Hub) deliver(msg serverMsg) {
	h.mu.Lock()
	ch, ok := h.pending[msg.ID]
	delete(h.pending, msg.ID)
	h.mu.Unlock()
	if !ok {
		return
	}

	if !msg.Success {
		err := fmt.Errorf("hub error")
		if msg.Error != nil {
			err = fmt.Errorf("hub error %s: %s", msg.Error.Code, msg.Error.Message)
			if msg.Error.Code == "not_found" {
				err = fmt.Errorf("%w: %s", ErrNotFound, msg.Error.Message)
			}
		}
		ch <- rpcResponse{err: err}
		return
	}
	ch <- rpcResponse{result: msg.Result}
}

func (h *Hub) handleEvent(msg serverMsg) {
	if msg.Event == nil || msg.Event.EventType != "state_changed" {
		return
	}
	state := msg.Event.Data.NewState
	if state == nil {
		return
	}

	h.mu.Lock()
	watch := h.watch
	h.mu.Unlock()
	if watch != "" && state.EntityID != watch {
		return
	}

	select {
	case h.events <- *state:
	default:
		logger.Debug("dropping state event, consumer behind", "entity", state.EntityID)
	}
}

func (h *Hub) drop(id int64) {
	h.mu.Lock()
	delete(h.pending, id)
	h.mu.Unlock()
}

func (h *Hub) failPending(err error) {
	h.mu.Lock()
	pending := h.pending
	h.pending = map[int64]chan rpcResponse{}
	h.mu.Unlock()
	for _, ch := range pending {
		ch <- rpcResponse{err: err}
	}
}
