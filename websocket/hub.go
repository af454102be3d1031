package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"election-management-backend/models"
)

// Message 推送给订阅者的消息格式
type Message struct {
	Type       string      `json:"type"`
	ElectionID string      `json:"election_id"`
	Payload    interface{} `json:"payload"`
}

// ToJSON 将消息转换为JSON字节数组
func (m *Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// Client 代表一个WebSocket连接客户端
type Client struct {
	// 订阅的选举ID
	ElectionID string

	// WebSocket连接
	conn *websocket.Conn

	// 消息发送通道
	send chan []byte
}

// Hub 维护按选举ID分组的订阅者集合并向其广播计票更新
type Hub struct {
	// 已注册的WebSocket客户端，按选举ID分组
	clients map[string]map[*Client]bool

	// 注册请求
	register chan *Client

	// 注销请求
	unregister chan *Client

	// SSE等其他订阅者的监听通道，按选举ID分组
	listeners map[string]map[chan []byte]bool

	// 互斥锁保护clients和listeners
	mu sync.RWMutex
}

// NewHub 创建一个新的Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		listeners:  make(map[string]map[chan []byte]bool),
	}
}

// Run 启动Hub消息处理循环
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.clients[client.ElectionID]; !ok {
				h.clients[client.ElectionID] = make(map[*Client]bool)
			}
			h.clients[client.ElectionID][client] = true
			total := len(h.clients[client.ElectionID])
			h.mu.Unlock()
			log.Printf("Client registered for election %s, total clients: %d", client.ElectionID, total)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ElectionID]; ok {
				if _, ok := h.clients[client.ElectionID][client]; ok {
					delete(h.clients[client.ElectionID], client)
					close(client.send)
					if len(h.clients[client.ElectionID]) == 0 {
						delete(h.clients, client.ElectionID)
					}
				}
			}
			h.mu.Unlock()
			log.Printf("Client unregistered for election %s", client.ElectionID)
		}
	}
}

// BroadcastResults 向订阅特定选举的所有客户端广播最新统计结果。
// 实现service.ResultsBroadcaster，由投票账本在成功提交后调用。
func (h *Hub) BroadcastResults(electionID string, results *models.ElectionResults) {
	msg := &Message{
		Type:       "RESULTS_UPDATE",
		ElectionID: electionID,
		Payload:    results,
	}
	payload, err := msg.ToJSON()
	if err != nil {
		log.Printf("Error converting message to JSON: %v", err)
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients[electionID]))
	for client := range h.clients[electionID] {
		clients = append(clients, client)
	}
	listeners := make([]chan []byte, 0, len(h.listeners[electionID]))
	for ch := range h.listeners[electionID] {
		listeners = append(listeners, ch)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.send <- payload:
		default:
			// 发送缓冲区已满，断开该客户端
			h.mu.Lock()
			if _, ok := h.clients[electionID][client]; ok {
				delete(h.clients[electionID], client)
				close(client.send)
				if len(h.clients[electionID]) == 0 {
					delete(h.clients, electionID)
				}
			}
			h.mu.Unlock()
		}
	}

	for _, ch := range listeners {
		select {
		case ch <- payload:
		default:
			// 监听者处理不过来时丢弃本次更新，下一次广播会带上完整快照
		}
	}

	log.Printf("Broadcast results to %d clients for election %s", len(clients)+len(listeners), electionID)
}

// Listen 为SSE等订阅者注册一个监听通道
func (h *Hub) Listen(electionID string) chan []byte {
	ch := make(chan []byte, 16)
	h.mu.Lock()
	if _, ok := h.listeners[electionID]; !ok {
		h.listeners[electionID] = make(map[chan []byte]bool)
	}
	h.listeners[electionID][ch] = true
	h.mu.Unlock()
	return ch
}

// Unlisten 注销监听通道
func (h *Hub) Unlisten(electionID string, ch chan []byte) {
	h.mu.Lock()
	if _, ok := h.listeners[electionID]; ok {
		if _, ok := h.listeners[electionID][ch]; ok {
			delete(h.listeners[electionID], ch)
			close(ch)
			if len(h.listeners[electionID]) == 0 {
				delete(h.listeners, electionID)
			}
		}
	}
	h.mu.Unlock()
}

// RegisterClient 注册客户端到Hub
func (h *Hub) RegisterClient(client *Client) {
	h.register <- client
}

// UnregisterClient 从Hub中注销客户端
func (h *Hub) UnregisterClient(client *Client) {
	h.unregister <- client
}
