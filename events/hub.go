package events

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/nalaku/printshop-app/models"
	"github.com/nalaku/printshop-app/utils"
)

// Event types
const (
	EventOrderUpdate      = "order_update"
	EventOrderDelete      = "order_delete"
	EventPaymentUpdate    = "payment_update"
	EventProductionUpdate = "production_update"
	EventStaffNotif       = "staff_notification"
	EventDashboardRefresh = "dashboard_refresh"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub menampung semua client websocket (admin, kasir, produksi) dan
// menyiarkan perubahan supaya dashboard dan papan produksi ikut refresh.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient menambahkan connection ke set dengan role
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient melepaskan connection
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastOrderUpdate menyiarkan order yang dibuat/diubah
func BroadcastOrderUpdate(order models.Order) {
	broadcast(Message{
		Event: EventOrderUpdate,
		Data:  order,
	})
}

// BroadcastOrderDelete menyiarkan order yang dihapus
func BroadcastOrderDelete(orderID uint) {
	broadcast(Message{
		Event: EventOrderDelete,
		Data:  map[string]uint{"order_id": orderID},
	})
}

// BroadcastPaymentUpdate menyiarkan pembayaran baru plus status order terbaru
func BroadcastPaymentUpdate(payment models.Payment, order models.Order) {
	broadcast(Message{
		Event: EventPaymentUpdate,
		Data: map[string]interface{}{
			"payment": payment,
			"order":   order,
		},
	})
}

// BroadcastProductionUpdate menyiarkan perubahan status produksi item
func BroadcastProductionUpdate(item models.OrderItem) {
	broadcast(Message{
		Event: EventProductionUpdate,
		Data:  item,
	})
}

// BroadcastStaffNotification menyiarkan notifikasi untuk staff
func BroadcastStaffNotification(notif models.Notification) {
	broadcast(Message{
		Event: EventStaffNotif,
		Data:  notif,
	})
}

// BroadcastDashboardRefresh menyuruh client memuat ulang statistik
func BroadcastDashboardRefresh() {
	broadcast(Message{
		Event: EventDashboardRefresh,
		Data:  nil,
	})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling message: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Error sending message to client: %v", err)
			continue
		}
	}
}
