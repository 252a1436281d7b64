package relay

// Broadcaster fans an event out to a room's subscribers. The transport layer
// implements it; BroadcastExcept skips the connection identified by exceptID
// ("send to all except sender").
type Broadcaster interface {
	Broadcast(roomCode, event string, data any)
	BroadcastExcept(roomCode, exceptID, event string, data any)
}
