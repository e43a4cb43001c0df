package assetcache

import "futurtask/internal/logging"

// MessageType names a control message sent to the worker by a client page
type MessageType string

const (
	MessageSkipWaiting MessageType = "SKIP_WAITING"
	MessageGetVersion  MessageType = "GET_VERSION"
)

// Message is a control message
type Message struct {
	Type MessageType `json:"type"`
}

// Reply answers a message that expects one
type Reply struct {
	Version string `json:"version"`
}

// Message handles a control message. Only GET_VERSION produces a reply;
// unknown types are ignored.
func (w *Worker) Message(msg Message) *Reply {
	switch msg.Type {
	case MessageSkipWaiting:
		w.mu.Lock()
		w.skipWaiting = true
		w.mu.Unlock()
		return nil
	case MessageGetVersion:
		return &Reply{Version: w.version}
	default:
		logging.Debugf("ignoring message %q", msg.Type)
		return nil
	}
}
