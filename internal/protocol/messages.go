// ABOUTME: Control protocol message type definitions
// ABOUTME: JSON commands and replies for the Padbank control surface
package protocol

// Command types accepted by the control surface.
const (
	CmdTrigger = "trigger"
	CmdLoad    = "load"
	CmdStatus  = "status"
	CmdList    = "list"
	CmdRescan  = "rescan"
)

// Reply types sent by the server.
const (
	ReplyAck    = "ack"
	ReplyError  = "error"
	ReplyStatus = "status"
	ReplyList   = "list"
)

// Command is a client request. Voice addresses a slot; Load takes
// either a catalog Index within the slot's folder or an explicit asset
// Ref.
type Command struct {
	Type  string `json:"type"`
	Voice int    `json:"voice"`
	Index *int   `json:"index,omitempty"`
	Ref   string `json:"ref,omitempty"`
}

// Reply is the server's answer to one command.
type Reply struct {
	Type    string              `json:"type"`
	Request string              `json:"request,omitempty"`
	Error   string              `json:"error,omitempty"`
	Voices  []VoiceStatus       `json:"voices,omitempty"`
	Samples map[string][]string `json:"samples,omitempty"`
}

// VoiceStatus reports one voice slot over the wire.
type VoiceStatus struct {
	Voice     int    `json:"voice"`
	State     string `json:"state"`
	Asset     string `json:"asset,omitempty"`
	Cursor    uint32 `json:"cursor"`
	Total     uint32 `json:"total"`
	Buffered  int    `json:"buffered"`
	Underruns uint64 `json:"underruns"`
}
