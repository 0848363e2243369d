package arena

import (
	"encoding/json"
	"fmt"
	"math"

	"voxelsurvivor/internal/catalog"
	"voxelsurvivor/internal/survivor"
	"voxelsurvivor/internal/terrain"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// Client message types.
const (
	MsgInput  = "input"  // held movement axes and attack
	MsgAttack = "attack" // one swing on the next tick
	MsgSkill  = "skill"
	MsgStart  = "start"
	MsgPause  = "pause"
	MsgResume = "resume"
	MsgQuit   = "quit"
	MsgLobby  = "lobby"
	MsgChoose = "choose"
	MsgBuy    = "buy"
	MsgReload = "reload"
	MsgState  = "state"
)

// Server message types.
const (
	MsgWelcome = "welcome"
	MsgFrame   = "frame"
	MsgResult  = "result"
)

type ClientMessage struct {
	Type    string            `json:"type" msgpack:"type"`
	X       float64           `json:"x,omitempty" msgpack:"x,omitempty"`
	Z       float64           `json:"z,omitempty" msgpack:"z,omitempty"`
	Attack  bool              `json:"attack,omitempty" msgpack:"attack,omitempty"`
	Skill   catalog.SkillID   `json:"skill,omitempty" msgpack:"skill,omitempty"`
	Choice  string            `json:"choice,omitempty" msgpack:"choice,omitempty"`
	Upgrade catalog.UpgradeID `json:"upgrade,omitempty" msgpack:"upgrade,omitempty"`
}

type MapInfo struct {
	Size      float64            `json:"size" msgpack:"size"`
	Obstacles []terrain.Obstacle `json:"obstacles" msgpack:"obstacles"`
}

type ServerMessage struct {
	Type      string             `json:"type" msgpack:"type"`
	SessionID string             `json:"sessionId,omitempty" msgpack:"sessionId,omitempty"`
	AccountID string             `json:"accountId,omitempty" msgpack:"accountId,omitempty"`
	TickRate  int                `json:"tickRate,omitempty" msgpack:"tickRate,omitempty"`
	Map       *MapInfo           `json:"map,omitempty" msgpack:"map,omitempty"`
	Command   string             `json:"command,omitempty" msgpack:"command,omitempty"`
	OK        bool               `json:"ok" msgpack:"ok"`
	Cues      []string           `json:"cues,omitempty" msgpack:"cues,omitempty"`
	Snapshot  *survivor.Snapshot `json:"snapshot,omitempty" msgpack:"snapshot,omitempty"`
}

// outbound is one encoded websocket message.
type outbound struct {
	kind int
	data []byte
}

// encode picks the frame type from the codec: JSON goes out as text,
// msgpack as binary.
func encode(codec string, v any) (outbound, error) {
	if codec == "msgpack" {
		data, err := msgpack.Marshal(v)
		if err != nil {
			return outbound{}, err
		}
		return outbound{kind: websocket.BinaryMessage, data: data}, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return outbound{}, err
	}
	return outbound{kind: websocket.TextMessage, data: data}, nil
}

// decode accepts either codec regardless of the session's own, keyed on
// the websocket frame type.
func decode(kind int, data []byte, msg *ClientMessage) error {
	switch kind {
	case websocket.TextMessage:
		return json.Unmarshal(data, msg)
	case websocket.BinaryMessage:
		return msgpack.Unmarshal(data, msg)
	}
	return fmt.Errorf("unexpected frame type %d", kind)
}

// axis keeps a movement component finite and within [-1, 1].
func axis(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}
