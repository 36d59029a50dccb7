package codec

// Kind - тег сообщения обнаружения
type Kind string

const (
	KindSearching Kind = "Searching"
	KindRoomHost  Kind = "RoomHost"
	// JoinRoom и LeaveRoom зарезервированы и сейчас не отправляются
	KindJoinRoom  Kind = "JoinRoom"
	KindLeaveRoom Kind = "LeaveRoom"
	// KindUnknown - текст, в котором не нашлось ни одного тега (только legacy-декодер)
	KindUnknown Kind = ""
)

var knownKinds = []Kind{KindSearching, KindRoomHost, KindJoinRoom, KindLeaveRoom}

// Message - сообщение обнаружения: тег и имя отправителя
type Message struct {
	Kind Kind
	Name string
}

func Searching(name string) Message { return Message{Kind: KindSearching, Name: name} }
func RoomHost(name string) Message  { return Message{Kind: KindRoomHost, Name: name} }
func JoinRoom(name string) Message  { return Message{Kind: KindJoinRoom, Name: name} }
func LeaveRoom(name string) Message { return Message{Kind: KindLeaveRoom, Name: name} }

func (k Kind) String() string {
	if k == KindUnknown {
		return "Unknown"
	}
	return string(k)
}

func (k Kind) known() bool {
	for _, known := range knownKinds {
		if k == known {
			return true
		}
	}
	return false
}
