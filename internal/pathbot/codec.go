package pathbot

import (
	"encoding/json"
	"fmt"

	"github.com/vinser/pathbot/internal/nav"
)

// wireRoom is the flattened room shape used on the wire.
type wireRoom struct {
	Status            string   `json:"status"`
	Message           string   `json:"message"`
	Exits             []string `json:"exits"`
	Description       string   `json:"description"`
	MazeExitDirection string   `json:"mazeExitDirection"`
	MazeExitDistance  uint32   `json:"mazeExitDistance"`
	LocationPath      string   `json:"locationPath"`
}

type wireExit struct {
	Status      string `json:"status"`
	Description string `json:"description"`
}

type wireMessage struct {
	Message string `json:"message"`
}

type fields map[string]json.RawMessage

var roomFields = []string{"status", "exits", "mazeExitDirection", "mazeExitDistance", "locationPath"}

// Decode turns a response body into a Room, Exit or Message.
//
// The shapes carry no tag, so they are tried in a fixed order:
//  1. Room: status, exits, mazeExitDirection, mazeExitDistance and locationPath present.
//  2. Exit: status and description present, exits absent.
//  3. Message: message present.
//
// Once a shape matches, any field error is final and does not fall through.
func Decode(data []byte) (Payload, error) {
	var f fields
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, &DecodeError{Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}
	if f == nil {
		return nil, &DecodeError{Err: ErrNoShape}
	}
	var (
		p   Payload
		err error
	)
	switch {
	case f.hasAll(roomFields...):
		p, err = decodeRoom(f)
	case f.hasAll("status", "description") && !f.has("exits"):
		p, err = decodeExit(f)
	case f.has("message"):
		p, err = decodeMessage(f)
	default:
		err = &DecodeError{Err: ErrNoShape}
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (f fields) has(key string) bool {
	_, ok := f[key]
	return ok
}

func (f fields) hasAll(keys ...string) bool {
	for _, k := range keys {
		if !f.has(k) {
			return false
		}
	}
	return true
}

func (f fields) string(key string) (string, error) {
	raw, ok := f[key]
	if !ok {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", newInvalidFieldError(key, err)
	}
	return s, nil
}

func (f fields) status() (RoomStatus, error) {
	s, err := f.string("status")
	if err != nil {
		return 0, err
	}
	status, ok := parseRoomStatus(s)
	if !ok {
		return 0, NewUnknownEnumValueError("status", s)
	}
	return status, nil
}

func decodeRoom(f fields) (Room, error) {
	var room Room
	var err error

	if room.Status, err = f.status(); err != nil {
		return Room{}, err
	}
	if room.Message, err = f.string("message"); err != nil {
		return Room{}, err
	}
	if room.Description, err = f.string("description"); err != nil {
		return Room{}, err
	}
	if room.LocationPath, err = f.string("locationPath"); err != nil {
		return Room{}, err
	}
	if room.LocationPath == "" {
		return Room{}, newMissingFieldError("locationPath")
	}

	var exits []string
	if err := json.Unmarshal(f["exits"], &exits); err != nil {
		return Room{}, newInvalidFieldError("exits", err)
	}
	// Duplicates are kept as sent.
	for _, e := range exits {
		d, ok := nav.ParseDirection(e)
		if !ok {
			return Room{}, NewUnknownEnumValueError("exits", e)
		}
		room.Exits = append(room.Exits, d)
	}

	compass, err := f.string("mazeExitDirection")
	if err != nil {
		return Room{}, err
	}
	dir, ok := nav.ParseCompassDirection(compass)
	if !ok {
		return Room{}, NewUnknownEnumValueError("mazeExitDirection", compass)
	}
	room.MazeExitHint.Direction = dir

	if err := json.Unmarshal(f["mazeExitDistance"], &room.MazeExitHint.Distance); err != nil {
		return Room{}, newInvalidFieldError("mazeExitDistance", err)
	}
	return room, nil
}

func decodeExit(f fields) (Exit, error) {
	status, err := f.status()
	if err != nil {
		return Exit{}, err
	}
	if status != Finished {
		return Exit{}, newInvalidFieldError("status", fmt.Errorf("exit payload must be %q", statusFinished))
	}
	desc, err := f.string("description")
	if err != nil {
		return Exit{}, err
	}
	return Exit{Status: status, Description: desc}, nil
}

func decodeMessage(f fields) (Message, error) {
	msg, err := f.string("message")
	if err != nil {
		return Message{}, err
	}
	return Message{Message: msg}, nil
}

func toWireRoom(r Room) wireRoom {
	exits := make([]string, len(r.Exits))
	for i, e := range r.Exits {
		exits[i] = e.ShortName()
	}
	return wireRoom{
		Status:            r.Status.WireName(),
		Message:           r.Message,
		Exits:             exits,
		Description:       r.Description,
		MazeExitDirection: r.MazeExitHint.Direction.ShortName(),
		MazeExitDistance:  r.MazeExitHint.Distance,
		LocationPath:      r.LocationPath,
	}
}

// Encode produces the wire form of a payload, with the room's exit hint
// flattened back into mazeExitDirection and mazeExitDistance.
func Encode(p Payload) ([]byte, error) {
	switch p := p.(type) {
	case Room:
		return json.Marshal(toWireRoom(p))
	case Exit:
		return json.Marshal(wireExit{Status: p.Status.WireName(), Description: p.Description})
	case Message:
		return json.Marshal(wireMessage{Message: p.Message})
	}
	return nil, fmt.Errorf("pathbot: cannot encode %T", p)
}

func (r Room) MarshalJSON() ([]byte, error) {
	return json.Marshal(toWireRoom(r))
}

func (r *Room) UnmarshalJSON(data []byte) error {
	var f fields
	if err := json.Unmarshal(data, &f); err != nil {
		return &DecodeError{Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}
	for _, k := range roomFields {
		if !f.has(k) {
			return newMissingFieldError(k)
		}
	}
	room, err := decodeRoom(f)
	if err != nil {
		return err
	}
	*r = room
	return nil
}

// moveRequest is the body of a move call.
type moveRequest struct {
	Direction string `json:"direction"`
}
