package crdt

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Kind discriminates which concrete CRDT a decoded envelope holds —
// the "closed tagged variant at the storage boundary" the design
// notes call for: the set of CRDTs this library ships is fixed, and
// the wire format needs a discriminator regardless.
type Kind string

const (
	KindPNCounter   Kind = "pn_counter"
	KindLWWRegister Kind = "lww_register"
	KindAWSet       Kind = "aw_set"
)

const wireVersion uint8 = 1

// envelope is the canonical wrapper every encoded state carries: a
// wire format version and a kind discriminator around the opaque
// payload.
type envelope struct {
	Version uint8           `json:"v"`
	Kind    Kind            `json:"k"`
	Data    json.RawMessage `json:"d"`
}

// Encode produces the canonical byte representation of any State
// this package defines. Two observably equal states always encode to
// identical bytes: map keys are emitted in sorted order by
// encoding/json itself, and dot sets are sorted explicitly by each
// type's MarshalJSON before reaching the encoder.
func Encode(s State) ([]byte, error) {
	switch v := s.(type) {
	case *PNCounterState:
		return EncodePNCounter(v)
	case *LWWRegisterState:
		return EncodeLWWRegister(v)
	case *AWSetState:
		return EncodeAWSet(v)
	default:
		return nil, errors.Wrapf(ErrMalformedState, "unknown state type %T", s)
	}
}

// Decode inspects the wire discriminator and returns the matching
// concrete State. Forward-incompatible versions are rejected with
// ErrIncompatibleVersion before the payload is even looked at.
func Decode(data []byte) (State, error) {
	env, err := decodeEnvelope(data, "")
	if err != nil {
		return nil, err
	}
	switch env.Kind {
	case KindPNCounter:
		c := NewPNCounter()
		if err := json.Unmarshal(env.Data, c); err != nil {
			return nil, errors.Wrap(ErrMalformedState, err.Error())
		}
		return c, nil
	case KindLWWRegister:
		r := NewLWWRegister()
		if err := json.Unmarshal(env.Data, r); err != nil {
			return nil, errors.Wrap(ErrMalformedState, err.Error())
		}
		return r, nil
	case KindAWSet:
		s := NewAWSet()
		if err := json.Unmarshal(env.Data, s); err != nil {
			return nil, errors.Wrap(ErrMalformedState, err.Error())
		}
		return s, nil
	default:
		return nil, errors.Wrapf(ErrMalformedState, "unknown discriminator %q", env.Kind)
	}
}

func decodeEnvelope(data []byte, want Kind) (envelope, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return envelope{}, errors.Wrap(ErrMalformedState, err.Error())
	}
	if env.Version != wireVersion {
		return envelope{}, errors.Wrapf(ErrIncompatibleVersion, "unsupported wire version %d", env.Version)
	}
	if want != "" && env.Kind != want {
		return envelope{}, errors.Wrapf(ErrMalformedState, "expected discriminator %q, got %q", want, env.Kind)
	}
	return env, nil
}

func encodeEnvelope(kind Kind, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "crdt: encode payload")
	}
	return json.Marshal(envelope{Version: wireVersion, Kind: kind, Data: data})
}

// EncodePNCounter / DecodePNCounter are typed codec entry points for
// callers that already know what kind of state they're handling and
// don't want to go through the Decode type switch.
func EncodePNCounter(c *PNCounterState) ([]byte, error) {
	return encodeEnvelope(KindPNCounter, c)
}

func DecodePNCounter(data []byte) (*PNCounterState, error) {
	env, err := decodeEnvelope(data, KindPNCounter)
	if err != nil {
		return nil, err
	}
	c := NewPNCounter()
	if err := json.Unmarshal(env.Data, c); err != nil {
		return nil, errors.Wrap(ErrMalformedState, err.Error())
	}
	return c, nil
}

func EncodeLWWRegister(r *LWWRegisterState) ([]byte, error) {
	return encodeEnvelope(KindLWWRegister, r)
}

func DecodeLWWRegister(data []byte) (*LWWRegisterState, error) {
	env, err := decodeEnvelope(data, KindLWWRegister)
	if err != nil {
		return nil, err
	}
	r := NewLWWRegister()
	if err := json.Unmarshal(env.Data, r); err != nil {
		return nil, errors.Wrap(ErrMalformedState, err.Error())
	}
	return r, nil
}

func EncodeAWSet(s *AWSetState) ([]byte, error) {
	return encodeEnvelope(KindAWSet, s)
}

func DecodeAWSet(data []byte) (*AWSetState, error) {
	env, err := decodeEnvelope(data, KindAWSet)
	if err != nil {
		return nil, err
	}
	s := NewAWSet()
	if err := json.Unmarshal(env.Data, s); err != nil {
		return nil, errors.Wrap(ErrMalformedState, err.Error())
	}
	return s, nil
}

// pnCounterWire, lwwRegisterWire and awSetWire are the exported-field
// mirrors of the unexported state structs: encoding/json can't see
// unexported fields, so each state type marshals through one of these
// instead of relying on struct tags directly on itself.

type pnCounterWire struct {
	P map[NodeID]uint64 `json:"p"`
	N map[NodeID]uint64 `json:"n"`
}

func (c *PNCounterState) MarshalJSON() ([]byte, error) {
	return json.Marshal(pnCounterWire{P: map[NodeID]uint64(c.p), N: map[NodeID]uint64(c.n)})
}

func (c *PNCounterState) UnmarshalJSON(data []byte) error {
	var w pnCounterWire
	if err := json.Unmarshal(data, &w); err != nil {
		return errors.Wrap(ErrMalformedState, err.Error())
	}
	if w.P == nil {
		w.P = map[NodeID]uint64{}
	}
	if w.N == nil {
		w.N = map[NodeID]uint64{}
	}
	c.p = counterMap(w.P)
	c.n = counterMap(w.N)
	return nil
}

type lwwRegisterWire struct {
	Value     []byte       `json:"value,omitempty"`
	Timestamp LogicalClock `json:"ts"`
	Writer    NodeID       `json:"writer,omitempty"`
	Set       bool         `json:"set"`
}

func (r *LWWRegisterState) MarshalJSON() ([]byte, error) {
	return json.Marshal(lwwRegisterWire{Value: r.value, Timestamp: r.timestamp, Writer: r.writer, Set: r.set})
}

func (r *LWWRegisterState) UnmarshalJSON(data []byte) error {
	var w lwwRegisterWire
	if err := json.Unmarshal(data, &w); err != nil {
		return errors.Wrap(ErrMalformedState, err.Error())
	}
	if w.Set && w.Writer == "" {
		return errors.Wrap(ErrMalformedState, "lww register marked set with empty writer")
	}
	r.value = w.Value
	r.timestamp = w.Timestamp
	r.writer = w.Writer
	r.set = w.Set
	return nil
}

type awSetWire struct {
	Add    map[string][]Dot `json:"add"`
	Remove map[string][]Dot `json:"remove"`
}

func (s *AWSetState) MarshalJSON() ([]byte, error) {
	wire := awSetWire{Add: map[string][]Dot{}, Remove: map[string][]Dot{}}
	for e, dots := range s.add {
		wire.Add[e] = dots.sorted()
	}
	for e, dots := range s.remove {
		wire.Remove[e] = dots.sorted()
	}
	return json.Marshal(wire)
}

func (s *AWSetState) UnmarshalJSON(data []byte) error {
	var w awSetWire
	if err := json.Unmarshal(data, &w); err != nil {
		return errors.Wrap(ErrMalformedState, err.Error())
	}
	add := make(map[string]dotSet, len(w.Add))
	for e, dots := range w.Add {
		set, err := toDotSet(e, dots)
		if err != nil {
			return err
		}
		add[e] = set
	}
	remove := make(map[string]dotSet, len(w.Remove))
	for e, dots := range w.Remove {
		set, err := toDotSet(e, dots)
		if err != nil {
			return err
		}
		remove[e] = set
	}
	s.add = add
	s.remove = remove
	return nil
}

func toDotSet(element string, dots []Dot) (dotSet, error) {
	set := make(dotSet, len(dots))
	for _, d := range dots {
		if d.Node == "" {
			return nil, errors.Wrapf(ErrMalformedState, "malformed dot for element %q: empty node", element)
		}
		set[d] = struct{}{}
	}
	return set, nil
}
