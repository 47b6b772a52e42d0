package types

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	collcodec "cosmossdk.io/collections/codec"
)

// Collections value codecs for the module's record types. The records are
// small fixed shapes, so they are encoded by hand: big-endian uint64s for
// timestamps and the sdkmath.Int wire form for amounts.
var (
	ScheduleValue       collcodec.ValueCodec[Schedule]       = scheduleValueCodec{}
	AccumulatorValue    collcodec.ValueCodec[Accumulator]    = accumulatorValueCodec{}
	UserCheckpointValue collcodec.ValueCodec[UserCheckpoint] = userCheckpointValueCodec{}
)

type scheduleValueCodec struct{}

func (scheduleValueCodec) Encode(value Schedule) ([]byte, error) {
	rate, err := value.Rate.Marshal()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 16, 16+len(rate))
	binary.BigEndian.PutUint64(buf[:8], value.StartTime)
	binary.BigEndian.PutUint64(buf[8:16], value.EndTime)
	return append(buf, rate...), nil
}

func (scheduleValueCodec) Decode(b []byte) (Schedule, error) {
	if len(b) < 16 {
		return Schedule{}, fmt.Errorf("invalid schedule encoding: %d bytes", len(b))
	}
	s := Schedule{
		StartTime: binary.BigEndian.Uint64(b[:8]),
		EndTime:   binary.BigEndian.Uint64(b[8:16]),
	}
	if err := s.Rate.Unmarshal(b[16:]); err != nil {
		return Schedule{}, err
	}
	return s, nil
}

func (scheduleValueCodec) EncodeJSON(value Schedule) ([]byte, error) {
	return json.Marshal(value)
}

func (scheduleValueCodec) DecodeJSON(b []byte) (Schedule, error) {
	var s Schedule
	err := json.Unmarshal(b, &s)
	return s, err
}

func (scheduleValueCodec) Stringify(value Schedule) string { return value.String() }

func (scheduleValueCodec) ValueType() string { return ModuleName + ".Schedule" }

type accumulatorValueCodec struct{}

func (accumulatorValueCodec) Encode(value Accumulator) ([]byte, error) {
	accumulated, err := value.AccumulatedPerUnit.Marshal()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 8, 8+len(accumulated))
	binary.BigEndian.PutUint64(buf[:8], value.LastUpdated)
	return append(buf, accumulated...), nil
}

func (accumulatorValueCodec) Decode(b []byte) (Accumulator, error) {
	if len(b) < 8 {
		return Accumulator{}, fmt.Errorf("invalid accumulator encoding: %d bytes", len(b))
	}
	a := Accumulator{
		LastUpdated: binary.BigEndian.Uint64(b[:8]),
	}
	if err := a.AccumulatedPerUnit.Unmarshal(b[8:]); err != nil {
		return Accumulator{}, err
	}
	return a, nil
}

func (accumulatorValueCodec) EncodeJSON(value Accumulator) ([]byte, error) {
	return json.Marshal(value)
}

func (accumulatorValueCodec) DecodeJSON(b []byte) (Accumulator, error) {
	var a Accumulator
	err := json.Unmarshal(b, &a)
	return a, err
}

func (accumulatorValueCodec) Stringify(value Accumulator) string { return value.String() }

func (accumulatorValueCodec) ValueType() string { return ModuleName + ".Accumulator" }

type userCheckpointValueCodec struct{}

func (userCheckpointValueCodec) Encode(value UserCheckpoint) ([]byte, error) {
	owed, err := value.Owed.Marshal()
	if err != nil {
		return nil, err
	}
	checkpoint, err := value.Checkpoint.Marshal()
	if err != nil {
		return nil, err
	}
	buf := binary.AppendUvarint(nil, uint64(len(owed)))
	buf = append(buf, owed...)
	return append(buf, checkpoint...), nil
}

func (userCheckpointValueCodec) Decode(b []byte) (UserCheckpoint, error) {
	owedLen, n := binary.Uvarint(b)
	if n <= 0 || uint64(len(b)-n) < owedLen {
		return UserCheckpoint{}, fmt.Errorf("invalid user checkpoint encoding: %d bytes", len(b))
	}
	var c UserCheckpoint
	if err := c.Owed.Unmarshal(b[n : n+int(owedLen)]); err != nil {
		return UserCheckpoint{}, err
	}
	if err := c.Checkpoint.Unmarshal(b[n+int(owedLen):]); err != nil {
		return UserCheckpoint{}, err
	}
	return c, nil
}

func (userCheckpointValueCodec) EncodeJSON(value UserCheckpoint) ([]byte, error) {
	return json.Marshal(value)
}

func (userCheckpointValueCodec) DecodeJSON(b []byte) (UserCheckpoint, error) {
	var c UserCheckpoint
	err := json.Unmarshal(b, &c)
	return c, err
}

func (userCheckpointValueCodec) Stringify(value UserCheckpoint) string { return value.String() }

func (userCheckpointValueCodec) ValueType() string { return ModuleName + ".UserCheckpoint" }
