package main

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/mobility-lab-vsb/can-library-generator/can"
	"github.com/mobility-lab-vsb/can-library-generator/registry"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

/*
{
	"ts": 1692179443894,
	"raw": {
		"msgMotor_01": "1692179443894 121 8 0C B5 01 6E C4 D0 B6 01"
	},
	"msgMotor_01": {
		"id": 289,
		"ext": false,
		"fd": false,
		"sigMO_CRC": 12,
		"sigMO_CTR": 5
	}
}
*/

type CanData struct {
	CanId    uint32 `json:"id"`
	Extended bool   `json:"ext"`
	FD       bool   `json:"fd"`
	Signals  map[string]float64
}

type JsonData struct {
	TimeStamp int64             `json:"ts"`
	Raw       map[string]string `json:"raw"`
	Attr      map[string]*CanData
}

func NewJsonData(ts int64) *JsonData {
	return &JsonData{
		TimeStamp: ts,
		Raw:       make(map[string]string),
		Attr:      make(map[string]*CanData),
	}
}

// Add records the frame and the values m decoded from it.
func (j *JsonData) Add(f can.Frame, m *registry.Message) {
	j.Raw[m.Name] = rawLine(j.TimeStamp, f)
	j.Attr[m.Name] = &CanData{
		CanId:    f.ID,
		Extended: f.Extended,
		FD:       f.FD,
		Signals:  m.Values(),
	}
}

func (j *JsonData) Len() int {
	return len(j.Attr)
}

// MarshalJSON flattens the signals of each message next to its frame
// attributes.
func (j *JsonData) MarshalJSON() ([]byte, error) {
	datas := make(map[string]any, len(j.Attr)+2)
	datas["ts"] = j.TimeStamp
	datas["raw"] = j.Raw

	for k, v := range j.Attr {
		cans := make(map[string]any, len(v.Signals)+3)
		cans["id"] = v.CanId
		cans["ext"] = v.Extended
		cans["fd"] = v.FD
		for name, value := range v.Signals {
			cans[name] = value
		}
		datas[k] = cans
	}

	return json.Marshal(datas)
}

// "1692179443894 121 8 0C B5 01 6E C4 D0 B6 01"
func rawLine(ts int64, f can.Frame) string {
	id := fmt.Sprintf("%03X", f.ID)
	if f.Extended {
		id = fmt.Sprintf("%08X", f.ID)
	}
	if f.Length() == 0 {
		return fmt.Sprintf("%d %s 0", ts, id)
	}
	return fmt.Sprintf("%d %s %d %s", ts, id, f.Length(), f.HexDump())
}
