package dbc

import (
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"

	"github.com/mobility-lab-vsb/can-library-generator/can"
)

// ExcelSheet is the sheet holding one row per signal.
const ExcelSheet = "DBC"

// sheet columns
const (
	CanId = iota
	CanName
	PeriodOfTx
	MsgLen
	StartByte
	StartBit
	BitWidth
	SignalName
	SignalSymbol
	TransmitterECU
	ByteOrderCol
	ValueTypeCol
	FactorCol
	OffsetCol
	MinCol
	MaxCol
	UnitCol
	ReceiversCol
	ExcelMaxColumn
)

// ExcelHeader is the header row ParseExcel expects. Only the column
// position matters.
var ExcelHeader = []string{
	"CAN ID", "CAN Name", "Period", "Msg Length", "Start Byte", "Start Bit", "Bit Width",
	"Signal Name", "Signal Symbol", "Transmitter", "Byte Order", "Value Type",
	"Factor", "Offset", "Min", "Max", "Unit", "Receivers",
}

// ParseExcel reads a signal sheet. StartBit is the DBC start bit of the
// signal; StartByte, PeriodOfTx and SignalSymbol are informational.
func ParseExcel(filename string) (*Catalog, []Diagnostic, error) {
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open excel %s", filename)
	}
	defer f.Close()

	return parseWorkbook(f)
}

func ParseExcelReader(r io.Reader) (*Catalog, []Diagnostic, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open excel")
	}
	defer f.Close()

	return parseWorkbook(f)
}

func parseWorkbook(f *excelize.File) (*Catalog, []Diagnostic, error) {
	// all cells of the DBC sheet
	rows, err := f.GetRows(ExcelSheet)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "read sheet %s", ExcelSheet)
	}

	catalog := NewCatalog()
	var diags []Diagnostic
	byID := make(map[uint32]*Message)

	for idx, row := range rows {
		if idx <= 0 || isEmptyRow(row) {
			continue
		}
		lineNo := idx + 1
		bad := func(reason string) {
			d := Diagnostic{Line: lineNo, Text: strings.Join(row, "\t"), Reason: reason}
			log.Debugln("skip", d)
			diags = append(diags, d)
		}

		if len(row) <= ByteOrderCol {
			bad("row has " + strconv.Itoa(len(row)) + " columns, want at least " + strconv.Itoa(ByteOrderCol+1))
			continue
		}

		rawID, err := strconv.ParseUint(strings.TrimSpace(row[CanId]), 0, 32)
		if err != nil {
			bad("invalid CAN id " + strconv.Quote(row[CanId]))
			continue
		}
		id, extended := SplitID(uint32(rawID))

		msg, ok := byID[id]
		if !ok {
			length, err := strconv.Atoi(strings.TrimSpace(row[MsgLen]))
			if err != nil || length < 0 {
				bad("invalid message length " + strconv.Quote(row[MsgLen]))
				continue
			}
			msg = &Message{
				ID:       id,
				Extended: extended,
				Name:     strings.TrimSpace(row[CanName]),
				Length:   length,
				FD:       length > can.MaxClassicLength,
				Sender:   strings.TrimSpace(row[TransmitterECU]),
				Line:     lineNo,
			}
			byID[id] = msg
			catalog.Add(msg)
		}

		sig, err := excelSignal(row)
		if err != nil {
			bad(err.Error())
			continue
		}
		sig.Line = lineNo
		msg.Signals = append(msg.Signals, sig)
	}

	log.Infof("excel parsed: %d messages, %d signals, %d skipped rows",
		len(catalog.Messages), catalog.SignalCount(), len(diags))
	return catalog, diags, nil
}

func excelSignal(row []string) (Signal, error) {
	var sig Signal
	var err error

	sig.Name = strings.TrimSpace(row[SignalName])
	if !isIdent(sig.Name) {
		return sig, errors.Newf("invalid signal name %q", sig.Name)
	}
	if sig.StartBit, err = strconv.Atoi(strings.TrimSpace(row[StartBit])); err != nil {
		return sig, errors.Newf("invalid start bit %q", row[StartBit])
	}
	if sig.Length, err = strconv.Atoi(strings.TrimSpace(row[BitWidth])); err != nil {
		return sig, errors.Newf("invalid bit width %q", row[BitWidth])
	}
	if sig.ByteOrder, err = can.ParseByteOrder(row[ByteOrderCol]); err != nil {
		return sig, err
	}
	if sig.Kind, err = can.ParseValueKind(cell(row, ValueTypeCol)); err != nil {
		return sig, err
	}
	if sig.Factor, err = excelNumber(cell(row, FactorCol), 1); err != nil {
		return sig, err
	}
	if sig.Offset, err = excelNumber(cell(row, OffsetCol), 0); err != nil {
		return sig, err
	}
	if sig.Min, err = excelNumber(cell(row, MinCol), 0); err != nil {
		return sig, err
	}
	if sig.Max, err = excelNumber(cell(row, MaxCol), 0); err != nil {
		return sig, err
	}
	sig.Unit = strings.TrimSpace(cell(row, UnitCol))
	for _, r := range strings.Split(cell(row, ReceiversCol), ",") {
		if r = strings.TrimSpace(r); r != "" {
			sig.Receivers = append(sig.Receivers, r)
		}
	}
	return sig, nil
}

// excelNumber parses a numeric cell, def when empty.
func excelNumber(s string, def float64) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Newf("invalid number %q", s)
	}
	return v, nil
}

// cell returns row[i]; excelize drops trailing empty cells.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
