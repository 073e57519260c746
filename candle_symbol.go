// Copyright (c) 2024-2026 Neomantra Corp
//
// Adapted from dxFeed's candle symbol grammar:
//   _examples/original_source/include/dxfeed_graal_cpp_api/symbol/CandleSymbol.hpp
//   _examples/original_source/include/dxfeed_graal_cpp_api/event/candle/{CandlePeriod,CandlePrice,
//     CandleAlignment,CandleSession,CandleExchange,CandlePriceLevel}.hpp
//

package mdfeed

import (
	"sort"
	"strconv"
	"strings"
)

// CandleSymbol is the parsed form of a candle event symbol (spec §6's
// grammar): a base symbol, an optional exchange character, and a set
// of normalized attributes.
type CandleSymbol struct {
	BaseSymbol string
	Exchange   byte // 0 means unset

	PeriodValue int    // ParseCandleSymbol sets 1 when the period has no number
	PeriodType  CandleType

	Price     CandlePrice
	Session   CandleSession
	Alignment CandleAlignment

	PriceLevel      float64 // "pl" attribute; hasPriceLevel records whether it is set
	hasPriceLevel   bool
}

const (
	defaultPeriodValue = 1
	defaultPeriodType  = CandleType_Tick
)

// ParseCandleSymbol parses a candle-symbol string per spec §6's grammar:
//
//	candle-symbol := base-symbol [ '&' exchange-char ] [ '{' attr { ',' attr } '}' ]
func ParseCandleSymbol(s string) (CandleSymbol, error) {
	cs := CandleSymbol{
		PeriodValue: defaultPeriodValue,
		PeriodType:  defaultPeriodType,
	}

	body := s
	var attrPart string
	if i := strings.IndexByte(body, '{'); i >= 0 {
		if !strings.HasSuffix(body, "}") {
			return CandleSymbol{}, invalidArgumentError("%w: unterminated attribute list in %q", ErrInvalidCandleSymbol, s)
		}
		attrPart = body[i+1 : len(body)-1]
		body = body[:i]
	}

	if i := strings.IndexByte(body, '&'); i >= 0 {
		exch := body[i+1:]
		if len(exch) != 1 || !isASCII7Bit(rune(exch[0])) {
			return CandleSymbol{}, invalidArgumentError("%w: bad exchange code in %q", ErrInvalidCandleSymbol, s)
		}
		cs.Exchange = exch[0]
		body = body[:i]
	}

	if body == "" {
		return CandleSymbol{}, invalidArgumentError("%w: empty base symbol in %q", ErrInvalidCandleSymbol, s)
	}
	cs.BaseSymbol = body

	if attrPart != "" {
		for _, attr := range strings.Split(attrPart, ",") {
			if err := cs.applyAttr(attr); err != nil {
				return CandleSymbol{}, err
			}
		}
	}
	return cs, nil
}

func (cs *CandleSymbol) applyAttr(attr string) error {
	key, value, ok := strings.Cut(attr, "=")
	if !ok {
		return invalidArgumentError("%w: malformed attribute %q", ErrInvalidCandleSymbol, attr)
	}
	switch key {
	case "":
		period, periodType, err := parsePeriod(value)
		if err != nil {
			return err
		}
		cs.PeriodValue, cs.PeriodType = period, periodType
	case "price":
		p, ok := matchCandlePricePrefix(value)
		if !ok {
			return invalidArgumentError("%w: bad price attribute %q", ErrInvalidCandleSymbol, value)
		}
		cs.Price = p
	case "tho":
		switch strings.ToLower(value) {
		case "true":
			cs.Session = CandleSession_RegularOnly
		case "false":
			cs.Session = CandleSession_Any
		default:
			return invalidArgumentError("%w: bad tho attribute %q", ErrInvalidCandleSymbol, value)
		}
	case "a":
		a, ok := matchCandleAlignmentPrefix(value)
		if !ok {
			return invalidArgumentError("%w: bad alignment attribute %q", ErrInvalidCandleSymbol, value)
		}
		cs.Alignment = a
	case "pl":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return invalidArgumentError("%w: bad price-level attribute %q", ErrInvalidCandleSymbol, value)
		}
		cs.PriceLevel = f
		cs.hasPriceLevel = true
	default:
		return invalidArgumentError("%w: unknown attribute key %q", ErrInvalidCandleSymbol, key)
	}
	return nil
}

func parsePeriod(value string) (int, CandleType, error) {
	i := 0
	for i < len(value) && (value[i] >= '0' && value[i] <= '9' || value[i] == '.') {
		i++
	}
	numPart, unitPart := value[:i], value[i:]

	period := defaultPeriodValue
	if numPart != "" {
		n, err := strconv.Atoi(numPart)
		if err != nil || n <= 0 {
			return 0, 0, invalidArgumentError("%w: bad period value %q", ErrInvalidCandleSymbol, value)
		}
		period = n
	}
	if unitPart == "" {
		return period, defaultPeriodType, nil
	}
	pt, ok := stringToCandleType[unitPart]
	if !ok {
		return 0, 0, invalidArgumentError("%w: bad period unit %q", ErrInvalidCandleSymbol, unitPart)
	}
	return period, pt, nil
}

// matchCandlePricePrefix resolves value against the shortest-unique-prefix
// abbreviation rule for the "price" attribute (spec §6's Normalization rules).
func matchCandlePricePrefix(value string) (CandlePrice, bool) {
	lv := strings.ToLower(value)
	var match CandlePrice
	found := 0
	for p, name := range candlePriceToString {
		if strings.HasPrefix(name, lv) {
			match = p
			found++
		}
		if name == lv {
			return p, true
		}
	}
	return match, found == 1
}

func matchCandleAlignmentPrefix(value string) (CandleAlignment, bool) {
	lv := strings.ToLower(value)
	switch {
	case strings.HasPrefix("midnight", lv) && lv != "":
		return CandleAlignment_Midnight, true
	case strings.HasPrefix("session", lv) && lv != "":
		return CandleAlignment_Session, true
	default:
		return 0, false
	}
}

// String normalizes the symbol per spec §6: attributes are emitted in
// lexicographic key order and default values are omitted. "a" is
// written as its single-letter String() form; "price" is written as its
// full value name (e.g. "bid").
func (cs CandleSymbol) String() string {
	var sb strings.Builder
	sb.WriteString(cs.BaseSymbol)
	if cs.Exchange != 0 {
		sb.WriteByte('&')
		sb.WriteByte(cs.Exchange)
	}

	type kv struct{ key, value string }
	var attrs []kv

	if cs.PeriodValue != defaultPeriodValue || cs.PeriodType != defaultPeriodType {
		v := cs.PeriodType.String()
		if cs.PeriodValue != 1 {
			v = strconv.Itoa(cs.PeriodValue) + v
		}
		attrs = append(attrs, kv{"", v})
	}
	if cs.Alignment != CandleAlignment_Midnight {
		attrs = append(attrs, kv{"a", cs.Alignment.String()})
	}
	if cs.hasPriceLevel {
		attrs = append(attrs, kv{"pl", strconv.FormatFloat(cs.PriceLevel, 'g', -1, 64)})
	}
	if cs.Price != CandlePrice_Last {
		attrs = append(attrs, kv{"price", cs.Price.String()})
	}
	if cs.Session != CandleSession_Any {
		attrs = append(attrs, kv{"tho", cs.Session.String()})
	}

	sort.Slice(attrs, func(i, j int) bool { return attrs[i].key < attrs[j].key })

	if len(attrs) > 0 {
		sb.WriteByte('{')
		for i, a := range attrs {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(a.key)
			sb.WriteByte('=')
			sb.WriteString(a.value)
		}
		sb.WriteByte('}')
	}
	return sb.String()
}

// NormalizeCandleSymbol parses then re-renders s in canonical form.
func NormalizeCandleSymbol(s string) (string, error) {
	cs, err := ParseCandleSymbol(s)
	if err != nil {
		return "", err
	}
	return cs.String(), nil
}
