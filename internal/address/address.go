// Package address models the editor's variable address space.
//
// The integer space is partitioned into disjoint bands, each band being one Kind.
// Addresses are validated on construction: a value outside its kind's hard range is
// rejected, a value inside the hard range but outside the kind's safety range is
// accepted and reported to the diagnostics sink.
package address

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/wodi/internal/diag"
	"github.com/cory-johannsen/wodi/internal/werr"
)

// Kind identifies one band of the address space.
type Kind int

const (
	KindMapEventVariable Kind = iota + 1
	KindThisMapEventVariable
	KindThisCommonEventVariable
	KindNormalNumberVariable
	KindSpareNumberVariable
	KindStringVariable
	KindRandomNumber
	KindSystemVariable
	KindEventInfo
	KindHeroInfo
	KindPartyInfo
	KindThisEventInfo
	KindSystemString
	KindCommonEventVariable
	KindChangeableDB
	KindUserDB
	KindSystemDB
)

// Range is the hard and safety range of a Kind, all bounds inclusive.
type Range struct {
	Min, Max         int
	SafeMin, SafeMax int
}

// Contains reports whether v is inside the hard range.
func (r Range) Contains(v int) bool { return v >= r.Min && v <= r.Max }

// Safe reports whether v is inside the safety range.
func (r Range) Safe(v int) bool { return v >= r.SafeMin && v <= r.SafeMax }

type kindSpec struct {
	name string
	Range
}

var kindSpecs = map[Kind]kindSpec{
	KindMapEventVariable:        {"MapEventVariable", Range{1000000, 1099999, 1000000, 1099999}},
	KindThisMapEventVariable:    {"ThisMapEventVariable", Range{1100000, 1100009, 1100000, 1100009}},
	KindThisCommonEventVariable: {"ThisCommonEventVariable", Range{1600000, 1600099, 1600000, 1600099}},
	KindNormalNumberVariable:    {"NormalNumberVariable", Range{2000000, 2099999, 2000000, 2009999}},
	KindSpareNumberVariable:     {"SpareNumberVariable", Range{2100000, 2999999, 2100000, 2999999}},
	KindStringVariable:          {"StringVariable", Range{3000000, 3099999, 3000000, 3009999}},
	KindRandomNumber:            {"RandomNumber", Range{8000000, 8999999, 8000000, 8999999}},
	KindSystemVariable:          {"SystemVariable", Range{9000000, 9099999, 9000000, 9099999}},
	KindEventInfo:               {"EventInfo", Range{9100000, 9179999, 9100000, 9179999}},
	KindHeroInfo:                {"HeroInfo", Range{9180000, 9180009, 9180000, 9180009}},
	KindPartyInfo:               {"PartyInfo", Range{9180010, 9180059, 9180010, 9180059}},
	KindThisEventInfo:           {"ThisEventInfo", Range{9190000, 9190009, 9190000, 9190009}},
	KindSystemString:            {"SystemString", Range{9900000, 9999999, 9900000, 9900099}},
	KindCommonEventVariable:     {"CommonEventVariable", Range{15000000, 15999999, 15000000, 15999999}},
	KindChangeableDB:            {"ChangeableDB", Range{1000000000, 1099999999, 1000000000, 1099999999}},
	KindUserDB:                  {"UserDB", Range{1100000000, 1199999999, 1100000000, 1199999999}},
	KindSystemDB:                {"SystemDB", Range{1300000000, 1399999999, 1300000000, 1399999999}},
}

// priority is the order in which Classify tries each kind.
var priority = []Kind{
	KindThisMapEventVariable,
	KindThisCommonEventVariable,
	KindMapEventVariable,
	KindNormalNumberVariable,
	KindSpareNumberVariable,
	KindStringVariable,
	KindRandomNumber,
	KindSystemVariable,
	KindEventInfo,
	KindHeroInfo,
	KindPartyInfo,
	KindThisEventInfo,
	KindSystemString,
	KindCommonEventVariable,
	KindChangeableDB,
	KindUserDB,
	KindSystemDB,
}

func (k Kind) String() string {
	if s, ok := kindSpecs[k]; ok {
		return s.name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Range returns the hard and safety range of k.
func (k Kind) Range() Range {
	return kindSpecs[k].Range
}

// Kinds returns every kind in classification priority order.
func Kinds() []Kind {
	out := make([]Kind, len(priority))
	copy(out, priority)
	return out
}

// VariableAddress is the kind-erased view shared by every Address.
type VariableAddress interface {
	Kind() Kind
	Int() int
	String() string
}

// validate checks v against k and warns through sink when v is outside the safety range.
func validate(k Kind, v int, sink diag.Sink) error {
	s := kindSpecs[k]
	if !s.Contains(v) {
		return werr.Range(s.name, s.Min, s.Max, v)
	}
	if !s.Safe(v) {
		diag.Or(sink).Warn("variable address outside safety range",
			zap.String("kind", s.name),
			zap.Int("value", v),
			zap.Int("safety_min", s.SafeMin),
			zap.Int("safety_max", s.SafeMax),
		)
	}
	return nil
}

// Classify returns the address of the first kind, in priority order, whose hard
// range contains v.
//
// Postcondition: Returns a VariableAddress whose Int() == v, or a *werr.ClassificationError.
func Classify(v int, sink diag.Sink) (VariableAddress, error) {
	for _, k := range priority {
		if !kindSpecs[k].Contains(v) {
			continue
		}
		if err := validate(k, v, sink); err != nil {
			return nil, err
		}
		return build(k, v), nil
	}
	return nil, werr.Classification(v)
}

// KindOf returns the kind claiming v without constructing an address.
func KindOf(v int) (Kind, bool) {
	for _, k := range priority {
		if kindSpecs[k].Contains(v) {
			return k, true
		}
	}
	return 0, false
}

// Diff returns a.Int() - b.Int() regardless of kind.
func Diff(a, b VariableAddress) int {
	return a.Int() - b.Int()
}

// Equal compares two addresses by value regardless of kind.
func Equal(a, b VariableAddress) bool {
	return a.Int() == b.Int()
}

func build(k Kind, v int) VariableAddress {
	switch k {
	case KindMapEventVariable:
		return MapEventVariable{v: v}
	case KindThisMapEventVariable:
		return ThisMapEventVariable{v: v}
	case KindThisCommonEventVariable:
		return ThisCommonEventVariable{v: v}
	case KindNormalNumberVariable:
		return NormalNumberVariable{v: v}
	case KindSpareNumberVariable:
		return SpareNumberVariable{v: v}
	case KindStringVariable:
		return StringVariable{v: v}
	case KindRandomNumber:
		return RandomNumber{v: v}
	case KindSystemVariable:
		return SystemVariable{v: v}
	case KindEventInfo:
		return EventInfo{v: v}
	case KindHeroInfo:
		return HeroInfo{v: v}
	case KindPartyInfo:
		return PartyInfo{v: v}
	case KindThisEventInfo:
		return ThisEventInfo{v: v}
	case KindSystemString:
		return SystemString{v: v}
	case KindCommonEventVariable:
		return CommonEventVariable{v: v}
	case KindChangeableDB:
		return ChangeableDB{v: v}
	case KindUserDB:
		return UserDB{v: v}
	case KindSystemDB:
		return SystemDB{v: v}
	}
	panic(fmt.Sprintf("address: unhandled kind %d", int(k)))
}
