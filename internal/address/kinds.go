package address

import (
	"fmt"

	"github.com/cory-johannsen/wodi/internal/diag"
	"github.com/cory-johannsen/wodi/internal/vo"
	"github.com/cory-johannsen/wodi/internal/werr"
)

type kinder interface {
	kind() Kind
}

// Address is a validated address of a single kind K.
// Addresses of the same kind compare with ==.
type Address[K kinder] struct {
	v int
}

func newAddress[K kinder](v int, sink diag.Sink) (Address[K], error) {
	var k K
	if err := validate(k.kind(), v, sink); err != nil {
		return Address[K]{}, err
	}
	return Address[K]{v: v}, nil
}

// Kind returns the address kind.
func (a Address[K]) Kind() Kind {
	var k K
	return k.kind()
}

// Int returns the raw address value.
func (a Address[K]) Int() int { return a.v }

// Int32 returns the raw address value as stored on the wire.
func (a Address[K]) Int32() int32 { return int32(a.v) }

func (a Address[K]) String() string {
	return fmt.Sprintf("%s(%d)", a.Kind(), a.v)
}

// Add returns the address n past a.
//
// Postcondition: the result is of the same kind, or a *werr.OperationError wrapping
// the range violation.
func (a Address[K]) Add(n int) (Address[K], error) {
	r, err := newAddress[K](a.v+n, nil)
	if err != nil {
		return Address[K]{}, werr.Operation(fmt.Sprintf("%s + %d", a, n), err)
	}
	return r, nil
}

// Sub returns the address n before a.
func (a Address[K]) Sub(n int) (Address[K], error) {
	r, err := newAddress[K](a.v-n, nil)
	if err != nil {
		return Address[K]{}, werr.Operation(fmt.Sprintf("%s - %d", a, n), err)
	}
	return r, nil
}

// Distance returns a - b for two addresses of the same kind.
func (a Address[K]) Distance(b Address[K]) int {
	return a.v - b.v
}

type (
	mapEventVariable        struct{}
	thisMapEventVariable    struct{}
	thisCommonEventVariable struct{}
	normalNumberVariable    struct{}
	spareNumberVariable     struct{}
	stringVariable          struct{}
	randomNumber            struct{}
	systemVariable          struct{}
	eventInfo               struct{}
	heroInfo                struct{}
	partyInfo               struct{}
	thisEventInfo           struct{}
	systemString            struct{}
	commonEventVariable     struct{}
	changeableDB            struct{}
	userDB                  struct{}
	systemDB                struct{}
)

func (mapEventVariable) kind() Kind        { return KindMapEventVariable }
func (thisMapEventVariable) kind() Kind    { return KindThisMapEventVariable }
func (thisCommonEventVariable) kind() Kind { return KindThisCommonEventVariable }
func (normalNumberVariable) kind() Kind    { return KindNormalNumberVariable }
func (spareNumberVariable) kind() Kind     { return KindSpareNumberVariable }
func (stringVariable) kind() Kind          { return KindStringVariable }
func (randomNumber) kind() Kind            { return KindRandomNumber }
func (systemVariable) kind() Kind          { return KindSystemVariable }
func (eventInfo) kind() Kind               { return KindEventInfo }
func (heroInfo) kind() Kind                { return KindHeroInfo }
func (partyInfo) kind() Kind               { return KindPartyInfo }
func (thisEventInfo) kind() Kind           { return KindThisEventInfo }
func (systemString) kind() Kind            { return KindSystemString }
func (commonEventVariable) kind() Kind     { return KindCommonEventVariable }
func (changeableDB) kind() Kind            { return KindChangeableDB }
func (userDB) kind() Kind                  { return KindUserDB }
func (systemDB) kind() Kind                { return KindSystemDB }

// Concrete address kinds.
type (
	MapEventVariable        = Address[mapEventVariable]
	ThisMapEventVariable    = Address[thisMapEventVariable]
	ThisCommonEventVariable = Address[thisCommonEventVariable]
	NormalNumberVariable    = Address[normalNumberVariable]
	SpareNumberVariable     = Address[spareNumberVariable]
	StringVariable          = Address[stringVariable]
	RandomNumber            = Address[randomNumber]
	SystemVariable          = Address[systemVariable]
	EventInfo               = Address[eventInfo]
	HeroInfo                = Address[heroInfo]
	PartyInfo               = Address[partyInfo]
	ThisEventInfo           = Address[thisEventInfo]
	SystemString            = Address[systemString]
	CommonEventVariable     = Address[commonEventVariable]
	ChangeableDB            = Address[changeableDB]
	UserDB                  = Address[userDB]
	SystemDB                = Address[systemDB]
)

func NewMapEventVariable(v int, sink diag.Sink) (MapEventVariable, error) {
	return newAddress[mapEventVariable](v, sink)
}

func NewThisMapEventVariable(v int, sink diag.Sink) (ThisMapEventVariable, error) {
	return newAddress[thisMapEventVariable](v, sink)
}

func NewThisCommonEventVariable(v int, sink diag.Sink) (ThisCommonEventVariable, error) {
	return newAddress[thisCommonEventVariable](v, sink)
}

func NewNormalNumberVariable(v int, sink diag.Sink) (NormalNumberVariable, error) {
	return newAddress[normalNumberVariable](v, sink)
}

func NewSpareNumberVariable(v int, sink diag.Sink) (SpareNumberVariable, error) {
	return newAddress[spareNumberVariable](v, sink)
}

func NewStringVariable(v int, sink diag.Sink) (StringVariable, error) {
	return newAddress[stringVariable](v, sink)
}

func NewRandomNumber(v int, sink diag.Sink) (RandomNumber, error) {
	return newAddress[randomNumber](v, sink)
}

func NewSystemVariable(v int, sink diag.Sink) (SystemVariable, error) {
	return newAddress[systemVariable](v, sink)
}

func NewEventInfo(v int, sink diag.Sink) (EventInfo, error) {
	return newAddress[eventInfo](v, sink)
}

func NewHeroInfo(v int, sink diag.Sink) (HeroInfo, error) {
	return newAddress[heroInfo](v, sink)
}

func NewPartyInfo(v int, sink diag.Sink) (PartyInfo, error) {
	return newAddress[partyInfo](v, sink)
}

func NewThisEventInfo(v int, sink diag.Sink) (ThisEventInfo, error) {
	return newAddress[thisEventInfo](v, sink)
}

func NewSystemString(v int, sink diag.Sink) (SystemString, error) {
	return newAddress[systemString](v, sink)
}

func NewCommonEventVariable(v int, sink diag.Sink) (CommonEventVariable, error) {
	return newAddress[commonEventVariable](v, sink)
}

func NewChangeableDB(v int, sink diag.Sink) (ChangeableDB, error) {
	return newAddress[changeableDB](v, sink)
}

func NewUserDB(v int, sink diag.Sink) (UserDB, error) {
	return newAddress[userDB](v, sink)
}

func NewSystemDB(v int, sink diag.Sink) (SystemDB, error) {
	return newAddress[systemDB](v, sink)
}

// ThisMapEventIndex returns the self-variable index addressed by a.
func ThisMapEventIndex(a ThisMapEventVariable) vo.MapEventVariableIndex {
	return vo.Must(vo.NewMapEventVariableIndex(a.v - KindThisMapEventVariable.Range().Min))
}

// ThisCommonEventIndex returns the self-variable index addressed by a.
func ThisCommonEventIndex(a ThisCommonEventVariable) vo.CommonEventVariableIndex {
	return vo.Must(vo.NewCommonEventVariableIndex(a.v - KindThisCommonEventVariable.Range().Min))
}

// MapEventParts splits a into the map event id and its self-variable index.
func MapEventParts(a MapEventVariable) (vo.MapEventID, vo.MapEventVariableIndex) {
	rel := a.v - KindMapEventVariable.Range().Min
	return vo.Must(vo.NewMapEventID(rel / 10)), vo.Must(vo.NewMapEventVariableIndex(rel % 10))
}

// CommonEventParts splits a into the common event id and its self-variable index.
func CommonEventParts(a CommonEventVariable) (vo.CommonEventID, vo.CommonEventVariableIndex) {
	rel := a.v - KindCommonEventVariable.Range().Min
	return vo.Must(vo.NewCommonEventID(rel / 100)), vo.Must(vo.NewCommonEventVariableIndex(rel % 100))
}

// NormalNumberIndex returns the normal variable index addressed by a.
func NormalNumberIndex(a NormalNumberVariable) vo.NormalNumberVariableIndex {
	return vo.Must(vo.NewNormalNumberVariableIndex(a.v - KindNormalNumberVariable.Range().Min))
}

// SpareNumberParts splits a into its spare variable set (1-9) and index.
func SpareNumberParts(a SpareNumberVariable) (int, vo.SpareNumberVariableIndex) {
	rel := a.v - KindNormalNumberVariable.Range().Min
	return rel / 100000, vo.Must(vo.NewSpareNumberVariableIndex(rel % 100000))
}

// StringIndex returns the string variable index addressed by a.
func StringIndex(a StringVariable) vo.StringVariableIndex {
	return vo.Must(vo.NewStringVariableIndex(a.v - KindStringVariable.Range().Min))
}

// RandomMax returns the exclusive upper bound of the random number addressed by a.
func RandomMax(a RandomNumber) vo.RandomVariableValue {
	return vo.Must(vo.NewRandomVariableValue(a.v - KindRandomNumber.Range().Min))
}

// SystemIndex returns the system variable index addressed by a.
func SystemIndex(a SystemVariable) vo.SystemVariableIndex {
	return vo.Must(vo.NewSystemVariableIndex(a.v - KindSystemVariable.Range().Min))
}

// SystemStringIndex returns the system string index addressed by a.
func SystemStringIndex(a SystemString) int {
	return a.v - KindSystemString.Range().Min
}

// DBParts splits a database address into its type, data and item ids.
func DBParts(a VariableAddress) (vo.DBTypeID, vo.DBDataID, vo.DBItemID, error) {
	switch a.Kind() {
	case KindChangeableDB, KindUserDB, KindSystemDB:
	default:
		return vo.DBTypeID{}, vo.DBDataID{}, vo.DBItemID{}, werr.Operation("DBParts",
			fmt.Errorf("%s is not a database address", a))
	}
	rel := a.Int() % 100000000
	return vo.Must(vo.NewDBTypeID(rel / 1000000)),
		vo.Must(vo.NewDBDataID(rel % 1000000 / 100)),
		vo.Must(vo.NewDBItemID(rel % 100)),
		nil
}
