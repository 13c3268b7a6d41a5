package event

import (
	"fmt"

	"github.com/cory-johannsen/wodi/internal/werr"
	"github.com/cory-johannsen/wodi/internal/wire"
)

// DBKind selects one of the three editor databases.
type DBKind byte

const (
	DBChangeable DBKind = iota
	DBSystem
	DBUser
)

var dbKindNames = []string{"Changeable", "System", "User"}

func (k DBKind) String() string {
	if int(k) < len(dbKindNames) {
		return dbKindNames[k]
	}
	return fmt.Sprintf("DBKind(%d)", byte(k))
}

// ParseDBKind converts a stored database kind code.
func ParseDBKind(b byte) (DBKind, error) {
	if int(b) >= len(dbKindNames) {
		return 0, werr.Range("DBKind", 0, len(dbKindNames)-1, int(b))
	}
	return DBKind(b), nil
}

// DBRef addresses a database type, data or item by number or, when UseName is
// set, by name.
type DBRef struct {
	ID      int32
	Name    string
	UseName bool
}

const (
	flagTypeUseName = 0x10
	flagDataUseName = 0x20
	flagItemUseName = 0x40
	flagDBRead      = 0x10
)

// dbGetItemNameDataID marks a DBManagement command that reads an item name.
const dbGetItemNameDataID int32 = -2

// DBManagement reads a database cell into Value (IsRead) or writes Value into
// the cell with Operator.
type DBManagement struct {
	base
	Kind     DBKind
	Type     DBRef
	Data     DBRef
	Item     DBRef
	Operator AssignOperator
	IsRead   bool
	Value    int32
}

func (c *DBManagement) Code() Code { return CodeDBManagement }

func (c *DBManagement) option() int32 {
	return wire.PackBytes([4]byte{
		byte(c.Kind) | boolByte(c.Type.UseName, flagTypeUseName) | boolByte(c.Data.UseName, flagDataUseName) | boolByte(c.Item.UseName, flagItemUseName),
		byte(c.Operator) | boolByte(c.IsRead, flagDBRead),
	})
}

func (c *DBManagement) setOption(v int32) error {
	if err := checkReserved("DBManagement option", v, 0x1F_73); err != nil {
		return err
	}
	b := wire.UnpackBytes(v)
	kind, err := ParseDBKind(b[0] & 0x0F)
	if err != nil {
		return err
	}
	op := b[1] & 0x0F
	if int(op) >= len(assignOperatorNames) {
		return werr.Range("AssignOperator", 0, len(assignOperatorNames)-1, int(op))
	}
	c.Kind = kind
	c.Type.UseName = b[0]&flagTypeUseName != 0
	c.Data.UseName = b[0]&flagDataUseName != 0
	c.Item.UseName = b[0]&flagItemUseName != 0
	c.Operator = AssignOperator(op)
	c.IsRead = b[1]&flagDBRead != 0
	return nil
}

func (c *DBManagement) numberFields() []numberField {
	return []numberField{
		intField("TypeID", &c.Type.ID),
		{name: "DataID", get: func() int32 { return c.Data.ID }, set: func(v int32) error {
			if v == dbGetItemNameDataID {
				return werr.Text("DataID", "reserved for item name lookup", "-2")
			}
			c.Data.ID = v
			return nil
		}},
		intField("ItemID", &c.Item.ID),
		{name: "Option", get: c.option, set: c.setOption},
		intField("Value", &c.Value),
	}
}

func (c *DBManagement) stringFields() []stringField {
	return []stringField{
		textField("TypeName", &c.Type.Name),
		textField("DataName", &c.Data.Name),
		textField("ItemName", &c.Item.Name),
	}
}

// DBManagementGetItemName stores the name of item ItemIndex of a database type
// into the string variable at Result.
type DBManagementGetItemName struct {
	base
	Kind      DBKind
	Type      DBRef
	ItemIndex int32
	Result    int32
}

func (c *DBManagementGetItemName) Code() Code { return CodeDBManagement }

func (c *DBManagementGetItemName) option() int32 {
	return wire.PackBytes([4]byte{
		byte(c.Kind) | boolByte(c.Type.UseName, flagTypeUseName),
		flagDBRead,
	})
}

func (c *DBManagementGetItemName) setOption(v int32) error {
	if err := checkReserved("DBManagement option", v, 0x10_13); err != nil {
		return err
	}
	b := wire.UnpackBytes(v)
	if b[1] != flagDBRead {
		return werr.Range("DBManagement read flag", flagDBRead, flagDBRead, int(b[1]))
	}
	kind, err := ParseDBKind(b[0] & 0x0F)
	if err != nil {
		return err
	}
	c.Kind = kind
	c.Type.UseName = b[0]&flagTypeUseName != 0
	return nil
}

func (c *DBManagementGetItemName) numberFields() []numberField {
	return []numberField{
		intField("TypeID", &c.Type.ID),
		{name: "DataID", get: func() int32 { return dbGetItemNameDataID }, set: func(v int32) error {
			if v != dbGetItemNameDataID {
				return werr.Range("DataID", int(dbGetItemNameDataID), int(dbGetItemNameDataID), int(v))
			}
			return nil
		}},
		intField("ItemIndex", &c.ItemIndex),
		{name: "Option", get: c.option, set: c.setOption},
		intField("Result", &c.Result),
	}
}

func (c *DBManagementGetItemName) stringFields() []stringField {
	empty := func(name string) stringField {
		return stringField{name: name, get: func() string { return "" }, set: func(s string) error {
			if s != "" {
				return werr.Text(name, "must be empty", s)
			}
			return nil
		}}
	}
	return []stringField{textField("TypeName", &c.Type.Name), empty("DataName"), empty("ItemName")}
}

// newDBManagement selects the variant from the data id in nums[2].
func newDBManagement(nums []int32) (Command, bool) {
	if len(nums) > 2 && nums[2] == dbGetItemNameDataID {
		return &DBManagementGetItemName{}, true
	}
	return &DBManagement{}, true
}
