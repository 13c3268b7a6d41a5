package export

import (
	"github.com/cory-johannsen/wodi/internal/charamove"
	"github.com/cory-johannsen/wodi/internal/common"
	"github.com/cory-johannsen/wodi/internal/event"
)

// Document is the YAML projection of one CommonEvent.dat file.
type Document struct {
	Version string     `yaml:"version"`
	Events  []EventDoc `yaml:"events"`
}

// EventDoc is one common event.
type EventDoc struct {
	ID            int            `yaml:"id"`
	Name          string         `yaml:"name"`
	Description   string         `yaml:"description,omitempty"`
	Memo          string         `yaml:"memo,omitempty"`
	LabelColor    string         `yaml:"label_color"`
	Boot          BootDoc        `yaml:"boot"`
	NumberArgs    []ArgDoc       `yaml:"number_args,omitempty"`
	StringArgs    []ArgDoc       `yaml:"string_args,omitempty"`
	SelfVariables map[int]string `yaml:"self_variables,omitempty"`
	Return        *ReturnDoc     `yaml:"return,omitempty"`
	Footer        string         `yaml:"footer,omitempty"`
	Commands      []CommandDoc   `yaml:"commands"`
}

// BootDoc is the boot condition.
type BootDoc struct {
	Type     string `yaml:"type"`
	Operator string `yaml:"operator"`
	Left     int32  `yaml:"left"`
	Right    int32  `yaml:"right"`
}

// ArgDoc is one argument the event actually takes.
type ArgDoc struct {
	Name     string    `yaml:"name"`
	Type     string    `yaml:"type"`
	Init     *int32    `yaml:"init,omitempty"`
	Database *DBDoc    `yaml:"database,omitempty"`
	Cases    []CaseDoc `yaml:"cases,omitempty"`
}

// DBDoc is the database an argument draws its choices from.
type DBDoc struct {
	Kind               string `yaml:"kind"`
	TypeID             int32  `yaml:"type_id"`
	UseAdditionalItems bool   `yaml:"use_additional_items,omitempty"`
}

// CaseDoc is one selectable argument value.
type CaseDoc struct {
	Number      int32  `yaml:"number"`
	Description string `yaml:"description"`
}

// ReturnDoc names the returned self variable.
type ReturnDoc struct {
	SelfVariable int    `yaml:"self_variable"`
	Description  string `yaml:"description,omitempty"`
}

// CommandDoc is one event command as its raw field values.
type CommandDoc struct {
	Code    int32    `yaml:"code"`
	Name    string   `yaml:"name"`
	Indent  int      `yaml:"indent,omitempty"`
	Numbers []int32  `yaml:"numbers,flow,omitempty"`
	Strings []string `yaml:"strings,omitempty"`
	Move    *MoveDoc `yaml:"move,omitempty"`
}

// MoveDoc is a movement script.
type MoveDoc struct {
	Repeat            bool          `yaml:"repeat,omitempty"`
	SkipIfBlocked     bool          `yaml:"skip_if_blocked,omitempty"`
	WaitForCompletion bool          `yaml:"wait_for_completion,omitempty"`
	Steps             []MoveStepDoc `yaml:"steps"`
}

// MoveStepDoc is one move command.
type MoveStepDoc struct {
	Code   string  `yaml:"code"`
	Values []int32 `yaml:"values,flow,omitempty"`
}

// FromData projects d. Only the arguments an event takes are listed; self
// variables appear only when named.
//
// Precondition: d and d.Events are non-nil.
func FromData(d *common.Data) Document {
	doc := Document{Version: d.Version.String(), Events: []EventDoc{}}
	for _, ev := range d.Events.All() {
		doc.Events = append(doc.Events, fromEvent(ev))
	}
	return doc
}

func fromEvent(ev *common.CommonEvent) EventDoc {
	boot := ev.BootCondition()
	out := EventDoc{
		ID:          ev.ID().Int(),
		Name:        ev.Name().String(),
		Description: ev.Description().String(),
		Memo:        ev.Memo().String(),
		LabelColor:  ev.LabelColor().String(),
		Boot: BootDoc{
			Type:     boot.Type.String(),
			Operator: boot.Operator.String(),
			Left:     boot.LeftSide,
			Right:    boot.RightSide,
		},
		Footer:   ev.Footer().String(),
		Commands: []CommandDoc{},
	}

	nums, strs := ev.ArgCounts()
	args := ev.SpecialArgs()
	for i := 0; i < nums; i++ {
		a, err := args.NumberArg(i)
		if err != nil {
			continue
		}
		doc := fromArg(&a.ArgDesc)
		v := a.InitValue
		doc.Init = &v
		out.NumberArgs = append(out.NumberArgs, doc)
	}
	for i := 0; i < strs; i++ {
		a, err := args.StringArg(i)
		if err != nil {
			continue
		}
		out.StringArgs = append(out.StringArgs, fromArg(&a.ArgDesc))
	}

	for i, name := range ev.SelfNames().All() {
		if name.String() == "" {
			continue
		}
		if out.SelfVariables == nil {
			out.SelfVariables = map[int]string{}
		}
		out.SelfVariables[i] = name.String()
	}

	if ret := ev.ReturnValue(); ret.IsReturn() {
		out.Return = &ReturnDoc{SelfVariable: ret.Index(), Description: ret.Description.String()}
	}

	for _, cmd := range ev.Commands().All() {
		out.Commands = append(out.Commands, fromCommand(cmd))
	}
	return out
}

func fromArg(a *common.ArgDesc) ArgDoc {
	doc := ArgDoc{Name: a.Name().String(), Type: a.Type().String()}
	if a.Type() == common.ArgReferDatabase {
		db := a.Database()
		doc.Database = &DBDoc{Kind: db.Kind.String(), TypeID: db.TypeID, UseAdditionalItems: db.UseAdditionalItems}
	}
	for _, c := range a.Cases() {
		doc.Cases = append(doc.Cases, CaseDoc{Number: c.Number, Description: c.Description.String()})
	}
	return doc
}

func fromCommand(cmd event.Command) CommandDoc {
	doc := CommandDoc{
		Code:    int32(cmd.Code()),
		Name:    cmd.Code().String(),
		Indent:  cmd.Indent(),
		Strings: event.StringVariables(cmd),
	}
	// slot 0 repeats the code
	if nums := event.NumberVariables(cmd); len(nums) > 1 {
		doc.Numbers = nums[1:]
	}
	if entry := cmd.ActionEntry(); entry != nil {
		doc.Move = fromEntry(entry)
	}
	return doc
}

func fromEntry(a *charamove.ActionEntry) *MoveDoc {
	doc := &MoveDoc{
		Repeat:            a.Repeat,
		SkipIfBlocked:     a.SkipIfBlocked,
		WaitForCompletion: a.WaitForCompletion,
		Steps:             []MoveStepDoc{},
	}
	for _, c := range a.Commands().All() {
		step := MoveStepDoc{Code: c.Code().String()}
		for i := 0; i < c.ValueCount(); i++ {
			if v, err := c.Value(i); err == nil {
				step.Values = append(step.Values, v)
			}
		}
		doc.Steps = append(doc.Steps, step)
	}
	return doc
}
