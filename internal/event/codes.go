package event

import "fmt"

// Code is the opcode stored in numeric field 0 of every event command.
type Code int32

const (
	CodeBlank                 Code = 0
	CodeCheckpoint            Code = 99
	CodeMessage               Code = 101
	CodeChoiceStart           Code = 102
	CodeComment               Code = 103
	CodeDebugText             Code = 106
	CodeClearDebugText        Code = 107
	CodeConditionNumberStart  Code = 111
	CodeConditionStringStart  Code = 112
	CodeSetVariable           Code = 121
	CodeSetString             Code = 122
	CodeKeyInput              Code = 123
	CodeSetVariablePlus       Code = 124
	CodeTransfer              Code = 130
	CodeSound                 Code = 140
	CodePictureShow           Code = 150
	CodeEffect                Code = 151
	CodeLoopStart             Code = 170
	CodeLoopBreak             Code = 171
	CodeEventProcessingAbort  Code = 172
	CodeEraseEvent            Code = 173
	CodeReturnToTitle         Code = 174
	CodeEndGame               Code = 175
	CodeStopNonPic            Code = 177
	CodeResumeNonPic          Code = 178
	CodeTimesLoopStart        Code = 179
	CodeWait                  Code = 180
	CodeMoveRoute             Code = 201
	CodeWaitForMove           Code = 202
	CodeCallCommonEventByID   Code = 210
	CodeReserveCommonEvent    Code = 211
	CodeLabel                 Code = 212
	CodeGotoLabel             Code = 213
	CodeSaveLoad              Code = 220
	CodeDBManagement          Code = 250
	CodePartyGraphic          Code = 270
	CodeSyntheticVoice        Code = 290
	CodeCallCommonEventByName Code = 300
	CodeForkStart             Code = 401
	CodeElseStart             Code = 420
	CodeCancelStart           Code = 421
	CodeLoopEnd               Code = 498
	CodeForkEnd               Code = 499
)

var codeNames = map[Code]string{
	CodeBlank:                 "Blank",
	CodeCheckpoint:            "Checkpoint",
	CodeMessage:               "Message",
	CodeChoiceStart:           "ChoiceStart",
	CodeComment:               "Comment",
	CodeDebugText:             "DebugText",
	CodeClearDebugText:        "ClearDebugText",
	CodeConditionNumberStart:  "ConditionNumberStart",
	CodeConditionStringStart:  "ConditionStringStart",
	CodeSetVariable:           "SetVariable",
	CodeSetString:             "SetString",
	CodeKeyInput:              "KeyInput",
	CodeSetVariablePlus:       "SetVariablePlus",
	CodeTransfer:              "Transfer",
	CodeSound:                 "Sound",
	CodePictureShow:           "PictureShow",
	CodeEffect:                "Effect",
	CodeLoopStart:             "LoopStart",
	CodeLoopBreak:             "LoopBreak",
	CodeEventProcessingAbort:  "EventProcessingAbort",
	CodeEraseEvent:            "EraseEvent",
	CodeReturnToTitle:         "ReturnToTitle",
	CodeEndGame:               "EndGame",
	CodeStopNonPic:            "StopNonPic",
	CodeResumeNonPic:          "ResumeNonPic",
	CodeTimesLoopStart:        "TimesLoopStart",
	CodeWait:                  "Wait",
	CodeMoveRoute:             "MoveRoute",
	CodeWaitForMove:           "WaitForMove",
	CodeCallCommonEventByID:   "CallCommonEventByID",
	CodeReserveCommonEvent:    "ReserveCommonEvent",
	CodeLabel:                 "Label",
	CodeGotoLabel:             "GotoLabel",
	CodeSaveLoad:              "SaveLoad",
	CodeDBManagement:          "DBManagement",
	CodePartyGraphic:          "PartyGraphic",
	CodeSyntheticVoice:        "SyntheticVoice",
	CodeCallCommonEventByName: "CallCommonEventByName",
	CodeForkStart:             "ForkStart",
	CodeElseStart:             "ElseStart",
	CodeCancelStart:           "CancelStart",
	CodeLoopEnd:               "LoopEnd",
	CodeForkEnd:               "ForkEnd",
}

func (c Code) String() string {
	if n, ok := codeNames[c]; ok {
		return n
	}
	return fmt.Sprintf("Code(%d)", int32(c))
}

// markerCodes lists the opcodes that carry no fields beyond the code itself.
var markerCodes = []Code{
	CodeBlank,
	CodeCheckpoint,
	CodeClearDebugText,
	CodeLoopStart,
	CodeLoopBreak,
	CodeEventProcessingAbort,
	CodeEraseEvent,
	CodeReturnToTitle,
	CodeEndGame,
	CodeStopNonPic,
	CodeResumeNonPic,
	CodeWaitForMove,
	CodeElseStart,
	CodeCancelStart,
	CodeLoopEnd,
	CodeForkEnd,
}

// opaqueCodes lists the opcodes registered without a typed layout. Their records
// decode to *Raw and round-trip verbatim.
var opaqueCodes = []Code{
	CodeTransfer,
	CodeSound,
	CodeEffect,
	CodeReserveCommonEvent,
	CodeSaveLoad,
}
